package lexer

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a lexical error tied to a Position in the source expression.
type Error struct {
	Message  string
	Position Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

var errUnterminated = errors.New("unterminated delimited literal")

// decodeJSONString decodes raw (a double-quoted Go/JSON string, escapes
// intact) into its unescaped text using the JSON string grammar, which
// JMESPath quoted identifiers share.
func decodeJSONString(raw string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return "", err
	}
	return s, nil
}
