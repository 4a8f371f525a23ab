// Package compliance loads and runs JSON-shaped compliance fixtures
// against the engine, mirroring the published JMESPath compliance test
// corpus's given/cases document shape.
package compliance

import "encoding/json"

// Suite is one compliance document: a fixed input document plus a list of
// expression cases to evaluate against it. Given is kept as raw JSON so
// that its object key order survives into the evaluated document.
type Suite struct {
	Comment string          `json:"comment,omitempty"`
	Given   json.RawMessage `json:"given"`
	Cases   []Case          `json:"cases"`
}

// Case is a single expression/expectation pair within a Suite. Exactly one
// of Result or Error should be set: Result for a successful search,
// Error for an expression expected to fail to compile or evaluate.
type Case struct {
	Expression string          `json:"expression"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// HasResult reports whether c expects a successful search.
func (c Case) HasResult() bool { return c.Error == "" }
