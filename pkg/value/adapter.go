package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FromAny projects a decoded-JSON-shaped Go value (the output of
// encoding/json's default Unmarshal-into-interface{} decoding, or
// equivalent hand-built data) into a Value. It is the serialization
// adapter contract from the language surface: every visited node must
// become one of the seven Value variants, and an unrepresentable node
// (e.g. a map with non-string keys, which json.Unmarshal never itself
// produces) fails the ingestion with a typed error.
//
// FromAny does not preserve the source's object key order, because a Go
// map has none to preserve. Callers that need order-stable ingestion from
// raw JSON text should use FromJSON instead.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Nil, nil
	case bool:
		return FromBool(t), nil
	case float64:
		return Number(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("value: cannot represent json.Number %q as a JMESPath number: %w", t, err)
		}
		return Number(f), nil
	case int:
		return Number(float64(t)), nil
	case string:
		return String(t), nil
	case []any:
		arr := make(Array, len(t))
		for i, elem := range t {
			cv, err := FromAny(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = cv
		}
		return arr, nil
	case map[string]any:
		obj := NewObject()
		for k, elem := range t {
			cv, err := FromAny(elem)
			if err != nil {
				return nil, err
			}
			obj.Set(k, cv)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("value: cannot represent %T as a JMESPath value", v)
	}
}

// ToAny projects a Value back into plain Go data (the inverse of FromAny),
// for handing evaluation results back to callers that want to re-encode
// them or compare them against ordinary Go values in tests.
func ToAny(v Value) any {
	switch t := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(t)
	case Number:
		return float64(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = ToAny(elem)
		}
		return out
	case *Object:
		out := make(map[string]any, t.Len())
		t.Range(func(k string, elem Value) bool {
			out[k] = ToAny(elem)
			return true
		})
		return out
	case *Expression:
		return t
	default:
		return nil
	}
}

// FromJSON decodes a single JSON text into a Value, preserving object key
// order from the source text via token-level decoding rather than an
// Unmarshal-into-map round trip (which Go's map type would immediately
// scramble). This is the order-stable ingestion path SearchJSON uses.
func FromJSON(data []byte) (Value, error) {
	return FromJSONWithDepth(data, 0)
}

// FromJSONWithDepth is FromJSON with an enforced limit on array/object
// nesting depth; maxDepth <= 0 means unlimited. The CLI uses this to bound
// how deep a hand-fed document may nest before decoding gives up, rather
// than recursing until the goroutine stack does.
func FromJSONWithDepth(data []byte, maxDepth int) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec, maxDepth, 0)
	if err != nil {
		return nil, fmt.Errorf("value: decoding JSON: %w", err)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder, maxDepth, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok, maxDepth, depth)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token, maxDepth, depth int) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Nil, nil
	case bool:
		return FromBool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot represent %q as a JMESPath number: %w", t, err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[', '{':
			if maxDepth > 0 && depth >= maxDepth {
				return nil, fmt.Errorf("exceeded maximum nesting depth of %d", maxDepth)
			}
		}
		switch t {
		case '[':
			arr := Array{}
			for dec.More() {
				elem, err := decodeJSONValue(dec, maxDepth, depth+1)
				if err != nil {
					return nil, err
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := decodeJSONValue(dec, maxDepth, depth+1)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}
