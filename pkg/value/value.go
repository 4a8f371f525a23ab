// Package value implements the tagged runtime value JMESPath expressions
// operate over: null, boolean, number, string, array, object, and
// expression-reference.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/perbu/jmespath/pkg/ast"
)

// Kind identifies which of JMESPath's seven runtime types a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindExpression
)

// String returns the name `type()` reports for this Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindExpression:
		return "expref"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is implemented by every runtime value variant. Values are treated
// as immutable: once constructed, a Value's observable contents never
// change, so sharing one across evaluations or goroutines is always safe.
type Value interface {
	Kind() Kind
	String() string
}

// Null is JMESPath's `null`, distinct from a missing field (which also
// reads as Null, per the language spec, but there is only one Null value).
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "null" }

// Nil is the shared Null value; every Null() call site can share this
// instance since Null carries no state.
var Nil Value = Null{}

// Bool is a JMESPath boolean.
type Bool bool

func (b Bool) Kind() Kind     { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// True and False are the shared Bool values.
var (
	True  Value = Bool(true)
	False Value = Bool(false)
)

// FromBool returns the shared True or False value for b.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Number is a JMESPath number: a single IEEE-754 double, matching the
// language's refusal to distinguish integers from floats at the type level.
type Number float64

func (n Number) Kind() Kind { return KindNumber }
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// String is a JMESPath string; length() counts runes, not bytes.
type String string

func (s String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }

// Array is an ordered, immutable sequence of Values.
type Array []Value

func (a Array) Kind() Kind { return KindArray }
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Expression is the `&expr` value variant: an immutable handle to an AST
// subtree, passed to higher-order functions like sort_by and map. Source
// is the full expression string the subtree's offsets are anchored to, so
// runtime errors raised while invoking it can still render a source caret.
type Expression struct {
	Node   ast.Node
	Source string
}

func (e *Expression) Kind() Kind { return KindExpression }
func (e *Expression) String() string {
	return fmt.Sprintf("Expression(%s)", e.Node)
}

// Truthy implements JMESPath's truthiness rule: everything is truthy
// except Null, false, an empty string, an empty array, and an empty
// object.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(t)
	case String:
		return t != ""
	case Array:
		return len(t) != 0
	case *Object:
		return t.Len() != 0
	default:
		return true
	}
}

// Equal implements JMESPath's structural equality: deeply equal trees
// compare equal regardless of sharing.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Range(func(k string, v Value) bool {
			other, ok := bv.Get(k)
			if !ok || !Equal(v, other) {
				equal = false
				return false
			}
			return true
		})
		return equal
	case *Expression:
		bv, ok := b.(*Expression)
		return ok && av.Source == bv.Source
	default:
		return false
	}
}
