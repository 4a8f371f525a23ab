// Package functions implements the JMESPath built-in function library: a
// read-only registry of typed signatures plus the evaluation routine each
// one dispatches to.
package functions

import (
	"fmt"

	"github.com/perbu/jmespath/pkg/interpreter"
	"github.com/perbu/jmespath/pkg/value"
)

// TypeSpec is one disjunct of an ArgSpec: either "any value", a specific
// value.Kind, a homogeneous array of a specific element kind (or of any
// kind), or an expression-reference whose invocations must return one of a
// set of kinds.
type TypeSpec struct {
	any         bool
	kind        value.Kind
	arrayOf     *value.Kind // non-nil: Array<kind>; nil+isArray: Array<Any>
	isArray     bool
	isExpr      bool         // ExpressionReference
	exprReturns []value.Kind // kinds an invocation may return; empty: any kind
}

// Any accepts any value.
func Any() TypeSpec { return TypeSpec{any: true} }

// Kind accepts exactly one value.Kind.
func Kind(k value.Kind) TypeSpec { return TypeSpec{kind: k} }

// ArrayOf accepts an Array whose elements all match k.
func ArrayOf(k value.Kind) TypeSpec { return TypeSpec{isArray: true, arrayOf: &k} }

// ArrayAny accepts any Array regardless of element homogeneity.
func ArrayAny() TypeSpec { return TypeSpec{isArray: true} }

// ExprReturning accepts an expression-reference value; when later invoked,
// its result must be one of kinds (checked by the caller per invocation,
// not here, since an ExprReturning arg isn't evaluated until the function
// body invokes it).
func ExprReturning(kinds ...value.Kind) TypeSpec {
	return TypeSpec{isExpr: true, exprReturns: kinds}
}

func (t TypeSpec) matches(v value.Value) bool {
	if t.any {
		return true
	}
	if t.isExpr {
		_, ok := v.(*value.Expression)
		return ok
	}
	if t.isArray {
		arr, ok := v.(value.Array)
		if !ok {
			return false
		}
		if t.arrayOf == nil {
			return true
		}
		for _, elem := range arr {
			if elem.Kind() != *t.arrayOf {
				return false
			}
		}
		return true
	}
	return v.Kind() == t.kind
}

func (t TypeSpec) describe() string {
	switch {
	case t.any:
		return "any"
	case t.isExpr:
		return "expression"
	case t.isArray && t.arrayOf != nil:
		return fmt.Sprintf("array<%s>", t.arrayOf)
	case t.isArray:
		return "array"
	default:
		return t.kind.String()
	}
}

// ArgSpec is a disjunction ("or") of acceptable TypeSpecs for one argument
// position.
type ArgSpec []TypeSpec

func (a ArgSpec) matches(v value.Value) bool {
	for _, t := range a {
		if t.matches(v) {
			return true
		}
	}
	return false
}

func (a ArgSpec) describe() string {
	s := ""
	for i, t := range a {
		if i > 0 {
			s += "|"
		}
		s += t.describe()
	}
	return s
}

// Impl is a built-in function's evaluation routine, called once argument
// count and types have already been checked against its Signature.
type Impl func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error)

// Signature declares one function's arity and per-position argument
// constraints. Params covers fixed positions; when Variadic is non-nil,
// every argument past len(Params) is checked against it instead.
type Signature struct {
	Name     string
	Params   []ArgSpec
	Variadic ArgSpec // nil (empty) => fixed arity
	MinArity int
	MaxArity int // -1 = unbounded
	Fn       Impl
}

func (s Signature) argSpecFor(pos int) (ArgSpec, bool) {
	if pos < len(s.Params) {
		return s.Params[pos], true
	}
	if s.Variadic != nil {
		return s.Variadic, true
	}
	return nil, false
}

func (s Signature) checkArity(n int) error {
	if n < s.MinArity {
		return &interpreter.RuntimeError{Kind: interpreter.NotEnoughArguments, Expected: s.MinArity, Actual: n}
	}
	if s.MaxArity >= 0 && n > s.MaxArity {
		return &interpreter.RuntimeError{Kind: interpreter.TooManyArguments, Expected: s.MaxArity, Actual: n}
	}
	return nil
}

func (s Signature) checkTypes(args []value.Value) error {
	for i, arg := range args {
		spec, ok := s.argSpecFor(i)
		if !ok {
			continue
		}
		if !spec.matches(arg) {
			return &interpreter.RuntimeError{
				Kind:         interpreter.InvalidType,
				ExpectedType: spec.describe(),
				ActualType:   arg.Kind().String(),
				ActualValue:  arg.String(),
				Position:     i,
			}
		}
	}
	return nil
}
