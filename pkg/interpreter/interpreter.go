package interpreter

import (
	"fmt"

	"github.com/perbu/jmespath/pkg/ast"
	"github.com/perbu/jmespath/pkg/value"
)

// Eval recursively interprets node against current, dispatching on the
// concrete ast.Node type. Missing fields and out-of-range indices are not
// errors — they evaluate to value.Nil, per the language spec; only the
// cases enumerated in errors.go's RuntimeErrorKind raise an error.
func (c *Context) Eval(node ast.Node, current value.Value) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Identity:
		return current, nil

	case *ast.Field:
		obj, ok := current.(*value.Object)
		if !ok {
			return value.Nil, nil
		}
		v, ok := obj.Get(n.Name)
		if !ok {
			return value.Nil, nil
		}
		return v, nil

	case *ast.Index:
		arr, ok := current.(value.Array)
		if !ok {
			return value.Nil, nil
		}
		i := n.Value
		if i < 0 {
			i += len(arr)
		}
		if i < 0 || i >= len(arr) {
			return value.Nil, nil
		}
		return arr[i], nil

	case *ast.Literal:
		return literalValue(n.Value)

	case *ast.Subexpr:
		left, err := c.Eval(n.Left, current)
		if err != nil {
			return nil, err
		}
		return c.Eval(n.Right, left)

	case *ast.Pipe:
		left, err := c.Eval(n.Left, current)
		if err != nil {
			return nil, err
		}
		return c.Eval(n.Right, left)

	case *ast.Or:
		left, err := c.Eval(n.Left, current)
		if err != nil {
			return nil, err
		}
		if value.Truthy(left) {
			return left, nil
		}
		return c.Eval(n.Right, current)

	case *ast.And:
		left, err := c.Eval(n.Left, current)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(left) {
			return left, nil
		}
		return c.Eval(n.Right, current)

	case *ast.Not:
		v, err := c.Eval(n.Expr, current)
		if err != nil {
			return nil, err
		}
		return value.FromBool(!value.Truthy(v)), nil

	case *ast.Comparison:
		return c.evalComparison(n, current)

	case *ast.MultiList:
		if _, ok := current.(value.Null); ok {
			return value.Nil, nil
		}
		items := make(value.Array, len(n.Items))
		for i, item := range n.Items {
			v, err := c.Eval(item, current)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil

	case *ast.MultiHash:
		if _, ok := current.(value.Null); ok {
			return value.Nil, nil
		}
		obj := value.NewObject()
		for _, pair := range n.Pairs {
			v, err := c.Eval(pair.Value, current)
			if err != nil {
				return nil, err
			}
			obj.Set(pair.Key, v)
		}
		return obj, nil

	case *ast.Flatten:
		v, err := c.Eval(n.Expr, current)
		if err != nil {
			return nil, err
		}
		arr, ok := v.(value.Array)
		if !ok {
			return value.Nil, nil
		}
		out := make(value.Array, 0, len(arr))
		for _, elem := range arr {
			if inner, ok := elem.(value.Array); ok {
				out = append(out, inner...)
			} else {
				out = append(out, elem)
			}
		}
		return out, nil

	case *ast.Slice:
		arr, ok := current.(value.Array)
		if !ok {
			return value.Nil, nil
		}
		return c.evalSlice(n, arr)

	case *ast.ObjectValues:
		v, err := c.Eval(n.Expr, current)
		if err != nil {
			return nil, err
		}
		obj, ok := v.(*value.Object)
		if !ok {
			return value.Nil, nil
		}
		return value.Array(obj.Values()), nil

	case *ast.Projection:
		left, err := c.Eval(n.Left, current)
		if err != nil {
			return nil, err
		}
		arr, ok := left.(value.Array)
		if !ok {
			return value.Nil, nil
		}
		out := make(value.Array, 0, len(arr))
		for _, elem := range arr {
			rv, err := c.Eval(n.Right, elem)
			if err != nil {
				return nil, err
			}
			if _, isNull := rv.(value.Null); isNull {
				continue
			}
			out = append(out, rv)
		}
		return out, nil

	case *ast.Condition:
		pred, err := c.Eval(n.Cond, current)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(pred) {
			return value.Nil, nil
		}
		return c.Eval(n.Then, current)

	case *ast.FunctionCall:
		args := make([]value.Value, len(n.Args))
		for i, argNode := range n.Args {
			v, err := c.Eval(argNode, current)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		if c.Registry == nil {
			return nil, &RuntimeError{Kind: UnknownFunction, Offset: n.Offset(), Name: n.Name}
		}
		return c.Registry.Call(c, n.Name, args, n.Offset())

	case *ast.ExpressionReference:
		return &value.Expression{Node: n.Expr, Source: c.Expression}, nil

	default:
		return nil, fmt.Errorf("interpreter: unhandled AST node type %T", node)
	}
}

func literalValue(v any) (value.Value, error) {
	cv, err := value.FromAny(v)
	if err != nil {
		return nil, err
	}
	return cv, nil
}

func (c *Context) evalComparison(n *ast.Comparison, current value.Value) (value.Value, error) {
	left, err := c.Eval(n.Left, current)
	if err != nil {
		return nil, err
	}
	right, err := c.Eval(n.Right, current)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.CompareEQ:
		return value.FromBool(value.Equal(left, right)), nil
	case ast.CompareNE:
		return value.FromBool(!value.Equal(left, right)), nil
	default:
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return value.Nil, nil
		}
		var result bool
		switch n.Op {
		case ast.CompareLT:
			result = ln < rn
		case ast.CompareLTE:
			result = ln <= rn
		case ast.CompareGT:
			result = ln > rn
		case ast.CompareGTE:
			result = ln >= rn
		}
		return value.FromBool(result), nil
	}
}
