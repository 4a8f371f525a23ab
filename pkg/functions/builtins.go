package functions

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/perbu/jmespath/pkg/interpreter"
	"github.com/perbu/jmespath/pkg/value"
)

var builtins = []Signature{
	{
		Name:     "abs",
		Params:   []ArgSpec{{Kind(value.KindNumber)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return value.Number(math.Abs(float64(args[0].(value.Number)))), nil
		},
	},
	{
		Name:     "avg",
		Params:   []ArgSpec{{ArrayOf(value.KindNumber)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			arr := args[0].(value.Array)
			if len(arr) == 0 {
				return value.Nil, nil
			}
			var sum float64
			for _, v := range arr {
				sum += float64(v.(value.Number))
			}
			return value.Number(sum / float64(len(arr))), nil
		},
	},
	{
		Name:     "ceil",
		Params:   []ArgSpec{{Kind(value.KindNumber)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return value.Number(math.Ceil(float64(args[0].(value.Number)))), nil
		},
	},
	{
		Name:     "contains",
		Params:   []ArgSpec{{Kind(value.KindArray), Kind(value.KindString)}, {Any()}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			switch subject := args[0].(type) {
			case value.String:
				search, ok := args[1].(value.String)
				if !ok {
					return value.False, nil
				}
				return value.FromBool(strings.Contains(string(subject), string(search))), nil
			case value.Array:
				for _, elem := range subject {
					if value.Equal(elem, args[1]) {
						return value.True, nil
					}
				}
				return value.False, nil
			default:
				return value.False, nil
			}
		},
	},
	{
		Name:     "ends_with",
		Params:   []ArgSpec{{Kind(value.KindString)}, {Kind(value.KindString)}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			s := string(args[0].(value.String))
			suffix := string(args[1].(value.String))
			return value.FromBool(strings.HasSuffix(s, suffix)), nil
		},
	},
	{
		Name:     "floor",
		Params:   []ArgSpec{{Kind(value.KindNumber)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return value.Number(math.Floor(float64(args[0].(value.Number)))), nil
		},
	},
	{
		Name:     "join",
		Params:   []ArgSpec{{Kind(value.KindString)}, {ArrayOf(value.KindString)}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			glue := string(args[0].(value.String))
			arr := args[1].(value.Array)
			parts := make([]string, len(arr))
			for i, v := range arr {
				parts[i] = string(v.(value.String))
			}
			return value.String(strings.Join(parts, glue)), nil
		},
	},
	{
		Name:     "keys",
		Params:   []ArgSpec{{Kind(value.KindObject)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			obj := args[0].(*value.Object)
			keys := obj.Keys()
			out := make(value.Array, len(keys))
			for i, k := range keys {
				out[i] = value.String(k)
			}
			return out, nil
		},
	},
	{
		Name:     "length",
		Params:   []ArgSpec{{Kind(value.KindString), Kind(value.KindArray), Kind(value.KindObject)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			switch v := args[0].(type) {
			case value.String:
				return value.Number(len([]rune(string(v)))), nil
			case value.Array:
				return value.Number(len(v)), nil
			case *value.Object:
				return value.Number(v.Len()), nil
			default:
				return value.Nil, nil
			}
		},
	},
	{
		Name:     "map",
		Params:   []ArgSpec{{ExprReturning()}, {ArrayAny()}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			expr := args[0].(*value.Expression)
			arr := args[1].(value.Array)
			out := make(value.Array, len(arr))
			for i, elem := range arr {
				v, err := ctx.InvokeExpression(expr, elem)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
	},
	{
		Name:     "max",
		Params:   []ArgSpec{{ArrayOf(value.KindNumber), ArrayOf(value.KindString)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return extremum(args[0].(value.Array), false)
		},
	},
	{
		Name:     "max_by",
		Params:   []ArgSpec{{ArrayAny()}, {ExprReturning(value.KindNumber, value.KindString)}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return extremumBy(ctx, args[0].(value.Array), args[1].(*value.Expression), offset, false)
		},
	},
	{
		Name:     "min",
		Params:   []ArgSpec{{ArrayOf(value.KindNumber), ArrayOf(value.KindString)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return extremum(args[0].(value.Array), true)
		},
	},
	{
		Name:     "min_by",
		Params:   []ArgSpec{{ArrayAny()}, {ExprReturning(value.KindNumber, value.KindString)}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return extremumBy(ctx, args[0].(value.Array), args[1].(*value.Expression), offset, true)
		},
	},
	{
		Name:     "not_null",
		Variadic: ArgSpec{Any()},
		MinArity: 1, MaxArity: -1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			for _, v := range args {
				if _, ok := v.(value.Null); !ok {
					return v, nil
				}
			}
			return value.Nil, nil
		},
	},
	{
		Name:     "reverse",
		Params:   []ArgSpec{{Kind(value.KindArray), Kind(value.KindString)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			switch v := args[0].(type) {
			case value.Array:
				out := make(value.Array, len(v))
				for i, elem := range v {
					out[len(v)-1-i] = elem
				}
				return out, nil
			case value.String:
				r := []rune(string(v))
				for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
					r[i], r[j] = r[j], r[i]
				}
				return value.String(r), nil
			default:
				return value.Nil, nil
			}
		},
	},
	{
		Name:     "sort",
		Params:   []ArgSpec{{ArrayOf(value.KindNumber), ArrayOf(value.KindString)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			arr := args[0].(value.Array)
			out := append(value.Array{}, arr...)
			sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
			return out, nil
		},
	},
	{
		Name:     "sort_by",
		Params:   []ArgSpec{{ArrayAny()}, {ExprReturning(value.KindNumber, value.KindString)}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			arr := args[0].(value.Array)
			expr := args[1].(*value.Expression)
			keys := make([]value.Value, len(arr))
			for i, elem := range arr {
				k, err := ctx.InvokeExpression(expr, elem)
				if err != nil {
					return nil, err
				}
				if err := checkSortKey(k, offset, ctx.Invocations()); err != nil {
					return nil, err
				}
				keys[i] = k
			}
			out := append(value.Array{}, arr...)
			idx := make([]int, len(arr))
			for i := range idx {
				idx[i] = i
			}
			sort.SliceStable(idx, func(a, b int) bool { return less(keys[idx[a]], keys[idx[b]]) })
			sorted := make(value.Array, len(arr))
			for i, j := range idx {
				sorted[i] = out[j]
			}
			return sorted, nil
		},
	},
	{
		Name:     "starts_with",
		Params:   []ArgSpec{{Kind(value.KindString)}, {Kind(value.KindString)}},
		MinArity: 2, MaxArity: 2,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			s := string(args[0].(value.String))
			prefix := string(args[1].(value.String))
			return value.FromBool(strings.HasPrefix(s, prefix)), nil
		},
	},
	{
		Name:     "sum",
		Params:   []ArgSpec{{ArrayOf(value.KindNumber)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			var sum float64
			for _, v := range args[0].(value.Array) {
				sum += float64(v.(value.Number))
			}
			return value.Number(sum), nil
		},
	},
	{
		Name:     "to_array",
		Params:   []ArgSpec{{Any()}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			if arr, ok := args[0].(value.Array); ok {
				return arr, nil
			}
			return value.Array{args[0]}, nil
		},
	},
	{
		Name:     "to_number",
		Params:   []ArgSpec{{Any()}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			switch v := args[0].(type) {
			case value.Number:
				return v, nil
			case value.String:
				f, err := strconv.ParseFloat(string(v), 64)
				if err != nil {
					return value.Nil, nil
				}
				return value.Number(f), nil
			default:
				return value.Nil, nil
			}
		},
	},
	{
		Name:     "to_string",
		Params:   []ArgSpec{{Any()}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			if s, ok := args[0].(value.String); ok {
				return s, nil
			}
			encoded, err := json.Marshal(value.ToAny(args[0]))
			if err != nil {
				return value.String(args[0].String()), nil
			}
			return value.String(encoded), nil
		},
	},
	{
		Name:     "type",
		Params:   []ArgSpec{{Any()}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return value.String(args[0].Kind().String()), nil
		},
	},
	{
		Name:     "values",
		Params:   []ArgSpec{{Kind(value.KindObject)}},
		MinArity: 1, MaxArity: 1,
		Fn: func(ctx *interpreter.Context, args []value.Value, offset int) (value.Value, error) {
			return value.Array(args[0].(*value.Object).Values()), nil
		},
	},
}

// less orders two same-kind sortable values (Number or String) ascending.
func less(a, b value.Value) bool {
	if an, ok := a.(value.Number); ok {
		return an < b.(value.Number)
	}
	return a.(value.String) < b.(value.String)
}

func extremum(arr value.Array, wantMin bool) (value.Value, error) {
	if len(arr) == 0 {
		return value.Nil, nil
	}
	best := arr[0]
	for _, v := range arr[1:] {
		if wantMin && less(v, best) {
			best = v
		}
		if !wantMin && less(best, v) {
			best = v
		}
	}
	return best, nil
}

func extremumBy(ctx *interpreter.Context, arr value.Array, expr *value.Expression, offset int, wantMin bool) (value.Value, error) {
	if len(arr) == 0 {
		return value.Nil, nil
	}
	best := arr[0]
	bestKey, err := ctx.InvokeExpression(expr, best)
	if err != nil {
		return nil, err
	}
	if err := checkSortKey(bestKey, offset, ctx.Invocations()); err != nil {
		return nil, err
	}
	for _, v := range arr[1:] {
		k, err := ctx.InvokeExpression(expr, v)
		if err != nil {
			return nil, err
		}
		if err := checkSortKey(k, offset, ctx.Invocations()); err != nil {
			return nil, err
		}
		if wantMin && less(k, bestKey) {
			best, bestKey = v, k
		}
		if !wantMin && less(bestKey, k) {
			best, bestKey = v, k
		}
	}
	return best, nil
}

// checkSortKey validates that an expression-reference invocation used as a
// sort/extremum key returned a Number or String, raising InvalidReturnType
// (tagged with the invocation count and with argument position 1, where
// sort_by, max_by and min_by take their expression reference) otherwise.
func checkSortKey(v value.Value, offset int, invocation int) error {
	switch v.(type) {
	case value.Number, value.String:
		return nil
	default:
		return &interpreter.RuntimeError{
			Kind:         interpreter.InvalidReturnType,
			Offset:       offset,
			ExpectedType: "number|string",
			ActualType:   v.Kind().String(),
			ActualValue:  v.String(),
			Position:     1,
			Invocation:   invocation,
		}
	}
}
