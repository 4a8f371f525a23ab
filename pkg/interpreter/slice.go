package interpreter

import (
	"github.com/perbu/jmespath/pkg/ast"
	"github.com/perbu/jmespath/pkg/value"
)

// evalSlice implements JMESPath's Python-like array slicing: step > 0
// walks forward from start (exclusive of stop), step < 0 walks backward;
// omitted bounds default to the appropriate sequence end, and out-of-range
// bounds clamp rather than error. step == 0 is the one slice error.
func (c *Context) evalSlice(n *ast.Slice, arr value.Array) (value.Value, error) {
	step := 1
	if n.Step != nil {
		step = *n.Step
	}
	if step == 0 {
		return nil, &RuntimeError{Kind: InvalidSlice, Offset: n.Offset()}
	}

	length := len(arr)
	start := sliceStart(n.Start, length, step)
	stop := sliceStop(n.Stop, length, step)

	var out value.Array
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, arr[i])
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, arr[i])
		}
	}
	if out == nil {
		out = value.Array{}
	}
	return out, nil
}

func sliceStart(p *int, length, step int) int {
	if p == nil {
		if step > 0 {
			return 0
		}
		return length - 1
	}
	return capSliceIndex(*p, length, step)
}

func sliceStop(p *int, length, step int) int {
	if p == nil {
		if step > 0 {
			return length
		}
		return -1
	}
	return capSliceIndex(*p, length, step)
}

// capSliceIndex normalizes a negative index relative to length and clamps
// it into the range a slice may legally reference, per direction of travel.
func capSliceIndex(i, length, step int) int {
	if i < 0 {
		i += length
		if i < 0 {
			if step > 0 {
				return 0
			}
			return -1
		}
		return i
	}
	if i >= length {
		if step > 0 {
			return length
		}
		return length - 1
	}
	return i
}
