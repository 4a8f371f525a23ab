package parser

import (
	"testing"

	"github.com/perbu/jmespath/pkg/ast"
)

func TestParse_Field(t *testing.T) {
	node, err := Parse("foo")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f, ok := node.(*ast.Field)
	if !ok {
		t.Fatalf("got %T, want *ast.Field", node)
	}
	if f.Name != "foo" {
		t.Errorf("Name = %q, want foo", f.Name)
	}
}

func TestParse_DottedChain(t *testing.T) {
	node, err := Parse("foo.bar.baz")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	outer, ok := node.(*ast.Subexpr)
	if !ok {
		t.Fatalf("got %T, want *ast.Subexpr", node)
	}
	if _, ok := outer.Right.(*ast.Field); !ok {
		t.Errorf("Right = %T, want *ast.Field", outer.Right)
	}
	inner, ok := outer.Left.(*ast.Subexpr)
	if !ok {
		t.Fatalf("Left = %T, want *ast.Subexpr", outer.Left)
	}
	if f, ok := inner.Left.(*ast.Field); !ok || f.Name != "foo" {
		t.Errorf("inner.Left = %v", inner.Left)
	}
}

func TestParse_Pipe(t *testing.T) {
	node, err := Parse("foo | bar")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := node.(*ast.Pipe); !ok {
		t.Fatalf("got %T, want *ast.Pipe", node)
	}
}

func TestParse_ArrayProjection(t *testing.T) {
	node, err := Parse("a[*].b")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	proj, ok := node.(*ast.Projection)
	if !ok {
		t.Fatalf("got %T, want *ast.Projection", node)
	}
	if _, ok := proj.Left.(*ast.Field); !ok {
		t.Errorf("Left = %T, want *ast.Field", proj.Left)
	}
	if _, ok := proj.Right.(*ast.Field); !ok {
		t.Errorf("Right = %T, want *ast.Field", proj.Right)
	}
}

func TestParse_ObjectProjection(t *testing.T) {
	node, err := Parse("a.*.b")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	proj, ok := node.(*ast.Projection)
	if !ok {
		t.Fatalf("got %T, want *ast.Projection", node)
	}
	if _, ok := proj.Left.(*ast.ObjectValues); !ok {
		t.Errorf("Left = %T, want *ast.ObjectValues", proj.Left)
	}
}

func TestParse_Filter(t *testing.T) {
	node, err := Parse("a[?b > `1`].b")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	proj, ok := node.(*ast.Projection)
	if !ok {
		t.Fatalf("got %T, want *ast.Projection", node)
	}
	cond, ok := proj.Right.(*ast.Condition)
	if !ok {
		t.Fatalf("Right = %T, want *ast.Condition", proj.Right)
	}
	if _, ok := cond.Cond.(*ast.Comparison); !ok {
		t.Errorf("Cond.Cond = %T, want *ast.Comparison", cond.Cond)
	}
}

func TestParse_Slice(t *testing.T) {
	node, err := Parse("a[1:2:1]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	proj, ok := node.(*ast.Projection)
	if !ok {
		t.Fatalf("got %T, want *ast.Projection", node)
	}
	sub, ok := proj.Left.(*ast.Subexpr)
	if !ok {
		t.Fatalf("Left = %T, want *ast.Subexpr", proj.Left)
	}
	slice, ok := sub.Right.(*ast.Slice)
	if !ok {
		t.Fatalf("sub.Right = %T, want *ast.Slice", sub.Right)
	}
	if slice.Start == nil || *slice.Start != 1 {
		t.Errorf("Start = %v, want 1", slice.Start)
	}
	if slice.Step == nil || *slice.Step != 1 {
		t.Errorf("Step = %v, want 1", slice.Step)
	}
}

func TestParse_FunctionCall(t *testing.T) {
	node, err := Parse("length(foo)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn, ok := node.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionCall", node)
	}
	if fn.Name != "length" || len(fn.Args) != 1 {
		t.Errorf("got %+v", fn)
	}
}

func TestParse_ExpressionReference(t *testing.T) {
	node, err := Parse("sort_by(people, &age)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn, ok := node.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionCall", node)
	}
	if _, ok := fn.Args[1].(*ast.ExpressionReference); !ok {
		t.Errorf("Args[1] = %T, want *ast.ExpressionReference", fn.Args[1])
	}
}

func TestParse_MultiSelectHashDuplicateKey(t *testing.T) {
	_, err := Parse("{a: foo, a: bar}")
	if err == nil {
		t.Fatal("expected duplicate-key parse error")
	}
}

func TestParse_TrailingTokenError(t *testing.T) {
	_, err := Parse("foo bar")
	if err == nil {
		t.Fatal("expected error for trailing token")
	}
}

func TestParse_OffsetsWithinBounds(t *testing.T) {
	expr := "foo.bar[*].baz"
	node, err := Parse(expr)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var walk func(n ast.Node)
	var offenders []int
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if n.Offset() < 0 || n.Offset() >= len(expr) {
			offenders = append(offenders, n.Offset())
		}
		switch v := n.(type) {
		case *ast.Subexpr:
			walk(v.Left)
			walk(v.Right)
		case *ast.Projection:
			walk(v.Left)
			walk(v.Right)
		case *ast.Field, *ast.Identity:
		}
	}
	walk(node)
	if len(offenders) != 0 {
		t.Errorf("offsets out of [0, %d): %v", len(expr), offenders)
	}
}
