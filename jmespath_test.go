package jmespath

import (
	"errors"
	"testing"

	"github.com/perbu/jmespath/pkg/interpreter"
	"github.com/perbu/jmespath/pkg/parser"
	"github.com/perbu/jmespath/pkg/value"
)

func TestSearchJSON(t *testing.T) {
	got, err := SearchJSON("foo.bar", []byte(`{"foo":{"bar":42}}`))
	if err != nil {
		t.Fatal(err)
	}
	if got != value.Number(42) {
		t.Errorf("got %v, want 42", got)
	}
}

func TestCompile_ParseError(t *testing.T) {
	_, err := Compile("foo..bar")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var jerr *Error
	if !errors.As(err, &jerr) {
		t.Fatalf("got %T, want *Error", err)
	}
	var perr *parser.Error
	if !errors.As(jerr.Reason, &perr) {
		t.Fatalf("Reason = %T, want *parser.Error", jerr.Reason)
	}
}

func TestSearch_RuntimeError(t *testing.T) {
	expr := MustCompile("foo[::0]")
	_, err := expr.SearchJSON([]byte(`{"foo":[1,2,3]}`))
	if err == nil {
		t.Fatal("expected runtime error")
	}
	var jerr *Error
	if !errors.As(err, &jerr) {
		t.Fatalf("got %T, want *Error", err)
	}
	var rtErr *interpreter.RuntimeError
	if !errors.As(jerr.Reason, &rtErr) || rtErr.Kind != interpreter.InvalidSlice {
		t.Fatalf("Reason = %v, want InvalidSlice", jerr.Reason)
	}
}

func TestExpression_StringAndAST(t *testing.T) {
	expr := MustCompile("foo.bar")
	if expr.String() != "foo.bar" {
		t.Errorf("got %q", expr.String())
	}
	if expr.AST() == nil {
		t.Error("AST() = nil")
	}
}

func TestExpression_Equal(t *testing.T) {
	a := MustCompile("foo.bar")
	b := MustCompile("foo.bar")
	c := MustCompile("foo.baz")
	if !a.Equal(b) {
		t.Error("a.Equal(b) = false, want true")
	}
	if a.Equal(c) {
		t.Error("a.Equal(c) = true, want false")
	}
}

func TestCoordinatesFromOffset_MultiLine(t *testing.T) {
	c := CoordinatesFromOffset("foo\n.bar", 5)
	if c.Line != 1 || c.Column != 1 {
		t.Errorf("got %+v, want line=1 column=1", c)
	}
}
