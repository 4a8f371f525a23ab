// Package jmespath compiles and evaluates JMESPath expressions against
// tagged runtime values. Compile once, Search (or SearchJSON) many times:
// an *Expression is immutable and safe for concurrent use.
package jmespath

import (
	"fmt"

	"github.com/perbu/jmespath/pkg/ast"
	"github.com/perbu/jmespath/pkg/functions"
	"github.com/perbu/jmespath/pkg/interpreter"
	"github.com/perbu/jmespath/pkg/parser"
	"github.com/perbu/jmespath/pkg/trace"
	"github.com/perbu/jmespath/pkg/value"
)

// defaultRegistry is shared across every Expression created without an
// explicit custom Registry; functions.Registry is read-only after New, so
// sharing one instance across concurrent searches needs no locking.
var defaultRegistry = functions.New()

// Search parses expression and evaluates it against data in one step.
func Search(expression string, data value.Value) (value.Value, error) {
	expr, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return expr.Search(data)
}

// SearchJSON parses expression and evaluates it against a raw JSON
// document, preserving the document's object key order.
func SearchJSON(expression string, data []byte) (value.Value, error) {
	expr, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return expr.SearchJSON(data)
}

// Expression is a parsed, ready-to-evaluate JMESPath query.
type Expression struct {
	original string
	node     ast.Node
	registry interpreter.Registry
	tracer   trace.Tracer
}

// Compile parses expression, returning a *jmespath.Error wrapping the
// underlying *parser.Error on failure.
func Compile(expression string) (*Expression, error) {
	return CompileWithRegistry(expression, defaultRegistry)
}

// CompileWithRegistry parses expression for evaluation against a custom
// function Registry, e.g. one extended with additional built-ins.
func CompileWithRegistry(expression string, registry interpreter.Registry) (*Expression, error) {
	node, err := parser.Parse(expression)
	if err != nil {
		return nil, wrapError(expression, err)
	}
	return &Expression{original: expression, node: node, registry: registry, tracer: trace.NoOp{}}, nil
}

// MustCompile is like Compile but panics on error; intended for
// package-level expression variables built from literal constants.
func MustCompile(expression string) *Expression {
	expr, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return expr
}

// WithTracer returns a copy of e that publishes invocation and runtime
// error events to tracer while evaluating.
func (e *Expression) WithTracer(tracer trace.Tracer) *Expression {
	clone := *e
	clone.tracer = tracer
	return &clone
}

// Search evaluates e against data.
func (e *Expression) Search(data value.Value) (value.Value, error) {
	ctx := interpreter.NewContext(e.original, e.registry, e.tracer)
	result, err := ctx.Eval(e.node, data)
	if err != nil {
		e.tracer.RuntimeError(err)
		return nil, wrapError(e.original, err)
	}
	return result, nil
}

// SearchJSON decodes data as JSON, preserving object key order, then
// evaluates e against the decoded document.
func (e *Expression) SearchJSON(data []byte) (value.Value, error) {
	doc, err := value.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON document: %w", err)
	}
	return e.Search(doc)
}

// String returns the expression text e was compiled from.
func (e *Expression) String() string { return e.original }

// AST returns the root of e's parsed syntax tree.
func (e *Expression) AST() ast.Node { return e.node }

// Equal reports whether e and other were compiled from the same source
// text, mirroring the reference implementation's string-identity equality
// rather than a structural AST comparison.
func (e *Expression) Equal(other *Expression) bool {
	if other == nil {
		return false
	}
	return e.original == other.original
}

func wrapError(expression string, err error) *Error {
	var offset int
	switch e := err.(type) {
	case *parser.Error:
		offset = e.Offset
	case *interpreter.RuntimeError:
		offset = e.Offset
	}
	return &Error{
		Expression:  expression,
		Coordinates: CoordinatesFromOffset(expression, offset),
		Reason:      err,
	}
}
