// Package interpreter tree-walks an ast.Node against a value.Value to
// produce a result value, dispatching function calls through a registry.
package interpreter

import (
	"github.com/perbu/jmespath/pkg/trace"
	"github.com/perbu/jmespath/pkg/value"
)

// Registry looks up and invokes built-in functions by name. It is
// implemented by pkg/functions.Registry; this interface lives here (rather
// than being imported from pkg/functions) so pkg/functions can depend on
// *Context to invoke expression-reference arguments without the two
// packages importing each other.
type Registry interface {
	Call(ctx *Context, name string, args []value.Value, offset int) (value.Value, error)
}

// Context carries everything one evaluation needs beyond the current
// value: the original expression text (for error diagnostics), the
// function registry, an invocation counter bumped on every higher-order
// callback, and an optional tracer. A Context is created once per
// top-level evaluation and is never shared across concurrent evaluations.
type Context struct {
	Expression string
	Registry   Registry
	Tracer     trace.Tracer

	invocations int
}

// NewContext builds a Context for evaluating expr against registry. A nil
// tracer is replaced with trace.NoOp.
func NewContext(expr string, registry Registry, tracer trace.Tracer) *Context {
	if tracer == nil {
		tracer = trace.NoOp{}
	}
	return &Context{Expression: expr, Registry: registry, Tracer: tracer}
}

// Invocations returns the number of higher-order expression-reference
// invocations performed so far in this evaluation.
func (c *Context) Invocations() int { return c.invocations }

// bumpInvocation increments the counter and returns the new value, used to
// tag InvalidReturnType diagnostics with which call failed.
func (c *Context) bumpInvocation() int {
	c.invocations++
	return c.invocations
}

// InvokeExpression evaluates an expression-reference's AST against current,
// bumping the invocation counter first. Built-in functions that accept
// expression-reference arguments (map, sort_by, max_by, min_by) call this
// once per element rather than calling Eval directly, so the counter and
// any tracer hook stay centralized here regardless of which builtin is
// driving the callback.
func (c *Context) InvokeExpression(expr *value.Expression, current value.Value) (value.Value, error) {
	n := c.bumpInvocation()
	c.Tracer.Invocation(n, expr.Node.Offset())
	return c.Eval(expr.Node, current)
}
