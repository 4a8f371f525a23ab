package functions

import (
	"github.com/perbu/jmespath/pkg/interpreter"
	"github.com/perbu/jmespath/pkg/value"
)

// Registry is a read-only, built-once table of built-in functions. It
// implements interpreter.Registry. There is no lazy loading and nothing
// mutates after New returns, so unlike a cache that fills in on first use,
// no lock is needed to share one Registry across concurrent evaluations.
type Registry struct {
	fns map[string]Signature
}

// New builds a Registry containing every required built-in.
func New() *Registry {
	r := &Registry{fns: make(map[string]Signature, len(builtins))}
	for _, sig := range builtins {
		r.fns[sig.Name] = sig
	}
	return r
}

// Call implements interpreter.Registry.
func (r *Registry) Call(ctx *interpreter.Context, name string, args []value.Value, offset int) (value.Value, error) {
	sig, ok := r.fns[name]
	if !ok {
		return nil, &interpreter.RuntimeError{Kind: interpreter.UnknownFunction, Name: name, Offset: offset}
	}
	if err := sig.checkArity(len(args)); err != nil {
		rtErr := err.(*interpreter.RuntimeError)
		rtErr.Offset = offset
		return nil, rtErr
	}
	if err := sig.checkTypes(args); err != nil {
		rtErr := err.(*interpreter.RuntimeError)
		rtErr.Offset = offset
		return nil, rtErr
	}
	return sig.Fn(ctx, args, offset)
}
