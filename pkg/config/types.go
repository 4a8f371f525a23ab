package config

// Config holds jmespath CLI configuration. It has no bearing on the core
// engine, which is configured only by its Go API (Compile, WithTracer): a
// Config is loaded once per CLI invocation and consulted only by cmd/jmespath.
type Config struct {
	// Output selects the result rendering: "compact" (single-line JSON) or
	// "pretty" (indented JSON).
	Output string `yaml:"output,omitempty"`
	// Trace enables publishing expression-reference invocation events
	// while a search runs.
	Trace bool `yaml:"trace,omitempty"`
	// MaxRecursionDepth bounds array/object nesting depth accepted when
	// decoding the input document, guarding against a pathological
	// document exhausting the decoder's call stack.
	MaxRecursionDepth int `yaml:"max_recursion_depth,omitempty"`
	// Color forces ANSI color on or off for error and trace output,
	// overriding the terminal auto-detection. The AST dump is never colored.
	Color *bool `yaml:"color,omitempty"`
}

const defaultMaxRecursionDepth = 256

var validOutputs = map[string]bool{"compact": true, "pretty": true}
