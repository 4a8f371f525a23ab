package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/borud/broker"
	"github.com/perbu/jmespath"
	"github.com/perbu/jmespath/pkg/config"
	"github.com/perbu/jmespath/pkg/trace"
	"github.com/perbu/jmespath/pkg/value"
	"golang.org/x/term"
)

const version = "0.1.0-alpha"

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

func main() {
	ctx := context.Background()
	code := run(ctx, os.Args[1:])
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("jmespath", flag.ExitOnError)
	verbose := flags.Bool("v", false, "verbose output")
	verboseLong := flags.Bool("verbose", false, "verbose output")
	noColor := flags.Bool("no-color", false, "disable color output")
	showVersion := flags.Bool("version", false, "show version")
	showAST := flags.Bool("ast", false, "print the parsed AST instead of searching")
	compact := flags.Bool("compact", false, "emit compact JSON instead of pretty-printed")
	traceFlag := flags.Bool("trace", false, "print expression-reference invocation events to stderr")
	configPath := flags.String("config", "", "path to a YAML config file")

	if err := flags.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	if *showVersion {
		fmt.Printf("jmespath version %s\n", version)
		return 0
	}

	if flags.NArg() == 0 {
		printUsage()
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if *compact {
		cfg.Output = "compact"
	}
	if *traceFlag {
		cfg.Trace = true
	}

	isVerbose := *verbose || *verboseLong
	logLevel := slog.LevelInfo
	if isVerbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	useColor := shouldUseColor(cfg, *noColor)

	expression := flags.Arg(0)

	expr, err := jmespath.Compile(expression)
	if err != nil {
		printError(err, useColor)
		return 1
	}

	if *showAST {
		fmt.Println(expr.AST())
		return 0
	}

	if cfg.Trace {
		b := broker.New(broker.Config{})
		subscribeTrace(b, logger, useColor)
		expr = expr.WithTracer(trace.NewBrokerTracer(b, logger))
	}

	input, err := readInput(flags.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return 1
	}

	doc, err := value.FromJSONWithDepth(input, cfg.MaxRecursionDepth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding input: %v\n", err)
		return 1
	}
	logger.Debug("decoded input document")

	result, err := expr.Search(doc)
	if err != nil {
		printError(err, useColor)
		return 1
	}

	if err := printResult(result, cfg.Output == "compact"); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering result: %v\n", err)
		return 1
	}

	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func readInput(rest []string) ([]byte, error) {
	if len(rest) > 0 {
		return os.ReadFile(rest[0])
	}
	return io.ReadAll(os.Stdin)
}

func printResult(v value.Value, compact bool) error {
	data := value.ToAny(v)
	var out []byte
	var err error
	if compact {
		out, err = json.Marshal(data)
	} else {
		out, err = json.MarshalIndent(data, "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printError(err error, useColor bool) {
	if useColor {
		fmt.Fprintf(os.Stderr, "%s%v%s\n", colorRed, err, colorReset)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}

func shouldUseColor(cfg *config.Config, noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if cfg.Color != nil {
		return *cfg.Color
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// subscribeTrace prints invocation and runtime-error events as they arrive.
// The subscriber goroutine runs for the remainder of the process; the CLI
// never blocks on it since BrokerTracer's Publish carries its own timeout.
func subscribeTrace(b *broker.Broker, logger *slog.Logger, useColor bool) {
	sub, err := b.Subscribe(trace.Topic)
	if err != nil {
		logger.Warn("failed to subscribe to trace topic", "error", err)
		return
	}
	start, end := "", ""
	if useColor {
		start, end = colorYellow, colorReset
	}
	go func() {
		for msg := range sub.Messages() {
			switch evt := msg.Payload.(type) {
			case trace.InvocationEvent:
				fmt.Fprintf(os.Stderr, "%strace: invocation %d at offset %d%s\n", start, evt.N, evt.Offset, end)
			case trace.RuntimeErrorEvent:
				fmt.Fprintf(os.Stderr, "%strace: runtime error: %s%s\n", start, evt.Message, end)
			}
		}
	}()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `jmespath - query JSON documents with JMESPath expressions

Usage:
  jmespath [options] <expression> [file]

If file is omitted, the JSON document is read from stdin.

Options:
  -v, --verbose   Show debug-level logging
  --no-color      Disable color output
  --compact       Emit compact JSON instead of pretty-printed
  --ast           Print the parsed AST instead of searching
  --trace         Print expression-reference invocation events to stderr
  --config path   Load CLI configuration from a YAML file
  --version       Show version information

Examples:
  echo '{"foo":{"bar":42}}' | jmespath 'foo.bar'
  jmespath 'people[?age > `+"`30`"+`].name' people.json
`)
}
