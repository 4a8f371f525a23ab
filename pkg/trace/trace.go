// Package trace provides optional instrumentation hooks for expression
// evaluation. A Tracer must never affect evaluation results: the engine
// makes no guarantee that a slow or stuck subscriber will ever see an
// event, and publishing an event holds up the evaluating goroutine for at
// most a short, bounded time (publishTimeout for BrokerTracer).
package trace

import (
	"log/slog"
	"time"

	"github.com/borud/broker"
)

// Tracer receives fire-and-forget evaluation events. Implementations must
// not block the caller for more than a short, bounded time.
type Tracer interface {
	// Invocation is called each time a higher-order expression-reference
	// argument (map, sort_by, max_by, min_by) is invoked. n is the
	// evaluation's running invocation counter; offset is the expression
	// reference's source offset.
	Invocation(n int, offset int)

	// RuntimeError is called when evaluation fails with a runtime error,
	// after the error has already been constructed, purely for
	// observability — it cannot suppress or alter the error.
	RuntimeError(err error)
}

// NoOp is the zero-cost default Tracer; every method is a no-op.
type NoOp struct{}

func (NoOp) Invocation(int, int) {}
func (NoOp) RuntimeError(error)  {}

// InvocationEvent is published on topic Topic by BrokerTracer for each
// higher-order expression-reference invocation.
type InvocationEvent struct {
	N      int
	Offset int
}

// RuntimeErrorEvent is published on topic Topic by BrokerTracer for each
// runtime error encountered during evaluation.
type RuntimeErrorEvent struct {
	Message string
}

// Topic is the broker topic BrokerTracer publishes evaluation events to.
const Topic = "/jmespath/eval"

// publishTimeout bounds how long BrokerTracer blocks the evaluating
// goroutine on a slow subscriber before giving up on that one event.
const publishTimeout = 10 * time.Millisecond

// BrokerTracer fans evaluation events out to any number of subscribers via
// github.com/borud/broker's topic-based pub/sub, holding up evaluation for
// at most publishTimeout per event on a slow subscriber's behalf.
type BrokerTracer struct {
	broker *broker.Broker
	logger *slog.Logger
}

// NewBrokerTracer wraps b, logging publish failures (e.g. a full
// subscriber channel) at debug level via logger rather than surfacing them,
// since a dropped trace event must never affect evaluation.
func NewBrokerTracer(b *broker.Broker, logger *slog.Logger) *BrokerTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrokerTracer{broker: b, logger: logger}
}

func (t *BrokerTracer) Invocation(n int, offset int) {
	if err := t.broker.Publish(Topic, InvocationEvent{N: n, Offset: offset}, publishTimeout); err != nil {
		t.logger.Debug("trace: dropped invocation event", "error", err)
	}
}

func (t *BrokerTracer) RuntimeError(err error) {
	if pubErr := t.broker.Publish(Topic, RuntimeErrorEvent{Message: err.Error()}, publishTimeout); pubErr != nil {
		t.logger.Debug("trace: dropped runtime error event", "error", pubErr)
	}
}
