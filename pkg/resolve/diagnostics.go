package resolve

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Event records one resolution attempt.
type Event struct {
	// Identifier is the original client-supplied identifier.
	Identifier string

	// Address is the resolution result; the NoAddress sentinel on
	// failure.
	Address Address

	// Matched reports whether any rule matched.
	Matched bool

	// Rule is the name of the matching rule, empty on failure.
	Rule string
}

// Sink receives resolution events. Implementations must not block and
// must not let a recording failure propagate: diagnostics can never
// affect a resolution outcome.
type Sink interface {
	Record(Event)
}

// NopSink discards all events.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(Event) {}

// LogSink writes one structured log line per resolution attempt.
// Failures log at Warn with a stable marker field so operators can
// grep and alert on identifiers the system doesn't know how to route.
type LogSink struct {
	logger hclog.Logger
}

// NewLogSink creates a log-backed sink.
func NewLogSink(logger hclog.Logger) *LogSink {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LogSink{logger: logger.Named("resolve")}
}

// Record implements Sink.
func (s *LogSink) Record(e Event) {
	if e.Matched {
		s.logger.Info("resolved image identifier",
			"identifier", e.Identifier,
			"rule", e.Rule,
			"bucket", e.Address.Bucket,
			"key", e.Address.Key)
		return
	}
	s.logger.Warn("no scheme matched identifier",
		"identifier", e.Identifier,
		"resolution", "failed")
}

// CaptureSink records events in memory. It exists so tests can assert
// on emitted events without parsing log text.
type CaptureSink struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Sink.
func (s *CaptureSink) Record(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of all recorded events in order.
func (s *CaptureSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Reset discards all recorded events.
func (s *CaptureSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
