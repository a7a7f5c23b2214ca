package resolve

import (
	"fmt"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Targets names the two buckets a resolver may select between. The
// same logical scheme set points at different buckets per deployment,
// so bucket names are always supplied explicitly, never hardcoded.
type Targets struct {
	Primary   string
	Secondary string
}

// Validate checks that both bucket names are present. A missing bucket
// name is a deployment configuration error and should be fatal at
// startup, not discovered per request.
func (t Targets) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Primary, validation.Required),
		validation.Field(&t.Secondary, validation.Required),
	)
}

// bucketFor maps a rule's selector onto the configured bucket name.
func (t Targets) bucketFor(s Selector) string {
	if s == BucketSecondary {
		return t.Secondary
	}
	return t.Primary
}

// Resolver is the public entry point: it evaluates the current rule
// table against identifiers and reports every attempt to a diagnostics
// sink.
//
// The table is held behind an atomic pointer so a hot reload swaps the
// whole table at once; a resolution in progress always sees one
// consistent table version. All methods are safe for concurrent use.
type Resolver struct {
	table   atomic.Pointer[Table]
	targets Targets
	sink    Sink
}

// NewResolver builds a resolver over an immutable rule table.
// The sink may be nil, in which case diagnostics are discarded.
func NewResolver(table *Table, targets Targets, sink Sink) (*Resolver, error) {
	if table == nil {
		return nil, fmt.Errorf("rule table is required")
	}
	if err := targets.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage targets: %w", err)
	}
	if sink == nil {
		sink = NopSink{}
	}

	r := &Resolver{targets: targets, sink: sink}
	r.table.Store(table)
	return r, nil
}

// Resolve maps an identifier to a storage address.
//
// A no-match outcome is normal, not exceptional: it is returned as the
// NoAddress sentinel and recorded as a failure event. Resolve never
// returns an error and never blocks beyond the cost of evaluating the
// table.
func (r *Resolver) Resolve(identifier string) Address {
	addr, rule := r.table.Load().Resolve(identifier, r.targets)

	event := Event{Identifier: identifier, Address: addr}
	if rule != nil {
		event.Matched = true
		event.Rule = rule.Name()
	}
	r.sink.Record(event)

	return addr
}

// Targets returns the configured bucket names.
func (r *Resolver) Targets() Targets {
	return r.targets
}

// Table returns the current rule table snapshot.
func (r *Resolver) Table() *Table {
	return r.table.Load()
}

// Swap atomically replaces the rule table. In-flight resolutions keep
// the snapshot they loaded; new resolutions see the new table.
func (r *Resolver) Swap(table *Table) error {
	if table == nil {
		return fmt.Errorf("rule table is required")
	}
	r.table.Store(table)
	return nil
}
