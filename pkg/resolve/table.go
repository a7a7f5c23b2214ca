package resolve

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Table is an ordered rule table. Order encodes priority: rules are
// evaluated top to bottom and the first whole-string match wins.
//
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	rules []Rule
}

// NewTable validates and assembles a rule table.
//
// A broken table would silently degrade every subsequent request, so
// all structural problems are reported together and the caller is
// expected to treat them as fatal at startup.
func NewTable(rules ...Rule) (*Table, error) {
	var result *multierror.Error

	if len(rules) == 0 {
		result = multierror.Append(result, fmt.Errorf("rule table cannot be empty"))
	}

	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if r.build == nil {
			result = multierror.Append(result, fmt.Errorf("rule %q was not built with NewRule", r.name))
			continue
		}
		if seen[r.name] {
			result = multierror.Append(result, fmt.Errorf("duplicate rule name: %s", r.name))
		}
		seen[r.name] = true
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	table := &Table{rules: make([]Rule, len(rules))}
	copy(table.rules, rules)
	return table, nil
}

// Rules returns a copy of the table's rules in priority order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// Resolve evaluates the table against an identifier.
//
// The first rule whose anchored pattern matches the entire identifier
// determines the result: its key builder renders the storage key and
// its selector picks the bucket name from targets. Later rules are
// never evaluated once one matches. If no rule matches, Resolve returns
// (NoAddress, nil).
//
// Resolve is a pure function of (identifier, targets, table): no I/O,
// no shared state, deterministic.
func (t *Table) Resolve(identifier string, targets Targets) (Address, *Rule) {
	for i := range t.rules {
		captures, ok := t.rules[i].match(identifier)
		if !ok {
			continue
		}
		return Address{
			Bucket: targets.bucketFor(t.rules[i].bucket),
			Key:    t.rules[i].build(captures),
		}, &t.rules[i]
	}
	return NoAddress, nil
}
