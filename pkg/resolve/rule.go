package resolve

import (
	"fmt"
	"regexp"
	"strings"
)

// Selector names which configured storage target a rule resolves into.
type Selector string

const (
	// BucketPrimary selects the primary asset bucket.
	BucketPrimary Selector = "primary"

	// BucketSecondary selects the secondary asset bucket.
	BucketSecondary Selector = "secondary"
)

// ValidSelectors returns all valid bucket selectors.
func ValidSelectors() []Selector {
	return []Selector{BucketPrimary, BucketSecondary}
}

// IsValid returns true if this is a recognized bucket selector.
func (s Selector) IsValid() bool {
	switch s {
	case BucketPrimary, BucketSecondary:
		return true
	default:
		return false
	}
}

// String returns the string representation of the selector.
func (s Selector) String() string {
	return string(s)
}

// KeyBuilder constructs a storage key from the ordered captures of a
// matched pattern. Captures are passed without the leading whole-match
// element.
type KeyBuilder func(captures []string) string

// Rule is an immutable scheme descriptor: an anchored pattern with
// capturing groups, a bucket selector, and a key builder.
//
// A Rule matches only against the entire identifier; partial matches
// never produce a resolution.
type Rule struct {
	name    string
	source  string
	pattern *regexp.Regexp
	bucket  Selector
	build   KeyBuilder
}

// NewRule compiles a scheme rule.
//
// The pattern must be explicitly anchored with ^ and $: an unanchored
// pattern would let a strict prefix or suffix of a valid identifier
// resolve, which is a configuration error, not a runtime condition.
func NewRule(name, pattern string, bucket Selector, build KeyBuilder) (Rule, error) {
	if name == "" {
		return Rule{}, fmt.Errorf("rule name cannot be empty")
	}
	if !strings.HasPrefix(pattern, "^") || !strings.HasSuffix(pattern, "$") {
		return Rule{}, fmt.Errorf("rule %s: pattern must be anchored with ^ and $ (got %q)", name, pattern)
	}
	if !bucket.IsValid() {
		return Rule{}, fmt.Errorf("rule %s: invalid bucket selector: %s (valid: %v)",
			name, bucket, ValidSelectors())
	}
	if build == nil {
		return Rule{}, fmt.Errorf("rule %s: key builder cannot be nil", name)
	}
	// The written ^ and $ do not bind every branch of a top-level
	// alternation, so the compiled form wraps the whole pattern: a match
	// always spans the entire identifier.
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: invalid pattern: %w", name, err)
	}
	return Rule{name: name, source: pattern, pattern: re, bucket: bucket, build: build}, nil
}

// Name returns the rule's diagnostic label.
func (r Rule) Name() string {
	return r.name
}

// Pattern returns the rule's pattern as written.
func (r Rule) Pattern() string {
	return r.source
}

// Bucket returns the rule's bucket selector.
func (r Rule) Bucket() Selector {
	return r.bucket
}

// match attempts the anchored match and, on success, returns the
// ordered captures (without the whole-match element).
func (r Rule) match(identifier string) ([]string, bool) {
	m := r.pattern.FindStringSubmatch(identifier)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}
