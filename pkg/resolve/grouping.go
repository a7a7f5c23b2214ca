package resolve

import (
	"fmt"
	"regexp"
	"strings"
)

// schemePrefixRe constrains scheme prefixes to identifier-safe names.
var schemePrefixRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// DefaultGroupWidth is the digit-run width of the grouped-key
// convention: digits are split into pairs, with a possible shorter
// final group.
const DefaultGroupWidth = 2

// GroupedDigitScheme generates the full rule set for a numeric scheme.
//
// A numeric scheme accepts "<prefix>:<digits>" where the digit count
// ranges over [minDigits, maxDigits]. The storage key groups the digits
// into groupWidth-wide runs, each run becoming a path segment, with the
// full digit string as the filename:
//
//	uva-lib:12345  ->  uva-lib/12/34/5/12345.jp2
//
// One rule is generated per digit count, longest first, each with
// exactly as many capturing groups as its digit count produces. A rule
// therefore never has an absent capture: the historical behavior of
// interpolating a missing group as an empty path segment cannot occur.
func GroupedDigitScheme(prefix string, bucket Selector, minDigits, maxDigits, groupWidth int, ext string) ([]Rule, error) {
	if !schemePrefixRe.MatchString(prefix) {
		return nil, fmt.Errorf("scheme prefix %q must match %s", prefix, schemePrefixRe)
	}
	if minDigits < 1 {
		return nil, fmt.Errorf("scheme %s: min digits must be at least 1 (got %d)", prefix, minDigits)
	}
	if maxDigits < minDigits {
		return nil, fmt.Errorf("scheme %s: max digits %d is less than min digits %d", prefix, maxDigits, minDigits)
	}
	if groupWidth < 1 {
		return nil, fmt.Errorf("scheme %s: group width must be at least 1 (got %d)", prefix, groupWidth)
	}
	if ext == "" {
		return nil, fmt.Errorf("scheme %s: extension cannot be empty", prefix)
	}

	// Longest digit count first, so a looser shorter variant can never
	// absorb an identifier meant for a longer one.
	rules := make([]Rule, 0, maxDigits-minDigits+1)
	for digits := maxDigits; digits >= minDigits; digits-- {
		rule, err := groupedDigitRule(prefix, bucket, digits, groupWidth, ext)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// groupedDigitRule builds the exact-arity rule for one digit count.
func groupedDigitRule(prefix string, bucket Selector, digits, groupWidth int, ext string) (Rule, error) {
	var pattern strings.Builder
	pattern.WriteString("^")
	pattern.WriteString(regexp.QuoteMeta(prefix))
	pattern.WriteString(":")
	for _, width := range groupWidths(digits, groupWidth) {
		fmt.Fprintf(&pattern, `(\d{%d})`, width)
	}
	pattern.WriteString("$")

	build := func(captures []string) string {
		return prefix + "/" + strings.Join(captures, "/") + "/" + strings.Join(captures, "") + "." + ext
	}

	name := fmt.Sprintf("%s/%d", prefix, digits)
	return NewRule(name, pattern.String(), bucket, build)
}

// groupWidths splits a digit count into groupWidth-wide runs; the final
// run carries the remainder.
func groupWidths(digits, groupWidth int) []int {
	var widths []int
	for digits > 0 {
		w := groupWidth
		if digits < w {
			w = digits
		}
		widths = append(widths, w)
		digits -= w
	}
	return widths
}
