package config

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/uvalib/imagesource/pkg/resolve"
)

// SchemesConfig is the root of an HCL scheme definition file.
//
// Example:
//
//	# Numeric scheme: one rule is generated per digit count.
//	scheme "uva-lib" {
//	  bucket     = "primary"
//	  min_digits = 1
//	  max_digits = 8
//	}
//
//	# Verbatim scheme: captures are spliced into the key template.
//	scheme "dibs" {
//	  bucket       = "primary"
//	  pattern      = "^dibs:([A-Za-z0-9]+)-(\\d{3})$"
//	  key_template = "dibs/{1}/{1}-{2}.jp2"
//	}
type SchemesConfig struct {
	Schemes []SchemeBlock `hcl:"scheme,block"`
}

// SchemeBlock defines one scheme. A block with a pattern is a verbatim
// scheme; otherwise it is a grouped-digit scheme and must carry a digit
// range.
type SchemeBlock struct {
	Name string `hcl:"name,label"`

	Bucket string `hcl:"bucket"`

	// Grouped-digit schemes.
	MinDigits  int    `hcl:"min_digits,optional"`
	MaxDigits  int    `hcl:"max_digits,optional"`
	GroupWidth int    `hcl:"group_width,optional"`
	Extension  string `hcl:"extension,optional"`

	// Verbatim schemes.
	Pattern     string `hcl:"pattern,optional"`
	KeyTemplate string `hcl:"key_template,optional"`
}

// placeholderRe matches {n} capture placeholders in a key template.
var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

// LoadSchemes reads an HCL scheme definition file and expands it into a
// rule table. Any malformed scheme is a configuration error; the caller
// should treat it as fatal at startup.
func LoadSchemes(fs afero.Fs, filename string) (*resolve.Table, error) {
	if filename == "" {
		return nil, fmt.Errorf("schemes file path is required")
	}
	exists, err := afero.Exists(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("stat schemes file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("schemes file not found: %s", filename)
	}

	src, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("read schemes file: %w", err)
	}

	var cfg SchemesConfig
	if err := hclsimple.Decode(filename, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("parse schemes file: %w", err)
	}

	return buildTable(&cfg)
}

// buildTable expands scheme blocks into rules and assembles the table.
func buildTable(cfg *SchemesConfig) (*resolve.Table, error) {
	var result *multierror.Error
	var rules []resolve.Rule

	if len(cfg.Schemes) == 0 {
		return nil, fmt.Errorf("at least one scheme must be defined")
	}

	for _, block := range cfg.Schemes {
		expanded, err := block.expand()
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		rules = append(rules, expanded...)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	table, err := resolve.NewTable(rules...)
	if err != nil {
		return nil, fmt.Errorf("assemble rule table: %w", err)
	}
	return table, nil
}

// expand converts one scheme block into its rules.
func (b SchemeBlock) expand() ([]resolve.Rule, error) {
	bucket := resolve.Selector(b.Bucket)
	if !bucket.IsValid() {
		return nil, fmt.Errorf("scheme %s: invalid bucket %q (valid: %v)",
			b.Name, b.Bucket, resolve.ValidSelectors())
	}

	if b.Pattern != "" {
		return b.expandVerbatim(bucket)
	}
	return b.expandGrouped(bucket)
}

func (b SchemeBlock) expandGrouped(bucket resolve.Selector) ([]resolve.Rule, error) {
	if b.KeyTemplate != "" {
		return nil, fmt.Errorf("scheme %s: key_template requires a pattern", b.Name)
	}
	if b.MinDigits == 0 && b.MaxDigits == 0 {
		return nil, fmt.Errorf("scheme %s: either a pattern or a digit range is required", b.Name)
	}

	width := b.GroupWidth
	if width == 0 {
		width = resolve.DefaultGroupWidth
	}
	ext := b.Extension
	if ext == "" {
		ext = "jp2"
	}

	rules, err := resolve.GroupedDigitScheme(b.Name, bucket, b.MinDigits, b.MaxDigits, width, ext)
	if err != nil {
		return nil, fmt.Errorf("scheme %s: %w", b.Name, err)
	}
	return rules, nil
}

func (b SchemeBlock) expandVerbatim(bucket resolve.Selector) ([]resolve.Rule, error) {
	if b.MinDigits != 0 || b.MaxDigits != 0 || b.GroupWidth != 0 {
		return nil, fmt.Errorf("scheme %s: digit range settings conflict with an explicit pattern", b.Name)
	}
	if b.KeyTemplate == "" {
		return nil, fmt.Errorf("scheme %s: key_template is required with a pattern", b.Name)
	}

	re, err := regexp.Compile(b.Pattern)
	if err != nil {
		return nil, fmt.Errorf("scheme %s: invalid pattern: %w", b.Name, err)
	}

	parsed, err := syntax.Parse(b.Pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("scheme %s: invalid pattern: %w", b.Name, err)
	}
	required := requiredGroups(parsed)

	// Every placeholder must name a capture group that participates in
	// every match. A missing group would render literal placeholder
	// text; an optional one would render an empty path segment.
	for _, m := range placeholderRe.FindAllStringSubmatch(b.KeyTemplate, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > re.NumSubexp() {
			return nil, fmt.Errorf("scheme %s: key_template placeholder %s has no matching capture group (pattern has %d)",
				b.Name, m[0], re.NumSubexp())
		}
		if !required[n] {
			return nil, fmt.Errorf("scheme %s: key_template placeholder %s references capture group %d, which does not participate in every match of the pattern",
				b.Name, m[0], n)
		}
	}

	rule, err := resolve.NewRule(b.Name, b.Pattern, bucket, templateBuilder(b.KeyTemplate))
	if err != nil {
		return nil, err
	}
	return []resolve.Rule{rule}, nil
}

// requiredGroups computes the set of capture group indices that
// participate in every match of the pattern. A group under ?, *, a
// zero-minimum repeat, or present in only some alternation branches may
// be absent from a match and is excluded.
func requiredGroups(re *syntax.Regexp) map[int]bool {
	out := make(map[int]bool)
	switch re.Op {
	case syntax.OpCapture:
		out[re.Cap] = true
		mergeGroups(out, requiredGroups(re.Sub[0]))
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			mergeGroups(out, requiredGroups(sub))
		}
	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			break
		}
		common := requiredGroups(re.Sub[0])
		for _, sub := range re.Sub[1:] {
			next := requiredGroups(sub)
			for n := range common {
				if !next[n] {
					delete(common, n)
				}
			}
		}
		mergeGroups(out, common)
	case syntax.OpPlus:
		mergeGroups(out, requiredGroups(re.Sub[0]))
	case syntax.OpRepeat:
		if re.Min >= 1 {
			mergeGroups(out, requiredGroups(re.Sub[0]))
		}
	}
	return out
}

func mergeGroups(dst, src map[int]bool) {
	for n := range src {
		dst[n] = true
	}
}

// templateBuilder splices captures into {n} placeholders.
func templateBuilder(template string) resolve.KeyBuilder {
	return func(captures []string) string {
		key := template
		for i, c := range captures {
			key = strings.ReplaceAll(key, "{"+strconv.Itoa(i+1)+"}", c)
		}
		return key
	}
}
