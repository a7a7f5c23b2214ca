package resolve

// jp2Ext is the extension of every source asset in the image store.
const jp2Ext = "jp2"

// groupedScheme declares one numeric identifier scheme: the digit-count
// range expands into one exact-arity rule per count via
// GroupedDigitScheme.
type groupedScheme struct {
	prefix    string
	bucket    Selector
	minDigits int
	maxDigits int
}

// defaultGroupedSchemes lists the numeric schemes in priority order.
// Prefixes are disjoint, so inter-scheme order only affects evaluation
// cost; within a scheme the generator orders longest digit count first.
var defaultGroupedSchemes = []groupedScheme{
	{prefix: "uva-lib", bucket: BucketPrimary, minDigits: 1, maxDigits: 8},
	{prefix: "tsm", bucket: BucketPrimary, minDigits: 4, maxDigits: 8},
	{prefix: "tracksys", bucket: BucketPrimary, minDigits: 5, maxDigits: 7},
	{prefix: "static", bucket: BucketPrimary, minDigits: 1, maxDigits: 6},
	{prefix: "archive", bucket: BucketSecondary, minDigits: 6, maxDigits: 9},
	{prefix: "dpla", bucket: BucketSecondary, minDigits: 5, maxDigits: 8},
}

// defaultVerbatimRules builds the token-shaped schemes: identifiers
// keyed by catalog codes or accession numbers rather than bare digit
// strings. Their captures are used verbatim in the key, without digit
// grouping.
func defaultVerbatimRules() ([]Rule, error) {
	var rules []Rule

	// DIBS course-reserve scans: a catalog code, a dash, and a
	// three-digit sequence number. The code doubles as the folder.
	dibs, err := NewRule(
		"dibs",
		`^dibs:([A-Za-z0-9]+)-(\d{3})$`,
		BucketPrimary,
		func(c []string) string {
			return "dibs/" + c[0] + "/" + c[0] + "-" + c[1] + "." + jp2Ext
		},
	)
	if err != nil {
		return nil, err
	}
	rules = append(rules, dibs)

	// Manuscript accession numbers: free-form identifier-safe tokens,
	// possibly with dotted or dashed suffixes.
	mss, err := NewRule(
		"mss",
		`^mss:([A-Za-z0-9][A-Za-z0-9._-]*)$`,
		BucketPrimary,
		func(c []string) string {
			return "mss/" + c[0] + "/" + c[0] + "." + jp2Ext
		},
	)
	if err != nil {
		return nil, err
	}
	rules = append(rules, mss)

	// Circulation barcodes, including the X check digit.
	barcode, err := NewRule(
		"barcode",
		`^barcode:([0-9]{8,13}[0-9Xx])$`,
		BucketSecondary,
		func(c []string) string {
			return "barcode/" + c[0] + "/" + c[0] + "." + jp2Ext
		},
	)
	if err != nil {
		return nil, err
	}
	rules = append(rules, barcode)

	return rules, nil
}

// DefaultTable builds the production rule table: every grouped-digit
// scheme variant plus the verbatim schemes, in priority order.
//
// The table is assembled from static definitions; a failure here is a
// programming error in the scheme set, so DefaultTable panics rather
// than returning an error, in the manner of regexp.MustCompile.
func DefaultTable() *Table {
	var rules []Rule

	for _, s := range defaultGroupedSchemes {
		generated, err := GroupedDigitScheme(s.prefix, s.bucket, s.minDigits, s.maxDigits, DefaultGroupWidth, jp2Ext)
		if err != nil {
			panic("resolve: invalid built-in scheme " + s.prefix + ": " + err.Error())
		}
		rules = append(rules, generated...)
	}

	verbatim, err := defaultVerbatimRules()
	if err != nil {
		panic("resolve: invalid built-in verbatim rule: " + err.Error())
	}
	rules = append(rules, verbatim...)

	table, err := NewTable(rules...)
	if err != nil {
		panic("resolve: invalid built-in rule table: " + err.Error())
	}
	return table
}
