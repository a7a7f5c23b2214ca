package resolve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupWidths(t *testing.T) {
	tests := []struct {
		digits     int
		groupWidth int
		want       []int
	}{
		{1, 2, []int{1}},
		{2, 2, []int{2}},
		{3, 2, []int{2, 1}},
		{5, 2, []int{2, 2, 1}},
		{7, 2, []int{2, 2, 2, 1}},
		{8, 2, []int{2, 2, 2, 2}},
		{7, 3, []int{3, 3, 1}},
		{4, 1, []int{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d digits width %d", tt.digits, tt.groupWidth), func(t *testing.T) {
			assert.Equal(t, tt.want, groupWidths(tt.digits, tt.groupWidth))
		})
	}
}

func TestGroupedDigitScheme(t *testing.T) {
	t.Run("generates one rule per digit count, longest first", func(t *testing.T) {
		rules, err := GroupedDigitScheme("sample", BucketPrimary, 5, 7, 2, "jp2")
		require.NoError(t, err)
		require.Len(t, rules, 3)
		assert.Equal(t, "sample/7", rules[0].Name())
		assert.Equal(t, "sample/6", rules[1].Name())
		assert.Equal(t, "sample/5", rules[2].Name())
	})

	t.Run("patterns are anchored and exact-arity", func(t *testing.T) {
		rules, err := GroupedDigitScheme("sample", BucketPrimary, 5, 5, 2, "jp2")
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, `^sample:(\d{2})(\d{2})(\d{1})$`, rules[0].Pattern())
	})

	t.Run("keys follow the grouped-digit convention", func(t *testing.T) {
		rules, err := GroupedDigitScheme("sample", BucketPrimary, 1, 8, 2, "jp2")
		require.NoError(t, err)
		table, err := NewTable(rules...)
		require.NoError(t, err)

		targets := Targets{Primary: "bucket-a", Secondary: "bucket-b"}
		tests := []struct {
			identifier string
			wantKey    string
		}{
			{"sample:7", "sample/7/7.jp2"},
			{"sample:12", "sample/12/12.jp2"},
			{"sample:123", "sample/12/3/123.jp2"},
			{"sample:12345", "sample/12/34/5/12345.jp2"},
			{"sample:1234567", "sample/12/34/56/7/1234567.jp2"},
			{"sample:12345678", "sample/12/34/56/78/12345678.jp2"},
		}
		for _, tt := range tests {
			addr, rule := table.Resolve(tt.identifier, targets)
			require.NotNil(t, rule, "identifier %s should resolve", tt.identifier)
			assert.Equal(t, "bucket-a", addr.Bucket)
			assert.Equal(t, tt.wantKey, addr.Key, "identifier %s", tt.identifier)
		}
	})

	t.Run("digit counts outside the range do not resolve", func(t *testing.T) {
		rules, err := GroupedDigitScheme("sample", BucketPrimary, 5, 7, 2, "jp2")
		require.NoError(t, err)
		table, err := NewTable(rules...)
		require.NoError(t, err)

		targets := Targets{Primary: "bucket-a", Secondary: "bucket-b"}
		for _, identifier := range []string{"sample:1234", "sample:12345678"} {
			addr, rule := table.Resolve(identifier, targets)
			assert.Nil(t, rule, "identifier %s should not resolve", identifier)
			assert.True(t, addr.IsNone())
		}
	})

	t.Run("non-digit payloads do not resolve", func(t *testing.T) {
		rules, err := GroupedDigitScheme("sample", BucketPrimary, 1, 8, 2, "jp2")
		require.NoError(t, err)
		table, err := NewTable(rules...)
		require.NoError(t, err)

		targets := Targets{Primary: "bucket-a", Secondary: "bucket-b"}
		for _, identifier := range []string{"sample:12a45", "sample:", "sample:12 45"} {
			_, rule := table.Resolve(identifier, targets)
			assert.Nil(t, rule, "identifier %q should not resolve", identifier)
		}
	})

	t.Run("parameter validation", func(t *testing.T) {
		tests := []struct {
			name       string
			prefix     string
			minDigits  int
			maxDigits  int
			groupWidth int
			ext        string
		}{
			{"empty prefix", "", 1, 2, 2, "jp2"},
			{"uppercase prefix", "Sample", 1, 2, 2, "jp2"},
			{"prefix with colon", "sam:ple", 1, 2, 2, "jp2"},
			{"zero min digits", "sample", 0, 2, 2, "jp2"},
			{"max less than min", "sample", 3, 2, 2, "jp2"},
			{"zero group width", "sample", 1, 2, 0, "jp2"},
			{"empty extension", "sample", 1, 2, 2, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := GroupedDigitScheme(tt.prefix, BucketPrimary, tt.minDigits, tt.maxDigits, tt.groupWidth, tt.ext)
				assert.Error(t, err)
			})
		}
	})
}
