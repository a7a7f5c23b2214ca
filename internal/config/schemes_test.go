package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvalib/imagesource/pkg/resolve"
)

func writeSchemes(t *testing.T, fs afero.Fs, content string) string {
	t.Helper()
	const path = "schemes.hcl"
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return path
}

func TestLoadSchemes(t *testing.T) {
	targets := resolve.Targets{Primary: "bucket-a", Secondary: "bucket-b"}

	t.Run("grouped and verbatim schemes expand into a working table", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "uva-lib" {
  bucket     = "primary"
  min_digits = 1
  max_digits = 8
}

scheme "archive" {
  bucket     = "secondary"
  min_digits = 6
  max_digits = 9
}

scheme "dibs" {
  bucket       = "primary"
  pattern      = "^dibs:([A-Za-z0-9]+)-(\\d{3})$"
  key_template = "dibs/{1}/{1}-{2}.jp2"
}
`)

		table, err := LoadSchemes(fs, path)
		require.NoError(t, err)

		// uva-lib/1..8 + archive/6..9 + dibs
		assert.Equal(t, 8+4+1, table.Len())

		addr, rule := table.Resolve("uva-lib:12345", targets)
		require.NotNil(t, rule)
		assert.Equal(t, resolve.Address{Bucket: "bucket-a", Key: "uva-lib/12/34/5/12345.jp2"}, addr)

		addr, rule = table.Resolve("archive:123456", targets)
		require.NotNil(t, rule)
		assert.Equal(t, "bucket-b", addr.Bucket)

		addr, rule = table.Resolve("dibs:ABC123-045", targets)
		require.NotNil(t, rule)
		assert.Equal(t, resolve.Address{Bucket: "bucket-a", Key: "dibs/ABC123/ABC123-045.jp2"}, addr)
	})

	t.Run("group width and extension are configurable", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "deep" {
  bucket      = "primary"
  min_digits  = 6
  max_digits  = 6
  group_width = 3
  extension   = "tif"
}
`)

		table, err := LoadSchemes(fs, path)
		require.NoError(t, err)

		addr, rule := table.Resolve("deep:123456", targets)
		require.NotNil(t, rule)
		assert.Equal(t, "deep/123/456/123456.tif", addr.Key)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSchemes(afero.NewMemMapFs(), "schemes.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadSchemes(afero.NewMemMapFs(), "")
		assert.Error(t, err)
	})

	t.Run("malformed HCL", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `scheme "broken" {`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse schemes file")
	})

	t.Run("no schemes defined", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, "\n")
		_, err := LoadSchemes(fs, path)
		assert.Error(t, err)
	})

	t.Run("invalid bucket selector", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "uva-lib" {
  bucket     = "tertiary"
  min_digits = 1
  max_digits = 8
}
`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid bucket")
	})

	t.Run("placeholder without a matching capture group", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "dibs" {
  bucket       = "primary"
  pattern      = "^dibs:([A-Za-z0-9]+)$"
  key_template = "dibs/{1}/{2}.jp2"
}
`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no matching capture group")
	})

	t.Run("placeholder referencing an optional capture group", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "short" {
  bucket       = "primary"
  pattern      = "^short:(\\d+)?-(\\d)$"
  key_template = "short/{1}/{2}.jp2"
}
`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not participate in every match")
	})

	t.Run("placeholder referencing a single alternation branch", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "either" {
  bucket       = "primary"
  pattern      = "^a:(\\d{3})$|^b:(\\d{3})$"
  key_template = "either/{1}.jp2"
}
`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not participate in every match")
	})

	t.Run("unreferenced optional group is allowed", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "plain" {
  bucket       = "primary"
  pattern      = "^plain:(\\d+)(?:-(\\d+))?$"
  key_template = "plain/{1}/{1}.jp2"
}
`)
		table, err := LoadSchemes(fs, path)
		require.NoError(t, err)

		addr, rule := table.Resolve("plain:12", targets)
		require.NotNil(t, rule)
		assert.Equal(t, "plain/12/12.jp2", addr.Key)

		addr, rule = table.Resolve("plain:12-3", targets)
		require.NotNil(t, rule)
		assert.Equal(t, "plain/12/12.jp2", addr.Key)
	})

	t.Run("alternated pattern cannot match a strict suffix", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "alt" {
  bucket       = "primary"
  pattern      = "^alt:(\\d{3})|alt-(\\d{3})$"
  key_template = "alt/{1}{2}.jp2"
}
`)
		// Both groups sit in single alternation branches, so the
		// template cannot reference either.
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not participate in every match")
	})

	t.Run("digit range conflicts with an explicit pattern", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "mixed" {
  bucket       = "primary"
  min_digits   = 1
  max_digits   = 3
  pattern      = "^mixed:(\\d+)$"
  key_template = "mixed/{1}.jp2"
}
`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "conflict")
	})

	t.Run("pattern without a key template", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "dibs" {
  bucket  = "primary"
  pattern = "^dibs:([A-Za-z0-9]+)$"
}
`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key_template is required")
	})

	t.Run("neither pattern nor digit range", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "empty" {
  bucket = "primary"
}
`)
		_, err := LoadSchemes(fs, path)
		assert.Error(t, err)
	})

	t.Run("all scheme errors reported together", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeSchemes(t, fs, `
scheme "one" {
  bucket = "tertiary"
  min_digits = 1
  max_digits = 2
}

scheme "two" {
  bucket = "primary"
}
`)
		_, err := LoadSchemes(fs, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheme one")
		assert.Contains(t, err.Error(), "scheme two")
	})
}
