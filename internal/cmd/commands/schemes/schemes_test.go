package schemes

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"

	"github.com/uvalib/imagesource/internal/cmd/base"
)

func TestSchemes_Run(t *testing.T) {
	t.Setenv("IMAGESOURCE_PRIMARY_BUCKET", "iiif-assets")
	t.Setenv("IMAGESOURCE_SECONDARY_BUCKET", "iiif-assets-archive")

	t.Run("lists the built-in table", func(t *testing.T) {
		ui := cli.NewMockUi()
		c := &Command{Command: &base.Command{UI: ui, Log: hclog.NewNullLogger()}}

		code := c.Run(nil)
		assert.Equal(t, 0, code)

		out := ui.OutputWriter.String()
		assert.Contains(t, out, "uva-lib/5")
		assert.Contains(t, out, "dibs")
		assert.Contains(t, out, "primary")
		assert.Contains(t, out, "secondary")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		ui := cli.NewMockUi()
		c := &Command{Command: &base.Command{UI: ui, Log: hclog.NewNullLogger()}}

		code := c.Run([]string{"extra"})
		assert.Equal(t, 1, code)
	})
}
