// Package fetch implements the "imagesource fetch" command.
package fetch

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/uvalib/imagesource/internal/cmd/base"
	"github.com/uvalib/imagesource/pkg/objectstore"
)

type Command struct {
	*base.Command

	// FlagOut is the output file path; defaults to the basename of the
	// resolved key.
	FlagOut string
}

func (c *Command) Synopsis() string {
	return "Resolve an identifier and download its source asset"
}

func (c *Command) Help() string {
	return `Usage: imagesource fetch [options] <identifier>

  Resolve an identifier and download the source asset bytes from the
  object store.

Options:

  -out <path>
      Output file path (default: basename of the resolved key).
`
}

func (c *Command) Run(args []string) int {
	f := flag.NewFlagSet("fetch", flag.ContinueOnError)
	f.StringVar(&c.FlagOut, "out", "", "output file path")
	f.Usage = func() { c.UI.Output(c.Help()) }
	if err := f.Parse(args); err != nil {
		return 1
	}

	if len(f.Args()) != 1 {
		c.UI.Error("exactly one identifier is required")
		c.UI.Output(c.Help())
		return 1
	}
	identifier := f.Args()[0]

	resolver, cfg, err := c.BuildResolver()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error building resolver: %v", err))
		return 1
	}

	addr := resolver.Resolve(identifier)
	if addr.IsNone() {
		c.UI.Error(fmt.Sprintf("no scheme matched identifier %q", identifier))
		return 1
	}

	ctx := context.Background()
	store, err := objectstore.NewClient(ctx, cfg.ObjectStore(), c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating object store client: %v", err))
		return 1
	}

	content, err := store.Fetch(ctx, addr)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error fetching %s: %v", addr, err))
		return 1
	}

	out := c.FlagOut
	if out == "" {
		out = path.Base(addr.Key)
	}
	if err := os.WriteFile(out, content, 0o644); err != nil {
		c.UI.Error(fmt.Sprintf("error writing %s: %v", out, err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("wrote %d bytes from %s to %s", len(content), addr, out))
	return 0
}
