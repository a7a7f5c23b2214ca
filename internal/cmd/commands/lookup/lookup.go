// Package lookup implements the "imagesource lookup" command.
package lookup

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/uvalib/imagesource/internal/cmd/base"
)

type Command struct {
	*base.Command

	// FlagJSON emits one JSON object per identifier instead of
	// whitespace-separated fields.
	FlagJSON bool
}

func (c *Command) Synopsis() string {
	return "Resolve image identifiers to object-storage addresses"
}

func (c *Command) Help() string {
	return `Usage: imagesource lookup [options] <identifier> [<identifier>...]

  Resolve each identifier against the active rule table and print the
  bucket and key it maps to. Identifiers that match no scheme print the
  "none none" sentinel and set a non-zero exit code.

Options:

  -json
      Emit one JSON object per identifier.
`
}

func (c *Command) Run(args []string) int {
	f := flag.NewFlagSet("lookup", flag.ContinueOnError)
	f.BoolVar(&c.FlagJSON, "json", false, "emit JSON output")
	f.Usage = func() { c.UI.Output(c.Help()) }
	if err := f.Parse(args); err != nil {
		return 1
	}

	identifiers := f.Args()
	if len(identifiers) == 0 {
		c.UI.Error("at least one identifier is required")
		c.UI.Output(c.Help())
		return 1
	}

	resolver, _, err := c.BuildResolver()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error building resolver: %v", err))
		return 1
	}

	failed := 0
	for _, identifier := range identifiers {
		addr := resolver.Resolve(identifier)
		if addr.IsNone() {
			failed++
		}

		if c.FlagJSON {
			out, err := json.Marshal(struct {
				Identifier string `json:"identifier"`
				Bucket     string `json:"bucket"`
				Key        string `json:"key"`
			}{identifier, addr.Bucket, addr.Key})
			if err != nil {
				c.UI.Error(fmt.Sprintf("error encoding result: %v", err))
				return 1
			}
			c.UI.Output(string(out))
			continue
		}
		c.UI.Output(fmt.Sprintf("%s\t%s\t%s", identifier, addr.Bucket, addr.Key))
	}

	if failed > 0 {
		c.UI.Error(fmt.Sprintf("%d of %d identifiers did not resolve", failed, len(identifiers)))
		return 1
	}
	return 0
}
