// Package version implements the "imagesource version" command.
package version

import (
	"github.com/uvalib/imagesource/internal/cmd/base"
	ver "github.com/uvalib/imagesource/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: imagesource version

  Print the imagesource version.
`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(ver.Version)
	return 0
}
