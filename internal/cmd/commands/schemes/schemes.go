// Package schemes implements the "imagesource schemes" command.
package schemes

import (
	"fmt"

	"github.com/uvalib/imagesource/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List the active rule table"
}

func (c *Command) Help() string {
	return `Usage: imagesource schemes

  Print the active rule table in priority order: rule name, bucket
  selector, and pattern. Useful for verifying a schemes file before
  deploying it.
`
}

func (c *Command) Run(args []string) int {
	if len(args) != 0 {
		c.UI.Error("this command takes no arguments")
		c.UI.Output(c.Help())
		return 1
	}

	resolver, _, err := c.BuildResolver()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error building resolver: %v", err))
		return 1
	}

	for _, rule := range resolver.Table().Rules() {
		c.UI.Output(fmt.Sprintf("%-16s %-10s %s", rule.Name(), rule.Bucket(), rule.Pattern()))
	}
	return 0
}
