// Package base carries the state shared by every CLI command.
package base

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/uvalib/imagesource/internal/config"
	"github.com/uvalib/imagesource/pkg/resolve"
)

// Command is embedded by every CLI command.
type Command struct {
	// UI is the terminal UI for command output.
	UI cli.Ui

	// Log is the process logger.
	Log hclog.Logger
}

// BuildResolver loads process configuration, assembles the rule table
// (the built-in table, or the schemes file when one is configured), and
// constructs a resolver that logs every resolution attempt.
func (c *Command) BuildResolver() (*resolve.Resolver, *config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, err
	}

	table := resolve.DefaultTable()
	if cfg.SchemesFile != "" {
		table, err = config.LoadSchemes(afero.NewOsFs(), cfg.SchemesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load schemes file: %w", err)
		}
	}

	r, err := resolve.NewResolver(table, cfg.Targets(), resolve.NewLogSink(c.Log))
	if err != nil {
		return nil, nil, err
	}
	return r, cfg, nil
}
