package cmd

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/uvalib/imagesource/internal/cmd/base"
	"github.com/uvalib/imagesource/internal/cmd/commands/fetch"
	"github.com/uvalib/imagesource/internal/cmd/commands/lookup"
	"github.com/uvalib/imagesource/internal/cmd/commands/schemes"
	versioncmd "github.com/uvalib/imagesource/internal/cmd/commands/version"
	"github.com/uvalib/imagesource/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := filepath.Base(args[0])

	log := hclog.New(&hclog.LoggerOptions{
		Name:  cliName,
		Level: hclog.LevelFromString(os.Getenv("IMAGESOURCE_LOG_LEVEL")),
	})

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	baseCmd := &base.Command{UI: ui, Log: log}

	c := &cli.CLI{
		Name:    cliName,
		Args:    args[1:],
		Version: version.Version,
		Commands: map[string]cli.CommandFactory{
			"lookup": func() (cli.Command, error) {
				return &lookup.Command{Command: baseCmd}, nil
			},
			"fetch": func() (cli.Command, error) {
				return &fetch.Command{Command: baseCmd}, nil
			},
			"schemes": func() (cli.Command, error) {
				return &schemes.Command{Command: baseCmd}, nil
			},
			"version": func() (cli.Command, error) {
				return &versioncmd.Command{Command: baseCmd}, nil
			},
		},
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}
