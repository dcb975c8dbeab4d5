package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/hermes-oai/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-oai/internal/cmd/commands/serve"
	"github.com/hashicorp-forge/hermes-oai/internal/cmd/commands/sets"
	"github.com/hashicorp-forge/hermes-oai/internal/cmd/commands/version"
)

// Commands is the mapping of all available hermes-oai commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"serve": func() (cli.Command, error) {
			return &serve.Command{Command: b}, nil
		},
		"sets": func() (cli.Command, error) {
			return &sets.Command{Command: b}, nil
		},
		"sets list": func() (cli.Command, error) {
			return &sets.ListCommand{Command: b}, nil
		},
		"sets exists": func() (cli.Command, error) {
			return &sets.ExistsCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
