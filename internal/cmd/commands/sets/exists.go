package sets

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-oai/internal/cmd/base"
)

type ExistsCommand struct {
	*base.Command

	flagConfig string
}

func (c *ExistsCommand) Synopsis() string {
	return "Check whether a set spec exists"
}

func (c *ExistsCommand) Help() string {
	return `Usage: hermes-oai sets exists [options] <spec>

  Check whether a set spec refers to an existing community or collection.
  Exits 0 if the set exists and 2 if it does not.` +
		c.Flags().Help()
}

func (c *ExistsCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("sets exists", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to config file. Uses the embedded SQLite database if unset.",
	)

	return f
}

func (c *ExistsCommand) Run(args []string) int {
	ui := c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		ui.Error("exactly one set spec is required")
		return 1
	}
	spec := f.Arg(0)

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading config: %v", err))
		return 1
	}

	ctx := context.Background()
	repo, closeDB, err := openRepository(ctx, c.Command, cfg)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}
	defer closeDB()

	if !repo.Exists(ctx, spec) {
		ui.Output(fmt.Sprintf("%s: not found", spec))
		return 2
	}

	ui.Output(fmt.Sprintf("%s: exists", spec))
	return 0
}
