package sets

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-oai/internal/cmd/base"
)

type ListCommand struct {
	*base.Command

	flagConfig string
	flagOffset int
	flagLength int
	flagJSON   bool
}

func (c *ListCommand) Synopsis() string {
	return "List a window of sets"
}

func (c *ListCommand) Help() string {
	return `Usage: hermes-oai sets list [options]

  List sets, communities first and then collections, starting at -offset.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("sets list", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to config file. Uses the embedded SQLite database if unset.",
	)
	f.IntVar(
		&c.flagOffset, "offset", 0,
		"Position of the first set to list.",
	)
	f.IntVar(
		&c.flagLength, "length", 0,
		"Maximum number of sets to list. Defaults to sets.default_page_size.",
	)
	f.BoolVar(
		&c.flagJSON, "json", false,
		"Print the result as JSON.",
	)

	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagOffset < 0 {
		ui.Error("offset must not be negative")
		return 1
	}
	if c.flagLength < 0 {
		ui.Error("length must not be negative")
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading config: %v", err))
		return 1
	}

	length := c.flagLength
	if length == 0 {
		length = cfg.Sets.DefaultPageSize
	}

	ctx := context.Background()
	repo, closeDB, err := openRepository(ctx, c.Command, cfg)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}
	defer closeDB()

	result := repo.List(ctx, c.flagOffset, length)

	if c.flagJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			ui.Error(fmt.Sprintf("error encoding result: %v", err))
			return 1
		}
		ui.Output(string(out))
		return 0
	}

	for _, s := range result.Sets {
		ui.Output(fmt.Sprintf("%s\t%s", s.Spec, s.Name))
	}
	ui.Info(fmt.Sprintf("%d of %d sets, more: %t",
		len(result.Sets), result.Total, result.HasMore))

	return 0
}
