package sets

import (
	"context"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/hermes-oai/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-oai/internal/config"
	"github.com/hashicorp-forge/hermes-oai/internal/db"
	"github.com/hashicorp-forge/hermes-oai/pkg/setrepo"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List sets and check set specs"
}

func (c *Command) Help() string {
	return `Usage: hermes-oai sets <subcommand> [options] [args]

  This command groups subcommands for inspecting the sets exposed by the
  repository.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// openRepository connects to the configured database and builds the set
// repository over it. The returned func closes the database.
func openRepository(
	ctx context.Context, c *base.Command, cfg *config.Config,
) (*setrepo.Repository, func(), error) {
	database, err := db.NewDB(ctx, cfg.Database, c.Log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	}

	repo, err := setrepo.NewGormRepository(database, c.Log)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return repo, closeDB, nil
}
