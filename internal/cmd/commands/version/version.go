package version

import (
	"github.com/hashicorp-forge/hermes-oai/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-oai/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: hermes-oai version

  Print the version of hermes-oai.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("hermes-oai " + version.FullVersion())
	return 0
}
