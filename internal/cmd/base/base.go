package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/hermes-oai/internal/config"
)

// Command is embedded by every hermes-oai command.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger

	// Fs is the filesystem configuration files are read from.
	Fs afero.Fs
}

// NewCommand creates a Command that reads from the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		UI:  ui,
		Log: log,
		Fs:  afero.NewOsFs(),
	}
}

// LoadConfig loads the configuration file at path, or the zero-config
// defaults if path is empty. The logger level is set from the result.
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg = config.Default()
	} else {
		fs := c.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		if cfg, err = config.LoadFile(fs, path); err != nil {
			return nil, err
		}
	}

	if c.Log != nil {
		c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	}

	return cfg, nil
}

// FlagSet wraps a flag.FlagSet to render help text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Output is discarded so usage is only printed through
// Help.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(&bytes.Buffer{})
	return &FlagSet{FlagSet: f}
}

// Help returns the formatted flag documentation.
func (f *FlagSet) Help() string {
	var b strings.Builder
	first := true
	f.VisitAll(func(fl *flag.Flag) {
		if first {
			b.WriteString("\n\nOptions:\n")
			first = false
		}
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return b.String()
}
