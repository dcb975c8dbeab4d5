package cmd

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/hermes-oai/internal/version"
)

const (
	// envLogLevel sets the log level until a config file overrides it.
	envLogLevel = "HERMES_OAI_LOG_LEVEL"

	// envLogFormat selects "json" log output; anything else is text.
	envLogFormat = "HERMES_OAI_LOG_FORMAT"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	name := filepath.Base(args[0])
	log := newLogger(name, os.Getenv)

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	initCommands(log, ui)

	c := &cli.CLI{
		Name:       name,
		Args:       normalizeArgs(args[1:]),
		Version:    version.FullVersion(),
		Commands:   Commands,
		HelpWriter: os.Stderr,
	}

	exitCode, err := c.Run()
	if err != nil {
		log.Error("error running command", "error", err)
		return 1
	}

	return exitCode
}

// normalizeArgs maps the version flags to the version command and defaults
// to serve when no subcommand is given.
func normalizeArgs(args []string) []string {
	switch {
	case len(args) == 0:
		return []string{"serve"}
	case len(args) == 1 && (args[0] == "-version" || args[0] == "-v" || args[0] == "--version"):
		return []string{"version"}
	default:
		return args
	}
}

func newLogger(name string, getenv func(string) string) hclog.Logger {
	level := hclog.Info
	if v := getenv(envLogLevel); v != "" {
		if l := hclog.LevelFromString(v); l != hclog.NoLevel {
			level = l
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		JSONFormat: getenv(envLogFormat) == "json",
	})
}
