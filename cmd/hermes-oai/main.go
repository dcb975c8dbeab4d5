package main

import (
	"os"

	"github.com/hashicorp-forge/hermes-oai/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
