package main

import (
	"fmt"
	"os"
	"strings"

	"asset-dashboard/internal/cli"
)

const (
	cmdName   = "assetdash"
	shortDesc = "Inspect the asset market dataset from the command line."
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
