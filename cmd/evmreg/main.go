package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "evmreg",
		Usage:     "account registry inspection tool",
		Copyright: "(c) 2026 hostlayer",
		Commands: []*cli.Command{
			&Derive,
			&Dump,
			&Info,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
