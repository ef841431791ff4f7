// Package main provides the entry point for flexnotes-cli, the
// command-line client for flexnotes-server.
package main

import (
	"fmt"
	"os"

	"github.com/flexnotes/flexnotes-go/internal/cli/command"
)

func main() {
	if err := command.App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
