// Package main provides the entry point for the recount CLI tool.
package main

import (
	"github.com/invkit/recount/cmd/recount/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
