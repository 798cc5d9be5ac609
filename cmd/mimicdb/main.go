// Package main provides the CLI entry point for MimicDB.
package main

import "github.com/leapstack-labs/mimicdb/internal/cli"

func main() {
	cli.Execute()
}
