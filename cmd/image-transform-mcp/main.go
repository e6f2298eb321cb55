// Package main is the entry point for image-transform-mcp.
package main

import (
	"os"

	"github.com/ironsheep/image-transform-mcp/cmd/image-transform-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
