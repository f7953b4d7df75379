// Package main provides the entry point for the henkaiki server.
package main

import (
	"os"

	"github.com/first-storm/henkaiki/cmd/henkaiki/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
