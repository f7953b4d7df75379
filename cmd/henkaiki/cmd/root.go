// Package cmd provides the CLI commands for henkaiki.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/first-storm/henkaiki/pkg/version"
)

// NewRootCmd creates the root command for the henkaiki CLI.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "henkaiki",
		Short: "Filesystem-backed article server",
		Long: `Henkaiki serves markdown articles stored on the local filesystem.

Each article lives in a directory named after its numeric id, holding a
metainfo.toml descriptor and a markdown body. The server indexes the
tree at startup, caches rendered articles in memory, and exposes them
over a JSON API.

Running 'henkaiki' with no arguments starts the server.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.SetVersionTemplate("henkaiki version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (YAML)")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newConfigCmd(&configPath))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
