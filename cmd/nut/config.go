package main

import (
	"github.com/spf13/cobra"

	"nut/internal/project"
)

// loadConfig reads --config or discovers nut.toml from start, then applies
// the persistent --max-diagnostics and --color overrides.
func loadConfig(cmd *cobra.Command, start string) (project.Config, error) {
	flags := readFlags(cmd.Root().PersistentFlags())
	explicit := flags.str("config")
	if err := flags.err(); err != nil {
		return project.Config{}, err
	}

	var (
		cfg project.Config
		err error
	)
	if explicit != "" {
		cfg, err = project.Load(explicit)
	} else {
		cfg, _, err = project.Discover(start)
	}
	if err != nil {
		return project.Config{}, err
	}

	override(flags, "max-diagnostics", flags.integer, &cfg.Check.MaxDiagnostics)
	override(flags, "color", flags.str, &cfg.Output.Color)
	return cfg, flags.err()
}
