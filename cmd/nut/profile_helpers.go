package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"nut/internal/prof"
)

// setupProfiling starts the profilers named by --cpu-profile, --mem-profile
// and --runtime-trace. The cleanup stops them once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := readFlags(cmd.Root().PersistentFlags())
	opts := prof.Options{
		CPU:   flags.str("cpu-profile"),
		Mem:   flags.str("mem-profile"),
		Trace: flags.str("runtime-trace"),
	}
	if err := flags.err(); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return sync.OnceFunc(func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}), nil
}
