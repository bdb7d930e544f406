package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nut/internal/version"
)

// exitError carries a process exit status without an extra message; the
// command has already reported what went wrong.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// newRootCmd builds the command tree. The returned finish stops tracing and
// profiling; cobra skips post-run hooks when a command fails, so callers run
// it after Execute.
func newRootCmd() (rootCmd *cobra.Command, finish func()) {
	var cleanups []func()
	rootCmd = &cobra.Command{
		Use:           "nut",
		Short:         "Nut language front end",
		Long:          `Nut parses and semantically checks nut source files`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopTrace)
			stopProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopProf)
			return nil
		},
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = config value)")
	pf.String("config", "", "path to nut.toml (default: discovered from the inputs)")

	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity in events")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a runtime execution trace to file")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newASTCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newVersionCmd())

	finish = func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		cleanups = nil
	}
	return rootCmd, finish
}

// main runs the root command. Usage and setup failures exit with 2, rejected
// programs with the status the command chose.
func main() {
	rootCmd, finish := newRootCmd()
	err := rootCmd.Execute()
	finish()
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "nut: %v\n", err)
	os.Exit(2)
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
