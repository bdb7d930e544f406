package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nut/internal/diag"
	"nut/internal/diagfmt"
	"nut/internal/driver"
	"nut/internal/observ"
	"nut/internal/project"
	"nut/internal/sema"
	"nut/internal/source"
	"nut/internal/trace"
	"nut/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [path...]",
		Short: "Parse and semantically check nut sources",
		Long: `Check parses every given file (directories are searched for *.nut)
and runs semantic analysis. The exit status is 1 when any file has errors,
or warnings under --werror.`,
		RunE: runCheck,
	}
	f := cmd.Flags()
	f.String("format", "", "diagnostics format (pretty|short|json); default from nut.toml")
	f.String("resolver", "", "name resolver (scope|walk); default from nut.toml")
	f.Int("jobs", 0, "files checked in parallel (0 = GOMAXPROCS)")
	f.Bool("werror", false, "treat warnings as errors")
	f.Bool("no-warnings", false, "drop all warnings")
	f.StringSlice("disable", nil, "warnings to drop (unused-result, unreachable)")
	f.Bool("cache", false, "reuse results from the on-disk cache")
	f.String("cache-dir", "", "cache directory (default: user cache dir)")
	f.String("ui", "off", "progress view (auto|on|off)")
	f.Bool("notes", false, "print diagnostic notes")
	f.String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	return cmd
}

// applyCheckFlags overrides config values with the flags the user set.
func applyCheckFlags(cmd *cobra.Command, cfg *project.Config) error {
	flags := readFlags(cmd.Flags())
	override(flags, "format", flags.str, &cfg.Output.Format)
	override(flags, "resolver", flags.str, &cfg.Check.Resolver)
	override(flags, "werror", flags.boolean, &cfg.Check.WarningsAsErrors)
	override(flags, "no-warnings", flags.boolean, &cfg.Check.NoWarnings)
	if flags.changed("disable") {
		cfg.Check.Disable = append(cfg.Check.Disable, flags.strings("disable")...)
	}
	if err := flags.err(); err != nil {
		return err
	}
	return cfg.Validate()
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	flags := readFlags(cmd.Flags())
	enabled, dir := flags.boolean("cache"), flags.str("cache-dir")
	if err := flags.err(); err != nil || !enabled {
		return nil, err
	}
	if dir != "" {
		return driver.NewDiskCache(dir)
	}
	return driver.OpenDiskCache("nut")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := contextOf(cmd)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := driver.ExpandPaths(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %v", driver.SourceExt, paths)
	}

	cfg, err := loadConfig(cmd, paths[0])
	if err != nil {
		return err
	}
	if err := applyCheckFlags(cmd, &cfg); err != nil {
		return err
	}
	format, err := diagfmt.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cfg.Output.Color, out)
	if err != nil {
		return err
	}
	local, global := readFlags(cmd.Flags()), readFlags(cmd.Root().PersistentFlags())
	pathModeFlag := local.str("path-mode")
	showNotes := local.boolean("notes")
	jobs := local.integer("jobs")
	uiFlag := local.str("ui")
	quiet := global.boolean("quiet")
	timings := global.boolean("timings")
	if err := cmp.Or(local.err(), global.err()); err != nil {
		return err
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeFlag)
	if err != nil {
		return err
	}
	mode, err := parseToggle("ui", uiFlag)
	if err != nil {
		return err
	}

	opts := driver.Options{Config: cfg, Jobs: jobs}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	if opts.Cache, err = openCache(cmd); err != nil {
		// без кеша проверка всё равно работает
		fmt.Fprintf(errOut, "nut: cache disabled: %v\n", err)
	}

	var (
		fs      *source.FileSet
		results []*driver.Result
	)
	if useProgressView(mode, errOut, len(files)) && !quiet {
		fs, results, err = checkWithProgress(ctx, errOut, files, opts)
	} else {
		fs, results, err = driver.CheckFiles(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	pretty := diagfmt.PrettyOpts{
		Color:     useColor,
		PathMode:  pathMode,
		ShowPath:  len(results) > 1,
		ShowNotes: showNotes,
	}
	if err := renderResults(out, format, fs, results, opts.Timer, pretty); err != nil {
		return err
	}

	if timings && format != diagfmt.FormatJSON {
		fmt.Fprint(errOut, opts.Timer.Summary())
	}
	dumpRingOnInternalError(ctx, errOut, results)

	summary := driver.Summarize(results, cfg.Check.WarningsAsErrors)
	if !quiet && format != diagfmt.FormatJSON && len(results) > 1 {
		fmt.Fprintf(errOut, "checked %s\n", summary)
	}
	if summary.Failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// checkWithProgress runs CheckFiles while the progress view consumes its
// events on w.
func checkWithProgress(ctx context.Context, w io.Writer, files []string, opts driver.Options) (*source.FileSet, []*driver.Result, error) {
	events := make(chan driver.Event, 64)
	opts.Progress = driver.ChannelSink{Ch: events}

	type outcome struct {
		fs      *source.FileSet
		results []*driver.Result
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		fs, results, err := driver.CheckFiles(ctx, files, opts)
		close(events)
		done <- outcome{fs, results, err}
	}()

	uiErr := ui.Run(w, "nut check", files, events)
	// the view may stop early; keep the producer unblocked
	for range events {
	}
	res := <-done
	if res.err == nil && uiErr != nil {
		fmt.Fprintf(w, "nut: progress view: %v\n", uiErr)
	}
	return res.fs, res.results, res.err
}

// renderResults prints pretty output file by file in emission order; short
// and JSON output are rendered from one merged bag sorted by position.
func renderResults(w io.Writer, format diagfmt.Format, fs *source.FileSet, results []*driver.Result, timer *observ.Timer, pretty diagfmt.PrettyOpts) error {
	if format == diagfmt.FormatPretty {
		for _, r := range results {
			if err := diagfmt.Pretty(w, r.Bag, fs, pretty); err != nil {
				return err
			}
		}
		return nil
	}
	merged := diag.NewBag(1)
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	merged.Sort()
	if format == diagfmt.FormatJSON && timer != nil {
		driver.AppendTimingDiagnostic(merged, timer)
	}
	return diagfmt.Render(w, format, merged, fs, pretty)
}

// dumpRingOnInternalError prints the recent trace history when the analyzer
// itself broke and a ring buffer was recording.
func dumpRingOnInternalError(ctx context.Context, w io.Writer, results []*driver.Result) {
	ring := ringOf(trace.FromContext(ctx))
	if ring == nil {
		return
	}
	for _, r := range results {
		if r.Err != nil && errors.Is(r.Err, sema.ErrInternal) {
			fmt.Fprintf(w, "trace: last events before internal error in %s\n", r.Path)
			if err := ring.Dump(w, trace.FormatText); err != nil {
				fmt.Fprintf(w, "trace: dump failed: %v\n", err)
			}
			return
		}
	}
}
