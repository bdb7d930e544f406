package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"nut/internal/ast"
	"nut/internal/diagfmt"
	"nut/internal/driver"
	"nut/internal/source"
)

func newASTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [flags] file.nut",
		Short: "Print the annotated syntax tree of a nut file",
		Long: `Ast parses and analyzes a file and prints its tree with the types and
declarations attached by semantic analysis. Diagnostics go to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: runAST,
	}
	cmd.Flags().String("format", "tree", "output format (tree|dump|json)")
	cmd.Flags().Bool("no-sema", false, "stop after parsing")
	return cmd
}

func runAST(cmd *cobra.Command, args []string) error {
	path := args[0]
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	flags := readFlags(cmd.Flags())
	format, noSema := flags.str("format"), flags.boolean("no-sema")
	if err := flags.err(); err != nil {
		return err
	}
	switch format {
	case "tree", "dump", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	cfg, err := loadConfig(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	useColor, err := colorEnabled(cfg.Output.Color, errOut)
	if err != nil {
		return err
	}

	opts := driver.Options{Config: cfg}
	if noSema {
		opts.StopAfter = driver.StageParse
	}
	res, err := driver.CheckFile(contextOf(cmd), source.NewFileSet(), path, opts)
	if err != nil {
		return err
	}
	if err := diagfmt.Pretty(errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: useColor}); err != nil {
		return err
	}
	// a rejected program has no tree worth printing
	if res.Err != nil || res.Bag.HasErrors() {
		return &exitError{code: 1}
	}

	switch format {
	case "dump":
		return ast.Dump(out, res.Tree, res.Root)
	case "json":
		return diagfmt.FormatASTJSON(out, res.Tree, res.Root, res.FileSet)
	default:
		return diagfmt.FormatASTPretty(out, res.Tree, res.Root, res.FileSet)
	}
}
