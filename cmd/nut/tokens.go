package main

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"nut/internal/diagfmt"
	"nut/internal/driver"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] file.nut",
		Short: "Tokenize a nut source file",
		Long:  `Tokens breaks a nut source file into tokens with their trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokens,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokens(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	local, global := readFlags(cmd.Flags()), readFlags(cmd.Root().PersistentFlags())
	format := local.str("format")
	maxDiagnostics := global.integer("max-diagnostics")
	colorFlag := global.str("color")
	if err := cmp.Or(local.err(), global.err()); err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	useColor, err := colorEnabled(colorFlag, errOut)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(contextOf(cmd), filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Лексические ошибки не останавливают вывод токенов
	if result.Bag.Len() > 0 {
		if err := diagfmt.Pretty(errOut, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: useColor}); err != nil {
			return err
		}
	}

	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}
