package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nut/internal/version"
)

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show nut build fingerprints",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format := readFlags(cmd.Flags()).str("format")
	colorFlag := readFlags(cmd.Root().PersistentFlags()).str("color")
	info := version.Current()
	if strings.TrimSpace(info.Version) == "" {
		info.Version = "dev"
	}
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(versionPayload{Tool: "nut", Info: info})
	case "pretty":
		useColor, err := colorEnabled(colorFlag, out)
		if err != nil {
			return err
		}
		renderVersionPretty(out, info, useColor)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionPretty(out io.Writer, info version.Info, useColor bool) {
	fmt.Fprintf(out, "nut %s\n", version.Colored(info.Version, useColor))
	fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
