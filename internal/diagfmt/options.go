package diagfmt

import (
	"fmt"
	"slices"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps the path as it was given on the command line.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string { return nameOf(pathModeNames[:], int(m)) }

// ParsePathMode accepts auto|absolute|relative|basename; empty means auto.
func ParsePathMode(s string) (PathMode, error) {
	i, err := parseName("path mode", pathModeNames[:], s)
	return PathMode(i), err
}

// Format selects the diagnostics renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
)

var formatNames = [...]string{
	FormatPretty: "pretty",
	FormatShort:  "short",
	FormatJSON:   "json",
}

func (f Format) String() string { return nameOf(formatNames[:], int(f)) }

// ParseFormat accepts pretty|short|json; empty means pretty.
func ParseFormat(s string) (Format, error) {
	i, err := parseName("diagnostics format", formatNames[:], s)
	return Format(i), err
}

// nameOf falls back to the first name, which is the default of each enum.
func nameOf(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return names[0]
}

func parseName(what string, names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	if i := slices.Index(names, s); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("unknown %s %q (want %s)", what, s, strings.Join(names, ", "))
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowPath  bool // печатать путь перед заголовком (несколько файлов)
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}
