package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// toggle is a tri-state flag value: --color and --ui take auto|on|off.
type toggle string

const (
	toggleAuto toggle = "auto"
	toggleOn   toggle = "on"
	toggleOff  toggle = "off"
)

func parseToggle(flag, value string) (toggle, error) {
	switch t := toggle(strings.ToLower(strings.TrimSpace(value))); t {
	case "":
		return toggleAuto, nil
	case toggleAuto, toggleOn, toggleOff:
		return t, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve decides an auto toggle with autoOK.
func (t toggle) resolve(autoOK func() bool) bool {
	switch t {
	case toggleOn:
		return true
	case toggleOff:
		return false
	}
	return autoOK()
}

// colorEnabled: auto means w is a terminal and NO_COLOR is unset.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	t, err := parseToggle("color", mode)
	if err != nil {
		return false, err
	}
	return t.resolve(func() bool { return isTerminal(w) && os.Getenv("NO_COLOR") == "" }), nil
}

// useProgressView: auto draws the view for batches on a terminal.
func useProgressView(t toggle, w io.Writer, files int) bool {
	return t.resolve(func() bool { return files > 1 && isTerminal(w) })
}
