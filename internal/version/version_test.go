package version

import (
	"strings"
	"testing"
)

func TestCurrentCanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	if Current().Version == "" {
		t.Fatal("Version should have a default value")
	}

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"
	info := Current()
	if got, want := info.String(), "nut 1.2.3 (abc123, 2024-01-15T10:30:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	GitCommit, BuildDate = "", ""
	if got := Current().String(); got != "nut 1.2.3" {
		t.Errorf("String() = %q", got)
	}
}

func TestColored(t *testing.T) {
	if got := Colored("0.1.0-dev", false); got != "0.1.0-dev" {
		t.Errorf("plain = %q", got)
	}
	got := Colored("0.1.0-dev", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Errorf("colored = %q", got)
	}
	if got := Colored("nightly", true); got != "nightly" {
		t.Errorf("non-semver = %q", got)
	}
}
