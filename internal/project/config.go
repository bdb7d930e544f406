package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"nut/internal/diag"
	"nut/internal/symbols"
)

// Config is the decoded nut.toml.
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`

	// Path is the manifest the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type CheckConfig struct {
	Resolver         string   `toml:"resolver"`
	WarningsAsErrors bool     `toml:"warnings_as_errors"`
	NoWarnings       bool     `toml:"no_warnings"`
	Disable          []string `toml:"disable"`
	MaxDiagnostics   int      `toml:"max_diagnostics"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// warningNames maps the names accepted in [check].disable to codes.
var warningNames = map[string]diag.Code{
	"unused-result": diag.SemaUnusedResult,
	"unreachable":   diag.SemaUnreachableCode,
}

// WarningNames lists the names accepted in [check].disable, sorted.
func WarningNames() []string {
	names := make([]string, 0, len(warningNames))
	for n := range warningNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WarningCode resolves a warning name to its diagnostic code.
func WarningCode(name string) (diag.Code, bool) {
	c, ok := warningNames[strings.TrimSpace(name)]
	return c, ok
}

// Default returns the configuration used when no nut.toml exists.
func Default() Config {
	return Config{
		Check:  CheckConfig{Resolver: string(symbols.KindScope), MaxDiagnostics: 100},
		Output: OutputConfig{Format: "pretty", Color: "auto"},
	}
}

// Load decodes path over the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidConfig, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds nut.toml above startDir and loads it. Without a manifest it
// returns Default() and found == false.
func Discover(startDir string) (cfg Config, found bool, err error) {
	path, err := findManifest(startDir)
	if err != nil {
		return Config{}, false, err
	}
	if path == "" {
		return Default(), false, nil
	}
	cfg, err = Load(path)
	return cfg, true, err
}

// ManifestName is the file Discover looks for.
const ManifestName = "nut.toml"

// findManifest returns the nearest nut.toml at or above start, or "" when
// none exists up to the filesystem root. start may name a file.
func findManifest(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", start, err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for prev := ""; dir != prev; prev, dir = dir, filepath.Dir(dir) {
		candidate := filepath.Join(dir, ManifestName)
		_, err := os.Stat(candidate)
		switch {
		case err == nil:
			return candidate, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("stat %q: %w", candidate, err)
		}
	}
	return "", nil
}

// Root is the directory holding the manifest, "" for defaults.
func (c *Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if _, ok := symbols.ParseKind(c.Check.Resolver); !ok {
		return fmt.Errorf("%w: [check].resolver %q (want scope or walk)", ErrInvalidConfig, c.Check.Resolver)
	}
	for _, name := range c.Check.Disable {
		if _, ok := WarningCode(name); !ok {
			return fmt.Errorf("%w: [check].disable: unknown warning %q (known: %s)",
				ErrInvalidConfig, name, strings.Join(WarningNames(), ", "))
		}
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [check].max_diagnostics must not be negative", ErrInvalidConfig)
	}
	switch c.Output.Format {
	case "", "pretty", "short", "json":
	default:
		return fmt.Errorf("%w: [output].format %q (want pretty, short or json)", ErrInvalidConfig, c.Output.Format)
	}
	switch c.Output.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("%w: [output].color %q (want auto, on or off)", ErrInvalidConfig, c.Output.Color)
	}
	return nil
}

// DisabledWarnings returns the set of warning codes to drop.
func (c *Config) DisabledWarnings() map[diag.Code]bool {
	out := make(map[diag.Code]bool)
	if c.Check.NoWarnings {
		for _, code := range warningNames {
			out[code] = true
		}
		return out
	}
	for _, name := range c.Check.Disable {
		if code, ok := WarningCode(name); ok {
			out[code] = true
		}
	}
	return out
}

// Fingerprint hashes every setting that changes analysis output, so cached
// results are never reused across configurations.
func (c *Config) Fingerprint() Digest {
	disabled := make([]string, 0)
	for code := range c.DisabledWarnings() {
		disabled = append(disabled, code.ID())
	}
	sort.Strings(disabled)
	key := fmt.Sprintf("resolver=%s;max=%d;werror=%t;disable=%s",
		c.Check.Resolver, c.Check.MaxDiagnostics, c.Check.WarningsAsErrors, strings.Join(disabled, ","))
	return Sum([]byte(key))
}
