package trace

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer receives trace events. Implementations must be goroutine-safe:
// CheckFiles emits from every worker.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	// Close flushes and releases the output.
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // пишутся сразу
	ModeRing                          // последние N в памяти
	ModeBoth
)

var modeNames = [...]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string { return lookupName(modeNames[:], int(m)) }

func (m StorageMode) streams() bool { return m == ModeStream || m == ModeBoth }
func (m StorageMode) rings() bool   { return m == ModeRing || m == ModeBoth }

// ParseMode accepts stream|ring|both, case-insensitively.
func ParseMode(s string) (StorageMode, error) {
	if i := indexName(modeNames[:], s); i > 0 {
		return StorageMode(i), nil
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: %s)", s, strings.Join(modeNames[1:], "|"))
}

// Config describes the tracer built by New from the --trace* flags.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "" or "-" is stderr
	RingSize   int       // 0 means 4096
	// Heartbeat is the interval the caller passes to StartHeartbeat.
	Heartbeat time.Duration
}

const defaultRingSize = 4096

// New builds the tracer for cfg. LevelOff yields Nop whatever the mode;
// ModeBoth fans out to a stream and a ring.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if !cfg.Mode.streams() && !cfg.Mode.rings() {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	var parts []Tracer
	if cfg.Mode.streams() {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, NewStreamTracer(w, cfg.Level, resolveFormat(cfg)))
	}
	if cfg.Mode.rings() {
		parts = append(parts, NewRingTracer(cmp.Or(max(cfg.RingSize, 0), defaultRingSize), cfg.Level))
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return NewMultiTracer(cfg.Level, parts...), nil
}

// resolveFormat maps FormatAuto to NDJSON for *.json and *.ndjson outputs
// and to text otherwise.
func resolveFormat(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch filepath.Ext(cfg.OutputPath) {
	case ".json", ".ndjson":
		return FormatNDJSON
	default:
		return FormatText
	}
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
