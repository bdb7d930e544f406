package trace

import (
	"fmt"
	"strings"
	"time"
)

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // process-wide, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points and heartbeats
	ParentID uint64
	GID      uint64 // goroutine that emitted the event
	Name     string // "check", "parse", "sema:declare", file path
	Detail   string
	Extra    map[string]string
}

// Kind says what an Event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // мгновенное событие
	KindHeartbeat // признак жизни
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string { return lookupName(kindNames[:], int(k)) }

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command
	ScopePass                    // lex, parse, sema and each sema pass
	ScopeFile                    // one file of a batch
	ScopeNode                    // resolver lookups
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}

func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

// Level is the verbosity selected by --trace-level.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring only, dumped when a check fails
	LevelPhase        // driver and pass events
	LevelDetail       // plus per-file events
	LevelDebug        // everything
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string { return lookupName(levelNames[:], int(l)) }

// ParseLevel accepts off|error|phase|detail|debug, case-insensitively.
func ParseLevel(s string) (Level, error) {
	if i := indexName(levelNames[:], s); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether a writer at this level outputs scope.
// LevelError writes nothing directly.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

// records is ShouldEmit plus the pass-level history LevelError keeps for
// a later dump.
func (l Level) records(scope Scope) bool {
	if l == LevelError {
		return scope <= ScopePass
	}
	return l.ShouldEmit(scope)
}

func lookupName(names []string, i int) string {
	if i < 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}

func indexName(names []string, s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n != "" && n == s {
			return i
		}
	}
	return -1
}
