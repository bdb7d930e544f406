// Package observ measures how long the front-end phases take.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured interval. A name containing '/' marks a nested
// phase ("sema/link") already counted by its parent.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

func (p *Phase) nested() bool { return strings.Contains(p.Name, "/") }

// Timer collects phases from any number of goroutines. A nil *Timer
// records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Track opens a phase and returns the function that closes it:
//
//	defer timer.Track("parse")("")
func (t *Timer) Track(name string) (done func(note string)) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			p := &t.phases[idx]
			p.Dur, p.Note = time.Since(p.Start), note
		})
	}
}

// Phases returns a copy in start order.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable form of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Report lists every phase; TotalMS sums top-level ones only.
func (t *Timer) Report() Report {
	var (
		rep   Report
		total time.Duration
	)
	for _, p := range t.Phases() {
		if !p.nested() {
			total += p.Dur
		}
		rep.Phases = append(rep.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders Report as the table printed by --timings.
func (t *Timer) Summary() string {
	rep := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-24s %7.2f ms", name, ms)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range rep.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", rep.TotalMS, "")
	return sb.String()
}
