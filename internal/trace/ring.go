package trace

import (
	"io"
	"sync"
)

// RingTracer holds the most recent events in a fixed slice. At LevelError
// it still records pass boundaries so the driver can dump them after a
// failure.
type RingTracer struct {
	mu      sync.RWMutex
	buf     []Event
	written uint64 // всего записано; позиция = written % len(buf)
	level   Level
}

// NewRingTracer allocates room for capacity events (defaultRingSize if <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.records(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.buf[t.written%uint64(len(t.buf))] = *ev
	t.written++
	t.mu.Unlock()
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := uint64(len(t.buf))
	if t.written <= size {
		return append([]Event(nil), t.buf[:t.written]...)
	}
	head := t.written % size
	out := make([]Event, 0, size)
	out = append(out, t.buf[head:]...)
	return append(out, t.buf[:head]...)
}

// Dump writes Snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
