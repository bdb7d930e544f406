package trace

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a KindHeartbeat event every interval until ctx is
// done or the returned stop is called. Beats carry the goroutine count and
// heap size, so a stuck check can be told from a runaway one. Stop waits
// for the goroutine and may be called more than once.
func StartHeartbeat(ctx context.Context, tracer Tracer, interval time.Duration) (stop func()) {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := uint64(1); ; n++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tracer.Emit(beat(n))
			}
		}
	})
	return sync.OnceFunc(func() {
		cancel()
		wg.Wait()
	})
}

func beat(n uint64) *Event {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return &Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    goroutineID(),
		Name:   "heartbeat",
		Detail: fmt.Sprintf("#%d", n),
		Extra: map[string]string{
			"goroutines": strconv.Itoa(runtime.NumGoroutine()),
			"heap_kb":    strconv.FormatUint(mem.HeapAlloc>>10, 10),
		},
	}
}
