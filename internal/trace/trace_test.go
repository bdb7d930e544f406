package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Start(ctx, ScopeDriver, "check")
	_, inner := Start(ctx, ScopePass, "parse")
	inner.WithExtra("nodes", "12").End("ok")
	outer.End("")

	// file scope is above LevelPhase and must be dropped
	_, file := Start(ctx, ScopeFile, "main.nut")
	file.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ check") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "← parse (ok) {nodes=12}") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if inner.ID() == 0 || inner.parentID != outer.ID() {
		t.Errorf("inner span parent = %d, want %d", inner.parentID, outer.ID())
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)
	Point(ctx, ScopeNode, "resolve", "x")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "node" || got["detail"] != "x" {
		t.Errorf("unexpected event %v", got)
	}
}

func TestRingKeepsPassesAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(2, LevelError)
	ctx := WithTracer(context.Background(), ring)
	for _, name := range []string{"lex", "parse", "sema"} {
		_, s := Start(ctx, ScopePass, name)
		s.End("")
	}
	Point(ctx, ScopeNode, "ignored", "")

	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Name != "sema" || events[0].Kind != KindSpanBegin || events[1].Kind != KindSpanEnd {
		t.Errorf("ring should hold the last span, got %+v", events)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "sema") != 2 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestDisabledTracerIsNop(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatalf("missing tracer must resolve to Nop")
	}
	_, s := Start(ctx, ScopeDriver, "x")
	if s.ID() != 0 || s.End("") != 0 {
		t.Errorf("disabled span must be inert")
	}
	var nilSpan *Span
	if nilSpan.WithExtra("k", "v") != nil || nilSpan.End("") != 0 {
		t.Errorf("nil span must be inert")
	}
}

func TestParseHelpers(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestNewFromConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must yield a disabled tracer, got %v %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("ModeBoth should build a MultiTracer, got %T", tr)
	}
	Begin(tr, ScopePass, "sema", 0).End("")
	if !strings.Contains(buf.String(), "sema") {
		t.Errorf("stream half did not write: %q", buf.String())
	}
	if ring := multi.Ring(); ring == nil || len(ring.Snapshot()) == 0 {
		t.Errorf("ring half did not keep events")
	}
}

func TestContextCarriesParentSpan(t *testing.T) {
	if FromContext(context.Background()) != Nop || ParentSpan(context.Background()) != 0 {
		t.Fatal("empty context must yield Nop and no parent")
	}
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	inner, s := Start(ctx, ScopeDriver, "check")
	if ParentSpan(inner) != s.ID() || ParentSpan(ctx) != 0 {
		t.Errorf("parent = %d, want %d", ParentSpan(inner), s.ID())
	}
	if FromContext(inner) != Tracer(ring) {
		t.Error("span context lost the tracer")
	}
	s.End("")
}

func TestHeartbeat(t *testing.T) {
	StartHeartbeat(context.Background(), Nop, time.Millisecond)()

	ring := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(context.Background(), ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()

	events := ring.Snapshot()
	if len(events) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	ev := events[0]
	if ev.Kind != KindHeartbeat || ev.Detail != "#1" || ev.Extra["goroutines"] == "" {
		t.Errorf("unexpected beat %+v", ev)
	}
	if after := len(ring.Snapshot()); after != len(events) {
		t.Errorf("beats after stop: %d -> %d", len(events), after)
	}
}

func TestHeartbeatStopsWithContext(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	ctx, cancel := context.WithCancel(context.Background())
	stop := StartHeartbeat(ctx, ring, time.Hour)
	cancel()
	stop() // не должен зависнуть
	if n := len(ring.Snapshot()); n != 0 {
		t.Errorf("got %d beats", n)
	}
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		cfg  Config
		want Format
	}{
		{Config{OutputPath: "trace.ndjson"}, FormatNDJSON},
		{Config{OutputPath: "out/trace.json"}, FormatNDJSON},
		{Config{OutputPath: "trace.log"}, FormatText},
		{Config{OutputPath: "-"}, FormatText},
		{Config{OutputPath: "trace.json", Format: FormatText}, FormatText},
	}
	for _, tc := range cases {
		if got := resolveFormat(tc.cfg); got != tc.want {
			t.Errorf("resolveFormat(%+v) = %v, want %v", tc.cfg, got, tc.want)
		}
	}
}
