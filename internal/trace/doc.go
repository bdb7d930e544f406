// Package trace records what the nut front end is doing: driver commands,
// per-file checks and the individual lex/parse/sema passes.
//
// Enable it from the command line:
//
//	nut check --trace=- --trace-level=phase prog.nut
//
// Tracers: Nop (disabled), StreamTracer (text or NDJSON to a writer),
// RingTracer (last N events in memory, dumped when a check fails) and
// MultiTracer (fan-out). Heartbeat emits periodic liveness events so a hang
// shows up as heartbeats without span ends.
//
// Levels filter by Scope: phase keeps driver and pass events, detail adds
// per-file events, debug adds node-level resolver events.
//
// The tracer travels in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
