package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nut/internal/trace"
)

// setupTracing builds the tracer described by the --trace* flags and puts
// it into the command context. The cleanup stops the heartbeat, then
// flushes and closes the tracer.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := readFlags(cmd.Root().PersistentFlags())
	output := flags.str("trace")
	levelName := flags.str("trace-level")
	modeName := flags.str("trace-mode")
	formatName := flags.str("trace-format")
	cfg := trace.Config{
		OutputPath: output,
		RingSize:   flags.integer("trace-ring-size"),
		Heartbeat:  flags.duration("trace-heartbeat"),
	}
	if err := flags.err(); err != nil {
		return nil, err
	}

	var err error
	if cfg.Level, err = trace.ParseLevel(levelName); err != nil {
		return nil, err
	}
	if cfg.Level == trace.LevelOff && output != "" {
		cfg.Level = trace.LevelPhase // --trace без уровня
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(contextOf(cmd), trace.Nop))
		return func() {}, nil
	}
	if cfg.Mode, err = trace.ParseMode(modeName); err != nil {
		return nil, err
	}
	if output != "" && !flags.changed("trace-mode") {
		cfg.Mode = trace.ModeStream
	}
	if cfg.Format, err = trace.ParseFormat(formatName); err != nil {
		return nil, err
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx := trace.WithTracer(contextOf(cmd), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	stopBeat := trace.StartHeartbeat(ctx, tracer, cfg.Heartbeat)
	return func() {
		stopBeat()
		report := func(what string, err error) {
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: %s: %v\n", what, err)
			}
		}
		report("flush", tracer.Flush())
		report("close", tracer.Close())
	}, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ringOf finds the in-memory buffer behind tracer, if any.
func ringOf(tracer trace.Tracer) *trace.RingTracer {
	switch t := tracer.(type) {
	case *trace.RingTracer:
		return t
	case *trace.MultiTracer:
		return t.Ring()
	}
	return nil
}
