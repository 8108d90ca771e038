// Package trace records what the hop driver is doing and for how long.
//
// Spans mark the boundaries of CLI commands, pipeline phases (lex, compile,
// run), individual script files and compiled functions. Events are either
// streamed as they happen or kept in a ring buffer that is dumped when a
// script crashes the interpreter.
//
//	hop run --trace=- --trace-level=phase main.hop
//	hop check --trace=out.chrome.json --trace-level=detail scripts/*.hop
//
// Tracers travel through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "compile", parent)
//	defer span.End("")
//
// Every tracer created by New stamps its events with a run ID so that the
// output of concurrent invocations can be told apart.
package trace
