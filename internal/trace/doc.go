// Package trace records what sniper does while it reprints files.
//
// Events are grouped by scope: the driver (one run of the CLI), a pass over
// a file (load, parse, edit, print), the file itself, and single nodes of the
// element tree. The node scope is where the printer reports which parts it
// copied from the original text and which it printed again.
//
// Enable tracing with the command line flags:
//
//	sniper print --trace=- --trace-level=debug Foo.java
//
// A Tracer travels through the pipeline inside a context:
//
//	ctx = trace.WithTracer(ctx, t)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Tracers are goroutine safe. Nop costs nothing and is returned whenever no
// tracer is configured.
package trace
