// Package trace records compiler phase boundaries for diagnosing slow or
// stuck builds.
//
// Enable it from the command line:
//
//	gpex compile --trace=- --trace-level=phase ./project
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// LevelPhase emits driver and pass spans, LevelDetail adds one span per
// module, LevelDebug emits everything.
package trace
