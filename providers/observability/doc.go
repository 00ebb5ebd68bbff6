// Package observability defines the tracing, metrics and logging interfaces
// used across the extraction pipeline.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into a single
// dependency. Components take it as an option and treat nil as "no
// observability". The active [Span] and [Provider] travel through a
// [context.Context] via [ContextWithSpan] and [ContextWithObserver].
//
// Attribute keys, span names and metric names live in semconv.go so log
// lines from the extractor, the vision clients and the batch runner can be
// correlated.
package observability
