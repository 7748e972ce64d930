// Package otel bridges registry metrics into OpenTelemetry.
//
// [NewOTelBridge] accepts a [registry.Registry] and registers every counter and
// gauge present at construction as an observable instrument on the supplied
// meter; collection reads a fresh snapshot on every callback.
//
// # What this package must NOT do
//
//   - Own or configure a MeterProvider — callers supply the meter.
//   - Mutate registry state.
package otel
