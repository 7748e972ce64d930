// Package goMetrics provides a minimal, embeddable HTTP(S) server that exposes
// the latest snapshot of application metrics as an opaque byte buffer.
//
// The package holds a single mutable buffer. The owning application replaces it
// wholesale with [Server.Update] and a dedicated background loop serves it at a
// configurable path (default /metrics). There is no routing framework, no
// per-request concurrency, and no push pipeline: consumers poll.
//
// The package is designed for concurrent workloads: Update is safe to call from
// multiple goroutines at any rate, concurrently with serving and with Stop.
//
// # Architecture boundaries
//
// goMetrics is the public surface. It exposes [Server], [Builder], [Config],
// and value types (RequestLogEvent, LogSink, etc.). All internal coordination —
// shared buffer ownership, request routing, path normalization — lives under
// internal/ and is never exported. Metric production (the registry package)
// and encoding (the export packages) are companions, not dependencies of the
// core: the server stores and serves opaque bytes.
//
// # What this package must NOT do
//
//   - Interpret, validate, or transform the bytes handed to Update.
//   - Handle more than one request at a time (bounded memory by design).
//   - Restart a stopped server: a Server's serving lifetime is single-use.
//
// # Failure contract
//
// Only construction and [Server.Stop] fail observably. Update and request
// handling never do: per-request I/O failures are reported through the request
// log and otherwise swallowed.
package goMetrics
