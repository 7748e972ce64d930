// Package registry provides lock-free counters and gauges applications use to
// produce the bytes they hand to the metrics server.
//
// A [Registry] is a named, ordered collection of metrics; [Registry.Snapshot]
// takes a consistent point-in-time copy. Encoding snapshots into a wire format
// is the job of the export packages — this package never renders.
//
// # What this package must NOT do
//
//   - Import the root goMetrics package or any internal package.
//   - Perform I/O of any kind.
package registry
