// Package state holds the mutable state shared between a server handle and its
// serving loop.
//
// # Components
//
//   - [Shared] — mutex-guarded byte buffer, monotonic stop flag, owned listener.
//
// # Architecture boundaries
//
// The buffer and the stop flag are the only mutable shared resources in the
// module, and every access goes through this package. No other package reads
// or writes them directly.
//
// # What this package must NOT do
//
//   - Hold the buffer lock across network I/O (Snapshot copies, then releases).
//   - Expose the listener outside the package.
//   - Be imported by any package outside the goMetrics module.
package state
