// Package route decides the outcome for one received request.
//
// GET on the configured path serves the buffer; any other path is 404; any
// other method on the configured path is 405. Bodies for error statuses are
// always empty.
//
// # What this package must NOT do
//
//   - Perform I/O. It produces an [Outcome]; the serving loop writes it.
//   - Be imported by any package outside the goMetrics module.
package route
