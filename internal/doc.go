// Package internal contains coordination code that is intentionally private to
// goMetrics.
//
// # Sub-packages
//
//   - state — the shared buffer, stop flag, and owned listener
//   - route — per-request outcome decisions (404/405/200)
//   - urlpath — served-path normalization and matching
//
// # What this package must NOT do
//
//   - Export types that appear in the public goMetrics API.
//   - Be imported by any package outside the goMetrics module.
package internal
