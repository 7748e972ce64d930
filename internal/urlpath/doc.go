// Package urlpath canonicalizes the served URL path.
//
// Normalization runs once, at Serve time; incoming request paths are only
// compared (case-insensitively) against the normalized target. Case-insensitive
// matching is a deliberate design choice, not an accident of implementation.
//
// # What this package must NOT do
//
//   - Fail: normalization is total and falls back to /metrics.
//   - Be imported by any package outside the goMetrics module.
package urlpath
