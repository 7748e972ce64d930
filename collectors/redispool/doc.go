// Package redispool samples go-redis connection pool statistics into a
// metrics registry.
//
// Typical wiring: register a [Collector] against the application's registry,
// call Collect before each render/Update cycle, and the pool gauges ride along
// with the rest of the application's metrics.
//
// # What this package must NOT do
//
//   - Issue Redis commands. It only reads client-side pool counters.
//   - Own the client's lifecycle.
package redispool
