// Package prometheus renders registry snapshots in Prometheus text exposition
// format.
//
// [Exporter.Render] produces the text payload; [Exporter.Push] hands it
// directly to a metrics server's Update. Counters render as counter, gauges as
// gauge, in registration order.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry.
//   - Mutate registry state.
package prometheus
