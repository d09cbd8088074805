// Package telemetry provides OpenTelemetry integration for distributed tracing
// and metrics over an analysis run. It enables observability of the engine's
// context lifecycle, with support for:
//   - Distributed tracing: one span per analysis context, from creation to
//     stabilisation or reclamation
//   - Prometheus metrics: contexts created/stabilised/reclaimed counters, a
//     live-context gauge, and a node-processing-duration histogram
//   - Bridging via the observer package, so the engine's driver stays
//     decoupled from any one telemetry backend
package telemetry
