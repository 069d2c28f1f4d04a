// Package metric provides the engine's Prometheus metrics and their
// registry.
//
// Instrumentation is always an injected collaborator: components receive
// a *MetricsRegistry (or the Registrar interface) through their Deps and
// never touch process-global registries, so repeated or concurrent
// evaluations stay independent and testable in isolation.
//
// Core engine metrics (query counts, durations, solutions produced, store
// fact gauge, mutation counters) live on Metrics and are registered once
// by NewMetricsRegistry; components register their own metrics under a
// component-scoped name via the Register* helpers.
package metric
