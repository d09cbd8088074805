// Package observer provides an event-driven observer pattern for analysis
// run monitoring.
//
// # Overview
//
// The observer package lets callers watch an engine.Engine's run without
// coupling to its implementation: context creation, context stabilisation,
// on-the-fly reclamation, and the overall analysis start/complete boundary
// are all delivered as Event values to every registered Observer.
//
// # Observer Interface
//
//	type Observer interface {
//	    OnEvent(ctx context.Context, event Event)
//	}
//
// A single method keeps custom observers trivial to write; switch on
// event.Type to react only to what you care about.
//
// # Events
//
// EventAnalysisStart / EventAnalysisComplete bracket one DoAnalysis call.
// EventContextCreated fires for every context allocated, whether seeded from
// an entry point or created on demand at a call site. EventContextAnalysed
// fires once a context reaches its boundary fixpoint. EventContextReclaimed
// fires when FreeResultsOnTheFly drops a stabilised context's per-node
// tables. EventUnanalysedContext fires for any context still unanalysed when
// DoAnalysis returns, which signals a bug rather than an expected outcome.
//
// # Basic Usage
//
//	obs := observer.NewConsoleObserver()
//	eng.RegisterObserver(obs)
//	err := eng.DoAnalysis(ctx)
//
// # Custom Observer Example
//
//	type MetricsObserver struct{ metrics MetricsCollector }
//
//	func (o *MetricsObserver) OnEvent(ctx context.Context, event observer.Event) {
//	    switch event.Type {
//	    case observer.EventContextCreated:
//	        o.metrics.Increment("context.created")
//	    case observer.EventContextAnalysed:
//	        o.metrics.Increment("context.analysed")
//	    }
//	}
//
// # Thread Safety
//
// The engine's driver is single-threaded (see package engine): Manager.Notify
// calls every registered observer synchronously, in registration order, on
// the driver's own goroutine. An observer that blocks blocks the fixpoint. A
// panicking observer is recovered and does not interrupt the remaining
// observers or the analysis.
package observer
