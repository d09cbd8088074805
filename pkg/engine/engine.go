// Package engine implements the context-sensitive, inter-procedural fixpoint
// driver: the part of this codebase that is client-agnostic and therefore the
// hardest to get right. Everything client-specific — the intermediate
// representation, the control-flow graph, the lattice and its flow functions —
// arrives through the contracts in pkg/types and pkg/engine.FlowFunctions.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ctxflow/dataflow/pkg/contextcache"
	"github.com/ctxflow/dataflow/pkg/logging"
	"github.com/ctxflow/dataflow/pkg/observer"
	"github.com/ctxflow/dataflow/pkg/types"
)

// Engine runs one context-sensitive fixpoint analysis over a Program using a
// single FlowFunctions client, in one fixed Direction. It is single-threaded:
// DoAnalysis runs the whole fixpoint on the calling goroutine and blocks until
// every seeded context (and everything it transitively reaches) is analysed.
type Engine[M comparable, N comparable, A any] struct {
	program   types.Program[M, N]
	flow      FlowFunctions[M, N, A]
	direction types.Direction
	config    Config

	store       *contextcache.Store[M, N, A]
	transitions *contextcache.TransitionTable[M, N, A]
	worklist    *contextWorklist[M, N, A]

	logger   *logging.Logger
	observer *observer.Manager
}

// New constructs an Engine over program using flow, analysing in the given
// direction. The zero value of Config runs with no diagnostics and no
// reclamation; pass engine.Default() to be explicit about it.
func New[M comparable, N comparable, A any](
	program types.Program[M, N],
	flow FlowFunctions[M, N, A],
	direction types.Direction,
	cfg Config,
) *Engine[M, N, A] {
	// DefaultConfig is a hardcoded valid level, so this can never fail.
	defaultLogger, _ := logging.New(logging.DefaultConfig())
	return &Engine[M, N, A]{
		program:     program,
		flow:        flow,
		direction:   direction,
		config:      cfg,
		store:       contextcache.NewStore[M, N, A](flow),
		transitions: contextcache.NewTransitionTable[M, N, A](),
		worklist:    newContextWorklist[M, N, A](),
		logger:      defaultLogger,
		observer:    observer.NewManager(),
	}
}

// SetLogger replaces the engine's logger. Must be called before DoAnalysis.
func (e *Engine[M, N, A]) SetLogger(l *logging.Logger) { e.logger = l }

// RegisterObserver adds an observer notified of analysis and context lifecycle
// events during DoAnalysis. Must be called before DoAnalysis.
func (e *Engine[M, N, A]) RegisterObserver(o observer.Observer) { e.observer.Register(o) }

// DoAnalysis runs the fixpoint to completion: seeds a context for every entry
// point, then repeatedly picks the newest active context and drains its node
// worklist, propagating values until every seeded context and every context
// transitively reached from it is analysed. It returns once the global
// context worklist is empty.
func (e *Engine[M, N, A]) DoAnalysis(ctx context.Context) error {
	if e.direction != types.Forward && e.direction != types.Backward {
		return ErrInvalidDirection
	}
	if len(e.program.EntryPoints()) == 0 {
		return types.ErrMissingEntryPoints()
	}
	for _, m := range e.program.EntryPoints() {
		if e.program.ControlFlowGraph(m) == nil {
			return types.ErrNilControlFlowGraph(m)
		}
	}

	runID := uuid.NewString()
	ctx = context.WithValue(ctx, types.ContextKeyRunID, runID)
	log := e.logger.WithField("run_id", runID).WithField("direction", e.direction.String())

	log.Info("analysis started")
	e.observer.Notify(ctx, observer.Event{
		Type:      observer.EventAnalysisStart,
		Status:    observer.StatusStarted,
		Timestamp: time.Now(),
		RunID:     runID,
	})

	e.seed(ctx, log)

	for !e.worklist.empty() {
		c := e.worklist.pickNewest()
		if c.WorklistEmpty() {
			c.Analysed = true
			e.worklist.remove(c)
			continue
		}

		n, isBoundary := c.PopNode()
		if isBoundary {
			e.finishContext(ctx, log, c)
			continue
		}
		e.processNode(ctx, c, n)
	}

	e.warnUnanalysed(ctx, log)

	log.Info("analysis complete")
	e.observer.Notify(ctx, observer.Event{
		Type:      observer.EventAnalysisComplete,
		Status:    observer.StatusCompleted,
		Timestamp: time.Now(),
		RunID:     runID,
	})
	return nil
}

func (e *Engine[M, N, A]) seed(ctx context.Context, log *logging.Logger) {
	for _, m := range e.program.EntryPoints() {
		boundary := e.flow.BoundaryValue(m)
		if _, hit := e.store.Lookup(m, boundary, e.direction); hit {
			continue
		}
		cfg := e.program.ControlFlowGraph(m)
		c := e.store.Create(m, cfg, e.direction, boundary)
		e.worklist.add(c)
		if e.config.Verbose {
			log.WithMethod(fmt.Sprint(m)).WithContextID(c.ID).Debug("seeded context")
		}
		e.notifyContextCreated(ctx, c)
	}
}

// processNode implements spec §4.3 step 4: merge incoming edges, transfer the
// node, force monotonicity, enqueue successors if the far-side value changed,
// and enqueue the boundary sentinel whenever n is an analysis-direction tail.
func (e *Engine[M, N, A]) processNode(ctx context.Context, c *contextcache.Context[M, N, A], n N) {
	near := e.mergeIncoming(c, n)
	e.setNear(c, n, near)

	prevOut := e.getFar(c, n)

	var out A
	if e.program.IsCall(n) {
		out = e.processCall(ctx, c, n, near)
	} else {
		out = e.flow.NormalFlow(c, n, near)
	}
	out = e.flow.Meet(out, prevOut)
	e.setFar(c, n, out)

	if !e.flow.Equal(out, prevOut) {
		for _, s := range e.analysisSuccessors(c, n) {
			c.EnqueueNode(s)
		}
	}
	if e.isAnalysisTail(c, n) {
		c.EnqueueBoundary()
	}
}

// processCall implements spec §4.3 step 4c: resolve targets, look up or
// create a callee context per target, fold in the contribution of every
// already-analysed callee, and always fold in the caller-local contribution.
// An empty target set degenerates to callLocal alone, by the identity law
// Meet(Top(), x) == x.
func (e *Engine[M, N, A]) processCall(ctx context.Context, c *contextcache.Context[M, N, A], n N, near A) A {
	keyFn, contribFn := e.callFns()
	out := e.flow.Top()

	for _, m := range e.program.ResolveTargets(c.Method, n) {
		site := contextcache.CallSite[M, N, A]{Caller: c, Node: n}

		if e.program.IsPhantomMethod(m) {
			e.transitions.Record(site, m, nil)
			continue
		}

		key := keyFn(c, m, n, near)
		callee, hit := e.store.Lookup(m, key, e.direction)
		if !hit {
			calleeCFG := e.program.ControlFlowGraph(m)
			callee = e.store.Create(m, calleeCFG, e.direction, key)
			e.worklist.add(callee)
			e.notifyContextCreated(ctx, callee)
		}
		e.transitions.Record(site, m, callee)

		if callee.Analysed {
			var calleeBoundary A
			if e.direction == types.Forward {
				calleeBoundary = callee.ExitValue
			} else {
				calleeBoundary = callee.EntryValue
			}
			out = e.flow.Meet(out, contribFn(c, m, n, calleeBoundary))
		}
		// Else: callee has not stabilised yet. It contributes nothing on this
		// pass; finishContext wakes C when the callee reaches its boundary.
	}

	return e.flow.Meet(out, e.flow.CallLocal(c, n, near))
}

// finishContext implements spec §4.3 step 5: fold the boundary values of
// every analysis-direction tail into the new exit (forward) or entry
// (backward) value, mark the context analysed, wake its callers, and
// optionally reclaim.
func (e *Engine[M, N, A]) finishContext(ctx context.Context, log *logging.Logger, c *contextcache.Context[M, N, A]) {
	newBoundary := e.flow.Top()
	for _, t := range e.analysisTails(c) {
		newBoundary = e.flow.Meet(newBoundary, e.getFar(c, t))
	}
	if e.direction == types.Forward {
		c.ExitValue = newBoundary
	} else {
		c.EntryValue = newBoundary
	}
	c.Analysed = true

	if e.config.Verbose {
		log.WithMethod(fmt.Sprint(c.Method)).WithContextID(c.ID).Debug("context stabilised")
	}
	e.notifyContextAnalysed(ctx, c)

	for _, site := range e.transitions.Callers(c) {
		site.Caller.EnqueueNode(site.Node)
		e.worklist.add(site.Caller)
	}

	// c's own node worklist was empty when the boundary was popped (the
	// boundary pop that led here only happens once it is); the loop above
	// re-enqueues work on c only when one of c's own call-sites reaches c
	// (direct recursion into the same context). Unless that happened, c is
	// dropped from the global worklist now rather than waiting for the driver
	// loop to notice on its next visit. reclaim depends on this: it treats
	// worklist membership as "still has pending work", and c closing over
	// itself in its own reachable set would otherwise block every reclaim
	// forever.
	if c.WorklistEmpty() {
		e.worklist.remove(c)
	}

	if e.config.FreeResultsOnTheFly {
		e.reclaim(ctx, c)
	}
}

// reclaim implements spec §4.5: a stabilised context and everything
// transitively reachable from it can be freed once none of that reachable
// set is still on the active context worklist.
func (e *Engine[M, N, A]) reclaim(ctx context.Context, c *contextcache.Context[M, N, A]) {
	reachable := e.transitions.Reachable(c)
	for r := range reachable {
		if e.worklist.contains(r) {
			return
		}
	}
	for r := range reachable {
		r.Free()
		e.notifyContextReclaimed(ctx, r)
	}
}

func (e *Engine[M, N, A]) warnUnanalysed(ctx context.Context, log *logging.Logger) {
	for _, c := range e.store.All() {
		if c.Freed || c.Analysed {
			continue
		}
		log.WithMethod(fmt.Sprint(c.Method)).WithContextID(c.ID).Warn("context left unanalysed")
		e.observer.Notify(ctx, observer.Event{
			Type:      observer.EventUnanalysedContext,
			Status:    observer.StatusFailure,
			Timestamp: time.Now(),
			Method:    fmt.Sprint(c.Method),
			ContextID: c.ID,
		})
	}
}

// ----------------------------------------------------------------------------
// Direction-dependent edge/role helpers. Forward walks heads->tails reading
// valueBefore as the near side and valueAfter as the far side; backward is
// the mirror image (spec §4.3's "identical structure with edges reversed").
// ----------------------------------------------------------------------------

func (e *Engine[M, N, A]) mergeIncoming(c *contextcache.Context[M, N, A], n N) A {
	var preds []N
	if e.direction == types.Forward {
		preds = c.CFG.Preds(n)
	} else {
		preds = c.CFG.Succs(n)
	}
	if len(preds) == 0 {
		return e.getNear(c, n)
	}
	acc := e.flow.Top()
	for _, p := range preds {
		acc = e.flow.Meet(acc, e.getFar(c, p))
	}
	return acc
}

func (e *Engine[M, N, A]) getNear(c *contextcache.Context[M, N, A], n N) A {
	if e.direction == types.Forward {
		return c.ValueBefore(n)
	}
	return c.ValueAfter(n)
}

func (e *Engine[M, N, A]) setNear(c *contextcache.Context[M, N, A], n N, v A) {
	if e.direction == types.Forward {
		c.SetValueBefore(n, v)
	} else {
		c.SetValueAfter(n, v)
	}
}

func (e *Engine[M, N, A]) getFar(c *contextcache.Context[M, N, A], n N) A {
	if e.direction == types.Forward {
		return c.ValueAfter(n)
	}
	return c.ValueBefore(n)
}

func (e *Engine[M, N, A]) setFar(c *contextcache.Context[M, N, A], n N, v A) {
	if e.direction == types.Forward {
		c.SetValueAfter(n, v)
	} else {
		c.SetValueBefore(n, v)
	}
}

func (e *Engine[M, N, A]) analysisSuccessors(c *contextcache.Context[M, N, A], n N) []N {
	if e.direction == types.Forward {
		return c.CFG.Succs(n)
	}
	return c.CFG.Preds(n)
}

func (e *Engine[M, N, A]) isAnalysisTail(c *contextcache.Context[M, N, A], n N) bool {
	for _, t := range e.analysisTails(c) {
		if t == n {
			return true
		}
	}
	return false
}

func (e *Engine[M, N, A]) analysisTails(c *contextcache.Context[M, N, A]) []N {
	if e.direction == types.Forward {
		return c.CFG.Tails()
	}
	return c.CFG.Heads()
}

type callFn[M comparable, N comparable, A any] func(ctx *contextcache.Context[M, N, A], target M, node N, v A) A

// callFns returns the (keying function, contribution function) pair for the
// engine's direction. Forward keys the callee by its entry value and folds
// CallExit(calleeExit) back onto the caller; backward keys the callee by its
// exit value and folds CallEntry(calleeEntry) back onto the caller (spec
// §4.3's mirrored backward call handling).
func (e *Engine[M, N, A]) callFns() (callFn[M, N, A], callFn[M, N, A]) {
	if e.direction == types.Forward {
		return e.flow.CallEntry, e.flow.CallExit
	}
	return e.flow.CallExit, e.flow.CallEntry
}

// ----------------------------------------------------------------------------
// Exposed read accessors (spec §6).
// ----------------------------------------------------------------------------

// GetContexts returns every context created for method m.
func (e *Engine[M, N, A]) GetContexts(m M) []*contextcache.Context[M, N, A] {
	return e.store.ContextsFor(m)
}

// GetContext returns the context for (m, value) if one has been created.
func (e *Engine[M, N, A]) GetContext(m M, value A) (*contextcache.Context[M, N, A], bool) {
	return e.store.Lookup(m, value, e.direction)
}

// GetMethods returns every method with at least one context.
func (e *Engine[M, N, A]) GetMethods() []M {
	return e.store.Methods()
}

// GetCallers returns every call-site that reaches c.
func (e *Engine[M, N, A]) GetCallers(c *contextcache.Context[M, N, A]) []contextcache.CallSite[M, N, A] {
	return e.transitions.Callers(c)
}

// GetTargets returns the method-to-callee-context map recorded for site.
func (e *Engine[M, N, A]) GetTargets(site contextcache.CallSite[M, N, A]) map[M]*contextcache.Context[M, N, A] {
	return e.transitions.Targets(site)
}

// GetContextTransitionTable returns the engine's transition table directly.
func (e *Engine[M, N, A]) GetContextTransitionTable() *contextcache.TransitionTable[M, N, A] {
	return e.transitions
}

// Solution is the meet-over-valid-paths projection produced by
// GetMeetOverValidPathsSolution: the per-node values folded across every
// context of every method.
type Solution[N comparable, A any] struct {
	ValueBefore map[N]A
	ValueAfter  map[N]A
}

// GetMeetOverValidPathsSolution implements spec §4.6: for every node seen by
// any context, meet its valueBefore and valueAfter across every context of
// every method. Its precondition is that no context has been freed; a freed
// context's per-node tables are gone and simply contributes nothing, so a
// solution computed after reclamation is silently incomplete rather than an
// error — callers that enabled FreeResultsOnTheFly must not rely on this.
func (e *Engine[M, N, A]) GetMeetOverValidPathsSolution() Solution[N, A] {
	before := make(map[N]A)
	after := make(map[N]A)

	for _, c := range e.store.All() {
		if c.Freed {
			continue
		}
		for _, n := range c.Nodes() {
			if v, ok := before[n]; ok {
				before[n] = e.flow.Meet(v, c.ValueBefore(n))
			} else {
				before[n] = c.ValueBefore(n)
			}
			if v, ok := after[n]; ok {
				after[n] = e.flow.Meet(v, c.ValueAfter(n))
			} else {
				after[n] = c.ValueAfter(n)
			}
		}
	}
	return Solution[N, A]{ValueBefore: before, ValueAfter: after}
}

// ----------------------------------------------------------------------------
// Observer notification helpers.
// ----------------------------------------------------------------------------

func (e *Engine[M, N, A]) notifyContextCreated(ctx context.Context, c *contextcache.Context[M, N, A]) {
	e.observer.Notify(ctx, observer.Event{
		Type:      observer.EventContextCreated,
		Status:    observer.StatusStarted,
		Timestamp: time.Now(),
		Method:    fmt.Sprint(c.Method),
		ContextID: c.ID,
		RunID:     types.GetRunID(ctx),
	})
}

func (e *Engine[M, N, A]) notifyContextAnalysed(ctx context.Context, c *contextcache.Context[M, N, A]) {
	e.observer.Notify(ctx, observer.Event{
		Type:      observer.EventContextAnalysed,
		Status:    observer.StatusCompleted,
		Timestamp: time.Now(),
		Method:    fmt.Sprint(c.Method),
		ContextID: c.ID,
		RunID:     types.GetRunID(ctx),
	})
}

func (e *Engine[M, N, A]) notifyContextReclaimed(ctx context.Context, c *contextcache.Context[M, N, A]) {
	e.observer.Notify(ctx, observer.Event{
		Type:      observer.EventContextReclaimed,
		Status:    observer.StatusCompleted,
		Timestamp: time.Now(),
		Method:    fmt.Sprint(c.Method),
		ContextID: c.ID,
		RunID:     types.GetRunID(ctx),
	})
}
