package engine

import (
	"context"
	"testing"

	"github.com/ctxflow/dataflow/pkg/types"
)

type noEntryPointsProgram struct{ callChainProgram }

func (p *noEntryPointsProgram) EntryPoints() []string { return nil }

type nilCFGProgram struct{ callChainProgram }

func (p *nilCFGProgram) ControlFlowGraph(m string) types.CFG[string] { return nil }

func TestDoAnalysisRejectsInvalidDirection(t *testing.T) {
	program := newCallChainProgram()
	activeProgram = program
	e := New[string, string, val](program, callChainAnalysis{}, types.Direction(99), Default())

	err := e.DoAnalysis(context.Background())
	if err != ErrInvalidDirection {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestDoAnalysisRejectsProgramWithNoEntryPoints(t *testing.T) {
	program := &noEntryPointsProgram{callChainProgram: *newCallChainProgram()}
	activeProgram = &program.callChainProgram
	e := New[string, string, val](program, callChainAnalysis{}, types.Forward, Default())

	err := e.DoAnalysis(context.Background())
	if err == nil || err.Error() != types.ErrMissingEntryPoints().Error() {
		t.Fatalf("expected a missing-entry-points error, got %v", err)
	}
}

func TestDoAnalysisRejectsNilControlFlowGraph(t *testing.T) {
	program := &nilCFGProgram{callChainProgram: *newCallChainProgram()}
	activeProgram = &program.callChainProgram
	e := New[string, string, val](program, callChainAnalysis{}, types.Forward, Default())

	err := e.DoAnalysis(context.Background())
	if err == nil {
		t.Fatalf("expected an error for a nil control-flow graph")
	}
}

func TestDoAnalysisComputesFixpointAcrossACallEdge(t *testing.T) {
	program := newCallChainProgram()
	activeProgram = program
	e := New[string, string, val](program, callChainAnalysis{}, types.Forward, Default())

	if err := e.DoAnalysis(context.Background()); err != nil {
		t.Fatalf("DoAnalysis: %v", err)
	}

	mainContexts := e.GetContexts("main")
	if len(mainContexts) != 1 {
		t.Fatalf("expected exactly one main context, got %d", len(mainContexts))
	}
	main := mainContexts[0]
	if !main.Analysed {
		t.Fatalf("expected main to be analysed")
	}
	if main.ExitValue != 6 {
		t.Fatalf("expected main's ExitValue to be 6 (1 local + 5 from helper), got %d", main.ExitValue)
	}

	helperContexts := e.GetContexts("helper")
	if len(helperContexts) != 1 {
		t.Fatalf("expected exactly one helper context, got %d", len(helperContexts))
	}
	helper := helperContexts[0]
	if helper.ExitValue != 6 {
		t.Fatalf("expected helper's ExitValue to be 6, got %d", helper.ExitValue)
	}
	if helper.Freed {
		t.Fatalf("expected helper not to be freed when FreeResultsOnTheFly is disabled")
	}

	callers := e.GetCallers(helper)
	if len(callers) != 1 || callers[0].Node != "n1" {
		t.Fatalf("expected helper's sole caller to be main's n1, got %v", callers)
	}
}

// TestDoAnalysisComputesFixpointAcrossACallEdgeBackward mirrors
// TestDoAnalysisComputesFixpointAcrossACallEdge in the backward direction:
// the same program and flow functions, since CallEntry/CallExit/CallLocal are
// symmetric echoes of their argument in this toy analysis, but every
// direction-dependent helper (mergeIncoming, getNear/setNear,
// analysisSuccessors, isAnalysisTail, callFns) now walks edges the other way
// and folds into EntryValue instead of ExitValue.
func TestDoAnalysisComputesFixpointAcrossACallEdgeBackward(t *testing.T) {
	program := newCallChainProgram()
	activeProgram = program
	e := New[string, string, val](program, callChainAnalysis{}, types.Backward, Default())

	if err := e.DoAnalysis(context.Background()); err != nil {
		t.Fatalf("DoAnalysis: %v", err)
	}

	mainContexts := e.GetContexts("main")
	if len(mainContexts) != 1 {
		t.Fatalf("expected exactly one main context, got %d", len(mainContexts))
	}
	main := mainContexts[0]
	if !main.Analysed {
		t.Fatalf("expected main to be analysed")
	}
	if main.EntryValue != 6 {
		t.Fatalf("expected main's EntryValue to be 6 (1 local + 5 from helper), got %d", main.EntryValue)
	}

	helperContexts := e.GetContexts("helper")
	if len(helperContexts) != 1 {
		t.Fatalf("expected exactly one helper context, got %d", len(helperContexts))
	}
	helper := helperContexts[0]
	if helper.EntryValue != 5 {
		t.Fatalf("expected helper's EntryValue to be 5, got %d", helper.EntryValue)
	}
	if helper.Freed {
		t.Fatalf("expected helper not to be freed when FreeResultsOnTheFly is disabled")
	}

	callers := e.GetCallers(helper)
	if len(callers) != 1 || callers[0].Node != "n1" {
		t.Fatalf("expected helper's sole caller to be main's n1, got %v", callers)
	}

	sol := e.GetMeetOverValidPathsSolution()
	if got := sol.ValueBefore["n0"]; got != 6 {
		t.Fatalf("expected n0's entry value to be 6, got %d", got)
	}
	if got := sol.ValueBefore["h0"]; got != 5 {
		t.Fatalf("expected helper's h0 entry value to be 5, got %d", got)
	}
}

func TestGetMeetOverValidPathsSolutionWithoutReclamation(t *testing.T) {
	program := newCallChainProgram()
	activeProgram = program
	e := New[string, string, val](program, callChainAnalysis{}, types.Forward, Default())

	if err := e.DoAnalysis(context.Background()); err != nil {
		t.Fatalf("DoAnalysis: %v", err)
	}

	sol := e.GetMeetOverValidPathsSolution()
	if got := sol.ValueAfter["n0"]; got != 1 {
		t.Fatalf("expected n0's exit value to be 1, got %d", got)
	}
	if got := sol.ValueAfter["n2"]; got != 6 {
		t.Fatalf("expected n2's exit value to be 6, got %d", got)
	}
	if got := sol.ValueAfter["h0"]; got != 6 {
		t.Fatalf("expected helper's h0 exit value to be 6, got %d", got)
	}
}

func TestReclaimFreesStabilisedContextsOnceUnreachable(t *testing.T) {
	program := newCallChainProgram()
	activeProgram = program
	e := New[string, string, val](program, callChainAnalysis{}, types.Forward, Config{FreeResultsOnTheFly: true})

	if err := e.DoAnalysis(context.Background()); err != nil {
		t.Fatalf("DoAnalysis: %v", err)
	}

	main := e.GetContexts("main")[0]
	helper := e.GetContexts("helper")[0]

	if !helper.Freed {
		t.Fatalf("expected helper's context to be reclaimed once main no longer needs it")
	}
	if !main.Freed {
		t.Fatalf("expected main's context to be reclaimed once the run completes")
	}
	// Boundary values survive Free(): a reused context must still answer
	// store lookups and contribute to callers after reclamation.
	if main.ExitValue != 6 {
		t.Fatalf("expected ExitValue to survive reclamation, got %d", main.ExitValue)
	}

	sol := e.GetMeetOverValidPathsSolution()
	if len(sol.ValueAfter) != 0 {
		t.Fatalf("expected an empty solution once every context is freed, got %v", sol.ValueAfter)
	}
}
