package engine

import (
	"github.com/ctxflow/dataflow/pkg/contextcache"
	"github.com/ctxflow/dataflow/pkg/graph"
	"github.com/ctxflow/dataflow/pkg/types"
)

// val is the toy lattice for engine-level tests: an unconstrained value is
// -1, Meet takes the larger of two defined values. It exists purely to drive
// the engine's call/context-cache plumbing, not to model anything real.
type val = int

const top = -1

type valLattice struct{}

func (valLattice) Top() val       { return top }
func (valLattice) Copy(a val) val { return a }
func (valLattice) Meet(a, b val) val {
	if a == top {
		return b
	}
	if b == top {
		return a
	}
	if a > b {
		return a
	}
	return b
}
func (valLattice) Equal(a, b val) bool { return a == b }

type instr struct {
	delta  int
	isCall bool
	target string
}

type methodBody struct {
	instrs map[string]instr
	cfg    *graph.SimpleCFG[string]
}

// callChainProgram is main() calling helper() exactly once: main adds 1,
// helper adds 5, main's final node adds 0 and returns.
type callChainProgram struct {
	methods map[string]*methodBody
}

func newCallChainProgram() *callChainProgram {
	mainInstrs := map[string]instr{
		"n0": {delta: 1},
		"n1": {isCall: true, target: "helper"},
		"n2": {delta: 0},
	}
	mainCFG := graph.NewSimpleCFG([]string{"n0", "n1", "n2"}, [][2]string{{"n0", "n1"}, {"n1", "n2"}})

	helperInstrs := map[string]instr{
		"h0": {delta: 5},
	}
	helperCFG := graph.NewSimpleCFG([]string{"h0"}, nil)

	return &callChainProgram{
		methods: map[string]*methodBody{
			"main":   {instrs: mainInstrs, cfg: mainCFG},
			"helper": {instrs: helperInstrs, cfg: helperCFG},
		},
	}
}

func (p *callChainProgram) EntryPoints() []string { return []string{"main"} }

func (p *callChainProgram) ControlFlowGraph(m string) types.CFG[string] {
	body, ok := p.methods[m]
	if !ok {
		return nil
	}
	return body.cfg
}

func (p *callChainProgram) IsCall(n string) bool {
	i, ok := p.instrFor(n)
	return ok && i.isCall
}

func (p *callChainProgram) ResolveTargets(caller string, n string) []string {
	i, ok := p.instrFor(n)
	if !ok || !i.isCall {
		return nil
	}
	return []string{i.target}
}

func (p *callChainProgram) IsPhantomMethod(m string) bool {
	_, ok := p.methods[m]
	return !ok
}

func (p *callChainProgram) instrFor(n string) (instr, bool) {
	for _, body := range p.methods {
		if i, ok := body.instrs[n]; ok {
			return i, true
		}
	}
	return instr{}, false
}

type callChainAnalysis struct {
	valLattice
}

func (callChainAnalysis) BoundaryValue(entryPoint string) val {
	if entryPoint == "main" {
		return 0
	}
	return top
}

func (a callChainAnalysis) NormalFlow(ctx *contextcache.Context[string, string, val], node string, in val) val {
	i, _ := programInstrFor(ctx, node)
	if in == top {
		return i.delta
	}
	return in + i.delta
}

func (callChainAnalysis) CallEntry(ctx *contextcache.Context[string, string, val], target string, node string, in val) val {
	return in
}

func (callChainAnalysis) CallExit(ctx *contextcache.Context[string, string, val], target string, node string, calleeBoundaryValue val) val {
	return calleeBoundaryValue
}

func (callChainAnalysis) CallLocal(ctx *contextcache.Context[string, string, val], node string, in val) val {
	return in
}

// programInstrFor is a test-only hack letting the flow functions reach the
// instruction table without threading the *callChainProgram through
// FlowFunctions (which only ever sees the Context).
var activeProgram *callChainProgram

func programInstrFor(ctx *contextcache.Context[string, string, val], node string) (instr, bool) {
	return activeProgram.instrFor(node)
}
