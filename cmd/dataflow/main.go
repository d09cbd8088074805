// Command dataflow runs the context-sensitive sign analysis over a
// JSON-described whole program and prints its meet-over-valid-paths
// solution.
//
// Usage:
//
//	dataflow -program prog.json [flags]
//
// Flags:
//
//	-program string
//	    Path to a JSON program description (required, see schema.json).
//	-direction string
//	    Analysis direction, "forward" or "backward" (default "forward").
//	-verbose
//	    Emit per-context diagnostics during analysis.
//	-free-on-the-fly
//	    Reclaim context memory as soon as it becomes unreachable. Disables
//	    the printed meet-over-valid-paths solution, since reclaimed contexts
//	    no longer have per-node tables.
//	-log-level string
//	    debug, info, warn, or error (default "info").
//	-log-pretty
//	    Human-readable log output instead of JSON.
//
// The program description's shape is validated against an embedded JSON
// schema before it is decoded, so a malformed input fails fast with field-
// level errors instead of a confusing decode or analysis failure.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ctxflow/dataflow/examples/sign"
	"github.com/ctxflow/dataflow/pkg/engine"
	"github.com/ctxflow/dataflow/pkg/logging"
	"github.com/ctxflow/dataflow/pkg/observer"
	"github.com/ctxflow/dataflow/pkg/types"
)

//go:embed schema.json
var programSchema []byte

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	programPath := flag.String("program", "", "path to a JSON program description (required)")
	direction := flag.String("direction", "forward", "analysis direction: forward or backward")
	verbose := flag.Bool("verbose", false, "emit per-context diagnostics")
	freeOnTheFly := flag.Bool("free-on-the-fly", false, "reclaim context memory once unreachable")
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	logPretty := flag.Bool("log-pretty", false, "human-readable log output instead of JSON")
	flag.Parse()

	if *programPath == "" {
		flag.Usage()
		return fmt.Errorf("dataflow: -program is required")
	}

	data, err := os.ReadFile(*programPath)
	if err != nil {
		return fmt.Errorf("dataflow: reading %s: %w", *programPath, err)
	}

	if err := validateProgram(data); err != nil {
		return err
	}

	program, err := sign.LoadProgramJSON(data)
	if err != nil {
		return fmt.Errorf("dataflow: %w", err)
	}

	dir, err := parseDirection(*direction)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:  *logLevel,
		Output: os.Stderr,
		Pretty: *logPretty,
	})
	if err != nil {
		return fmt.Errorf("dataflow: %w", err)
	}

	analysis := sign.NewAnalysis(program)
	eng := engine.New[sign.Method, sign.Node, sign.State](program, analysis, dir, engine.Config{
		Verbose:             *verbose,
		FreeResultsOnTheFly: *freeOnTheFly,
	})
	eng.SetLogger(logger)
	if *verbose {
		eng.RegisterObserver(observer.NewConsoleObserver())
	}

	if err := eng.DoAnalysis(context.Background()); err != nil {
		return fmt.Errorf("dataflow: analysis failed: %w", err)
	}

	if *freeOnTheFly {
		fmt.Fprintln(os.Stderr, "dataflow: -free-on-the-fly set, skipping meet-over-valid-paths solution")
		return nil
	}

	solution := eng.GetMeetOverValidPathsSolution()
	return printSolution(solution)
}

func parseDirection(s string) (types.Direction, error) {
	switch s {
	case "forward":
		return types.Forward, nil
	case "backward":
		return types.Backward, nil
	default:
		return 0, fmt.Errorf("dataflow: unknown -direction %q, want forward or backward", s)
	}
}

func validateProgram(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(programSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("dataflow: validating program: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msg := fmt.Sprintf("dataflow: program failed schema validation (%d errors):", len(result.Errors()))
	for _, e := range result.Errors() {
		msg += fmt.Sprintf("\n  - %s", e)
	}
	return fmt.Errorf("%s", msg)
}

func printSolution(solution engine.Solution[sign.Node, sign.State]) error {
	out := struct {
		ValueBefore map[sign.Node]map[string]string `json:"valueBefore"`
		ValueAfter  map[sign.Node]map[string]string `json:"valueAfter"`
	}{
		ValueBefore: renderStates(solution.ValueBefore),
		ValueAfter:  renderStates(solution.ValueAfter),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderStates(states map[sign.Node]sign.State) map[sign.Node]map[string]string {
	out := make(map[sign.Node]map[string]string, len(states))
	for n, s := range states {
		rendered := make(map[string]string, len(s))
		for variable, v := range s {
			rendered[variable] = v.String()
		}
		out[n] = rendered
	}
	return out
}
