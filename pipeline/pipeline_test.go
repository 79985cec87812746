/*
File    : numera/pipeline/pipeline_test.go
Project : Numera
*/
package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/numera-lang/numera/config"
	"github.com/stretchr/testify/assert"
)

// runProgram compiles and executes a source program with default
// configuration, returning stdout
func runProgram(t *testing.T, src string, input string) string {
	t.Helper()
	p := NewPipeline(src, nil)
	var out bytes.Buffer
	p.Stdout = &out
	p.Stdin = strings.NewReader(input)
	assert.NoError(t, p.Run())
	return out.String()
}

// represents an end-to-end scenario
// Src: source program
// Input: stdin contents
// Expected: stdout contents
type TestScenario struct {
	Name     string
	Src      string
	Input    string
	Expected string
}

// TestPipeline_Scenarios covers the concrete end-to-end behaviors of the
// compiler: folding, loops, branches, strength reduction, and CSE
func TestPipeline_Scenarios(t *testing.T) {

	tests := []TestScenario{
		{
			Name:     "constant folding through propagation",
			Src:      `procedure main is var x = 2; begin print(x+3); end`,
			Expected: "5\n",
		},
		{
			Name:     "counting loop",
			Src:      `procedure main is var i = 0; begin while i < 3 do print(i); i = i + 1; end end`,
			Expected: "0\n1\n2\n",
		},
		{
			Name:     "branch on comparison",
			Src:      `procedure main is var x = 7; begin if x > 5 then print("big"); else print("small"); end end`,
			Expected: "big\n",
		},
		{
			Name:     "input and strength reduction",
			Src:      `procedure main is var x = 0; begin x = in(); print(x * 4); end`,
			Input:    "6\n",
			Expected: "24\n",
		},
		{
			Name:     "common subexpression",
			Src:      `procedure main is var a = 1; var b = 2; begin print((a+b)*(a+b)); end`,
			Expected: "9\n",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got := runProgram(t, test.Src, test.Input)
			assert.Equal(t, test.Expected, got)
		})
	}
}

// TestPipeline_OptimizedIRSnapshots locks the optimized IR text of the
// scenario programs
func TestPipeline_OptimizedIRSnapshots(t *testing.T) {

	sources := map[string]string{
		"fold":   `procedure main is var x = 2; begin print(x+3); end`,
		"loop":   `procedure main is var i = 0; begin while i < 3 do print(i); i = i + 1; end end`,
		"branch": `procedure main is var x = 7; begin if x > 5 then print("big"); else print("small"); end end`,
		"shift":  `procedure main is var x = 0; begin x = in(); print(x * 4); end`,
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			p := NewPipeline(src, nil)
			assert.NoError(t, p.Compile())
			snaps.MatchSnapshot(t, p.OptimizedCode)
		})
	}
}

// TestPipeline_StrengthReductionApplied tests that x * 4 compiles to a
// shift in the optimized IR
func TestPipeline_StrengthReductionApplied(t *testing.T) {
	p := NewPipeline(`procedure main is var x = 0; begin x = in(); print(x * 4); end`, nil)
	assert.NoError(t, p.Compile())

	assert.Contains(t, p.OptimizedCode, "SHIFT_LEFT")
	assert.NotContains(t, p.OptimizedCode, "BINOP *")
}

// TestPipeline_InfiniteLoop tests the non-terminating scenario: the value
// is printed once, then the program spins forever and is cut off by the
// step bound
func TestPipeline_InfiniteLoop(t *testing.T) {
	src := `procedure main is var x = 0; begin while 1 == 1 do x = x + 1; if x == 3 then print(x); end end end`

	p := NewPipeline(src, nil)
	var out bytes.Buffer
	p.Stdout = &out

	halted, err := p.RunBounded(10000)
	assert.NoError(t, err)
	assert.False(t, halted)
	assert.Equal(t, "3\n", out.String())
}

// TestPipeline_SemanticPreservation tests that for programs without
// input, the optimized IR prints exactly what the unoptimized IR prints
func TestPipeline_SemanticPreservation(t *testing.T) {

	sources := []string{
		`procedure main is var x = 2; begin print(x+3); end`,
		`procedure main is var i = 0; begin while i < 3 do print(i); i = i + 1; end end`,
		`procedure main is var x = 7; begin if x > 5 then print("big"); else print("small"); end end`,
		`procedure main is var a = 1; var b = 2; begin print((a+b)*(a+b)); end`,
		`procedure main is var a = 5; var i = 3; begin while i > 0 do print(a*a + i); i = i - 1; end end`,
		`procedure main is var x = 2.5; begin print(x * 2); print(x + 0.5); end`,
		`procedure main is var i = 3; begin while i > 0 do if i == 2 then print("two"); else print(i); end i = i - 1; end end`,
	}

	disabled := config.DefaultConfig()
	disabled.Optimizer.ConstantPropagation = false
	disabled.Optimizer.DeadCode = false
	disabled.Optimizer.StrengthReduction = false
	disabled.Optimizer.LoopInvariant = false

	for _, src := range sources {
		optimized := runProgram(t, src, "")

		p := NewPipeline(src, disabled)
		var out bytes.Buffer
		p.Stdout = &out
		assert.NoError(t, p.Run())

		assert.Equal(t, out.String(), optimized, src)
	}
}

// represents a test case for stage attribution of fatal errors
type TestStageError struct {
	Src           string
	Input         string
	ExpectedStage string
}

// TestPipeline_StageAttribution tests that every failure names the stage
// it happened in
func TestPipeline_StageAttribution(t *testing.T) {

	tests := []TestStageError{
		{
			Src:           `procedure @ main`,
			ExpectedStage: "Lexical Analysis",
		},
		{
			Src:           `procedure main begin end`,
			ExpectedStage: "Parsing",
		},
		{
			Src:           `procedure main is begin print("a" + "b"); end`,
			ExpectedStage: "CodeGenerator",
		},
		{
			Src:           `procedure main is var x = 0; begin x = in(); print(1/x); end`,
			Input:         "0\n",
			ExpectedStage: "Execute",
		},
	}

	for _, test := range tests {
		p := NewPipeline(test.Src, nil)
		p.Stdout = &bytes.Buffer{}
		p.Stdin = strings.NewReader(test.Input)

		err := p.Run()
		assert.Error(t, err, test.Src)
		assert.Contains(t, err.Error(),
			"Error during compilation pipeline at stage "+test.ExpectedStage, test.Src)
	}
}

// TestPipeline_TraceAndDumps tests the trace banners and artifact dumps
func TestPipeline_TraceAndDumps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pipeline.TraceStages = true
	cfg.Pipeline.DumpTokens = true
	cfg.Pipeline.DumpAST = true
	cfg.Pipeline.DumpIR = true

	p := NewPipeline(`procedure main is var x = 2; begin print(x+3); end`, cfg)
	var out, trace bytes.Buffer
	p.Stdout = &out
	p.Trace = &trace
	assert.NoError(t, p.Run())

	assert.Equal(t, "5\n", out.String())

	dump := trace.String()
	assert.Contains(t, dump, "Starting Lexical Analysis...")
	assert.Contains(t, dump, "Starting Parsing...")
	assert.Contains(t, dump, "Starting CodeGenerator...")
	assert.Contains(t, dump, "Starting Optimizer...")
	assert.Contains(t, dump, "Starting Execute...")
	assert.Contains(t, dump, "Tokens Generated:")
	assert.Contains(t, dump, "AST Generated:")
	assert.Contains(t, dump, "Generated Code:")
	assert.Contains(t, dump, "Optimized Code:")
	assert.Contains(t, dump, "ALLOC x")
}

// TestPipeline_DisabledOptimizerStillRuns tests that a fully disabled
// optimizer leaves a runnable program
func TestPipeline_DisabledOptimizerStillRuns(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Optimizer.ConstantPropagation = false
	cfg.Optimizer.DeadCode = false
	cfg.Optimizer.StrengthReduction = false
	cfg.Optimizer.LoopInvariant = false

	p := NewPipeline(`procedure main is var x = 2; begin print(x+3); end`, cfg)
	var out bytes.Buffer
	p.Stdout = &out
	assert.NoError(t, p.Run())

	assert.Equal(t, "5\n", out.String())
	assert.Equal(t, p.GeneratedCode, p.OptimizedCode)
}
