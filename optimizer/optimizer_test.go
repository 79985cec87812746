/*
File    : numera/optimizer/optimizer_test.go
Project : Numera
*/
package optimizer

import (
	"strings"
	"testing"

	"github.com/numera-lang/numera/ir"
	"github.com/stretchr/testify/assert"
)

// optimizeText runs the full pipeline over textual IR and returns the
// optimized text
func optimizeText(code string) string {
	return ir.Format(Optimize(ir.Parse(code), DefaultOptions()))
}

// TestOptimizer_ConstantPropagation_FoldsThrough tests that propagation
// chases constants through stores and loads and folds the arithmetic
func TestOptimizer_ConstantPropagation_FoldsThrough(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC x",
		"LOAD_CONST 2, t1",
		"STORE t1, x",
		"LOAD x, t2",
		"LOAD_CONST 3, t3",
		"BINOP +, t2, t3, t4",
		"PRINT t4",
	}, "\n")

	// everything collapses to the printed constant
	assert.Equal(t, "PRINT 5", optimizeText(code))
}

// TestOptimizer_ConstantPropagation_ClearsAtLabels tests that both maps
// are dropped at every label
func TestOptimizer_ConstantPropagation_ClearsAtLabels(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC x",
		"LOAD_CONST 2, t1",
		"STORE t1, x",
		"LABEL end_label_1",
		"LOAD x, t2",
		"PRINT t2",
	}, "\n")

	optimized := optimizeText(code)
	// after the label x is unknown again, so the LOAD survives
	assert.Contains(t, optimized, "LOAD x, t2")
	assert.Contains(t, optimized, "PRINT t2")
}

// TestOptimizer_ConstantPropagation_Branches tests JUMP_IF_FALSE rewriting
// on known conditions
func TestOptimizer_ConstantPropagation_Branches(t *testing.T) {

	// truthy condition: the branch disappears
	code := strings.Join([]string{
		"LOAD_CONST 1, t1",
		"JUMP_IF_FALSE t1, end_label_1",
		"LOAD_CONST 7, t2",
		"PRINT t2",
		"LABEL end_label_1",
	}, "\n")
	optimized := optimizeText(code)
	assert.NotContains(t, optimized, "JUMP_IF_FALSE")
	assert.NotContains(t, optimized, "JUMP ")
	assert.Contains(t, optimized, "PRINT 7")

	// falsy condition: the branch becomes unconditional
	code = strings.Join([]string{
		"LOAD_CONST 0, t1",
		"JUMP_IF_FALSE t1, end_label_1",
		"LOAD_CONST 7, t2",
		"PRINT t2",
		"LABEL end_label_1",
	}, "\n")
	optimized = optimizeText(code)
	assert.Contains(t, optimized, "JUMP end_label_1")
	assert.NotContains(t, optimized, "JUMP_IF_FALSE")
}

// TestOptimizer_DeadCode_UnusedVariable tests removal of stores and the
// allocation of a variable that is never loaded
func TestOptimizer_DeadCode_UnusedVariable(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC unused",
		"INPUT t1",
		"STORE t1, unused",
		"INPUT t2",
		"PRINT t2",
	}, "\n")

	optimized := optimizeText(code)
	assert.NotContains(t, optimized, "ALLOC unused")
	assert.NotContains(t, optimized, "STORE")
	// the reads themselves stay: INPUT has a side effect
	assert.Equal(t, 2, strings.Count(optimized, "INPUT"))
}

// TestOptimizer_DeadCode_RedundantStores tests that a variable with fewer
// uses than assignments keeps only its last store
func TestOptimizer_DeadCode_RedundantStores(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC x",
		"INPUT t1",
		"STORE t1, x",
		"INPUT t2",
		"STORE t2, x",
		"LOAD x, t3",
		"PRINT t3",
	}, "\n")

	optimized := optimizeText(code)
	assert.Equal(t, 1, strings.Count(optimized, "STORE"))
	assert.Contains(t, optimized, "STORE t2, x")
}

// TestOptimizer_StrengthReduction tests the power-of-two rewrites on both
// operand positions, and the cases that must not fire
func TestOptimizer_StrengthReduction(t *testing.T) {
	code := strings.Join([]string{
		"INPUT t1",
		"BINOP *, t1, 4, t2",
		"PRINT t2",
		"BINOP *, 8, t1, t3",
		"PRINT t3",
		"BINOP *, t1, 3, t4",
		"PRINT t4",
		"BINOP *, t1, t1, t5",
		"PRINT t5",
	}, "\n")

	optimized := optimizeText(code)
	assert.Contains(t, optimized, "SHIFT_LEFT t1, 2, t2")
	assert.Contains(t, optimized, "SHIFT_LEFT t1, 3, t3")
	// 3 is not a power of two, t1*t1 has no literal operand
	assert.Contains(t, optimized, "BINOP *, t1, 3, t4")
	assert.Contains(t, optimized, "BINOP *, t1, t1, t5")
}

// TestOptimizer_StrengthReduction_NoDivision tests that division is never
// rewritten
func TestOptimizer_StrengthReduction_NoDivision(t *testing.T) {
	code := strings.Join([]string{
		"INPUT t1",
		"BINOP /, t1, 4, t2",
		"PRINT t2",
	}, "\n")

	optimized := optimizeText(code)
	assert.Contains(t, optimized, "BINOP /, t1, 4, t2")
}

// TestOptimizer_LoopInvariantMotion tests that invariant loads and
// arithmetic hoist out of the loop while variant work stays
func TestOptimizer_LoopInvariantMotion(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC i",
		"ALLOC a",
		"INPUT t1",
		"STORE t1, a",
		"INPUT t2",
		"STORE t2, i",
		"LABEL start_label_1",
		"LOAD i, t3",
		"JUMP_IF_FALSE t3, end_label_1",
		"LOAD a, t4",
		"LOAD a, t5",
		"BINOP *, t4, t5, t6",
		"PRINT t6",
		"LOAD i, t7",
		"BINOP -, t7, 1, t8",
		"STORE t8, i",
		"JUMP start_label_1",
		"LABEL end_label_1",
	}, "\n")

	optimized := Optimize(ir.Parse(code), DefaultOptions())

	// find positions of the interesting instructions
	positions := make(map[string]int)
	for index, inst := range optimized {
		positions[inst.String()] = index
	}

	startLabel := positions["LABEL start_label_1"]

	// the a*a computation moved above the loop entry
	assert.Less(t, positions["LOAD a, t4"], startLabel)
	assert.Less(t, positions["LOAD a, t5"], startLabel)
	assert.Less(t, positions["BINOP *, t4, t5, t6"], startLabel)

	// i is assigned inside the loop, so everything touching it stays
	assert.Greater(t, positions["LOAD i, t3"], startLabel)
	assert.Greater(t, positions["BINOP -, t7, 1, t8"], startLabel)
	assert.Greater(t, positions["STORE t8, i"], startLabel)

	// side effects never move
	assert.Greater(t, positions["PRINT t6"], startLabel)
}

// TestOptimizer_LoopInvariantMotion_Soundness tests that nothing hoisted
// references a variable assigned inside its loop
func TestOptimizer_LoopInvariantMotion_Soundness(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC i",
		"INPUT t1",
		"STORE t1, i",
		"LABEL start_label_1",
		"LOAD i, t2",
		"JUMP_IF_FALSE t2, end_label_1",
		"LOAD i, t3",
		"BINOP +, t3, 1, t4",
		"STORE t4, i",
		"JUMP start_label_1",
		"LABEL end_label_1",
	}, "\n")

	optimized := Optimize(ir.Parse(code), DefaultOptions())

	// region bounds after optimization
	start, end := -1, -1
	for index, inst := range optimized {
		if inst.Op == ir.LABEL && inst.Args[0] == "start_label_1" {
			start = index
		}
		if inst.Op == ir.LABEL && inst.Args[0] == "end_label_1" {
			end = index
		}
	}
	assert.GreaterOrEqual(t, start, 0)
	assert.Greater(t, end, start)

	// everything referencing i must still be inside the region
	for index, inst := range optimized[:start] {
		for _, src := range inst.Sources() {
			assert.NotEqual(t, "i", src, "instruction %d hoisted: %s", index, inst.String())
		}
	}
}

// TestOptimizer_LoopInvariantMotion_BranchInLoop tests that an if/else
// inside the loop (with its own end label) does not truncate the region:
// the counter update after the branch still pins the condition inside
func TestOptimizer_LoopInvariantMotion_BranchInLoop(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC i",
		"INPUT t1",
		"STORE t1, i",
		"LABEL start_label_1",
		"LOAD i, t2",
		"JUMP_IF_FALSE t2, end_label_1",
		"LOAD i, t3",
		"JUMP_IF_FALSE t3, else_label_1",
		"PRINT 1",
		"JUMP end_label_2",
		"LABEL else_label_1",
		"PRINT 2",
		"LABEL end_label_2",
		"LOAD i, t4",
		"BINOP -, t4, 1, t5",
		"STORE t5, i",
		"JUMP start_label_1",
		"LABEL end_label_1",
	}, "\n")

	optimized := Optimize(ir.Parse(code), Options{LoopInvariant: true})

	// i is assigned inside the loop (after the inner branch), so none of
	// the loads of i may move above the loop entry
	start := -1
	for index, inst := range optimized {
		if inst.Op == ir.LABEL && inst.Args[0] == "start_label_1" {
			start = index
		}
	}
	for _, inst := range optimized[:start] {
		assert.NotEqual(t, ir.LOAD, inst.Op, inst.String())
	}
}

// TestOptimizer_LoopInvariantMotion_UnmatchedStart tests that a start
// label with no end label after it moves nothing
func TestOptimizer_LoopInvariantMotion_UnmatchedStart(t *testing.T) {
	code := strings.Join([]string{
		"LABEL start_label_1",
		"LOAD_CONST 1, t1",
		"PRINT t1",
		"JUMP start_label_1",
	}, "\n")

	optimized := Optimize(ir.Parse(code), Options{LoopInvariant: true})
	assert.Equal(t, ir.Parse(code), optimized)
}

// TestOptimizer_DisabledPasses tests that the zero Options value leaves
// the instruction stream untouched
func TestOptimizer_DisabledPasses(t *testing.T) {
	code := strings.Join([]string{
		"ALLOC x",
		"LOAD_CONST 2, t1",
		"STORE t1, x",
		"LOAD x, t2",
		"PRINT t2",
	}, "\n")

	optimized := Optimize(ir.Parse(code), Options{})
	assert.Equal(t, ir.Parse(code), optimized)
}
