/*
File    : numera/optimizer/optimizer.go
Project : Numera
*/

// Package optimizer applies the classical optimization passes to the
// linear IR produced by the generator. Constant folding and
// common-subexpression elimination already ran inline during generation;
// the passes here are constant propagation, dead-code elimination,
// strength reduction, and loop-invariant code motion, in that order.
//
// The ordering matters: propagation creates dead temps for elimination to
// collect, and elimination shrinks the instruction set motion has to
// consider. Each pass runs exactly once, in order.
package optimizer

import "github.com/numera-lang/numera/ir"

// Instruction is the IR instruction type the passes operate on.
type Instruction = ir.Instruction

// Program wraps the instruction sequence a pass pipeline transforms.
type Program struct {
	Instructions []Instruction
}

// Pass represents a single optimization transformation over the flat IR.
type Pass interface {
	// Name returns the pass name used in trace output
	Name() string
	// Apply transforms the instruction sequence and reports whether any
	// change was made
	Apply(program *Program) bool
}

// Options selects which passes run. The zero value disables everything;
// DefaultOptions enables the full pipeline.
type Options struct {
	ConstantPropagation bool
	DeadCode            bool
	StrengthReduction   bool
	LoopInvariant       bool
}

// DefaultOptions enables every pass.
func DefaultOptions() Options {
	return Options{
		ConstantPropagation: true,
		DeadCode:            true,
		StrengthReduction:   true,
		LoopInvariant:       true,
	}
}

// Optimize runs the configured pass pipeline over an instruction sequence
// and returns the optimized sequence. The input slice is not modified.
func Optimize(instructions []Instruction, options Options) []Instruction {
	program := &Program{Instructions: append([]Instruction(nil), instructions...)}

	for _, pass := range buildPipeline(options) {
		pass.Apply(program)
	}
	return program.Instructions
}

// buildPipeline assembles the enabled passes in their fixed order.
func buildPipeline(options Options) []Pass {
	passes := make([]Pass, 0, 4)
	if options.ConstantPropagation {
		passes = append(passes, &ConstantPropagation{})
	}
	if options.DeadCode {
		passes = append(passes, &DeadCodeElimination{})
	}
	if options.StrengthReduction {
		passes = append(passes, &StrengthReduction{})
	}
	if options.LoopInvariant {
		passes = append(passes, &LoopInvariantMotion{})
	}
	return passes
}
