/*
File    : numera/optimizer/licm.go
Project : Numera
*/
package optimizer

import (
	"strings"

	"github.com/numera-lang/numera/ir"
)

// LoopInvariantMotion hoists invariant computations out of loop regions.
// A region is bounded by a LABEL start_label_* and the first LABEL
// end_label_* after the last JUMP back to that start label (see
// nextRegion); a start label with no such end label bounds an empty region
// and nothing moves.
//
// Within a region, the set of variables assigned inside it (STORE targets
// and ALLOCs) is computed first. A value-producing instruction is hoisted
// just before the start label, preserving relative order, when it
// references neither an assigned variable nor a temp defined by an
// instruction that stays behind. Control flow (JUMP, JUMP_IF_FALSE,
// LABEL) and side effects (PRINT, INPUT, STORE, ALLOC) never move.
type LoopInvariantMotion struct{}

// Name returns the pass name
func (p *LoopInvariantMotion) Name() string { return "loop-invariant-motion" }

// Apply processes each loop region once, outermost scan order.
func (p *LoopInvariantMotion) Apply(program *Program) bool {
	changed := false
	processed := make(map[string]bool)

	for {
		start, end := nextRegion(program.Instructions, processed)
		if start < 0 {
			break
		}
		processed[program.Instructions[start].Args[0]] = true
		if p.hoistRegion(program, start, end) {
			changed = true
		}
	}
	return changed
}

// nextRegion finds the first unprocessed start label with its matching
// end label. The match is anchored on the loop's back-jump: the region
// closes at the first end label after the last JUMP back to the start
// label, so that an if/else inside the loop (with its own end label) does
// not truncate the region. A start label with no end label after that
// point bounds an empty region. Returns start = -1 when no region
// remains.
func nextRegion(instructions []Instruction, processed map[string]bool) (int, int) {
	for index, inst := range instructions {
		if inst.Op != ir.LABEL || !strings.HasPrefix(inst.Args[0], "start_label_") {
			continue
		}
		if processed[inst.Args[0]] {
			continue
		}

		from := index
		for j := index + 1; j < len(instructions); j++ {
			next := instructions[j]
			if next.Op == ir.JUMP && next.Args[0] == inst.Args[0] {
				from = j
			}
		}
		for j := from + 1; j < len(instructions); j++ {
			next := instructions[j]
			if next.Op == ir.LABEL && strings.HasPrefix(next.Args[0], "end_label_") {
				return index, j
			}
		}
		// no matching end label after it: the region is empty
		processed[inst.Args[0]] = true
	}
	return -1, -1
}

// hoistRegion moves the invariant instructions of one region to just
// before its start label.
func (p *LoopInvariantMotion) hoistRegion(program *Program, start, end int) bool {
	region := program.Instructions[start+1 : end]

	// variables assigned inside the region
	assigned := make(map[string]bool)
	for _, inst := range region {
		switch inst.Op {
		case ir.STORE:
			assigned[inst.Args[1]] = true
		case ir.ALLOC:
			assigned[inst.Args[0]] = true
		}
	}

	// Walk the region in order. An instruction stays when it is control
	// flow, has a side effect, or reads an assigned variable or a temp
	// defined by an earlier staying instruction; otherwise it hoists.
	// Temps are defined before use, so one forward pass settles this.
	tainted := make(map[string]bool)
	hoisted := make([]Instruction, 0)
	kept := make([]Instruction, 0, len(region))

	for _, inst := range region {
		if !isHoistableOpcode(inst.Op) || readsAny(inst, assigned, tainted) {
			kept = append(kept, inst)
			if dest, ok := inst.Dest(); ok {
				tainted[dest] = true
			}
			continue
		}
		hoisted = append(hoisted, inst)
	}

	if len(hoisted) == 0 {
		return false
	}

	out := make([]Instruction, 0, len(program.Instructions))
	out = append(out, program.Instructions[:start]...)
	out = append(out, hoisted...)
	out = append(out, program.Instructions[start]) // the start label
	out = append(out, kept...)
	out = append(out, program.Instructions[end:]...)
	program.Instructions = out
	return true
}

// isHoistableOpcode reports whether an opcode is a pure value producer.
func isHoistableOpcode(op ir.Opcode) bool {
	switch op {
	case ir.LOAD_CONST, ir.LOAD, ir.BINOP, ir.UNARY, ir.SHIFT_LEFT:
		return true
	}
	return false
}

// readsAny reports whether an instruction reads any of the given variable
// names or tainted temps.
func readsAny(inst Instruction, assigned, tainted map[string]bool) bool {
	for _, src := range inst.Sources() {
		if assigned[src] || tainted[src] {
			return true
		}
	}
	return false
}
