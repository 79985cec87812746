/*
File    : numera/optimizer/deadcode.go
Project : Numera
*/
package optimizer

import (
	"github.com/numera-lang/numera/ir"
)

// DeadCodeElimination removes work whose result can never be observed:
//
//   - a variable with zero LOAD uses loses all its STOREs and its ALLOC;
//   - a variable with fewer uses than assignments keeps only its last
//     STORE;
//   - a LOAD_CONST whose destination temp is never referenced by a later
//     instruction is removed.
//
// Use and assignment counts are recomputed from the instruction sequence
// being optimized: constant propagation rewrites LOADs into LOAD_CONSTs,
// so the generator's emission-time tables undercount nothing but may
// overcount uses.
type DeadCodeElimination struct{}

// Name returns the pass name
func (p *DeadCodeElimination) Name() string { return "dead-code-elimination" }

// Apply removes dead stores, dead allocations, and dead constant loads.
func (p *DeadCodeElimination) Apply(program *Program) bool {
	instructions := program.Instructions
	changed := false

	loads := make(map[string]int)
	storeSites := make(map[string][]int)
	for index, inst := range instructions {
		switch inst.Op {
		case ir.LOAD:
			loads[inst.Args[0]]++
		case ir.STORE:
			storeSites[inst.Args[1]] = append(storeSites[inst.Args[1]], index)
		}
	}

	drop := make(map[int]bool)
	for index, inst := range instructions {
		switch inst.Op {
		case ir.ALLOC:
			if loads[inst.Args[0]] == 0 {
				drop[index] = true
			}
		case ir.STORE:
			name := inst.Args[1]
			sites := storeSites[name]
			if loads[name] == 0 {
				drop[index] = true
			} else if loads[name] < len(sites) && index != sites[len(sites)-1] {
				// fewer uses than assignments: keep only the last store
				drop[index] = true
			}
		}
	}

	kept := make([]Instruction, 0, len(instructions))
	for index, inst := range instructions {
		if drop[index] {
			changed = true
			continue
		}
		kept = append(kept, inst)
	}

	// Dead constant loads: a LOAD_CONST whose temp no later instruction
	// reads. Removing dead stores above is what typically strands them.
	referenced := func(from int, temp string) bool {
		for i := from; i < len(kept); i++ {
			for _, src := range kept[i].Sources() {
				if src == temp {
					return true
				}
			}
		}
		return false
	}

	out := make([]Instruction, 0, len(kept))
	for index, inst := range kept {
		if inst.Op == ir.LOAD_CONST && !referenced(index+1, inst.Args[1]) {
			changed = true
			continue
		}
		out = append(out, inst)
	}

	program.Instructions = out
	return changed
}
