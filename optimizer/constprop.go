/*
File    : numera/optimizer/constprop.go
Project : Numera
*/
package optimizer

import (
	"strings"

	"github.com/numera-lang/numera/ir"
	"github.com/numera-lang/numera/objects"
)

// ConstantPropagation is a forward scan over the linear IR maintaining two
// mappings: variable names to known constant values, and temp names to
// known constant values.
//
//   - LOAD_CONST seeds the temp map; ALLOC seeds the variable map with 0.
//   - STORE from a known-constant operand writes the variable map.
//   - LOAD of a variable in the variable map is rewritten to LOAD_CONST.
//   - BINOP/UNARY/SHIFT_LEFT whose operands are all known constants are
//     rewritten to LOAD_CONST of the folded result; otherwise any known
//     operand is substituted by its literal form.
//   - JUMP_IF_FALSE on a known-constant condition becomes a JUMP (falsy)
//     or disappears (truthy).
//   - Both maps are cleared at every LABEL: labels are join points whose
//     incoming values are unknown.
type ConstantPropagation struct{}

// Name returns the pass name
func (p *ConstantPropagation) Name() string { return "constant-propagation" }

// Apply runs the forward scan.
func (p *ConstantPropagation) Apply(program *Program) bool {
	vars := make(map[string]objects.NumeraObject)
	temps := make(map[string]objects.NumeraObject)
	changed := false

	// resolve returns the known constant value of an operand: a temp from
	// the temp map, a variable from the variable map, or a literal parsed
	// directly. Unquoted non-numeric operands are variable names, never
	// string constants.
	resolve := func(operand string) (objects.NumeraObject, bool) {
		if ir.IsTemp(operand) {
			val, ok := temps[operand]
			return val, ok
		}
		if strings.HasPrefix(operand, `"`) {
			return objects.ParseLiteral(operand), true
		}
		val := objects.ParseLiteral(operand)
		if val.GetType() != objects.StringType {
			return val, true
		}
		known, ok := vars[operand]
		return known, ok
	}

	// substitute rewrites a known-constant operand into its literal form.
	substitute := func(inst *Instruction, argIndex int) {
		operand := inst.Args[argIndex]
		if strings.HasPrefix(operand, `"`) {
			return
		}
		if val, ok := resolve(operand); ok {
			literal := objects.FormatLiteral(val)
			if literal != operand {
				inst.Args[argIndex] = literal
				changed = true
			}
		}
	}

	out := make([]Instruction, 0, len(program.Instructions))

	for _, inst := range program.Instructions {
		// operate on a private operand slice so rewrites never reach the
		// caller's unoptimized instructions
		inst.Args = append([]string(nil), inst.Args...)

		switch inst.Op {
		case ir.LABEL:
			vars = make(map[string]objects.NumeraObject)
			temps = make(map[string]objects.NumeraObject)

		case ir.ALLOC:
			// a fresh cell holds integer 0
			vars[inst.Args[0]] = objects.NewInteger(0)

		case ir.LOAD_CONST:
			temps[inst.Args[1]] = objects.ParseLiteral(inst.Args[0])

		case ir.LOAD:
			name, dest := inst.Args[0], inst.Args[1]
			if val, ok := vars[name]; ok {
				inst = ir.NewInstruction(ir.LOAD_CONST, objects.FormatLiteral(val), dest)
				temps[dest] = val
				changed = true
			} else {
				delete(temps, dest)
			}

		case ir.STORE:
			substitute(&inst, 0)
			if val, ok := resolve(inst.Args[0]); ok {
				vars[inst.Args[1]] = val
			} else {
				delete(vars, inst.Args[1])
			}

		case ir.BINOP:
			left, leftKnown := resolve(inst.Args[1])
			right, rightKnown := resolve(inst.Args[2])
			dest := inst.Args[3]
			if leftKnown && rightKnown {
				if folded, err := objects.ApplyBinary(inst.Args[0], left, right); err == nil {
					inst = ir.NewInstruction(ir.LOAD_CONST, objects.FormatLiteral(folded), dest)
					temps[dest] = folded
					changed = true
					break
				}
			}
			substitute(&inst, 1)
			substitute(&inst, 2)
			delete(temps, dest)

		case ir.UNARY:
			dest := inst.Args[2]
			if val, ok := resolve(inst.Args[1]); ok {
				if folded, err := objects.ApplyUnary(inst.Args[0], val); err == nil {
					inst = ir.NewInstruction(ir.LOAD_CONST, objects.FormatLiteral(folded), dest)
					temps[dest] = folded
					changed = true
					break
				}
			}
			substitute(&inst, 1)
			delete(temps, dest)

		case ir.SHIFT_LEFT:
			dest := inst.Args[2]
			value, valueKnown := resolve(inst.Args[0])
			if valueKnown {
				if folded, err := objects.ShiftLeft(value, objects.ParseLiteral(inst.Args[1])); err == nil {
					inst = ir.NewInstruction(ir.LOAD_CONST, objects.FormatLiteral(folded), dest)
					temps[dest] = folded
					changed = true
					break
				}
			}
			substitute(&inst, 0)
			delete(temps, dest)

		case ir.JUMP_IF_FALSE:
			if val, ok := resolve(inst.Args[0]); ok {
				changed = true
				if objects.Truthy(val) {
					// the branch can never be taken
					continue
				}
				inst = ir.NewInstruction(ir.JUMP, inst.Args[1])
			} else {
				substitute(&inst, 0)
			}

		case ir.PRINT:
			substitute(&inst, 0)

		case ir.INPUT:
			delete(temps, inst.Args[0])
		}

		out = append(out, inst)
	}

	program.Instructions = out
	return changed
}
