/*
File    : numera/optimizer/strength.go
Project : Numera
*/
package optimizer

import (
	"math/big"

	"github.com/numera-lang/numera/ir"
	"github.com/numera-lang/numera/objects"
)

// StrengthReduction rewrites multiplications by a positive power-of-two
// integer literal into left shifts: BINOP *, x, 2^k, t and
// BINOP *, 2^k, x, t both become SHIFT_LEFT x, k, t. Division is left
// alone: it carries the host's numeric semantics and is not rewritten.
type StrengthReduction struct{}

// Name returns the pass name
func (p *StrengthReduction) Name() string { return "strength-reduction" }

// Apply rewrites eligible multiplications in a single linear scan.
func (p *StrengthReduction) Apply(program *Program) bool {
	changed := false

	for index, inst := range program.Instructions {
		if inst.Op != ir.BINOP || inst.Args[0] != "*" {
			continue
		}

		left, right, dest := inst.Args[1], inst.Args[2], inst.Args[3]
		if shift, ok := powerOfTwoExponent(right); ok {
			program.Instructions[index] = ir.NewInstruction(ir.SHIFT_LEFT, left, shift, dest)
			changed = true
		} else if shift, ok := powerOfTwoExponent(left); ok {
			program.Instructions[index] = ir.NewInstruction(ir.SHIFT_LEFT, right, shift, dest)
			changed = true
		}
	}
	return changed
}

// powerOfTwoExponent reports whether an operand is a positive
// power-of-two integer literal, and returns log2 of it in literal form.
func powerOfTwoExponent(operand string) (string, bool) {
	if ir.IsTemp(operand) {
		return "", false
	}
	value, ok := objects.ParseLiteral(operand).(*objects.Integer)
	if !ok {
		return "", false
	}
	n := value.Value
	if n.Sign() <= 0 {
		return "", false
	}
	// exactly one set bit
	minusOne := new(big.Int).Sub(n, big.NewInt(1))
	if new(big.Int).And(n, minusOne).Sign() != 0 {
		return "", false
	}
	return big.NewInt(int64(n.BitLen() - 1)).String(), true
}
