/*
File    : numera/ir/instruction.go
Project : Numera
*/

// Package ir contains the three-address intermediate representation.
//
// The program we are given is parsed into a series of tokens, the tokens
// into an AST, and the AST is then lowered into a flat ordered sequence of
// these instructions. The textual form defined here is both the in-memory
// and on-wire representation between the optimizer and the virtual
// machine, so formatting and parsing live in one place and must be exact
// inverses of each other.
package ir

import (
	"regexp"
	"strings"
)

// Opcode holds the operation name of an instruction.
type Opcode string

const (
	// ALLOC reserves a cell for a variable, initialized to integer 0.
	ALLOC Opcode = "ALLOC"

	// LOAD_CONST sets a temp to a literal value.
	LOAD_CONST Opcode = "LOAD_CONST"

	// LOAD copies a variable into a temp.
	LOAD Opcode = "LOAD"

	// STORE writes the value of a temp or literal into a variable.
	STORE Opcode = "STORE"

	// BINOP applies a binary operator to two operands into a temp.
	BINOP Opcode = "BINOP"

	// UNARY applies a unary operator to one operand into a temp.
	UNARY Opcode = "UNARY"

	// SHIFT_LEFT shifts an integer operand left by a literal bit count.
	SHIFT_LEFT Opcode = "SHIFT_LEFT"

	// PRINT writes a value to standard output followed by a newline.
	PRINT Opcode = "PRINT"

	// INPUT reads one line and parses it as integer, else float, else string.
	INPUT Opcode = "INPUT"

	// JUMP branches unconditionally to a label.
	JUMP Opcode = "JUMP"

	// JUMP_IF_FALSE branches to a label if the operand is falsy.
	JUMP_IF_FALSE Opcode = "JUMP_IF_FALSE"

	// LABEL marks a branch target.
	LABEL Opcode = "LABEL"
)

// Instruction holds a single three-address instruction: an opcode and its
// operands in order. Operand syntax: temps are written t<N>, variables are
// bare identifiers, integer and floating literals are unquoted, and string
// literals keep their double quotes.
type Instruction struct {

	// Op holds the operation this instruction performs
	Op Opcode

	// Args holds the operands, in the order defined for the opcode
	Args []string
}

// NewInstruction builds an instruction from an opcode and its operands.
func NewInstruction(op Opcode, args ...string) Instruction {
	return Instruction{Op: op, Args: args}
}

// String renders the instruction in its textual form: the opcode, a space,
// and the comma-separated operands.
//
// Example:
//
//	BINOP +, t1, t2, t3
func (inst Instruction) String() string {
	if len(inst.Args) == 0 {
		return string(inst.Op)
	}
	return string(inst.Op) + " " + strings.Join(inst.Args, ", ")
}

// operandPattern splits an instruction line into opcode and operands.
// Quoted strings are kept whole; everything else breaks on whitespace and
// commas.
var operandPattern = regexp.MustCompile(`"[^"]*"|[^\s,]+`)

// Format renders a whole instruction sequence as IR text, one instruction
// per line.
func Format(instructions []Instruction) string {
	lines := make([]string, 0, len(instructions))
	for _, inst := range instructions {
		lines = append(lines, inst.String())
	}
	return strings.Join(lines, "\n")
}

// Parse reads IR text back into an instruction sequence. Lines beginning
// with '#' and blank lines are comments and padding and are skipped. Parse
// performs no validation of opcodes or operand counts; an unknown opcode
// surfaces as a fatal error when the virtual machine dispatches it.
func Parse(code string) []Instruction {
	instructions := make([]Instruction, 0)
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := operandPattern.FindAllString(line, -1)
		instructions = append(instructions, Instruction{
			Op:   Opcode(parts[0]),
			Args: parts[1:],
		})
	}
	return instructions
}

// IsTemp reports whether an operand names a temp (t followed by digits).
// Anything else is a variable name or a literal.
func IsTemp(operand string) bool {
	if len(operand) < 2 || operand[0] != 't' {
		return false
	}
	for i := 1; i < len(operand); i++ {
		if operand[i] < '0' || operand[i] > '9' {
			return false
		}
	}
	return true
}

// Dest returns the destination temp of a value-producing instruction and
// whether it has one. Only LOAD_CONST, LOAD, BINOP, UNARY, SHIFT_LEFT and
// INPUT define temps; every other opcode produces no value.
func (inst Instruction) Dest() (string, bool) {
	switch inst.Op {
	case LOAD_CONST, LOAD, BINOP, UNARY, SHIFT_LEFT, INPUT:
		if len(inst.Args) == 0 {
			return "", false
		}
		return inst.Args[len(inst.Args)-1], true
	}
	return "", false
}

// Sources returns the operands an instruction reads: operator symbols,
// destination operands, and label operands are excluded.
func (inst Instruction) Sources() []string {
	switch inst.Op {
	case LOAD, STORE:
		return inst.Args[:1]
	case BINOP:
		// Args: operator, a, b, dest
		return inst.Args[1:3]
	case UNARY:
		// Args: operator, a, dest
		return inst.Args[1:2]
	case SHIFT_LEFT:
		// Args: a, count, dest
		return inst.Args[:2]
	case PRINT:
		return inst.Args
	case JUMP_IF_FALSE:
		// The label is not a value.
		return inst.Args[:1]
	}
	return nil
}
