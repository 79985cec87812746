/*
File    : numera/vm/vm.go
Project : Numera
*/

// Package vm implements the virtual machine that executes optimized IR.
//
// The machine is stack-less: it holds three maps (variables, temps, and
// label positions) and a program counter. Startup scans the instruction
// sequence once to record the index of every LABEL; execution then
// fetches, dispatches through a dense opcode table, and increments the
// program counter after every instruction (a jump lands on its LABEL, so
// the increment steps past it), halting when the counter passes the last
// instruction.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/numera-lang/numera/ir"
	"github.com/numera-lang/numera/objects"
)

// VM holds the state of one program execution.
type VM struct {
	Instructions []ir.Instruction

	Variables map[string]objects.NumeraObject // declared variable cells
	Temps     map[string]objects.NumeraObject // virtual registers t<N>
	Labels    map[string]int                  // label name to instruction index
	PC        int                             // program counter

	Writer io.Writer     // destination for PRINT (default: os.Stdout)
	Reader *bufio.Reader // source for INPUT (default: os.Stdin)
}

// handlerEntry pairs an opcode's operand count with its implementation.
// Opcodes are a closed set, so dispatch is one table lookup.
type handlerEntry struct {
	arity   int
	execute func(vm *VM, args []string) error
}

// handlers is the dense dispatch table from opcode to handler.
var handlers = map[ir.Opcode]handlerEntry{
	ir.ALLOC:         {1, (*VM).executeAlloc},
	ir.LOAD_CONST:    {2, (*VM).executeLoadConst},
	ir.LOAD:          {2, (*VM).executeLoad},
	ir.STORE:         {2, (*VM).executeStore},
	ir.BINOP:         {4, (*VM).executeBinop},
	ir.UNARY:         {3, (*VM).executeUnary},
	ir.SHIFT_LEFT:    {3, (*VM).executeShiftLeft},
	ir.PRINT:         {1, (*VM).executePrint},
	ir.INPUT:         {1, (*VM).executeInput},
	ir.JUMP:          {1, (*VM).executeJump},
	ir.JUMP_IF_FALSE: {2, (*VM).executeJumpIfFalse},
	ir.LABEL:         {1, (*VM).executeLabel},
}

// NewVM creates a machine for an instruction sequence, records every
// label position, and wires standard input and output.
func NewVM(instructions []ir.Instruction) *VM {
	vm := &VM{
		Instructions: instructions,
		Variables:    make(map[string]objects.NumeraObject),
		Temps:        make(map[string]objects.NumeraObject),
		Labels:       make(map[string]int),
		Writer:       os.Stdout,
		Reader:       bufio.NewReader(os.Stdin),
	}

	for index, inst := range instructions {
		if inst.Op == ir.LABEL && len(inst.Args) == 1 {
			vm.Labels[inst.Args[0]] = index
		}
	}
	return vm
}

// SetWriter redirects PRINT output, e.g. to a buffer in tests.
func (vm *VM) SetWriter(w io.Writer) {
	vm.Writer = w
}

// SetReader redirects INPUT, e.g. to a prepared string in tests.
func (vm *VM) SetReader(r io.Reader) {
	vm.Reader = bufio.NewReader(r)
}

// Run executes the program to completion. Any unrecognized opcode,
// undeclared operand, unknown label, or type mismatch is fatal.
func (vm *VM) Run() error {
	_, err := vm.RunSteps(-1)
	return err
}

// RunSteps executes at most maxSteps instructions (unlimited when
// negative) and reports whether the program halted. The step bound exists
// for driving programs that intentionally never terminate.
func (vm *VM) RunSteps(maxSteps int) (bool, error) {
	steps := 0
	for vm.PC < len(vm.Instructions) {
		if maxSteps >= 0 && steps >= maxSteps {
			return false, nil
		}
		steps++

		inst := vm.Instructions[vm.PC]
		entry, ok := handlers[inst.Op]
		if !ok {
			return false, fmt.Errorf("unknown opcode: %s", inst.Op)
		}
		if len(inst.Args) != entry.arity {
			return false, fmt.Errorf("malformed instruction: %s", inst.String())
		}
		if err := entry.execute(vm, inst.Args); err != nil {
			return false, err
		}

		vm.PC++
	}
	return true, nil
}

// getValue resolves an operand to a value: a temp t<N> from the temp map
// (missing temps are fatal), a declared variable from the variable map,
// and anything else parsed as integer, then float, then string with its
// quotes stripped.
func (vm *VM) getValue(operand string) (objects.NumeraObject, error) {
	if ir.IsTemp(operand) {
		if val, ok := vm.Temps[operand]; ok {
			return val, nil
		}
		return nil, fmt.Errorf("operand not declared: %s", operand)
	}
	if val, ok := vm.Variables[operand]; ok {
		return val, nil
	}
	return objects.ParseLiteral(operand), nil
}

// jumpTo moves the program counter onto a label. The counter lands on the
// LABEL itself; the run loop's increment steps past it.
func (vm *VM) jumpTo(label string) error {
	index, ok := vm.Labels[label]
	if !ok {
		return fmt.Errorf("unknown label: %s", label)
	}
	vm.PC = index
	return nil
}

// executeAlloc reserves a variable cell initialized to integer 0.
func (vm *VM) executeAlloc(args []string) error {
	vm.Variables[args[0]] = objects.NewInteger(0)
	return nil
}

// executeLoadConst sets a temp to a literal value.
func (vm *VM) executeLoadConst(args []string) error {
	vm.Temps[args[1]] = objects.ParseLiteral(args[0])
	return nil
}

// executeLoad copies a declared variable into a temp.
func (vm *VM) executeLoad(args []string) error {
	val, ok := vm.Variables[args[0]]
	if !ok {
		return fmt.Errorf("variable not declared: %s", args[0])
	}
	vm.Temps[args[1]] = val
	return nil
}

// executeStore writes the value of a temp or literal into a variable.
func (vm *VM) executeStore(args []string) error {
	val, err := vm.getValue(args[0])
	if err != nil {
		return err
	}
	vm.Variables[args[1]] = val
	return nil
}

// executeBinop applies a binary operator: t := a op b.
func (vm *VM) executeBinop(args []string) error {
	left, err := vm.getValue(args[1])
	if err != nil {
		return err
	}
	right, err := vm.getValue(args[2])
	if err != nil {
		return err
	}
	result, err := objects.ApplyBinary(args[0], left, right)
	if err != nil {
		return err
	}
	vm.Temps[args[3]] = result
	return nil
}

// executeUnary applies a unary operator: t := op a.
func (vm *VM) executeUnary(args []string) error {
	operand, err := vm.getValue(args[1])
	if err != nil {
		return err
	}
	result, err := objects.ApplyUnary(args[0], operand)
	if err != nil {
		return err
	}
	vm.Temps[args[2]] = result
	return nil
}

// executeShiftLeft shifts an integer operand left by an integer literal
// bit count; anything non-integer is a type error.
func (vm *VM) executeShiftLeft(args []string) error {
	value, err := vm.getValue(args[0])
	if err != nil {
		return err
	}
	shift, err := vm.getValue(args[1])
	if err != nil {
		return err
	}
	result, err := objects.ShiftLeft(value, shift)
	if err != nil {
		return err
	}
	vm.Temps[args[2]] = result
	return nil
}

// executePrint writes a value followed by a newline.
func (vm *VM) executePrint(args []string) error {
	val, err := vm.getValue(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(vm.Writer, "%s\n", val.ToString())
	return err
}

// executeInput reads one line and parses it as integer, else float, else
// string.
func (vm *VM) executeInput(args []string) error {
	line, err := vm.Reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("unexpected end of input")
	}
	vm.Temps[args[0]] = objects.ParseLiteral(strings.TrimSpace(line))
	return nil
}

// executeJump branches unconditionally.
func (vm *VM) executeJump(args []string) error {
	return vm.jumpTo(args[0])
}

// executeJumpIfFalse branches when the operand is falsy (0, 0.0, or the
// empty string).
func (vm *VM) executeJumpIfFalse(args []string) error {
	val, err := vm.getValue(args[0])
	if err != nil {
		return err
	}
	if !objects.Truthy(val) {
		return vm.jumpTo(args[1])
	}
	return nil
}

// executeLabel is a no-op: labels only mark branch targets.
func (vm *VM) executeLabel(args []string) error {
	return nil
}
