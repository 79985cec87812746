/*
File    : numera/generator/generator.go
Project : Numera
*/

// Package generator lowers the AST into the linear three-address IR.
//
// The generator is a recursive AST walker: for each expression it returns
// the name of the temp holding that expression's result, and for each
// statement it appends instructions. Two optimizations run inline during
// generation: constant folding of binary operations whose operands are
// both constants, and common-subexpression elimination over straight-line
// regions (see cse.go).
//
// Temp and label counters are private state of a Generator instance; a
// fresh instance starts at t1 and label counter 1, so re-running the
// generator on the same AST yields byte-identical IR text.
package generator

import (
	"fmt"

	"github.com/numera-lang/numera/ir"
	"github.com/numera-lang/numera/objects"
	"github.com/numera-lang/numera/parser"
)

// Generator holds the state of one lowering run.
type Generator struct {
	instructions []ir.Instruction

	// Monotonic counters for temps and the three label kinds.
	tempCounter       int
	startLabelCounter int
	endLabelCounter   int
	elseLabelCounter  int

	// Bookkeeping tables for later passes: how many LOADs were emitted
	// per variable, and the instruction index of every STORE per variable
	// in emission order.
	useCounts   map[string]int
	assignSites map[string][]int

	// Common-subexpression cache, see cse.go.
	cseCache map[string]string
}

// NewGenerator creates a generator with fresh counters and tables.
func NewGenerator() *Generator {
	gen := &Generator{}
	gen.Reset()
	return gen
}

// Reset clears all instructions, counters, and tables, so the instance can
// be reused for another compilation.
func (gen *Generator) Reset() {
	gen.instructions = make([]ir.Instruction, 0)
	gen.tempCounter = 0
	gen.startLabelCounter = 0
	gen.endLabelCounter = 0
	gen.elseLabelCounter = 0
	gen.useCounts = make(map[string]int)
	gen.assignSites = make(map[string][]int)
	gen.cseCache = make(map[string]string)
}

// newTemp returns the next temp name: t1, t2, ...
func (gen *Generator) newTemp() string {
	gen.tempCounter++
	return fmt.Sprintf("t%d", gen.tempCounter)
}

// newStartLabel returns the next loop entry label: start_label_1, ...
func (gen *Generator) newStartLabel() string {
	gen.startLabelCounter++
	return fmt.Sprintf("start_label_%d", gen.startLabelCounter)
}

// newEndLabel returns the next join label: end_label_1, ...
func (gen *Generator) newEndLabel() string {
	gen.endLabelCounter++
	return fmt.Sprintf("end_label_%d", gen.endLabelCounter)
}

// newElseLabel returns the next else branch label: else_label_1, ...
func (gen *Generator) newElseLabel() string {
	gen.elseLabelCounter++
	return fmt.Sprintf("else_label_%d", gen.elseLabelCounter)
}

// emit appends one instruction and returns its index.
func (gen *Generator) emit(op ir.Opcode, args ...string) int {
	gen.instructions = append(gen.instructions, ir.NewInstruction(op, args...))
	return len(gen.instructions) - 1
}

// emitLabel appends a LABEL. Labels are join points whose incoming values
// are unknown, so the CSE cache is dropped here as well.
func (gen *Generator) emitLabel(label string) {
	gen.emit(ir.LABEL, label)
	gen.cseCache = make(map[string]string)
}

// Generate lowers a parsed program. The declarations before "begin" are
// lowered first, then the body statements.
func (gen *Generator) Generate(program *parser.ProgramNode) error {
	for _, decl := range program.Declarations {
		if err := gen.genStatement(decl); err != nil {
			return err
		}
	}
	for _, stmt := range program.Statements {
		if err := gen.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Instructions returns the generated instruction sequence.
func (gen *Generator) Instructions() []ir.Instruction {
	return gen.instructions
}

// Code returns the generated IR in its textual form.
func (gen *Generator) Code() string {
	return ir.Format(gen.instructions)
}

// UseCounts returns the number of emitted LOADs per variable.
func (gen *Generator) UseCounts() map[string]int {
	return gen.useCounts
}

// AssignSites returns the instruction indices of every STORE per variable.
func (gen *Generator) AssignSites() map[string][]int {
	return gen.assignSites
}

// genStatement lowers one statement.
func (gen *Generator) genStatement(stmt parser.StatementNode) error {
	switch node := stmt.(type) {
	case *parser.DeclarationNode:
		return gen.genDeclaration(node)
	case *parser.AssignmentNode:
		return gen.genAssignment(node)
	case *parser.PrintNode:
		return gen.genPrint(node)
	case *parser.IfNode:
		return gen.genIf(node)
	case *parser.WhileNode:
		return gen.genWhile(node)
	default:
		return fmt.Errorf("unknown statement node type: %T", stmt)
	}
}

// genDeclaration emits ALLOC and, when an initializer is present, the
// initializer expression followed by a STORE.
func (gen *Generator) genDeclaration(node *parser.DeclarationNode) error {
	gen.emit(ir.ALLOC, node.Name)
	if node.InitialValue != nil {
		temp, err := gen.genExpression(node.InitialValue)
		if err != nil {
			return err
		}
		gen.recordStore(gen.emit(ir.STORE, temp, node.Name), node.Name)
	}
	return nil
}

// genAssignment emits the value expression followed by a STORE.
func (gen *Generator) genAssignment(node *parser.AssignmentNode) error {
	temp, err := gen.genExpression(node.Value)
	if err != nil {
		return err
	}
	gen.recordStore(gen.emit(ir.STORE, temp, node.Target.Name), node.Target.Name)
	return nil
}

// recordStore notes an assignment site and invalidates every cached
// subexpression that refers to the assigned variable.
func (gen *Generator) recordStore(index int, name string) {
	gen.assignSites[name] = append(gen.assignSites[name], index)
	gen.invalidateCSE(name)
}

// genPrint emits the expression followed by a PRINT.
func (gen *Generator) genPrint(node *parser.PrintNode) error {
	temp, err := gen.genExpression(node.Expression)
	if err != nil {
		return err
	}
	gen.emit(ir.PRINT, temp)
	return nil
}

// genIf lowers an if statement. A constant condition collapses to the
// taken branch with no labels at all; otherwise:
//
//	<cond>
//	JUMP_IF_FALSE c, else_L
//	<then>
//	JUMP end_L        \  only when an
//	LABEL else_L       | else block
//	<else>             | is present
//	LABEL end_L       /
func (gen *Generator) genIf(node *parser.IfNode) error {
	if constant, ok := node.Condition.(*parser.ConstantNode); ok {
		if objects.Truthy(constant.Value) {
			return gen.genBlock(node.ThenBlock)
		}
		if node.ElseBlock != nil {
			return gen.genBlock(node.ElseBlock)
		}
		return nil
	}

	condTemp, err := gen.genExpression(node.Condition)
	if err != nil {
		return err
	}

	elseLabel := gen.newElseLabel()
	gen.emit(ir.JUMP_IF_FALSE, condTemp, elseLabel)

	if err := gen.genBlock(node.ThenBlock); err != nil {
		return err
	}

	if node.ElseBlock != nil {
		endLabel := gen.newEndLabel()
		gen.emit(ir.JUMP, endLabel)
		gen.emitLabel(elseLabel)
		if err := gen.genBlock(node.ElseBlock); err != nil {
			return err
		}
		gen.emitLabel(endLabel)
	} else {
		gen.emitLabel(elseLabel)
	}
	return nil
}

// genWhile lowers a while loop. A constant-false condition emits nothing;
// a constant-true condition emits a naked loop with no exit. Otherwise:
//
//	LABEL start_L
//	<cond>
//	JUMP_IF_FALSE c, end_L
//	<body>
//	JUMP start_L
//	LABEL end_L
func (gen *Generator) genWhile(node *parser.WhileNode) error {
	if constant, ok := node.Condition.(*parser.ConstantNode); ok {
		if !objects.Truthy(constant.Value) {
			return nil
		}
		startLabel := gen.newStartLabel()
		gen.emitLabel(startLabel)
		if err := gen.genBlock(node.Body); err != nil {
			return err
		}
		gen.emit(ir.JUMP, startLabel)
		return nil
	}

	startLabel := gen.newStartLabel()
	endLabel := gen.newEndLabel()

	gen.emitLabel(startLabel)
	condTemp, err := gen.genExpression(node.Condition)
	if err != nil {
		return err
	}
	gen.emit(ir.JUMP_IF_FALSE, condTemp, endLabel)

	if err := gen.genBlock(node.Body); err != nil {
		return err
	}

	gen.emit(ir.JUMP, startLabel)
	gen.emitLabel(endLabel)
	return nil
}

// genBlock lowers a statement list.
func (gen *Generator) genBlock(stmts []parser.StatementNode) error {
	for _, stmt := range stmts {
		if err := gen.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// genExpression lowers one expression and returns the name of the temp
// holding its result.
func (gen *Generator) genExpression(expr parser.ExpressionNode) (string, error) {
	switch node := expr.(type) {
	case *parser.ConstantNode:
		temp := gen.newTemp()
		gen.emit(ir.LOAD_CONST, objects.FormatLiteral(node.Value), temp)
		return temp, nil

	case *parser.IdentifierNode:
		temp := gen.newTemp()
		gen.emit(ir.LOAD, node.Name, temp)
		gen.useCounts[node.Name]++
		return temp, nil

	case *parser.InputNode:
		temp := gen.newTemp()
		gen.emit(ir.INPUT, temp)
		return temp, nil

	case *parser.UnaryOpNode:
		operand, err := gen.genExpression(node.Operand)
		if err != nil {
			return "", err
		}
		temp := gen.newTemp()
		gen.emit(ir.UNARY, node.Operator.Literal, operand, temp)
		return temp, nil

	case *parser.BinaryOpNode:
		return gen.genBinaryOp(node)

	default:
		return "", fmt.Errorf("unknown expression node type: %T", expr)
	}
}

// genBinaryOp lowers a binary operation. Operations over two constants are
// folded at compile time into a single LOAD_CONST; everything else goes
// through the CSE cache so that a structurally identical operation in the
// same straight-line region reuses the earlier temp.
func (gen *Generator) genBinaryOp(node *parser.BinaryOpNode) (string, error) {
	operator := node.Operator.Literal

	left, leftConst := node.Left.(*parser.ConstantNode)
	right, rightConst := node.Right.(*parser.ConstantNode)
	if leftConst && rightConst {
		folded, err := objects.ApplyBinary(operator, left.Value, right.Value)
		if err != nil {
			return "", err
		}
		temp := gen.newTemp()
		gen.emit(ir.LOAD_CONST, objects.FormatLiteral(folded), temp)
		return temp, nil
	}

	key := expressionKey(node)
	if key != "" {
		if temp, hit := gen.cseCache[key]; hit {
			return temp, nil
		}
	}

	leftTemp, err := gen.genExpression(node.Left)
	if err != nil {
		return "", err
	}
	rightTemp, err := gen.genExpression(node.Right)
	if err != nil {
		return "", err
	}

	temp := gen.newTemp()
	gen.emit(ir.BINOP, operator, leftTemp, rightTemp, temp)

	if key != "" {
		gen.cseCache[key] = temp
	}
	return temp, nil
}
