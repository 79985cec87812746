/*
File    : numera/parser/parser_test.go
Project : Numera
*/
package parser

import (
	"testing"

	"github.com/numera-lang/numera/lexer"
	"github.com/numera-lang/numera/objects"
	"github.com/stretchr/testify/assert"
)

// parseSource runs the lexer and parser over a source string
func parseSource(t *testing.T, src string) (*ProgramNode, error) {
	t.Helper()
	lex := lexer.NewLexer(src)
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	return NewParser(tokens).Parse()
}

// TestParser_Declarations tests declarations before begin and inline
func TestParser_Declarations(t *testing.T) {
	program, err := parseSource(t, `
		procedure main is
			var x;
			var y = 2 + 3;
		begin
			var z = y;
		end
	`)
	assert.NoError(t, err)
	assert.Len(t, program.Declarations, 2)
	assert.Len(t, program.Statements, 1)

	assert.Equal(t, "x", program.Declarations[0].Name)
	assert.Nil(t, program.Declarations[0].InitialValue)

	assert.Equal(t, "y", program.Declarations[1].Name)
	binop, ok := program.Declarations[1].InitialValue.(*BinaryOpNode)
	assert.True(t, ok)
	assert.Equal(t, "+", binop.Operator.Literal)

	decl, ok := program.Statements[0].(*DeclarationNode)
	assert.True(t, ok)
	assert.Equal(t, "z", decl.Name)
	ident, ok := decl.InitialValue.(*IdentifierNode)
	assert.True(t, ok)
	assert.Equal(t, "y", ident.Name)
}

// TestParser_Precedence tests the precedence ladder and left associativity
func TestParser_Precedence(t *testing.T) {
	program, err := parseSource(t, `
		procedure main is
			var x = 1 + 2 * 3 - 4;
		begin
		end
	`)
	assert.NoError(t, err)

	// ((1 + (2 * 3)) - 4)
	root, ok := program.Declarations[0].InitialValue.(*BinaryOpNode)
	assert.True(t, ok)
	assert.Equal(t, "-", root.Operator.Literal)

	left, ok := root.Left.(*BinaryOpNode)
	assert.True(t, ok)
	assert.Equal(t, "+", left.Operator.Literal)

	mul, ok := left.Right.(*BinaryOpNode)
	assert.True(t, ok)
	assert.Equal(t, "*", mul.Operator.Literal)

	assert.Equal(t, "((1 + (2 * 3)) - 4)", root.Literal())
}

// TestParser_Conditions tests cond/cmpr parsing inside if and while
func TestParser_Conditions(t *testing.T) {
	program, err := parseSource(t, `
		procedure main is
			var x = 7;
		begin
			if not x == 3 and x > 5 then
				print("big");
			else
				print("small");
			end
			while x < 10 do
				x = x + 1;
			end
		end
	`)
	assert.NoError(t, err)
	assert.Len(t, program.Statements, 2)

	ifStmt, ok := program.Statements[0].(*IfNode)
	assert.True(t, ok)

	// not binds the whole condition: not ((x == 3) and (x > 5))
	unary, ok := ifStmt.Condition.(*UnaryOpNode)
	assert.True(t, ok)
	assert.Equal(t, "not", unary.Operator.Literal)
	and, ok := unary.Operand.(*BinaryOpNode)
	assert.True(t, ok)
	assert.Equal(t, "and", and.Operator.Literal)

	assert.Len(t, ifStmt.ThenBlock, 1)
	assert.Len(t, ifStmt.ElseBlock, 1)

	whileStmt, ok := program.Statements[1].(*WhileNode)
	assert.True(t, ok)
	cmp, ok := whileStmt.Condition.(*BinaryOpNode)
	assert.True(t, ok)
	assert.Equal(t, "<", cmp.Operator.Literal)
	assert.Len(t, whileStmt.Body, 1)
}

// TestParser_Constants tests the literal value kinds
func TestParser_Constants(t *testing.T) {
	program, err := parseSource(t, `
		procedure main is
			var a = 42;
			var b = 2.5;
			var c = "hello";
		begin
		end
	`)
	assert.NoError(t, err)

	a := program.Declarations[0].InitialValue.(*ConstantNode)
	assert.Equal(t, objects.IntegerType, a.Value.GetType())
	assert.Equal(t, "42", a.Value.ToString())

	b := program.Declarations[1].InitialValue.(*ConstantNode)
	assert.Equal(t, objects.FloatType, b.Value.GetType())

	c := program.Declarations[2].InitialValue.(*ConstantNode)
	assert.Equal(t, objects.StringType, c.Value.GetType())
	assert.Equal(t, "hello", c.Value.ToString())
	// the token keeps its quotes
	assert.Equal(t, `"hello"`, c.Token.Literal)
}

// TestParser_Input tests the in() factor
func TestParser_Input(t *testing.T) {
	program, err := parseSource(t, `
		procedure main is
			var x = 0;
		begin
			x = in();
		end
	`)
	assert.NoError(t, err)

	assign, ok := program.Statements[0].(*AssignmentNode)
	assert.True(t, ok)
	_, ok = assign.Value.(*InputNode)
	assert.True(t, ok)
}

// represents a test case for fatal parse errors
type TestParseError struct {
	Src           string
	ExpectedError string
}

// TestParser_Errors tests the strictness of the parser
func TestParser_Errors(t *testing.T) {

	tests := []TestParseError{
		{
			Src:           `procedure main begin end`,
			ExpectedError: `expected "is"`,
		},
		{
			Src:           `procedure main is begin`,
			ExpectedError: "unexpected end of input",
		},
		{
			Src:           `procedure main is var 5;`,
			ExpectedError: `invalid identifier "5"`,
		},
		{
			Src:           `procedure main is begin end extra`,
			ExpectedError: `unexpected token "extra" after "end"`,
		},
		{
			Src:           `procedure main is begin print(x); end`,
			ExpectedError: `undeclared variable "x"`,
		},
		{
			Src:           `procedure main is var x = 1; begin x = ; end`,
			ExpectedError: "unexpected token",
		},
		{
			Src:           `procedure main is var x = 1; begin if x then print(x) end end`,
			ExpectedError: `expected ";"`,
		},
	}

	for _, test := range tests {
		_, err := parseSource(t, test.Src)
		assert.Error(t, err, test.Src)
		assert.Contains(t, err.Error(), test.ExpectedError, test.Src)
	}
}

// TestParser_LiteralRoundTrip tests that the pretty-printed program parses
// back to the same pretty-printed form (parse totality, modulo whitespace
// and grouping parentheses)
func TestParser_LiteralRoundTrip(t *testing.T) {
	sources := []string{
		`procedure main is var x = 2; begin print(x+3); end`,
		`procedure main is var i = 0; begin while i < 3 do print(i); i = i + 1; end end`,
		`procedure main is var x = 7; begin if x > 5 then print("big"); else print("small"); end end`,
		`procedure main is var x = 0; begin x = in(); print(x * 4); end`,
	}

	for _, src := range sources {
		program, err := parseSource(t, src)
		assert.NoError(t, err)

		pretty := program.Literal()
		reparsed, err := parseSource(t, pretty)
		assert.NoError(t, err, pretty)
		assert.Equal(t, pretty, reparsed.Literal(), src)
	}
}

// TestParser_PrintVisitor tests the indented tree dump
func TestParser_PrintVisitor(t *testing.T) {
	program, err := parseSource(t, `
		procedure main is
			var x = 2;
		begin
			print(x + 3);
		end
	`)
	assert.NoError(t, err)

	dump := PrintAST(program)
	assert.Contains(t, dump, "Program")
	assert.Contains(t, dump, "Declaration (x =)")
	assert.Contains(t, dump, "Print")
	assert.Contains(t, dump, "BinaryOp (+)")
	assert.Contains(t, dump, "Identifier (x)")
	assert.Contains(t, dump, "Constant <int(3)>")
}
