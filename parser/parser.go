/*
File    : numera/parser/parser.go
Project : Numera
*/

/*
Package parser implements a hand-written recursive descent parser for the
Numera language, with one token of lookahead.

The parser converts the token stream from the lexer into an Abstract
Syntax Tree (AST). The grammar it accepts:

	program      := "procedure" "main" "is" decl_seq "begin" stmt_seq "end" EOF
	decl_seq     := { decl }
	decl         := "var" IDENT [ "=" expr ] ";"
	stmt_seq     := { stmt }                           -- terminated by "end" or "else"
	stmt         := decl | print_stmt | if_stmt | while_stmt | assign
	print_stmt   := "print" "(" expr ")" ";"
	if_stmt      := "if" cond "then" stmt_seq [ "else" stmt_seq ] "end"
	while_stmt   := "while" cond "do" stmt_seq "end"
	assign       := IDENT "=" expr ";"
	cond         := "not" cond | cmpr { ("and"|"or") cmpr }
	cmpr         := expr [ ("=="|"!="|"<"|">"|"<="|">=") expr ]
	expr         := term   { ("+"|"-") term }
	term         := factor { ("*"|"/") factor }
	factor       := "(" expr ")" | "in" "(" ")" | NUMBER | STRING | IDENT

All binary operators associate left; comparison chaining is not permitted.
The parser is strict: an unexpected token or unexpected end of input
anywhere is fatal, and every identifier used in an expression must have
been declared by a lexically preceding declaration.
*/
package parser

import (
	"fmt"

	"github.com/numera-lang/numera/lexer"
)

// Parser represents the parser state. It walks the materialized token
// slice with a current and a lookahead token.
type Parser struct {
	Tokens    []lexer.Token // The full token stream from the lexer
	Position  int           // Index of the current token
	CurrToken lexer.Token   // Current token being processed
	NextToken lexer.Token   // Next token (for lookahead)

	// Declared tracks variable names whose declaration has already been
	// parsed, so that uses of undeclared identifiers fail at parse time.
	Declared map[string]bool
}

// eofToken is what the cursor yields past the end of the stream.
var eofToken = lexer.Token{Type: "EOF", Literal: "end of input"}

// NewParser creates and initializes a new Parser over a token stream.
// Call Parse() to parse the program.
func NewParser(tokens []lexer.Token) *Parser {
	par := &Parser{
		Tokens:   tokens,
		Position: -2,
		Declared: make(map[string]bool),
	}

	// Prime the token lookahead by advancing twice.
	// After this, CurrToken and NextToken are both valid.
	par.advance()
	par.advance()

	return par
}

// advance moves the parser forward by one token:
// CurrToken becomes NextToken, and NextToken is fetched from the stream.
func (par *Parser) advance() {
	par.Position++
	par.CurrToken = par.NextToken
	if par.Position+1 < len(par.Tokens) {
		par.NextToken = par.Tokens[par.Position+1]
	} else {
		par.NextToken = eofToken
	}
}

// atEOF reports whether the current token is past the end of the input.
func (par *Parser) atEOF() bool {
	return par.Position >= len(par.Tokens)
}

// expect checks that the current token has the given literal text, then
// consumes it. Used for keywords, operators, and separators alike, in the
// style of the grammar productions.
func (par *Parser) expect(literal string) error {
	if par.atEOF() {
		return fmt.Errorf("PARSER ERROR: unexpected end of input, expected %q", literal)
	}
	if par.CurrToken.Literal != literal {
		return fmt.Errorf("[%d] PARSER ERROR: expected %q, got %q",
			par.CurrToken.Line, literal, par.CurrToken.Literal)
	}
	par.advance()
	return nil
}

// match reports whether the current token has the given literal text,
// without consuming it.
func (par *Parser) match(literal string) bool {
	return !par.atEOF() && par.CurrToken.Literal == literal
}

// Parse is the main parsing function that converts the token stream into
// an AST. It parses the single procedure main, then requires the input to
// be exhausted: trailing tokens after the final "end" are fatal.
func (par *Parser) Parse() (*ProgramNode, error) {
	if err := par.expect(lexer.PROCEDURE_KEY); err != nil {
		return nil, err
	}
	if err := par.expect(lexer.MAIN_KEY); err != nil {
		return nil, err
	}
	if err := par.expect(lexer.IS_KEY); err != nil {
		return nil, err
	}

	program := &ProgramNode{
		Declarations: make([]*DeclarationNode, 0),
		Statements:   make([]StatementNode, 0),
	}

	// decl_seq: declarations before "begin"
	for par.match(lexer.VAR_KEY) {
		decl, err := par.parseDeclaration()
		if err != nil {
			return nil, err
		}
		program.Declarations = append(program.Declarations, decl)
	}

	if err := par.expect(lexer.BEGIN_KEY); err != nil {
		return nil, err
	}

	stmts, err := par.parseStatementSequence()
	if err != nil {
		return nil, err
	}
	program.Statements = stmts

	if err := par.expect(lexer.END_KEY); err != nil {
		return nil, err
	}

	if !par.atEOF() {
		return nil, fmt.Errorf("[%d] PARSER ERROR: unexpected token %q after \"end\"",
			par.CurrToken.Line, par.CurrToken.Literal)
	}

	return program, nil
}

// parseStatementSequence parses statements until "end", "else", or the end
// of the input. The terminating token is left for the caller to consume.
func (par *Parser) parseStatementSequence() ([]StatementNode, error) {
	stmts := make([]StatementNode, 0)
	for !par.atEOF() && !par.match(lexer.END_KEY) && !par.match(lexer.ELSE_KEY) {
		stmt, err := par.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// parseStatement dispatches on the current token to the matching statement
// production: declaration, print, if, while, or assignment.
func (par *Parser) parseStatement() (StatementNode, error) {
	if par.atEOF() {
		return nil, fmt.Errorf("PARSER ERROR: unexpected end of input in statement")
	}

	switch {
	case par.CurrToken.IsKeyword(lexer.VAR_KEY):
		return par.parseDeclaration()
	case par.CurrToken.IsKeyword(lexer.PRINT_KEY):
		return par.parsePrintStatement()
	case par.CurrToken.IsKeyword(lexer.IF_KEY):
		return par.parseIfStatement()
	case par.CurrToken.IsKeyword(lexer.WHILE_KEY):
		return par.parseWhileStatement()
	case par.CurrToken.Type == lexer.IDENTIFIER_TYPE:
		return par.parseAssignment()
	default:
		return nil, fmt.Errorf("[%d] PARSER ERROR: unexpected token %q in statement",
			par.CurrToken.Line, par.CurrToken.Literal)
	}
}

// parseDeclaration parses: "var" IDENT [ "=" expr ] ";"
// The declared name becomes visible to every later expression.
func (par *Parser) parseDeclaration() (*DeclarationNode, error) {
	token := par.CurrToken
	if err := par.expect(lexer.VAR_KEY); err != nil {
		return nil, err
	}

	if par.atEOF() {
		return nil, fmt.Errorf("PARSER ERROR: unexpected end of input, expected identifier after \"var\"")
	}
	if par.CurrToken.Type != lexer.IDENTIFIER_TYPE {
		return nil, fmt.Errorf("[%d] PARSER ERROR: invalid identifier %q after \"var\"",
			par.CurrToken.Line, par.CurrToken.Literal)
	}
	name := par.CurrToken.Literal
	par.advance()

	decl := &DeclarationNode{Token: token, Name: name}

	if par.match("=") {
		par.advance()
		value, err := par.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.InitialValue = value
	}

	if err := par.expect(";"); err != nil {
		return nil, err
	}

	par.Declared[name] = true
	return decl, nil
}

// parsePrintStatement parses: "print" "(" expr ")" ";"
func (par *Parser) parsePrintStatement() (*PrintNode, error) {
	token := par.CurrToken
	if err := par.expect(lexer.PRINT_KEY); err != nil {
		return nil, err
	}
	if err := par.expect("("); err != nil {
		return nil, err
	}
	expr, err := par.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := par.expect(")"); err != nil {
		return nil, err
	}
	if err := par.expect(";"); err != nil {
		return nil, err
	}
	return &PrintNode{Token: token, Expression: expr}, nil
}

// parseIfStatement parses:
// "if" cond "then" stmt_seq [ "else" stmt_seq ] "end"
func (par *Parser) parseIfStatement() (*IfNode, error) {
	token := par.CurrToken
	if err := par.expect(lexer.IF_KEY); err != nil {
		return nil, err
	}

	cond, err := par.parseCond()
	if err != nil {
		return nil, err
	}
	if err := par.expect(lexer.THEN_KEY); err != nil {
		return nil, err
	}

	thenBlock, err := par.parseStatementSequence()
	if err != nil {
		return nil, err
	}

	node := &IfNode{Token: token, Condition: cond, ThenBlock: thenBlock}

	if par.match(lexer.ELSE_KEY) {
		par.advance()
		elseBlock, err := par.parseStatementSequence()
		if err != nil {
			return nil, err
		}
		node.ElseBlock = elseBlock
	}

	if err := par.expect(lexer.END_KEY); err != nil {
		return nil, err
	}
	return node, nil
}

// parseWhileStatement parses: "while" cond "do" stmt_seq "end"
func (par *Parser) parseWhileStatement() (*WhileNode, error) {
	token := par.CurrToken
	if err := par.expect(lexer.WHILE_KEY); err != nil {
		return nil, err
	}

	cond, err := par.parseCond()
	if err != nil {
		return nil, err
	}
	if err := par.expect(lexer.DO_KEY); err != nil {
		return nil, err
	}

	body, err := par.parseStatementSequence()
	if err != nil {
		return nil, err
	}

	if err := par.expect(lexer.END_KEY); err != nil {
		return nil, err
	}
	return &WhileNode{Token: token, Condition: cond, Body: body}, nil
}

// parseAssignment parses: IDENT "=" expr ";"
func (par *Parser) parseAssignment() (*AssignmentNode, error) {
	target, err := par.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if err := par.expect("="); err != nil {
		return nil, err
	}
	value, err := par.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := par.expect(";"); err != nil {
		return nil, err
	}
	return &AssignmentNode{Target: target, Value: value}, nil
}

// parseIdentifier parses a reference to a declared variable. Referencing
// a name with no lexically preceding declaration is fatal.
func (par *Parser) parseIdentifier() (*IdentifierNode, error) {
	if par.atEOF() {
		return nil, fmt.Errorf("PARSER ERROR: unexpected end of input, expected identifier")
	}
	if par.CurrToken.Type != lexer.IDENTIFIER_TYPE {
		return nil, fmt.Errorf("[%d] PARSER ERROR: expected identifier, got %q",
			par.CurrToken.Line, par.CurrToken.Literal)
	}
	if !par.Declared[par.CurrToken.Literal] {
		return nil, fmt.Errorf("[%d] PARSER ERROR: undeclared variable %q",
			par.CurrToken.Line, par.CurrToken.Literal)
	}

	node := &IdentifierNode{Token: par.CurrToken, Name: par.CurrToken.Literal}
	par.advance()
	return node, nil
}
