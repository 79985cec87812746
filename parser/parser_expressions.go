/*
File    : numera/parser/parser_expressions.go
Project : Numera
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/numera-lang/numera/lexer"
	"github.com/numera-lang/numera/objects"
)

// Expression productions. Precedence, lowest to highest:
// logical (and, or) - comparison - additive - multiplicative - unary not -
// primary. All binary operators associate left. Conditions (cond) are only
// reachable from if and while; the right-hand side of an assignment is an
// expr and cannot contain and, or, not, or a bare comparison.

// parseCond parses: "not" cond | cmpr { ("and"|"or") cmpr }
func (par *Parser) parseCond() (ExpressionNode, error) {
	if par.match("not") {
		operator := par.CurrToken
		par.advance()
		operand, err := par.parseCond()
		if err != nil {
			return nil, err
		}
		return &UnaryOpNode{Operator: operator, Operand: operand}, nil
	}

	left, err := par.parseCmpr()
	if err != nil {
		return nil, err
	}

	for par.match("and") || par.match("or") {
		operator := par.CurrToken
		par.advance()
		right, err := par.parseCmpr()
		if err != nil {
			return nil, err
		}
		left = &BinaryOpNode{Operator: operator, Left: left, Right: right}
	}

	return left, nil
}

// parseCmpr parses: expr [ ("=="|"!="|"<"|">"|"<="|">=") expr ]
// At most one comparison operator is permitted; chaining is rejected by
// construction, since the result feeds back into parseCond.
func (par *Parser) parseCmpr() (ExpressionNode, error) {
	left, err := par.parseExpr()
	if err != nil {
		return nil, err
	}

	if par.match("==") || par.match("!=") || par.match("<") ||
		par.match(">") || par.match("<=") || par.match(">=") {
		operator := par.CurrToken
		par.advance()
		right, err := par.parseExpr()
		if err != nil {
			return nil, err
		}
		return &BinaryOpNode{Operator: operator, Left: left, Right: right}, nil
	}

	return left, nil
}

// parseExpr parses: term { ("+"|"-") term }
func (par *Parser) parseExpr() (ExpressionNode, error) {
	left, err := par.parseTerm()
	if err != nil {
		return nil, err
	}

	for par.match("+") || par.match("-") {
		operator := par.CurrToken
		par.advance()
		right, err := par.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryOpNode{Operator: operator, Left: left, Right: right}
	}

	return left, nil
}

// parseTerm parses: factor { ("*"|"/") factor }
func (par *Parser) parseTerm() (ExpressionNode, error) {
	left, err := par.parseFactor()
	if err != nil {
		return nil, err
	}

	for par.match("*") || par.match("/") {
		operator := par.CurrToken
		par.advance()
		right, err := par.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryOpNode{Operator: operator, Left: left, Right: right}
	}

	return left, nil
}

// parseFactor parses: "(" expr ")" | "in" "(" ")" | NUMBER | STRING | IDENT
func (par *Parser) parseFactor() (ExpressionNode, error) {
	if par.atEOF() {
		return nil, fmt.Errorf("PARSER ERROR: unexpected end of input in expression")
	}

	switch {
	case par.CurrToken.Type == lexer.LPAR_TYPE:
		par.advance()
		expr, err := par.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := par.expect(")"); err != nil {
			return nil, err
		}
		return expr, nil

	case par.CurrToken.IsKeyword(lexer.IN_KEY):
		token := par.CurrToken
		par.advance()
		if err := par.expect("("); err != nil {
			return nil, err
		}
		if err := par.expect(")"); err != nil {
			return nil, err
		}
		return &InputNode{Token: token}, nil

	case par.CurrToken.Type == lexer.NUMBER_TYPE:
		token := par.CurrToken
		par.advance()
		return &ConstantNode{Token: token, Value: numberValue(token.Literal)}, nil

	case par.CurrToken.Type == lexer.STRING_TYPE:
		token := par.CurrToken
		par.advance()
		return &ConstantNode{
			Token: token,
			Value: &objects.String{Value: strings.Trim(token.Literal, `"`)},
		}, nil

	case par.CurrToken.Type == lexer.IDENTIFIER_TYPE:
		return par.parseIdentifier()

	default:
		return nil, fmt.Errorf("[%d] PARSER ERROR: unexpected token %q in expression",
			par.CurrToken.Line, par.CurrToken.Literal)
	}
}

// numberValue converts a NUMBER token's text into an Integer or Float
// constant. The lexer guarantees the text is digits with at most one dot.
func numberValue(text string) objects.NumeraObject {
	return objects.ParseLiteral(text)
}
