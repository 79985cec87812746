/*
File    : numera/generator/cse.go
Project : Numera
*/
package generator

import (
	"sort"
	"strings"

	"github.com/numera-lang/numera/objects"
	"github.com/numera-lang/numera/parser"
)

// Common-subexpression elimination in a basic sense: during generation, a
// (operator, operand key, operand key) triple is memoized; a matching
// expression reuses the previously produced temp instead of recomputing.
// The cache covers straight-line regions only: it is dropped at every
// emitted LABEL, and every entry referring to a variable v is dropped when
// v is assigned.

// commutativeOperators lists the operators whose operand pair is
// canonicalized by sorting the two operand keys before lookup, so that
// a+b and b+a share one cache entry.
var commutativeOperators = map[string]bool{
	"+":   true,
	"*":   true,
	"==":  true,
	"!=":  true,
	"<=":  true,
	">=":  true,
	"and": true,
	"or":  true,
}

// expressionKey computes the structural cache key of a binary operation.
// Keys are structural over constants, identifiers, and nested binary
// operations; an expression containing anything else (in() reads, unary
// operations) is not cacheable and gets the empty key.
func expressionKey(node *parser.BinaryOpNode) string {
	leftKey := operandKey(node.Left)
	rightKey := operandKey(node.Right)
	if leftKey == "" || rightKey == "" {
		return ""
	}

	if commutativeOperators[node.Operator.Literal] && rightKey < leftKey {
		leftKey, rightKey = rightKey, leftKey
	}
	return "b(" + node.Operator.Literal + "," + leftKey + "," + rightKey + ")"
}

// operandKey computes the structural key of one operand, or "" when the
// operand is not cacheable.
func operandKey(expr parser.ExpressionNode) string {
	switch node := expr.(type) {
	case *parser.ConstantNode:
		return "c(" + objects.FormatLiteral(node.Value) + ")"
	case *parser.IdentifierNode:
		return "v(" + node.Name + ")"
	case *parser.BinaryOpNode:
		return expressionKey(node)
	default:
		return ""
	}
}

// invalidateCSE drops every cached expression whose key refers to the
// given variable. Deletion order over the map does not matter; the
// surviving entries are exactly those not mentioning the variable.
func (gen *Generator) invalidateCSE(name string) {
	marker := "v(" + name + ")"
	stale := make([]string, 0)
	for key := range gen.cseCache {
		if strings.Contains(key, marker) {
			stale = append(stale, key)
		}
	}
	sort.Strings(stale)
	for _, key := range stale {
		delete(gen.cseCache, key)
	}
}
