/*
File    : numera/lexer/lexer_utils.go
Project : Numera
*/
package lexer

import (
	"strings"
	"unicode"
)

// isDigitASCII reports whether c is an ASCII decimal digit ('0'..'9').
// This is used in the hot path for number scanning.
func isDigitASCII(c byte) bool {
	return c >= '0' && c <= '9'
}

// isWhitespace checks if the given byte is a whitespace character.
// Uses Unicode's definition of whitespace, which includes:
//   - Space, tab, newline, carriage return, form feed, vertical tab
func isWhitespace(curr byte) bool {
	return unicode.IsSpace(rune(curr))
}

// isAlphanumeric checks if the given byte is an alphanumeric character.
// This includes both letters (a-z, A-Z) and digits (0-9).
func isAlphanumeric(curr byte) bool {
	return unicode.IsLetter(rune(curr)) || unicode.IsDigit(rune(curr))
}

// isAlpha checks if the given byte is an alphabetic character (a-z, A-Z).
func isAlpha(curr byte) bool {
	return unicode.IsLetter(rune(curr))
}

// isOperatorSymbol checks if the given byte can start a symbolic operator.
func isOperatorSymbol(c byte) bool {
	return strings.ContainsRune("=!<>+-*/%", rune(c))
}
