/*
File    : numera/lexer/token.go
Project : Numera
*/
package lexer

import "fmt"

// TokenType represents the type of a lexical token in the Numera language.
// It is defined as a string to allow for easy comparison and debugging.
// Each token type corresponds to one of the eight token kinds the scanner
// can emit: keywords, operators, separators, parentheses, identifiers,
// numbers, and string literals.
type TokenType string

// TokenType Constants:
// These constants define all possible token kinds in the Numera language.
const (
	// KEYWORD_TYPE marks one of the reserved words of the language
	KEYWORD_TYPE TokenType = "KEYWORD"
	// OPERATOR_TYPE marks a symbolic or word operator (= + - * / % == != <= >= < > and or not)
	OPERATOR_TYPE TokenType = "OPERATOR"
	// SEPARATOR_TYPE marks a statement or list separator (; ,)
	SEPARATOR_TYPE TokenType = "SEPARATOR"
	// LPAR_TYPE marks a left parenthesis
	LPAR_TYPE TokenType = "LPAR"
	// RPAR_TYPE marks a right parenthesis
	RPAR_TYPE TokenType = "RPAR"
	// IDENTIFIER_TYPE marks a user-defined name
	IDENTIFIER_TYPE TokenType = "IDENTIFIER"
	// NUMBER_TYPE marks an integer or floating-point literal
	NUMBER_TYPE TokenType = "NUMBER"
	// STRING_TYPE marks a double-quoted string literal (quotes preserved)
	STRING_TYPE TokenType = "STRING"
)

// Keyword literals of the language. Declarations and control flow are
// spelled with these exactly; everything else that looks like a word is
// either a word operator or an identifier.
const (
	IF_KEY        = "if"
	THEN_KEY      = "then"
	ELSE_KEY      = "else"
	WHILE_KEY     = "while"
	DO_KEY        = "do"
	END_KEY       = "end"
	PROCEDURE_KEY = "procedure"
	VAR_KEY       = "var"
	BEGIN_KEY     = "begin"
	PRINT_KEY     = "print"
	MAIN_KEY      = "main"
	IS_KEY        = "is"
	IN_KEY        = "in"
)

// KEYWORDS_MAP is a lookup table holding every reserved word of Numera.
// The lexer consults this map after scanning a maximal identifier-shaped
// run to decide whether to emit a KEYWORD or an IDENTIFIER token.
var KEYWORDS_MAP = map[string]bool{
	IF_KEY:        true,
	THEN_KEY:      true,
	ELSE_KEY:      true,
	WHILE_KEY:     true,
	DO_KEY:        true,
	END_KEY:       true,
	PROCEDURE_KEY: true,
	VAR_KEY:       true,
	BEGIN_KEY:     true,
	PRINT_KEY:     true,
	MAIN_KEY:      true,
	IS_KEY:        true,
	IN_KEY:        true,
}

// WORD_OPERATORS_MAP holds the alphabetic operators. They are scanned like
// identifiers but classified as operators.
var WORD_OPERATORS_MAP = map[string]bool{
	"and": true,
	"or":  true,
	"not": true,
}

// SYMBOL_OPERATORS lists the non-alphabetic operators sorted by descending
// length, so that greedy matching picks "==" over "=" and "<=" over "<".
var SYMBOL_OPERATORS = []string{
	"==", "!=", "<=", ">=",
	"=", "+", "-", "*", "/", "%", "<", ">",
}

// Token represents a single lexical token in Numera source code.
// It contains the token's kind, its literal string representation from the
// source, and the 1-based line on which it starts.
//
// Fields:
//   - Type: The kind of the token (keyword, operator, literal, ...)
//   - Literal: The actual text from the source code (string literals keep
//     their surrounding double quotes)
//   - Line: The line number where this token appears (1-indexed)
//
// Example:
//
//	For the source code "var x = 123" at line 5:
//	Token{Type: KEYWORD_TYPE, Literal: "var", Line: 5}
type Token struct {
	Type    TokenType // The kind of this token
	Literal string    // The actual text from source code
	Line    int       // Line number in source file (1-indexed)
}

// NewToken creates a new Token with the specified type and literal value.
// This is a basic constructor that does not set line metadata.
// Use NewTokenWithMetadata if position information is needed.
//
// Example:
//
//	token := NewToken(OPERATOR_TYPE, "+")
func NewToken(tokenType TokenType, literal string) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
	}
}

// NewTokenWithMetadata creates a new Token with full metadata including the
// source line. This constructor is used during lexical analysis to preserve
// source location information for error reporting.
//
// Example:
//
//	token := NewTokenWithMetadata(NUMBER_TYPE, "42", 10)
func NewTokenWithMetadata(tokenType TokenType, literal string, line int) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Line:    line,
	}
}

// Print outputs a human-readable representation of the token to standard
// output in the form "literal:type". Used for debugging.
func (tok *Token) Print() {
	fmt.Printf("%s:%v\n", tok.Literal, tok.Type)
}

// IsKeyword reports whether the token is the given keyword.
func (tok *Token) IsKeyword(word string) bool {
	return tok.Type == KEYWORD_TYPE && tok.Literal == word
}

// IsOperator reports whether the token is the given operator.
func (tok *Token) IsOperator(op string) bool {
	return tok.Type == OPERATOR_TYPE && tok.Literal == op
}

// lookupWord determines the token type for an identifier-shaped word.
// Keywords take priority, then word operators, then plain identifiers.
//
// Example:
//
//	lookupWord("if")    -> KEYWORD_TYPE
//	lookupWord("and")   -> OPERATOR_TYPE
//	lookupWord("myVar") -> IDENTIFIER_TYPE
func lookupWord(word string) TokenType {
	if KEYWORDS_MAP[word] {
		return KEYWORD_TYPE
	}
	if WORD_OPERATORS_MAP[word] {
		return OPERATOR_TYPE
	}
	return IDENTIFIER_TYPE
}
