/*
File    : numera/objects/objects.go
Project : Numera
*/

// Package objects defines the runtime value domain of the Numera language.
// A value is one of: signed arbitrary-precision integer, 64-bit binary
// floating point, or string. Variables and temps share this one domain;
// there is no static type. All values implement the NumeraObject interface,
// which allows for type checking, string representation, and object
// inspection. The package also implements the binary and unary operator
// semantics shared by compile-time constant folding, constant propagation,
// and the virtual machine.
package objects

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// NumeraType represents the type of a Numera object as a string constant.
// These constants are used to identify the type of objects in the language,
// enabling type checking across different object types.
type NumeraType string

const (
	// IntegerType represents arbitrary-precision integer values
	IntegerType NumeraType = "int"
	// FloatType represents 64-bit floating-point values
	FloatType NumeraType = "float"
	// StringType represents string values
	StringType NumeraType = "string"
	// ErrorType represents error objects with messages
	ErrorType NumeraType = "error"
)

// NumeraObject is the core interface that all Numera values must implement.
// It provides methods for type identification, string representation for
// display, and object inspection for debugging purposes.
type NumeraObject interface {
	// GetType returns the NumeraType of the object, used for type checking
	GetType() NumeraType
	// ToString returns a human-readable string representation of the value
	ToString() string
	// ToObject returns a detailed string representation including type
	// information, useful for debugging and object inspection
	ToObject() string
}

// Integer represents a signed arbitrary-precision integer value in Numera.
// It wraps a math/big.Int and provides methods for type identification and
// string conversion.
type Integer struct {
	Value *big.Int // The underlying integer value
}

// NewInteger creates an Integer from a native int64.
func NewInteger(v int64) *Integer {
	return &Integer{Value: big.NewInt(v)}
}

// GetType returns the type of the Integer object
func (i *Integer) GetType() NumeraType {
	return IntegerType
}

// ToString returns the string representation of the integer value (e.g., "42")
func (i *Integer) ToString() string {
	return i.Value.String()
}

// ToObject returns a detailed representation including type info (e.g., "<int(42)>")
func (i *Integer) ToObject() string {
	return fmt.Sprintf("<int(%s)>", i.Value.String())
}

// Float represents a 64-bit floating-point value in Numera.
// It wraps a float64 and provides methods for type identification and
// string conversion.
type Float struct {
	Value float64 // The underlying floating-point value
}

// GetType returns the type of the Float object
func (f *Float) GetType() NumeraType {
	return FloatType
}

// ToString returns the string representation of the float value.
// Whole floats keep their decimal point (e.g., "5.0", not "5") so that a
// value's floatness survives a print/reparse round trip.
func (f *Float) ToString() string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

// ToObject returns a detailed representation including type info (e.g., "<float(3.14)>")
func (f *Float) ToObject() string {
	return fmt.Sprintf("<float(%s)>", f.ToString())
}

// String represents a string value in Numera.
// It wraps a Go string and provides methods for type identification and
// string conversion.
type String struct {
	Value string // The underlying string value, without quotes
}

// GetType returns the type of the String object
func (s *String) GetType() NumeraType {
	return StringType
}

// ToString returns the string value itself (e.g., "hello")
func (s *String) ToString() string {
	return s.Value
}

// ToObject returns a detailed representation including type info (e.g., "<string(hello)>")
func (s *String) ToObject() string {
	return fmt.Sprintf("<string(%s)>", s.Value)
}

// Error represents an error object in Numera.
// It wraps an error message as a string and provides methods for type
// identification and display.
type Error struct {
	Message string // The error message
}

// GetType returns the type of the Error object
func (e *Error) GetType() NumeraType {
	return ErrorType
}

// ToString returns the error message as a string
func (e *Error) ToString() string {
	return e.Message
}

// ToObject returns a detailed representation including type info
func (e *Error) ToObject() string {
	return fmt.Sprintf("<error(%s)>", e.Message)
}

// ParseLiteral converts an operand or input string into a Numera value:
// integer first, then float, then string with any surrounding double
// quotes stripped. This is the one parsing rule used for IR literals,
// LOAD_CONST operands, and INPUT lines.
//
// Example:
//
//	ParseLiteral("42")      -> Integer(42)
//	ParseLiteral("-3")      -> Integer(-3)
//	ParseLiteral("2.5")     -> Float(2.5)
//	ParseLiteral(`"hi"`)    -> String(hi)
func ParseLiteral(text string) NumeraObject {
	if i, ok := new(big.Int).SetString(text, 10); ok {
		return &Integer{Value: i}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return &Float{Value: f}
	}
	return &String{Value: strings.Trim(text, `"`)}
}

// FormatLiteral renders a value as an IR literal operand. Strings get their
// double quotes back; numbers use their display form. FormatLiteral and
// ParseLiteral are inverses for every value the generator can produce.
func FormatLiteral(obj NumeraObject) string {
	if obj.GetType() == StringType {
		return `"` + obj.ToString() + `"`
	}
	return obj.ToString()
}
