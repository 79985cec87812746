/*
File    : numera/repl/repl_test.go
Project : Numera
*/
package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRepl_WrapStatements tests the wrapping of statement lines into
// complete programs
func TestRepl_WrapStatements(t *testing.T) {
	assert.Equal(t,
		"procedure main is begin var x = 2; print(x+3); end",
		WrapStatements("var x = 2; print(x+3);"))

	// full programs pass through unchanged
	full := "procedure main is begin end"
	assert.Equal(t, full, WrapStatements(full))
}

// TestRepl_ExecuteLine tests that a wrapped line compiles and runs
func TestRepl_ExecuteLine(t *testing.T) {
	r := NewRepl("", "test", "---", ">>> ", nil)
	var out bytes.Buffer

	r.executeLine(&out, "var x = 2; print(x+3);")
	assert.Contains(t, out.String(), "5\n")
}

// TestRepl_ExecuteLine_Error tests that a bad line reports its stage
// error instead of panicking
func TestRepl_ExecuteLine_Error(t *testing.T) {
	r := NewRepl("", "test", "---", ">>> ", nil)
	var out bytes.Buffer

	r.executeLine(&out, "print(y);")
	assert.Contains(t, out.String(), "Error during compilation pipeline at stage Parsing")
}
