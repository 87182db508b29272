// Package compileerr defines the two error shapes the compiler
// produces: user-facing Diagnostics (lexical, syntactic, resolution,
// grammatical — spec §7) and Internal errors, the Go analogue of the
// teacher's DeveloperError, for limits the compiler's own code reports
// outside the diagnostic format. The compiler raises one when a
// function's constant pool grows past the 256 entries a single-byte
// CONSTANT operand can index; other contract violations (such as
// symtab.Table.Name with an out-of-range index) panic instead.
package compileerr

import "fmt"

// Diagnostic is one compile error, formatted exactly as
// `[Line N] Error on '<lexeme>': <message>`.
type Diagnostic struct {
	Line    int
	Lexeme  string
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[Line %d] Error on '%s': %s", d.Line, d.Lexeme, d.Message)
}

// Internal signals a programmer error in the compiler itself, never a
// user-facing mistake in the source being compiled.
type Internal struct {
	Message string
}

func (e *Internal) Error() string {
	return "internal compiler error: " + e.Message
}
