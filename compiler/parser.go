package compiler

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"lumen/compileerr"
	"lumen/lexer"
	"lumen/runtime"
	"lumen/token"
)

// Parser is the shared state threaded through one compilation: the
// lexer, the lookahead/previous tokens, the error-accumulation flag,
// and the VM handle the compiler registers names with. current points
// at the innermost active frame.
type Parser struct {
	source string
	lex    *lexer.Lexer

	curTok  token.Token
	prevTok token.Token

	hasError bool
	errs     *multierror.Error

	vm      *runtime.VM
	current *frame

	// Debug is off by default and is not read by the compiler: Compile
	// logs no disassembly at any logrus level.
	Debug bool
}

func newParser(vm *runtime.VM, source string) *Parser {
	p := &Parser{
		source: source,
		lex:    lexer.New(source),
		vm:     vm,
	}
	p.advance()
	return p
}

func (p *Parser) lexeme(t token.Token) string {
	return t.Lexeme(p.source)
}

// advance copies curTok into prevTok and reads the next filtered token.
// ERROR tokens are reported but do not stop the advance loop, matching
// the "continue parsing" strategy: a stream of bad characters produces
// one diagnostic per character, not a crash.
func (p *Parser) advance() {
	p.prevTok = p.curTok
	for {
		p.curTok = p.lex.Next()
		if p.curTok.Type != token.Error {
			return
		}
		p.errorAt(p.curTok, "Unexpected character.")
	}
}

// check reports whether the lookahead has type t.
func (p *Parser) check(t token.Type) bool {
	return p.curTok.Type == t
}

// match consumes the lookahead and returns true if it has type t.
func (p *Parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

// consume requires the lookahead to have type t, advancing past it; if
// it doesn't, message is reported as a syntactic error at the
// lookahead and advance does not happen, so callers keep making
// progress against the rest of the grammar.
func (p *Parser) consume(t token.Type, message string) {
	if p.check(t) {
		p.advance()
		return
	}
	p.errorAt(p.curTok, message)
}

// errorAt latches hasError, records a Diagnostic, and keeps going: the
// compiler never stops at the first mistake (spec §7).
func (p *Parser) errorAt(t token.Token, message string) {
	p.hasError = true
	d := &compileerr.Diagnostic{
		Line:    t.Line,
		Lexeme:  p.lexeme(t),
		Message: message,
	}
	p.errs = multierror.Append(p.errs, d)
}

func (p *Parser) errorAtPrevious(message string) {
	p.errorAt(p.prevTok, message)
}

func (p *Parser) errorAtCurrent(message string) {
	p.errorAt(p.curTok, message)
}

// internal reports a contract violation in the compiler's own code via
// logrus rather than as a user-facing Diagnostic — the distinction the
// teacher's DeveloperError makes.
func (p *Parser) internal(message string) {
	logrus.WithField("line", p.curTok.Line).Error("internal compiler error: " + message)
	p.errs = multierror.Append(p.errs, &compileerr.Internal{Message: message})
	p.hasError = true
}
