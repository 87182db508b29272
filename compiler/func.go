package compiler

import (
	"lumen/bytecode"
	"lumen/runtime"
	"lumen/token"
)

// parameterList parses an optional "(name, name, ...)" list, declaring
// each as a local in the current (already-pushed) frame. It returns
// the parameter count.
func (p *Parser) parameterList() int {
	count := 0
	if !p.match(token.LeftParen) {
		return 0
	}
	if !p.check(token.RightParen) {
		for {
			p.consume(token.Name, "Expect parameter name.")
			p.current.locals.Add(p.lexeme(p.prevTok))
			count++
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	return count
}

// compileFunctionBody compiles a `fn` literal: a nested frame with its
// own reserved receiver slot, a parameter list, then either a
// brace-delimited block or a single expression. The new function is
// inserted into the parent's constant pool as soon as its frame is
// pushed — before the body allocates anything — and once the frame is
// torn down the parent emits a CONSTANT load for it.
func compileFunctionBody(p *Parser, isMethod bool, frameName string) {
	f := p.pushFrame(isMethod, frameName)
	idx := f.parent.fn.AddConstant(runtime.ObjectValue(f.fn))
	if idx > 255 {
		p.internal("constant pool exceeded 255 entries")
	}

	p.parameterList()

	if p.match(token.LeftBrace) {
		p.loopUntil(token.RightBrace, "Expect '}' after function body.", p.definition)
	} else {
		p.expression(false)
	}
	p.emitOp(bytecode.End)

	p.popFrame()
	p.emitOpByte(bytecode.Constant, byte(idx))
}

// loopUntil implements the block-body loop shared by curly-brace
// statements, function bodies, and method bodies: repeatedly run body,
// then require either a newline (continue, emitting POP unless the
// terminator follows immediately) or the terminator itself on the same
// line.
func (p *Parser) loopUntil(terminator token.Type, terminatorMessage string, body func()) {
	for {
		body()

		if !p.match(token.Line) {
			p.consume(terminator, terminatorMessage)
			return
		}
		if p.match(terminator) {
			return
		}
		p.emitOp(bytecode.Pop)
	}
}
