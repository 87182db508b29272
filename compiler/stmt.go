package compiler

import (
	"lumen/bytecode"
	"lumen/token"
)

// declareVariable consumes a NAME and inserts it into the locals table
// if the current frame has a parent, or the VM's global table
// otherwise. A duplicate name reports "Variable is already defined."
// and returns the AlreadyPresent sentinel; parsing continues using
// that sentinel as the symbol.
func (p *Parser) declareVariable() int {
	p.consume(token.Name, "Expected variable name.")
	text := p.lexeme(p.prevTok)

	var symbol int
	if p.current.parent != nil {
		symbol = p.current.locals.Add(text)
	} else {
		symbol = p.vm.Globals.Add(text)
	}

	if symbol == -1 {
		p.errorAtPrevious("Variable is already defined.")
	}
	return symbol
}

// defineVariable finalizes a binding whose initializer value is
// already on the operand stack: a global is explicitly stored; a local
// is merely DUP'd, since its value already sits in the right runtime
// slot and the statement-chaining POP that follows needs something
// harmless to discard.
func (p *Parser) defineVariable(symbol int) {
	if p.current.parent == nil {
		p.emitOpByte(bytecode.StoreGlobal, byte(symbol))
		return
	}
	p.emitOp(bytecode.Dup)
}

// statement parses any expression, including the statement-only forms
// `if` and a brace-delimited block, falling back to assignment().
func (p *Parser) statement() {
	if p.match(token.If) {
		p.ifStatement()
		return
	}

	if p.match(token.LeftBrace) {
		p.loopUntil(token.RightBrace, "Expect '}' after block body.", p.definition)
		return
	}

	p.assignment()
}

// ifStatement lowers `if (cond) then [else else]` to a JUMP_IF over the
// then-branch, a JUMP over the else-branch, with both one-byte
// placeholder operands patched once their targets are known.
func (p *Parser) ifStatement() {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	p.assignment()
	p.consume(token.RightParen, "Expect ')' after if condition.")

	thenJump := p.emitJump(bytecode.JumpIf)
	p.statement()

	elseJump := p.emitJump(bytecode.Jump)
	p.patchJump(thenJump)

	if p.match(token.Else) {
		p.statement()
	} else {
		p.emitOp(bytecode.Null)
	}
	p.patchJump(elseJump)
}

// definition parses a name-binding construct (class or var) or falls
// back to statement().
func (p *Parser) definition() {
	if p.match(token.Class) {
		p.classBody()
		return
	}

	if p.match(token.Var) {
		symbol := p.declareVariable()
		p.consume(token.Equal, "Expect '=' after variable name.")
		p.statement()
		p.defineVariable(symbol)
		return
	}

	p.statement()
}
