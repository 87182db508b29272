package compiler

import (
	"strconv"

	"lumen/bytecode"
	"lumen/runtime"
	"lumen/token"
)

// expression parses the subset of expressions that can appear outside
// the top of a block (no bare variable declarations). allowAssignment
// is threaded straight through to the prefix rule and every infix rule
// invoked at this level; it is NOT re-derived from precedence — each
// rule that recurses into a sub-expression (infixOp, unaryOp, is,
// grouping) hardcodes false for that recursive call, which is what
// actually confines '=' to the outermost position of a statement.
func (p *Parser) expression(allowAssignment bool) {
	p.parsePrecedence(allowAssignment, precLowest)
}

// assignment is expression(true): an expression that may itself be a
// top-level assignment.
func (p *Parser) assignment() {
	p.expression(true)
}

// parsePrecedence is the single function that drives all expression
// parsing. It consumes one token, looks up its prefix rule (failing
// with "No prefix parser" if absent), invokes it, then loops while the
// lookahead's infix rule has at least minPrecedence.
func (p *Parser) parsePrecedence(allowAssignment bool, minPrecedence precedence) {
	p.advance()
	prefixRule := getRule(p.prevTok.Type).prefix
	if prefixRule == nil {
		p.errorAtPrevious("No prefix parser.")
		return
	}
	prefixRule(p, allowAssignment)

	for {
		infixRule := getRule(p.curTok.Type).infix
		if infixRule == nil || getRule(p.curTok.Type).prec < minPrecedence {
			break
		}
		p.advance()
		infixRule(p, allowAssignment)
	}
}

// grouping parses "(" expression ")".
func grouping(p *Parser, _ bool) {
	p.expression(false)
	p.consume(token.RightParen, "Expect ')' after expression.")
}

// unaryOp parses an operand at precUnary+1, then emits a zero-argument
// call to the mangled, one-character-truncated operator method.
func unaryOp(p *Parser, _ bool) {
	op := p.prevTok
	r := getRule(op.Type)

	p.parsePrecedence(false, precUnary+1)

	sym := p.vm.Methods.Ensure(mangleUnary(r.opName))
	p.emitCall(0, sym)
}

// infixOp parses a right operand at rule.prec+1 (left-associative),
// then emits a one-argument call to the mangled operator method.
func infixOp(p *Parser, _ bool) {
	op := p.prevTok
	r := getRule(op.Type)

	p.parsePrecedence(false, r.prec+1)

	sym := p.vm.Methods.Ensure(r.opName)
	p.emitCall(1, sym)
}

// isTest parses a right operand at precCall and emits the dedicated
// type-test opcode.
func isTest(p *Parser, _ bool) {
	p.parsePrecedence(false, precCall)
	p.emitOp(bytecode.Is)
}

// call is triggered by '.': consumes a NAME, then an optional
// argument list (each argument compiled as a full statement, mirroring
// the original source), builds the mangled method signature, registers
// it, and emits CALL_n.
func call(p *Parser, _ bool) {
	p.consume(token.Name, "Expect method name after '.'.")
	bareName := p.lexeme(p.prevTok)

	arity := 0
	if p.match(token.LeftParen) {
		for {
			p.statement()
			arity++
			if !p.match(token.Comma) {
				break
			}
		}
		p.consume(token.RightParen, "Expect ')' after arguments.")
	}

	sym := p.vm.Methods.Ensure(mangleCall(bareName, arity))
	p.emitCall(arity, sym)
}

// name resolves the previous NAME token: local first, then global. If
// neither, reports "Undefined variable." A following '=' always
// consumes the token; if allowAssignment is false the consumption
// still happens but an "Invalid assignment." diagnostic is reported —
// matching the source's continue-parsing-despite-error strategy rather
// than leaving the '=' dangling in the lookahead.
func name(p *Parser, allowAssignment bool) {
	tok := p.prevTok
	text := p.lexeme(tok)

	localSlot := p.current.locals.Find(text)
	globalSym := -1
	if localSlot == -1 {
		globalSym = p.vm.Globals.Find(text)
	}
	if localSlot == -1 && globalSym == -1 {
		p.errorAtPrevious("Undefined variable.")
	}

	if p.match(token.Equal) {
		if !allowAssignment {
			p.errorAtPrevious("Invalid assignment.")
		}
		p.statement()
		if localSlot != -1 {
			p.emitOpByte(bytecode.StoreLocal, byte(localSlot))
			return
		}
		p.emitOpByte(bytecode.StoreGlobal, byte(globalSym))
		return
	}

	if localSlot != -1 {
		p.emitOpByte(bytecode.LoadLocal, byte(localSlot))
		return
	}
	p.emitOpByte(bytecode.LoadGlobal, byte(globalSym))
}

// number parses a decimal literal into a float64, reporting "Invalid
// number literal." for a zero-length or malformed result, then adds a
// numeric constant and emits a load.
func number(p *Parser, _ bool) {
	text := p.lexeme(p.prevTok)
	if text == "" {
		p.errorAtPrevious("Invalid number literal.")
		return
	}
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.errorAtPrevious("Invalid number literal.")
		return
	}
	p.emitConstant(runtime.NumberValue(val))
}

// stringLit interns the characters between the surrounding quotes (no
// escape processing) as a VM string object, adds it to the constant
// pool, and emits a load.
func stringLit(p *Parser, _ bool) {
	lexeme := p.lexeme(p.prevTok)
	body := lexeme
	if len(lexeme) >= 1 && lexeme[0] == '"' {
		// Drop the surrounding quotes. An unterminated string (no
		// closing quote reached before EOF) still has a leading quote
		// but not a trailing one; its behavior is left undefined by
		// the source, so the body is taken as everything after the
		// opening quote with no further validation.
		if lexeme[len(lexeme)-1] == '"' && len(lexeme) >= 2 {
			body = lexeme[1 : len(lexeme)-1]
		} else {
			body = lexeme[1:]
		}
	}
	str := p.vm.NewString(body)
	p.emitConstant(runtime.ObjectValue(str))
}

// boolean emits the TRUE or FALSE singleton opcode.
func boolean(p *Parser, _ bool) {
	if p.prevTok.Type == token.True {
		p.emitOp(bytecode.True)
		return
	}
	p.emitOp(bytecode.False)
}

// null emits the NULL singleton opcode.
func null(p *Parser, _ bool) {
	p.emitOp(bytecode.Null)
}

// this loads local slot 0 (the reserved receiver). It is an error if
// no enclosing frame has isMethod set.
func this(p *Parser, _ bool) {
	if p.current.enclosingMethodFrame() == nil {
		p.errorAtPrevious("'this' outside of a method.")
		return
	}
	p.emitOpByte(bytecode.LoadLocal, 0)
}

// function begins a nested frame for a `fn` literal, parses a
// parameter list and a body, terminates the frame, and emits a
// load-constant for the newly produced function object in the parent.
func function(p *Parser, _ bool) {
	compileFunctionBody(p, false, "")
}
