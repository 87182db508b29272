package compiler

import (
	"lumen/bytecode"
	"lumen/runtime"
	"lumen/token"
)

// infixSignature compiles the signature for a binary-operator method
// definition: a single bare parameter name directly follows the
// operator token (no parentheses), declared as a local via
// declareParameterName. Returns the mangled name with one trailing space.
func infixSignature(p *Parser, bareName string) string {
	p.declareParameterName()
	return mangleCall(bareName, 1)
}

// unarySignature compiles the signature for a unary-only operator
// method (`!`): there is nothing more to parse.
func unarySignature(p *Parser, bareName string) string {
	return bareName
}

// mixedSignature compiles the signature for an operator that can be
// either unary or infix (`-`): if a parameter name follows, it behaves
// like infixSignature; otherwise like unarySignature.
func mixedSignature(p *Parser, bareName string) string {
	if p.check(token.Name) {
		return infixSignature(p, bareName)
	}
	return unarySignature(p, bareName)
}

// namedSignature compiles the signature for an ordinary identifier
// method name: an optional parenthesized parameter list, each
// parameter declared as a local, contributing one trailing space to
// the mangled name per parameter.
func namedSignature(p *Parser, bareName string) string {
	count := p.parameterList()
	return mangleCall(bareName, count)
}

// declareParameterName consumes a NAME token and declares it as a
// local in the current (method) frame. Unlike declareVariable in the
// top-level/var case, a method-signature parameter frame always has a
// parent, so this always lands in locals.
func (p *Parser) declareParameterName() {
	p.consume(token.Name, "Expect parameter name.")
	p.current.locals.Add(p.lexeme(p.prevTok))
}

// classBody compiles `class Name [is Super] { ... }` once `class` and
// the name have been consumed by definition(). It declares the class
// name as a variable, emits CLASS or SUBCLASS, defines the variable,
// then compiles method definitions until the closing brace.
func (p *Parser) classBody() {
	symbol := p.declareVariable()

	if p.match(token.Is) {
		p.parsePrecedence(false, precCall)
		p.emitOp(bytecode.Subclass)
	} else {
		p.emitOp(bytecode.Class)
	}

	p.defineVariable(symbol)

	p.consume(token.LeftBrace, "Expect '{' before class body.")
	for !p.match(token.RightBrace) {
		if p.check(token.EOF) {
			p.errorAtCurrent("Expect '}' after class body.")
			return
		}

		isStatic := p.match(token.Static)

		r := getRule(p.curTok.Type)
		if r.signature == nil {
			p.errorAtCurrent("Expect method definition.")
			break
		}
		nameTok := p.curTok
		p.advance()

		p.method(isStatic, r.signature, p.lexeme(nameTok))
		p.consume(token.Line, "Expect newline after definition in class.")
	}
}

// method compiles one method body: a nested frame (isMethod=true), the
// signature (which declares parameters and builds the mangled name),
// a mandatory brace-delimited block, then METHOD (or METACLASS+METHOD
// for a static method) installed on the class left on the enclosing
// frame's stack.
func (p *Parser) method(isStatic bool, signature signatureFn, bareName string) {
	f := p.pushFrame(true, bareName)
	constIdx := f.parent.fn.AddConstant(runtime.ObjectValue(f.fn))
	if constIdx > 255 {
		p.internal("constant pool exceeded 255 entries")
	}

	mangled := signature(p, bareName)
	methodSym := p.vm.Methods.Ensure(mangled)

	p.consume(token.LeftBrace, "Expect '{' to begin method body.")
	p.loopUntil(token.RightBrace, "Expect '}' after method body.", p.definition)
	p.emitOp(bytecode.End)

	p.popFrame()

	if isStatic {
		p.emitOp(bytecode.Metaclass)
	}
	p.emitOp(bytecode.Method)
	p.emit(byte(methodSym))
	p.emit(byte(constIdx))
	if isStatic {
		p.emitOp(bytecode.Pop)
	}
}
