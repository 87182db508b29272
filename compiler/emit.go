package compiler

import (
	"lumen/bytecode"
	"lumen/runtime"
)

// emit appends one byte to the current frame's bytecode buffer and
// returns its offset.
func (p *Parser) emit(b byte) int {
	f := p.current
	offset := len(f.fn.Code)
	f.fn.Code = append(f.fn.Code, b)
	return offset
}

// emitOp emits an opcode byte, returning the offset of the opcode
// itself (not of any operand that follows).
func (p *Parser) emitOp(op bytecode.Op) int {
	return p.emit(byte(op))
}

// emitOpByte emits an opcode followed by one operand byte, returning
// the opcode's offset.
func (p *Parser) emitOpByte(op bytecode.Op, operand byte) int {
	offset := p.emitOp(op)
	p.emit(operand)
	return offset
}

// addConstant adds v to the current frame's constant pool. The value
// is reachable through the pool the instant this call returns — the
// GC-reachability invariant the compiler must uphold for nested
// function and string constants.
func (p *Parser) addConstant(v runtime.Value) int {
	idx := p.current.fn.AddConstant(v)
	if idx > 255 {
		p.internal("constant pool exceeded 255 entries")
	}
	return idx
}

// emitConstant adds v to the pool and emits a CONSTANT load for it.
func (p *Parser) emitConstant(v runtime.Value) {
	idx := p.addConstant(v)
	p.emitOpByte(bytecode.Constant, byte(idx))
}

// emitJump emits op followed by a placeholder operand byte, returning
// the offset of that operand byte for later patchJump.
func (p *Parser) emitJump(op bytecode.Op) int {
	p.emitOp(op)
	return p.emit(0xff) // placeholder
}

// patchJump overwrites the operand at operandOffset with the
// byte-relative displacement from the byte after the operand to the
// current end of the bytecode buffer. The displacement must fit in
// [0, 255]; bodies larger than that are an acknowledged, silent
// limitation inherited from the source (spec §9), reported here as a
// diagnostic instead so the compiler fails loudly rather than
// miscompiling.
func (p *Parser) patchJump(operandOffset int) {
	f := p.current
	target := len(f.fn.Code) - (operandOffset + 1)
	if target < 0 || target > 255 {
		p.errorAtPrevious("Too much code to jump over.")
		return
	}
	f.fn.Code[operandOffset] = byte(target)
}

// emitCall emits a CALL_n for the given argument count. arity above
// bytecode.MaxCallArity cannot be encoded in the opcode byte, so it is
// reported as a diagnostic rather than silently overflowing into an
// adjacent opcode (spec §9 leaves this unchecked in the source; this
// reimplementation makes the deliberate, documented choice to check).
func (p *Parser) emitCall(arity int, methodSym int) {
	if arity > bytecode.MaxCallArity {
		p.errorAtPrevious("Method has too many arguments (max 9).")
		arity = bytecode.MaxCallArity
	}
	p.emitOpByte(bytecode.CallOp(arity), byte(methodSym))
}
