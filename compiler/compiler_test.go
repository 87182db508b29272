package compiler

import (
	"strings"
	"testing"

	"lumen/bytecode"
	"lumen/runtime"
)

func mustCompile(t *testing.T, source string) (*runtime.VM, *runtime.Function) {
	t.Helper()
	vm := runtime.New()
	fn, err := Compile(vm, source)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", source, err)
	}
	return vm, fn
}

func lastOp(fn *runtime.Function) bytecode.Op {
	return bytecode.Op(fn.Code[len(fn.Code)-1])
}

func TestEveryProgramEndsWithEnd(t *testing.T) {
	sources := []string{
		"1 + 2",
		"var x = 1",
		"if (true) 1 else 2",
		"class A {\nfoo(x) { x }\n}",
	}
	for _, src := range sources {
		_, fn := mustCompile(t, src)
		if lastOp(fn) != bytecode.End {
			t.Errorf("source %q: last opcode = %v, want End", src, lastOp(fn))
		}
	}
}

// A source that is empty, or contains only whitespace/newlines/comments,
// still drives one unconditional definition() at the top of the compile
// loop before the end-of-file check — matching the original source's
// compile(), which calls definition(&compiler) once before ever testing
// whether the first token is already TOKEN_EOF. With nothing there to
// parse, it fails the same way an empty expression position always
// does: no prefix parser for EOF.
func TestWhitespaceOnlySourceReportsNoPrefixParser(t *testing.T) {
	vm := runtime.New()
	_, err := Compile(vm, "   \n\n  ")
	if err == nil {
		t.Fatal("expected whitespace-only source to fail to compile")
	}
	if !strings.Contains(err.Error(), "No prefix parser") {
		t.Fatalf("error = %v, want it to mention a missing prefix parser", err)
	}
}

func TestVarDeclarationStoresGlobalAndSymbolIsDense(t *testing.T) {
	vm, fn := mustCompile(t, "var x = 1")

	sym := vm.Globals.Find("x")
	if sym != 0 {
		t.Fatalf("first declared global should get symbol 0, got %d", sym)
	}

	// CONSTANT 0, STORE_GLOBAL <sym>, END — defineVariable emits
	// STORE_GLOBAL directly (no DUP at top level).
	want := []byte{byte(bytecode.Constant), 0, byte(bytecode.StoreGlobal), byte(sym), byte(bytecode.End)}
	if !bytesEqual(fn.Code, want) {
		t.Fatalf("Code = %v, want %v", fn.Code, want)
	}
}

func TestReassignmentThenReadResolvesSameGlobalSymbol(t *testing.T) {
	vm, fn := mustCompile(t, "var x = 1\nx = 2\nx")

	sym := vm.Globals.Find("x")
	if sym == -1 {
		t.Fatal("expected x to be declared as a global")
	}

	count := 0
	for i := 0; i < len(fn.Code); i++ {
		op := bytecode.Op(fn.Code[i])
		def, ok := bytecode.Get(op)
		if !ok {
			t.Fatalf("unknown opcode %v at offset %d", op, i)
		}
		if op == bytecode.StoreGlobal || op == bytecode.LoadGlobal {
			if int(fn.Code[i+1]) != sym {
				t.Errorf("offset %d: expected symbol %d, got %d", i, sym, fn.Code[i+1])
			}
			count++
		}
		i += len(def.OperandWidths)
	}
	if count != 3 {
		t.Fatalf("expected two STORE_GLOBALs and one LOAD_GLOBAL referencing x, saw %d global ops", count)
	}
}

func TestArithmeticPrecedenceEmitsMultiplyBeforeAdd(t *testing.T) {
	vm, fn := mustCompile(t, "1 + 2 * 3")

	plus := vm.Methods.Find("+ ")
	star := vm.Methods.Find("* ")
	if plus == -1 || star == -1 {
		t.Fatal("expected both '+' and '*' methods to be registered")
	}

	ops := opSequence(fn.Code)
	starIdx := indexOf(ops, bytecode.CallOp(1))
	if starIdx == -1 {
		t.Fatal("expected at least one CALL_1 in the bytecode")
	}
	// 2 * 3 binds tighter, so its CALL_1 (for '*') must be emitted
	// before the CALL_1 for '+'.
	var callOffsets []int
	for i, b := range fn.Code {
		if bytecode.Op(b) == bytecode.CallOp(1) {
			callOffsets = append(callOffsets, i)
		}
	}
	if len(callOffsets) != 2 {
		t.Fatalf("expected exactly two CALL_1 instructions, got %d", len(callOffsets))
	}
	firstSym := int(fn.Code[callOffsets[0]+1])
	secondSym := int(fn.Code[callOffsets[1]+1])
	if firstSym != star {
		t.Errorf("first CALL_1 should target '*' (sym %d), got sym %d", star, firstSym)
	}
	if secondSym != plus {
		t.Errorf("second CALL_1 should target '+' (sym %d), got sym %d", plus, secondSym)
	}
}

func TestIfElseEmitsBalancedJumps(t *testing.T) {
	_, fn := mustCompile(t, "if (true) 1 else 2")

	jumpIfIdx := indexOfByte(fn.Code, byte(bytecode.JumpIf))
	jumpIdx := indexOfByte(fn.Code, byte(bytecode.Jump))
	if jumpIfIdx == -1 || jumpIdx == -1 {
		t.Fatal("expected both JUMP_IF and JUMP in if/else bytecode")
	}

	thenTarget := jumpIfIdx + 2 + int(fn.Code[jumpIfIdx+1])
	wantThenTarget := jumpIdx + 2 // right after JUMP's own opcode+operand: the start of the else branch
	if thenTarget != wantThenTarget {
		t.Errorf("JUMP_IF should land just past the else-branch's JUMP (offset %d), got target %d", wantThenTarget, thenTarget)
	}

	elseTarget := jumpIdx + 2 + int(fn.Code[jumpIdx+1])
	if elseTarget != len(fn.Code)-1 {
		t.Errorf("JUMP should land on the trailing END (offset %d), got target %d", len(fn.Code)-1, elseTarget)
	}
}

func TestClassMethodDefinitionAndCallShareMangledSymbol(t *testing.T) {
	vm, fn := mustCompile(t, "class A {\nfoo(x) { x }\n}\nA.foo(1)")

	sym := vm.Methods.Find("foo ")
	if sym == -1 {
		t.Fatal("expected 'foo ' (one parameter) to be registered as a method symbol")
	}

	methodIdx := indexOfByte(fn.Code, byte(bytecode.Method))
	if methodIdx == -1 {
		t.Fatal("expected a METHOD instruction")
	}
	if int(fn.Code[methodIdx+1]) != sym {
		t.Errorf("METHOD instruction's symbol operand = %d, want %d", fn.Code[methodIdx+1], sym)
	}

	call1Idx := indexOfByte(fn.Code, byte(bytecode.CallOp(1)))
	if call1Idx == -1 {
		t.Fatal("expected a CALL_1 instruction for A.foo(1)")
	}
	if int(fn.Code[call1Idx+1]) != sym {
		t.Errorf("CALL_1 instruction's symbol operand = %d, want %d (same as METHOD)", fn.Code[call1Idx+1], sym)
	}

	constIdx := int(fn.Code[methodIdx+2])
	nested, ok := fn.Constants[constIdx].Object().(*runtime.Function)
	if !ok {
		t.Fatalf("constant %d referenced by METHOD is not a *runtime.Function", constIdx)
	}
	if lastOp(nested) != bytecode.End {
		t.Errorf("method body's last opcode = %v, want End", lastOp(nested))
	}
}

func TestFnLiteralParametersStartAtSlotOne(t *testing.T) {
	_, fn := mustCompile(t, "fn(x,y) x + y")

	constIdx := -1
	for i, v := range fn.Constants {
		if _, ok := v.Object().(*runtime.Function); ok {
			constIdx = i
		}
	}
	if constIdx == -1 {
		t.Fatal("expected the fn literal to land in the enclosing frame's constant pool")
	}
	nested := fn.Constants[constIdx].Object().(*runtime.Function)

	// x and y are the only two LOAD_LOCAL targets used by `x + y`; slot
	// 0 is reserved for the receiver sentinel, so both must be >= 1.
	for i := 0; i < len(nested.Code); i++ {
		if bytecode.Op(nested.Code[i]) == bytecode.LoadLocal {
			if nested.Code[i+1] == 0 {
				t.Errorf("LOAD_LOCAL at offset %d loads slot 0 (reserved for receiver), want >= 1", i)
			}
			i++
		}
	}
}

func TestUnaryAndInfixMinusAreDistinctSymbols(t *testing.T) {
	vm, _ := mustCompile(t, "class A {\n- { 1 }\n- x { x }\n}")

	unarySym := vm.Methods.Find("-")
	infixSym := vm.Methods.Find("- ")
	if unarySym == -1 || infixSym == -1 {
		t.Fatal("expected both unary '-' and infix '- ' to be registered")
	}
	if unarySym == infixSym {
		t.Fatal("unary and infix minus must mangle to distinct symbols")
	}
}

func TestUndefinedVariableReportsButStillProducesDiagnostic(t *testing.T) {
	vm := runtime.New()
	_, err := Compile(vm, "undeclared")
	if err == nil {
		t.Fatal("expected an error for reading an undeclared name")
	}
	if !strings.Contains(err.Error(), "Undefined variable") {
		t.Fatalf("error = %v, want it to mention an undefined variable", err)
	}
}

func TestTopLevelFunctionIsUnpinnedAfterCompile(t *testing.T) {
	vm := runtime.New()
	fn, err := Compile(vm, "var x = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vm.IsPinned(fn) {
		t.Fatal("top-level function should be unpinned once Compile returns")
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func opSequence(code []byte) []bytecode.Op {
	var ops []bytecode.Op
	for i := 0; i < len(code); i++ {
		op := bytecode.Op(code[i])
		def, ok := bytecode.Get(op)
		if !ok {
			continue
		}
		ops = append(ops, op)
		i += len(def.OperandWidths)
	}
	return ops
}

func indexOf(ops []bytecode.Op, target bytecode.Op) int {
	for i, op := range ops {
		if op == target {
			return i
		}
	}
	return -1
}

func indexOfByte(code []byte, target byte) int {
	for i, b := range code {
		if b == target {
			return i
		}
	}
	return -1
}
