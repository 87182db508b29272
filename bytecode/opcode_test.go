package bytecode

import "testing"

func TestCallOpEncodesArityDirectlyInOpcode(t *testing.T) {
	for n := 0; n <= MaxCallArity; n++ {
		op := CallOp(n)
		def, ok := Get(op)
		if !ok {
			t.Fatalf("CallOp(%d) = %v has no definition", n, op)
		}
		want := "CALL_" + string(rune('0'+n))
		if n >= 10 {
			t.Fatalf("test assumes n < 10")
		}
		if def.Name != want {
			t.Fatalf("CallOp(%d).Name = %q, want %q", n, def.Name, want)
		}
	}
}

func TestEveryDefinedOperandIsSingleByte(t *testing.T) {
	for op := Constant; op <= End; op++ {
		def, ok := Get(op)
		if !ok {
			continue
		}
		for _, w := range def.OperandWidths {
			if w != 1 {
				t.Fatalf("%s has a non-single-byte operand width %d", def.Name, w)
			}
		}
	}
}

func TestDisassembleEndOnlyProgram(t *testing.T) {
	out := Disassemble("main", []byte{byte(End)}, nil)
	if out == "" {
		t.Fatal("Disassemble returned empty output")
	}
}
