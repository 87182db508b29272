package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders code as a human-readable listing, one instruction
// per line, in the teacher's `offset opcode operands` column style.
func Disassemble(name string, code []byte, constants []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)

	for offset := 0; offset < len(code); {
		offset = disassembleInstruction(&b, code, constants, offset)
	}
	return b.String()
}

func disassembleInstruction(b *strings.Builder, code []byte, constants []any, offset int) int {
	op := Op(code[offset])
	def, ok := Get(op)
	if !ok {
		fmt.Fprintf(b, "%04d UNKNOWN %d\n", offset, op)
		return offset + 1
	}

	operands := make([]byte, len(def.OperandWidths))
	next := offset + 1
	for i := range def.OperandWidths {
		operands[i] = code[next]
		next++
	}

	switch op {
	case Constant:
		idx := int(operands[0])
		var val any
		if idx < len(constants) {
			val = constants[idx]
		}
		fmt.Fprintf(b, "%04d %-12s %4d %v\n", offset, def.Name, idx, val)
	case Method:
		fmt.Fprintf(b, "%04d %-12s sym=%d const=%d\n", offset, def.Name, operands[0], operands[1])
	default:
		if len(operands) == 0 {
			fmt.Fprintf(b, "%04d %-12s\n", offset, def.Name)
		} else {
			fmt.Fprintf(b, "%04d %-12s %4d\n", offset, def.Name, operands[0])
		}
	}

	return next
}
