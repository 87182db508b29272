package main

import (
	"os"

	"lumen/bytecode"
	"lumen/compiler"
	"lumen/runtime"
)

// compileFile reads path and compiles it against a fresh VM, returning
// the top-level function and the VM it was compiled into (nested
// functions and classes live in the VM's global/method tables and in
// the constant pools of the functions that reference them).
func compileFile(path string) (*runtime.VM, *runtime.Function, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	vm := runtime.New()
	fn, err := compiler.Compile(vm, string(source))
	if err != nil {
		return vm, nil, err
	}
	return vm, fn, nil
}

// disassembleTree renders fn's bytecode followed by the disassembly of
// every nested function reachable from its constant pool, recursively —
// the same "walk the constant pool for more code to show" approach the
// teacher's own disassembler uses.
func disassembleTree(name string, fn *runtime.Function) string {
	constants := make([]any, len(fn.Constants))
	for i, v := range fn.Constants {
		constants[i] = v
	}

	out := bytecode.Disassemble(name, fn.Code, constants)

	for _, v := range fn.Constants {
		if nested, ok := v.Object().(*runtime.Function); ok && v.Kind() == runtime.KindObject {
			nestedName := nested.Name
			if nestedName == "" {
				nestedName = "<anonymous>"
			}
			out += "\n" + disassembleTree(nestedName, nested)
		}
	}
	return out
}
