// Package compiler implements Lumen's single-pass compiler: lexing,
// Pratt-driven expression parsing, statement and class/method
// compilation, name resolution, operator-to-method mangling, and direct
// bytecode emission, without a separate abstract syntax tree.
package compiler

import (
	"lumen/bytecode"
	"lumen/runtime"
	"lumen/token"
)

// Compile takes a VM handle and source text and returns the compiled
// top-level function, or an error describing every diagnostic produced
// if compilation failed. On error the partially-built function is
// discarded; the caller receives only the accumulated *multierror.Error
// (compileerr.Diagnostic / compileerr.Internal values).
func Compile(vm *runtime.VM, source string) (*runtime.Function, error) {
	p := newParser(vm, source)

	p.pushFrame(false, "")

	vm.Pin(p.current.fn)
	defer vm.Unpin(p.current.fn)

	p.loopUntil(token.EOF, "Expect end of file.", p.definition)
	p.emitOp(bytecode.End)

	fn := p.popFrame()

	if p.hasError {
		return nil, p.errs.ErrorOrNil()
	}
	return fn, nil
}
