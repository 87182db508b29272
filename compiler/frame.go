package compiler

import (
	"lumen/runtime"
	"lumen/symtab"
)

// receiverSlotName is the sentinel local name occupying slot 0 of every
// non-top-level frame, so that real parameters begin at slot 1.
const receiverSlotName = "(this)"

// frame is one compilation frame: a reference to the shared parser
// state, a pointer to the enclosing frame (nil at the top level), the
// function object under construction, its local symbol table, and
// whether this frame compiles a method body. Frames form a stack via
// parent; a nested frame is created, fully parsed to its terminating
// opcode, and discarded before the parent resumes.
type frame struct {
	parser   *Parser
	parent   *frame
	fn       *runtime.Function
	locals   *symtab.Table
	isMethod bool
}

// pushFrame begins compiling a new function/method body. The new
// frame's function object is not yet visible to the GC through a
// constant-pool slot — the caller is responsible for inserting it into
// the parent's pool (or pinning it, at the top level) before any
// further allocation, per the compiler's reachability discipline.
func (p *Parser) pushFrame(isMethod bool, name string) *frame {
	f := &frame{
		parser:   p,
		parent:   p.current,
		fn:       p.vm.NewFunction(name),
		locals:   symtab.New(),
		isMethod: isMethod,
	}
	if f.parent != nil {
		f.locals.Add(receiverSlotName)
	}
	p.current = f
	return f
}

// popFrame discards the current frame, restoring its parent. The
// produced function object outlives the frame; it is the caller's job
// to store it (constant pool entry, or the final compile result).
func (p *Parser) popFrame() *runtime.Function {
	f := p.current
	p.current = f.parent
	return f.fn
}

// enclosingMethodFrame walks outward from the current frame looking
// for one with isMethod set, for `this` resolution. It returns nil if
// no enclosing frame is a method body.
func (f *frame) enclosingMethodFrame() *frame {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.isMethod {
			return cur
		}
	}
	return nil
}
