package runtime

import "lumen/symtab"

// VM is the handle the compiler's entry point receives. It owns the
// two VM-global symbol tables the spec describes (top-level variable
// names and method signatures) plus a minimal GC-root simulation: no
// tracing collector runs here, but Pin/Unpin record which objects a
// real collector would have to treat as roots, so a reimplementation
// that does add one has a correct set of pin sites to hook.
type VM struct {
	Globals *symtab.Table
	Methods *symtab.Table

	pinned map[Obj]int
	strs   map[string]*ObjString
}

// New returns a VM with empty global and method tables.
func New() *VM {
	return &VM{
		Globals: symtab.New(),
		Methods: symtab.New(),
		pinned:  make(map[Obj]int),
		strs:    make(map[string]*ObjString),
	}
}

// NewFunction allocates a fresh function object with empty
// instruction and constant buffers.
func (vm *VM) NewFunction(name string) *Function {
	return &Function{Name: name}
}

// NewString interns text as a VM string object, returning
// the same *ObjString for equal text.
func (vm *VM) NewString(text string) *ObjString {
	if s, ok := vm.strs[text]; ok {
		return s
	}
	s := &ObjString{Value: text}
	vm.strs[text] = s
	return s
}

// Pin marks obj as a GC root. Pins nest: an object pinned twice needs
// two Unpin calls before it is eligible for collection again.
func (vm *VM) Pin(obj Obj) {
	vm.pinned[obj]++
}

// Unpin removes one root reference previously added by Pin.
func (vm *VM) Unpin(obj Obj) {
	if vm.pinned[obj] <= 1 {
		delete(vm.pinned, obj)
		return
	}
	vm.pinned[obj]--
}

// IsPinned reports whether obj currently holds at least one root
// reference. Exercised by tests of pin nesting and of the top-level
// function being unpinned once Compile returns.
func (vm *VM) IsPinned(obj Obj) bool {
	return vm.pinned[obj] > 0
}
