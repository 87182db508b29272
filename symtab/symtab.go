// Package symtab implements the compiler's name tables: a per-frame
// table for locals and parameters, and the two VM-global tables for
// top-level variable names and method signatures.
//
// Every table maps a name to a dense, non-negative integer assigned in
// insertion order. Names are interned before insertion so repeated
// identifiers and mangled method names across a large compile share one
// backing string.
package symtab

import "github.com/josharian/intern"

// Absent is returned by Find when a name has no entry.
const Absent = -1

// AlreadyPresent is returned by Add when the name is already in the
// table; the caller (declareVariable) turns this into a redeclaration
// error.
const AlreadyPresent = -1

// Table is an insertion-ordered name -> index mapping.
type Table struct {
	index map[string]int
	names []string
}

// New returns an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Add inserts name and returns its new index, or AlreadyPresent if the
// name is already in the table.
func (t *Table) Add(name string) int {
	name = intern.String(name)
	if _, ok := t.index[name]; ok {
		return AlreadyPresent
	}
	idx := len(t.names)
	t.index[name] = idx
	t.names = append(t.names, name)
	return idx
}

// Find returns name's index, or Absent if it has no entry.
func (t *Table) Find(name string) int {
	if idx, ok := t.index[name]; ok {
		return idx
	}
	return Absent
}

// Ensure returns name's existing index, inserting it first if absent.
func (t *Table) Ensure(name string) int {
	if idx := t.Find(name); idx != Absent {
		return idx
	}
	return t.Add(intern.String(name))
}

// Len reports how many names are registered.
func (t *Table) Len() int {
	return len(t.names)
}

// Name returns the name registered at idx. It panics if idx is out of
// range, mirroring a programmer error rather than a user-facing one.
func (t *Table) Name(idx int) string {
	return t.names[idx]
}
