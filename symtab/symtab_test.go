package symtab

import "testing"

func TestAddAssignsDenseInsertionOrderIndices(t *testing.T) {
	tbl := New()

	if idx := tbl.Add("a"); idx != 0 {
		t.Fatalf("Add(a) = %d, want 0", idx)
	}
	if idx := tbl.Add("b"); idx != 1 {
		t.Fatalf("Add(b) = %d, want 1", idx)
	}
}

func TestAddDuplicateReturnsAlreadyPresent(t *testing.T) {
	tbl := New()
	tbl.Add("a")

	if idx := tbl.Add("a"); idx != AlreadyPresent {
		t.Fatalf("Add(a) second time = %d, want AlreadyPresent", idx)
	}
}

func TestFindAbsentReturnsAbsent(t *testing.T) {
	tbl := New()
	if idx := tbl.Find("nope"); idx != Absent {
		t.Fatalf("Find(nope) = %d, want Absent", idx)
	}
}

func TestEnsureInsertsOnce(t *testing.T) {
	tbl := New()

	first := tbl.Ensure("foo ")
	second := tbl.Ensure("foo ")

	if first != second {
		t.Fatalf("Ensure not idempotent: %d != %d", first, second)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
}

func TestMangledArityNamesAreDistinctSymbols(t *testing.T) {
	tbl := New()

	zero := tbl.Ensure("foo")
	one := tbl.Ensure("foo ")
	two := tbl.Ensure("foo  ")

	if zero == one || one == two || zero == two {
		t.Fatalf("arity-mangled names collided: foo=%d, foo_1=%d, foo_2=%d", zero, one, two)
	}
}
