package compiler

import "strings"

// mangleCall builds the mangled method name for a call with the given
// bare name and argument count: one trailing space per argument, so
// `foo()`, `foo(x)`, and `foo(x,y)` become three distinct symbols
// ("foo", "foo ", "foo  ").
func mangleCall(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return name + strings.Repeat(" ", arity)
}

// mangleUnary truncates the operator's canonical rule-table name to its
// first character. Shared-row operators like "-" store their canonical
// name with the infix form's trailing space baked in ("- "); unaryOp
// must not use that full string or unary and infix minus would collide
// on an identical symbol. Truncating to one character mirrors the
// original source's unaryOp, which registers its symbol with length 1
// rather than the rule's full strlen.
func mangleUnary(name string) string {
	if len(name) == 0 {
		return name
	}
	return name[:1]
}
