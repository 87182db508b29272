package compiler

import "lumen/token"

// precedence is the Pratt table's precedence ladder, low to high.
type precedence int

const (
	precNone precedence = iota
	precLowest
	precAssignment
	precIs
	precEquality
	precComparison
	precBitwise
	precTerm
	precFactor
	precUnary
	precCall
)

type prefixFn func(p *Parser, canAssign bool)
type infixFn func(p *Parser, canAssign bool)

// signatureFn parses the remainder of a method signature after its
// leading name token has been consumed, declaring parameters as
// locals, and returns the mangled method name.
type signatureFn func(p *Parser, bareName string) string

// rule is one row of the token-indexed Pratt table: a prefix parselet,
// an infix parselet, a signature parselet (for method definitions), the
// infix precedence, and — for operator tokens — the canonical operator
// name mangling starts from.
type rule struct {
	prefix    prefixFn
	infix     infixFn
	signature signatureFn
	prec      precedence
	opName    string
}

var rules map[token.Type]rule

func init() {
	rules = map[token.Type]rule{
		token.LeftParen: {prefix: grouping},

		token.Dot: {infix: call, prec: precCall},

		token.Star:  {infix: infixOp, signature: infixSignature, prec: precFactor, opName: "* "},
		token.Slash: {infix: infixOp, signature: infixSignature, prec: precFactor, opName: "/ "},

		token.Percent: {infix: infixOp, signature: infixSignature, prec: precTerm, opName: "% "},
		token.Plus:    {infix: infixOp, signature: infixSignature, prec: precTerm, opName: "+ "},

		token.Minus: {prefix: unaryOp, infix: infixOp, signature: mixedSignature, prec: precTerm, opName: "- "},

		token.Bang: {prefix: unaryOp, signature: unarySignature, opName: "!"},

		token.Less:      {infix: infixOp, signature: infixSignature, prec: precComparison, opName: "< "},
		token.Greater:   {infix: infixOp, signature: infixSignature, prec: precComparison, opName: "> "},
		token.LessEqual: {infix: infixOp, signature: infixSignature, prec: precComparison, opName: "<= "},
		token.GreaterEq: {infix: infixOp, signature: infixSignature, prec: precComparison, opName: ">= "},

		token.EqualEqual: {infix: infixOp, signature: infixSignature, prec: precEquality, opName: "== "},
		token.BangEqual:  {infix: infixOp, signature: infixSignature, prec: precEquality, opName: "!= "},

		token.Is: {infix: isTest, prec: precIs},

		token.False: {prefix: boolean},
		token.True:  {prefix: boolean},

		token.Fn:   {prefix: function},
		token.Null: {prefix: null},
		token.This: {prefix: this},

		token.Name:   {prefix: name, signature: namedSignature},
		token.Number: {prefix: number},
		token.String: {prefix: stringLit},
	}
}

func getRule(t token.Type) rule {
	return rules[t]
}
