package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"lumen/compiler"
	"lumen/lexer"
	"lumen/runtime"
	"lumen/token"
)

const banner = `
   _
  | |_   _ _ __ ___   ___ _ __
  | | | | | '_  _ \ / _ \ '_ \
  | | |_| | | | | | |  __/ | | |
  |_|\__,_|_| |_| |_|\___|_| |_|

  type ` + "`.exit`" + ` to leave; input compiles once it forms a complete chunk.
`

// replCmd is a line-buffered read-compile-disassemble loop. Unlike
// emit and run, state persists across submissions: a single VM lives
// for the whole session, so variables and classes declared in one
// chunk are visible (as VM globals) to the next.
type replCmd struct {
	disassemble bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "interactively compile chunks of source" }
func (*replCmd) Usage() string {
	return "repl [-disassemble]\n"
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.disassemble, "disassemble", true, "print each chunk's disassembly after compiling it")
}

func (c *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Println("repl:", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Print(banner)

	vm := runtime.New()
	var buf strings.Builder

	for {
		line, err := rl.Readline()
		if err == io.EOF || line == ".exit" {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Println("repl:", err)
			return subcommands.ExitFailure
		}

		buf.WriteString(line)
		buf.WriteString("\n")

		source := buf.String()
		if !isInputReady(source) {
			rl.SetPrompt("... ")
			continue
		}
		rl.SetPrompt(">>> ")

		fn, err := compiler.Compile(vm, source)
		buf.Reset()
		if err != nil {
			fmt.Println(err)
			continue
		}
		if c.disassemble {
			fmt.Print(disassembleTree("chunk", fn))
		}
	}
}

// isInputReady tokenizes source with a throwaway lexer and reports
// whether it looks like a complete chunk: every bracket is balanced
// and the last meaningful token isn't one that can only be followed by
// more expression (a binary operator, a dangling keyword, a trailing
// comma or dot). It is a heuristic, not a parse — the real compiler
// call afterward is the source of truth for whether the chunk is
// actually valid.
func isInputReady(source string) bool {
	lx := lexer.New(source)

	depth := 0
	var last token.Token
	sawAny := false

	for {
		t := lx.Next()
		if t.Type == token.EOF {
			break
		}
		switch t.Type {
		case token.LeftParen, token.LeftBrace, token.LeftBrack:
			depth++
		case token.RightParen, token.RightBrace, token.RightBrack:
			depth--
		}
		last = t
		sawAny = true
	}

	if depth > 0 {
		return false
	}
	if !sawAny {
		return true
	}
	return !continuesExpression(last)
}

// continuesExpression reports whether t is a token after which a
// human still typing an expression would keep going on the same
// logical line — mirroring the lexer's own newline-suppression rule
// but evaluated here against the last token of the lexer's filtered
// stream.
func continuesExpression(t token.Token) bool {
	switch t.Type {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Pipe, token.Amp, token.Bang, token.Equal,
		token.Less, token.Greater, token.LessEqual, token.GreaterEq,
		token.EqualEqual, token.BangEqual,
		token.Dot, token.Comma, token.Colon, token.Is,
		token.Class, token.Else, token.Fn, token.If, token.Static, token.Var:
		return true
	default:
		return false
	}
}
