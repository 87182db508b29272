package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// runCmd compiles a source file the same way emit does, but stands in
// for the entry point a real bytecode VM would hook in place of this
// driver: it reports success and, with -disassemble, also prints the
// bytecode it would have executed. There is no evaluator here yet.
type runCmd struct {
	disassemble bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compile a file (would execute it, once a VM exists)" }
func (*runCmd) Usage() string {
	return "run [-disassemble] <source.lumen>\n"
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.disassemble, "disassemble", false, "print the compiled bytecode before \"running\" it")
	f.BoolVar(&c.disassemble, "di", false, "shorthand for -disassemble")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run: expected exactly one source file")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	_, fn, err := compileFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.disassemble {
		fmt.Print(disassembleTree(path, fn))
	}

	fmt.Printf("compiled %s: %d bytes of bytecode, %d top-level constants\n",
		path, len(fn.Code), len(fn.Constants))
	fmt.Println("no evaluator is wired up yet; this is where one would run.")
	return subcommands.ExitSuccess
}
