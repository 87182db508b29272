package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// emitCmd compiles a source file and prints its disassembly, recursing
// into every nested function and method body.
type emitCmd struct {
	out string
}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "compile a file and print its bytecode disassembly" }
func (*emitCmd) Usage() string {
	return "emit [-out file] <source.lumen>\n  Compile source.lumen and print its disassembled bytecode.\n"
}

func (c *emitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "", "write the disassembly to this file instead of stdout")
}

func (c *emitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "emit: expected exactly one source file")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	_, fn, err := compileFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emit: %v\n", err)
		return subcommands.ExitFailure
	}

	listing := disassembleTree(path, fn)

	if c.out == "" {
		fmt.Print(listing)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.out, []byte(listing), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "emit: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
