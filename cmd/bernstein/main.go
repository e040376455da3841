// Command bernstein finds a minimum-cost shift/add/subtract program
// computing n*x for each constant n given, per spec.md §4.2 and §6.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/rocky/mult-by-constants/bernstein"
	"github.com/rocky/mult-by-constants/core"
)

const (
	exitOK          = 0
	exitMemory      = 1
	exitUsage       = 2
	exitBadMode     = 3
	exitBadConstant = 4
	exitInternal    = 5
	exitOverflow    = 6
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: bernstein <verbosity> [constant ...]")
	fmt.Fprintln(os.Stderr, "       bernstein -b|--binary [constant ...]")
	fmt.Fprintln(os.Stderr, "       bernstein -V|--version")
	fmt.Fprintln(os.Stderr, "       bernstein -h|--help")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, in *os.File, out *os.File) int {
	if len(args) == 0 {
		usage()
		return exitUsage
	}

	switch args[0] {
	case "-h", "--help":
		usage()
		return exitOK
	case "-V", "--version":
		fmt.Fprintln(out, "bernstein (mult-by-constants)")
		return exitOK
	case "-b", "--binary":
		return runBinary(args[1:], in, out)
	}

	verbosity, err := strconv.Atoi(args[0])
	if err != nil || verbosity < 0 || verbosity > 3 {
		color.Red("bernstein: bad verbosity %q", args[0])
		usage()
		return exitBadMode
	}

	engine := bernstein.NewEngine(core.NewCostParams())
	engine.Verbosity = bernstein.Verbosity(verbosity)
	if verbosity >= 2 {
		engine.Trace = out
	}

	constants, ok := readConstants(args[1:], in)
	if !ok {
		return exitBadConstant
	}

	for _, n := range constants {
		if err := core.Narrow32(n); err != nil {
			color.Red("bernstein: %d overflows configured width", n)
			return exitOverflow
		}

		prog, err := engine.Build(n)
		if err != nil {
			color.Red("bernstein: %v", err)
			return exitInternal
		}

		if verbosity == 0 {
			fmt.Fprintf(out, "%d: cost %d\n", n, prog.Cost)
			continue
		}
		fmt.Fprintf(out, "%d: cost %d\n", n, prog.Cost)
		fmt.Fprintln(out, prog.String())

		got := prog.Verify(1)
		if got != n {
			color.Red("bernstein: reconstruction mismatch for %d: got %d", n, got)
			return exitInternal
		}
	}

	return exitOK
}

func runBinary(args []string, in *os.File, out *os.File) int {
	constants, ok := readConstants(args, in)
	if !ok {
		return exitBadConstant
	}
	for _, n := range constants {
		cost := bernstein.BinaryCost(n, core.NewCostParams())
		fmt.Fprintf(out, "%d: binary cost %d\n", n, cost)
	}

	return exitOK
}

// readConstants gathers constants from argv, or, absent any, from
// whitespace-separated stdin tokens, per spec.md §6.
func readConstants(args []string, in *os.File) ([]core.Value, bool) {
	if len(args) > 0 {
		out := make([]core.Value, 0, len(args))
		for _, a := range args {
			n, err := strconv.ParseUint(a, 10, 64)
			if err != nil || n == 0 {
				color.Red("bernstein: bad constant %q", a)
				return nil, false
			}
			out = append(out, core.Value(n))
		}

		return out, true
	}

	var out []core.Value
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		n, err := strconv.ParseUint(scanner.Text(), 10, 64)
		if err != nil || n == 0 {
			color.Red("bernstein: bad constant %q", scanner.Text())
			return nil, false
		}
		out = append(out, core.Value(n))
	}

	return out, true
}
