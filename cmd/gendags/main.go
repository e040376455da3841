// Command gendags enumerates canonical DAGs of q shift-and-add nodes, one
// per line, per spec.md §4.3 and §6.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/rocky/mult-by-constants/gendags"
)

const (
	exitOK    = 0
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out *os.File) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: gendags <level> <q>")
		return exitUsage
	}

	level, err1 := strconv.Atoi(args[0])
	q, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		color.Red("gendags: level and q must be integers")
		return exitUsage
	}

	seq, err := gendags.Enumerate(level, q)
	if err != nil {
		color.Red("gendags: %v", err)
		return exitUsage
	}

	w := bufio.NewWriter(out)
	defer w.Flush()
	for d := range seq {
		fmt.Fprintln(w, d.String())
	}

	return exitOK
}
