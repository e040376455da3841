// Command qtree computes the cost lattice f_m(n) for n in [0, m], per
// spec.md §4.5 and §6.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/klauspost/compress/zstd"

	"github.com/rocky/mult-by-constants/core"
	"github.com/rocky/mult-by-constants/qtree"
)

const (
	exitOK           = 0
	exitUsage        = 1
	exitBadM         = 2
	exitCannotCreate = 6
	exitCostTooHigh  = 7
	exitCannotWrite  = 8
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: qtree [-z] <cmax> <m> [[-]<dest_file>]")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	compress := false
	if len(args) > 0 && (args[0] == "-z" || args[0] == "--compress") {
		compress = true
		args = args[1:]
	}

	if len(args) != 2 && len(args) != 3 {
		usage()
		return exitUsage
	}

	cmax, err := strconv.Atoi(args[0])
	if err != nil {
		color.Red("qtree: cmax must be an integer")
		return exitUsage
	}
	m, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil || m < 1 {
		color.Red("qtree: m must be at least 1")
		return exitBadM
	}

	everyLevel := false
	dest := ""
	if len(args) == 3 {
		dest = args[2]
		if strings.HasPrefix(dest, "-") {
			everyLevel = true
			dest = dest[1:]
		}
	}

	cfg := qtree.Config{M: core.Value(m), MaxLevel: cmax}
	if dest != "" && everyLevel {
		cfg.OnLevel = func(level int, cost []uint8) {
			if err := writeCostBytes(dest, cost, compress); err != nil {
				color.Red("qtree: checkpoint at level %d: %v", level, err)
			}
		}
	}

	l, err := qtree.Compute(cfg)
	if err != nil {
		color.Red("qtree: %v", err)
		return exitBadM
	}

	if dest != "" {
		bytes := l.Bytes()
		for _, c := range bytes {
			if c != 0xFF && c > 127 {
				color.Red("qtree: cost too high")
				return exitCostTooHigh
			}
		}
		if err := writeCostBytes(dest, bytes, compress); err != nil {
			color.Red("qtree: %v", err)
			return exitCannotWrite
		}
	}

	return exitOK
}

func writeCostBytes(path string, cost []uint8, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer f.Close()

	if !compress {
		_, err := f.Write(cost)
		return err
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("cannot create compressor: %w", err)
	}
	if _, err := enc.Write(cost); err != nil {
		enc.Close()
		return err
	}

	return enc.Close()
}
