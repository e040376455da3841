// Command dagsearch reads DAGs from standard input (the format gendags
// produces) and records, for each DAG, the minimum size at which every
// value up to mrec is first reached, per spec.md §4.4 and §6.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/klauspost/compress/zstd"

	"github.com/rocky/mult-by-constants/core"
	"github.com/rocky/mult-by-constants/dagsearch"
	"github.com/rocky/mult-by-constants/gendags"
)

const (
	exitOK        = 0
	exitUsage     = 1
	exitBadMrec   = 2
	exitBadBound  = 3
	exitBadInput  = 4
	exitInternal  = 5
	exitFileError = 6
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: dagsearch [-z] <mrec> <mmax> <cost_file> [<cinf> <csup> <code>]")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}

func run(args []string, in *os.File) int {
	compress := false
	if len(args) > 0 && (args[0] == "-z" || args[0] == "--compress") {
		compress = true
		args = args[1:]
	}

	if len(args) != 3 && len(args) != 6 {
		usage()
		return exitUsage
	}

	mrec, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || mrec < 1 {
		color.Red("dagsearch: mrec must be at least 1")
		return exitBadMrec
	}
	mmax, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil || mmax < mrec {
		color.Red("dagsearch: mmax must be >= mrec")
		return exitBadBound
	}

	var opts []dagsearch.Option
	wantAux := len(args) == 6
	if wantAux {
		opts = append(opts, dagsearch.WithAuxArrays(), dagsearch.WithCodeRecording())
	}

	eval, err := dagsearch.NewEvaluator(core.Value(mrec), core.Value(mmax), opts...)
	if err != nil {
		color.Red("dagsearch: %v", err)
		return exitBadBound
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		d, err := gendags.ParseDAG(text)
		if err != nil {
			color.Red("dagsearch: input error line %d (bad format?)", line)
			return exitBadInput
		}
		if err := eval.Evaluate(line, d); err != nil {
			color.Red("dagsearch: %v", err)
			return exitInternal
		}
		eval.Closure()
	}

	if err := writeCostFile(args[2], eval, mrec, compress); err != nil {
		color.Red("dagsearch: %v", err)
		return exitFileError
	}

	if wantAux {
		if err := writeAuxFiles(args[3], args[4], args[5], eval, mrec); err != nil {
			color.Red("dagsearch: %v", err)
			return exitFileError
		}
	}

	return exitOK
}

func writeAuxFiles(cinfPath, csupPath, codePath string, eval *dagsearch.Evaluator, mrec uint64) error {
	cinf := make([]byte, mrec+1)
	csup := make([]byte, mrec+1)
	for i := range cinf {
		lo, hi, ok := eval.Aux(core.Value(i))
		if !ok {
			cinf[i], csup[i] = 0xFF, 0xFF
			continue
		}
		cinf[i], csup[i] = lo, hi
	}
	if err := os.WriteFile(cinfPath, cinf, 0o644); err != nil {
		return fmt.Errorf("cannot write cinf file: %w", err)
	}
	if err := os.WriteFile(csupPath, csup, 0o644); err != nil {
		return fmt.Errorf("cannot write csup file: %w", err)
	}

	code := make([]byte, (mrec+1)*8)
	for i := range int(mrec) + 1 {
		enc, ok := eval.Code(core.Value(i))
		if !ok {
			continue
		}
		copy(code[i*8:i*8+8], enc[:])
	}
	if err := os.WriteFile(codePath, code, 0o644); err != nil {
		return fmt.Errorf("cannot write code file: %w", err)
	}

	return nil
}

func writeCostFile(path string, eval *dagsearch.Evaluator, mrec uint64, compress bool) error {
	buf := make([]byte, mrec+1)
	for i := range buf {
		q, ok := eval.Cost(core.Value(i))
		if ok {
			buf[i] = byte(q)
		} else {
			buf[i] = 0xFF
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer f.Close()

	if !compress {
		_, err := f.Write(buf)
		return err
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("cannot create compressor: %w", err)
	}
	if _, err := enc.Write(buf); err != nil {
		enc.Close()
		return err
	}

	return enc.Close()
}
