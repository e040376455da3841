package bernstein

import (
	"fmt"
	"io"

	"github.com/rocky/mult-by-constants/core"
	"github.com/rocky/mult-by-constants/memo"
)

// Verbosity controls how much diagnostic detail Engine.Build emits to its
// trace writer, mirroring spec.md §6's bernstein CLI levels.
type Verbosity int

const (
	// Silent emits nothing.
	Silent Verbosity = iota
	// WithReconstruction is silent during search; Build still returns the
	// full Program regardless of verbosity, this only affects tracing.
	WithReconstruction
	// WithProgress additionally traces per-node search entry/exit.
	WithProgress
	// WithLookups additionally traces every memo lookup.
	WithLookups
)

// Engine runs the Bernstein branch-and-bound search against a shared memo
// Table. Unlike the original C, which keeps the hash table as process-global
// state, Engine owns it explicitly (spec.md §9) so independent searches
// never interfere and so callers can reuse one Engine across a batch of
// constants to amortize memoization, exactly as spec.md §5 describes.
type Engine struct {
	table     *memo.Table
	params    core.CostParams
	Verbosity Verbosity
	Trace     io.Writer // defaults to io.Discard when nil
}

// NewEngine constructs an Engine over a fresh memo.Table sized by memoOpts,
// using the given cost parameters for every Build call.
func NewEngine(params core.CostParams, memoOpts ...memo.Option) *Engine {
	return &Engine{
		table:  memo.NewTable(memoOpts...),
		params: params,
	}
}

// Table exposes the underlying memo table, e.g. for population diagnostics.
func (e *Engine) Table() *memo.Table { return e.table }

func (e *Engine) trace(format string, args ...interface{}) {
	if e.Trace == nil {
		return
	}
	fmt.Fprintf(e.Trace, format, args...)
}

// Build constructs a minimum-cost (within the search's admissible seeding)
// straight-line program computing n*x, per spec.md §4.2. n must be
// positive; n == 0 is rejected with core.ErrZeroConstant.
func (e *Engine) Build(n core.Value) (*Program, error) {
	if n == 0 {
		return nil, core.ErrZeroConstant
	}

	odd, shift0 := core.TrailingShift(n)

	seed := BinaryCost(odd, e.params)
	node, err := e.build(odd, seed+1) // +1: limit is an exclusive "beat this" bound
	if err != nil {
		return nil, err
	}
	if !node.Solved() {
		return nil, fmt.Errorf("bernstein: no solution for %d within seeded bound %d", odd, seed)
	}

	steps := reconstruct(node)
	totalCost := node.Cost
	if shift0 > 0 {
		steps = append(steps, Step{
			Kind:        StepFinalShift,
			Index:       len(steps),
			Shift:       shift0,
			ResultValue: n,
		})
		totalCost += e.params.ShiftCost
	}

	return &Program{Steps: steps, Cost: totalCost, Constant: n}, nil
}

// build returns the memo node for odd value n, guaranteed solved with
// Cost < limit when a solution exists under that budget, else returned
// unsolved (Op == core.Invalid) with Cost holding a lower bound proof.
func (e *Engine) build(n core.Value, limit uint32) (*memo.Node, error) {
	if n == 1 {
		node, _, err := e.table.LookupOrCreate(1)
		if err != nil {
			return nil, err
		}
		if !node.Solved() {
			node.Op = core.Identity
			node.Cost = 0
			node.Parent = nil
		}

		return node, nil
	}

	node, created, err := e.table.LookupOrCreate(n)
	if err != nil {
		return nil, err
	}

	if e.Verbosity >= WithLookups {
		e.trace("lookup %d: created=%v solved=%v cost/bound=%d\n", n, created, node.Solved(), node.Cost)
	}

	if !created {
		switch {
		case node.Solved():
			return node, nil
		case node.Cost > limit:
			// Proven lower bound still exceeds the caller's budget: no point
			// re-entering the search.
			return node, nil
		}
		// node.Cost (a lower bound) <= limit: last attempt's budget was
		// insufficient but this one might succeed; fall through to re-search.
	}

	if e.Verbosity >= WithProgress {
		e.trace("search %d (limit=%d)\n", n, limit)
	}

	if err := e.search(node, limit); err != nil {
		return nil, err
	}

	return node, nil
}

// search tries every transformation for node.Value in the deterministic
// order spec.md §4.2 fixes (factors by increasing k, FACTOR_SUB before
// FACTOR_ADD at each k, then ADD1, then SUB1), keeping the best candidate
// strictly better than limit and tightening the bound on every improvement.
func (e *Engine) search(node *memo.Node, limit uint32) error {
	n := node.Value
	cur := limit
	found := false

	try := func(parentRaw core.Value, op core.OpCode, ownShift uint, opCost uint32) error {
		odd, extra := core.TrailingShift(parentRaw)
		totalShift := ownShift + extra
		cost := opCost
		if totalShift > 0 {
			cost += e.params.ShiftCost
		}
		if cost >= cur {
			return nil // this candidate's own cost already meets or exceeds the bound
		}

		parent, err := e.build(odd, cur-cost)
		if err != nil {
			return err
		}
		if !parent.Solved() {
			return nil
		}

		total := cost + parent.Cost
		if total < cur {
			node.Op = op
			node.Shift = totalShift
			node.Parent = parent
			node.Cost = total
			cur = total
			found = true
		}

		return nil
	}

	for k := uint(2); (core.Value(1) << k) <= n/2; k++ {
		d := core.Value(1) << k
		if n%(d-1) == 0 {
			if err := try(n/(d-1), core.FactorSub, k, e.params.SubCost); err != nil {
				return err
			}
		}
		if n%(d+1) == 0 {
			if err := try(n/(d+1), core.FactorAdd, k, e.params.AddCost); err != nil {
				return err
			}
		}
	}
	if err := try(n-1, core.Add1, 0, e.params.AddCost); err != nil {
		return err
	}
	if err := try(n+1, core.Sub1, 0, e.params.SubCost); err != nil {
		return err
	}

	if !found {
		node.Op = core.Invalid
		node.Cost = limit + 1
	}

	return nil
}
