package dagsearch

import (
	"errors"

	"github.com/rocky/mult-by-constants/core"
	"github.com/rocky/mult-by-constants/gendags"
)

// unset marks a cost-table cell that has not yet been reached by any DAG.
const unset = 0xFF

// ErrBadBound is returned when mmax < mrec or either is non-positive.
var ErrBadBound = errors.New("dagsearch: mmax must be >= mrec > 0")

// Option configures an Evaluator under construction.
type Option func(*Evaluator)

// WithAuxArrays enables recording of the minimum and maximum path shift
// (cinf/csup) alongside the cost table, per spec.md §4.4's auxiliary output.
func WithAuxArrays() Option {
	return func(e *Evaluator) {
		e.cinf = make([]uint8, e.mrec+1)
		e.csup = make([]uint8, e.mrec+1)
		for i := range e.cinf {
			e.cinf[i] = unset
			e.csup[i] = unset
		}
	}
}

// WithCodeRecording enables recording of the 8-byte DAG-id-plus-opcode
// encoding spec.md §6 defines, one per reached value.
func WithCodeRecording() Option {
	return func(e *Evaluator) { e.code = make([][8]byte, e.mrec+1) }
}

// Evaluator walks the parameter space of every DAG gendags produces and
// records, for each integer up to mrec, the smallest DAG size q (and the
// operation sequence) that reaches it -- spec.md §4.4.
type Evaluator struct {
	mrec, mmax core.Value

	cost       []uint8
	cinf, csup []uint8
	code       [][8]byte
}

// NewEvaluator builds an Evaluator over the closed interval of target values
// [0, mrec], exploring intermediate values up to mmax.
func NewEvaluator(mrec, mmax core.Value, opts ...Option) (*Evaluator, error) {
	if mrec == 0 || mmax < mrec {
		return nil, ErrBadBound
	}

	cost := make([]uint8, mrec+1)
	for i := range cost {
		cost[i] = unset
	}
	cost[0] = 0
	cost[1] = 0

	e := &Evaluator{mrec: mrec, mmax: mmax, cost: cost}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Cost reports the minimum DAG size known to reach n, and whether any DAG
// processed so far reaches it at all.
func (e *Evaluator) Cost(n core.Value) (q int, ok bool) {
	if n > e.mrec || e.cost[n] == unset {
		return 0, false
	}

	return int(e.cost[n]), true
}

// Aux reports the recorded minimum/maximum path shift for n (cinf, csup),
// when WithAuxArrays was enabled; ok is false otherwise or if n is out of
// range.
func (e *Evaluator) Aux(n core.Value) (cinf, csup uint8, ok bool) {
	if e.cinf == nil || n > e.mrec || e.cinf[n] == unset {
		return 0, 0, false
	}

	return e.cinf[n], e.csup[n], true
}

// Code reports the recorded 8-byte DAG-id-plus-opcode encoding for n, when
// WithCodeRecording was enabled.
func (e *Evaluator) Code(n core.Value) ([8]byte, bool) {
	if e.code == nil || n > e.mrec {
		return [8]byte{}, false
	}

	return e.code[n], true
}

// Evaluate walks every parameter assignment of d and updates the cost table.
// Callers processing a stream of DAGs should call Closure after each
// Evaluate (spec.md §4.4's post-DAG step); Closure is idempotent, so it is
// equally correct to defer it until the stream is exhausted.
func (e *Evaluator) Evaluate(dagIdx int, d gendags.DAG) error {
	q := d.Q()
	if q == 0 {
		return nil
	}

	v := make([]core.Value, q+1)
	v[0] = 1
	states := make([]nodeState, q+1)
	maxShift := make([]uint, q+1)

	i := 0
	forward := true

	for {
		var (
			st  nodeState
			val core.Value
			ok  bool
		)

		if forward {
			i++
			x := v[d.Pairs[i-1].X]
			y := v[d.Pairs[i-1].Y]
			st, val, ok = rotateUntilValid(initialState, x, y, e.mmax)
		} else {
			x := v[d.Pairs[i-1].X]
			y := v[d.Pairs[i-1].Y]
			st, val, ok = step(states[i], x, y, e.mmax)
		}

		if !ok {
			i--
			if i == 0 {
				return nil
			}
			forward = false

			continue
		}

		states[i] = st
		v[i] = val
		maxShift[i] = st.shift
		if maxShift[i-1] > maxShift[i] {
			maxShift[i] = maxShift[i-1]
		}

		if val == 0 {
			forward = false

			continue
		}
		if i < q && isShiftEquivalent(v, i) {
			forward = false

			continue
		}

		e.record(val, i, dagIdx, states, maxShift[i])

		forward = i != q
	}
}

// isShiftEquivalent reports whether v[i] equals some earlier v[j] left-shifted
// by a non-negative amount, the pruning filter spec.md §4.4 requires for
// intermediate (non-target) nodes.
func isShiftEquivalent(v []core.Value, i int) bool {
	for j := 0; j < i; j++ {
		w := v[j]
		for w < v[i] {
			w <<= 1
		}
		if w == v[i] {
			return true
		}
	}

	return false
}

// record updates val's cost-table entry (and, when enabled, its aux arrays)
// for a path of length i with path-shift shift. A strictly shorter path
// replaces everything recorded so far; a path tying the current best cost
// only widens cinf/csup to cover this path's shift too, per spec.md §4.4's
// "minimum and maximum over max(shift[1..i])" -- cinf/csup range over every
// minimal-cost path reaching val, not just the most recently seen one.
func (e *Evaluator) record(val core.Value, i, dagIdx int, states []nodeState, shift uint) {
	if val > e.mrec {
		return
	}

	switch {
	case e.cost[val] == unset || int(e.cost[val]) > i:
		e.cost[val] = uint8(i)
		if e.cinf != nil {
			e.cinf[val] = uint8(shift)
			e.csup[val] = uint8(shift)
		}
		if e.code != nil {
			e.code[val] = encode(dagIdx, states[1:i+1])
		}
	case int(e.cost[val]) == i:
		if e.cinf != nil {
			if uint8(shift) < e.cinf[val] {
				e.cinf[val] = uint8(shift)
			}
			if uint8(shift) > e.csup[val] {
				e.csup[val] = uint8(shift)
			}
		}
	}
}

// encode packs a DAG line number and its operation sequence into the 8-byte
// layout spec.md §6 specifies: bytes 0-1 hold the little-endian DAG index,
// byte 2+k holds node k's (op<<7)|(whichShift<<6)|shift. Only the first six
// nodes fit the fixed 8-byte record; values whose shortest DAG needs more
// than six nodes still get a correct cost, just a truncated op trace.
func encode(dagIdx int, steps []nodeState) [8]byte {
	var out [8]byte
	out[0] = byte(dagIdx)
	out[1] = byte(dagIdx >> 8)

	for k, st := range steps {
		if k+2 >= len(out) {
			break
		}
		var opBit, whichBit byte
		if st.tier == tierSubRight {
			opBit = 1
		}
		if st.tier == tierAddLeft {
			whichBit = 1
		}
		out[k+2] = opBit<<7 | whichBit<<6 | byte(st.shift&0x3F)
	}

	return out
}

// Closure propagates every odd value's cost to its even multiples (v, 2v,
// 4v, ...) up to mrec, spec.md §4.4's post-DAG step. It is idempotent:
// calling it twice in a row leaves the table unchanged after the first call.
func (e *Evaluator) Closure() {
	for val := core.Value(1); val < e.mrec; val += 2 {
		c := e.cost[val]
		for w := val << 1; w <= e.mrec; w <<= 1 {
			if e.cost[w] > c {
				e.cost[w] = c
			}
		}
	}
}
