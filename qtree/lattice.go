package qtree

import (
	"errors"

	"github.com/rocky/mult-by-constants/core"
)

// unset marks a cost cell not yet assigned at any level.
const unset = 0xFF

// ErrBadM indicates a non-positive m was requested.
var ErrBadM = errors.New("qtree: m must be at least 1")

// Config configures a Compute run.
type Config struct {
	// M is the upper bound of the domain [0, M].
	M core.Value

	// LowMemory selects the gap-encoded bucket representation over the
	// default slice, per spec.md §4.5's low-memory variant.
	LowMemory bool

	// MaxLevel caps how many cost levels Compute processes; a non-positive
	// value (the zero Config default) means no cap. Cells not reached by
	// MaxLevel stay at the unset sentinel, per spec.md §6's
	// `qtree <cmax> <m> ...` CLI, where cmax < 0 means uncapped.
	MaxLevel int

	// OnLevel, if set, is called after each level's bucket is finalized,
	// with the current full cost array (valid only for the duration of the
	// call). Used by callers that want to checkpoint the table to disk
	// after every level rather than only at the end.
	OnLevel func(level int, cost []uint8)
}

// Lattice holds the fully computed cost table for one m, plus the per-level
// buckets that produced it.
type Lattice struct {
	m       core.Value
	cost    []uint8
	buckets []Bucket
}

// Cost reports f_m(n) and whether n is within [0, m] and has been reached
// (always true unless Config.MaxLevel cut the computation short).
func (l *Lattice) Cost(n core.Value) (int, bool) {
	if n > l.m || l.cost[n] == unset {
		return 0, false
	}

	return int(l.cost[n]), true
}

// M reports the domain bound this lattice was computed for.
func (l *Lattice) M() core.Value { return l.m }

// Bytes returns the raw cost-file layout spec.md §6 specifies: m+1 bytes,
// one per index, each the cost value.
func (l *Lattice) Bytes() []byte {
	out := make([]byte, len(l.cost))
	copy(out, l.cost)

	return out
}

// Compute builds cost[0..m] level by level per spec.md §4.5: additive/
// subtractive pass, multiplicative pass, power-of-two multiplicative pass,
// then bucket finalization, repeating until every index is assigned.
func Compute(cfg Config) (*Lattice, error) {
	if cfg.M < 1 {
		return nil, ErrBadM
	}
	m := cfg.M

	cost := make([]uint8, m+1)
	for i := range cost {
		cost[i] = unset
	}
	cost[0] = 0

	var level0 []int
	level0 = append(level0, 0)
	remaining := int(m)
	for p := core.Value(1); p <= m; p <<= 1 {
		cost[p] = 0
		level0 = append(level0, int(p))
		remaining--
	}

	l := &Lattice{m: m, cost: cost}
	l.buckets = append(l.buckets, newBucket(cfg.LowMemory, level0))
	if cfg.OnLevel != nil {
		cfg.OnLevel(0, l.cost)
	}

	for c := 1; remaining > 0; c++ {
		if cfg.MaxLevel > 0 && c > cfg.MaxLevel {
			break
		}
		additiveSubtractivePass(l.cost, l.buckets, m, c, &remaining)
		multiplicativePass(l.cost, l.buckets, m, c, &remaining)
		powerOfTwoPass(l.cost, m, c, &remaining)

		var indices []int
		for n := 0; n <= int(m); n++ {
			if l.cost[n] == uint8(c) {
				indices = append(indices, n)
			}
		}
		l.buckets = append(l.buckets, newBucket(cfg.LowMemory, indices))

		if cfg.OnLevel != nil {
			cfg.OnLevel(c, l.cost)
		}
	}

	return l, nil
}

func claim(cost []uint8, n core.Value, m core.Value, c int, remaining *int) {
	if n > m || cost[n] != unset {
		return
	}
	cost[n] = uint8(c)
	*remaining--
}

// additiveSubtractivePass implements spec.md §4.5's first pass: for every
// (ca, cb) summing to c-1, combine buckets ca and cb by addition and
// absolute difference.
func additiveSubtractivePass(cost []uint8, buckets []Bucket, m core.Value, c int, remaining *int) {
	for ca, cb := 0, c-1; cb >= ca; ca, cb = ca+1, cb-1 {
		for a := range buckets[ca].All() {
			for b := range buckets[cb].All() {
				av, bv := core.Value(a), core.Value(b)
				claim(cost, av+bv, m, c, remaining)
				if av >= bv {
					claim(cost, av-bv, m, c, remaining)
				} else {
					claim(cost, bv-av, m, c, remaining)
				}
			}
		}
	}
}

// multiplicativePass implements spec.md §4.5's second pass: for every
// (ca, cb) summing to c with ca >= 1, combine buckets by multiplication,
// relying on ascending bucket order to break out once the product exceeds m.
func multiplicativePass(cost []uint8, buckets []Bucket, m core.Value, c int, remaining *int) {
	for ca, cb := 1, c-1; cb >= ca; ca, cb = ca+1, cb-1 {
		for a := range buckets[ca].All() {
			for b := range buckets[cb].All() {
				n := core.Value(a) * core.Value(b)
				if n > m {
					break
				}
				claim(cost, n, m, c, remaining)
			}
		}
	}
}

// powerOfTwoPass implements spec.md §4.5's third pass: every b newly settled
// at cost c (or already at cost c but not itself a doubling of another cost-c
// value) propagates to b*2, b*4, ... up to m.
func powerOfTwoPass(cost []uint8, m core.Value, c int, remaining *int) {
	for b := 1; b <= int(m); b++ {
		if cost[b] != uint8(c) {
			continue
		}
		if b%2 == 0 && cost[b/2] == uint8(c) {
			continue
		}
		for n := core.Value(b) << 1; n <= m; n <<= 1 {
			claim(cost, n, m, c, remaining)
		}
	}
}
