package memo

import (
	"errors"
	"fmt"

	"github.com/rocky/mult-by-constants/core"
)

// Default sizing constants from spec.md §6.
const (
	DefaultHashSize = 16383
	DefaultMaxNon   = 65536
)

// ErrPopulationMismatch is returned by Reset when the live node count found
// by walking the buckets disagrees with the incrementally maintained
// population counter -- an internal-consistency error, fatal per spec.md §7.
var ErrPopulationMismatch = errors.New("memo: population counter mismatch on reset")

// Node is a memo-table entry keyed by an odd core.Value. It doubles as a
// parent back-reference for reconstruction: Parent is an arena pointer into
// the same Table, never reallocated out from under a search (spec.md §9).
type Node struct {
	Parent *Node        // node used to generate this node; nil for Identity
	Value  core.Value   // odd positive value this node represents
	Op     core.OpCode  // transformation linking Parent to Value; Invalid if unsolved
	Shift  uint         // shift count applied when combining with Parent
	Cost   uint32       // confirmed cost when Op != Invalid, else a lower bound
	next   *Node        // hash-chain link
}

// Solved reports whether this node holds a confirmed solution rather than a
// provisional lower bound.
func (n *Node) Solved() bool {
	return n.Op != core.Invalid
}

// Table is an explicit, non-global hash-consed store of memo Nodes, sized by
// HashSize and flushed before a lookup would take its population past
// MaxNon (spec.md §4.1).
type Table struct {
	buckets    []*Node
	hashSize   uint64
	maxNon     int
	population int
	resets     int
}

// Option configures a Table under construction.
type Option func(*Table)

// WithHashSize overrides the bucket count (default DefaultHashSize).
func WithHashSize(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.hashSize = uint64(n)
		}
	}
}

// WithMaxNon overrides the population ceiling that triggers a flush
// (default DefaultMaxNon).
func WithMaxNon(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.maxNon = n
		}
	}
}

// NewTable constructs an empty Table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		hashSize: DefaultHashSize,
		maxNon:   DefaultMaxNon,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.buckets = make([]*Node, t.hashSize)

	return t
}

// Population reports the current live node count.
func (t *Table) Population() int { return t.population }

// Resets reports how many times the table has been flushed for exceeding
// MaxNon.
func (t *Table) Resets() int { return t.resets }

// LookupOrCreate returns the Node for n, creating an unsolved (Op=Invalid,
// Cost=0) node if none exists yet. When the table's population has already
// reached MaxNon, it is flushed first (spec.md §4.1 reset policy), so a
// lookup never grows the population past MaxNon.
//
// The second return value is true when a new node was created: callers use
// this to decide whether the node still needs a search pass, together with
// Node.Solved and the caller's current branch-and-bound limit (a node found
// with Op=Invalid and a lower bound under the limit also needs re-search;
// see bernstein.Engine.build).
func (t *Table) LookupOrCreate(n core.Value) (*Node, bool, error) {
	if t.population >= t.maxNon {
		if err := t.Reset(); err != nil {
			return nil, false, err
		}
	}

	idx := n % t.hashSize
	for node := t.buckets[idx]; node != nil; node = node.next {
		if node.Value == n {
			return node, false, nil
		}
	}

	node := &Node{Value: n, Op: core.Invalid}
	node.next = t.buckets[idx]
	t.buckets[idx] = node
	t.population++

	return node, true, nil
}

// Reset frees every chain and restarts the population counter. It first
// walks every bucket to confirm the live count matches the incrementally
// maintained counter; a mismatch is a fatal internal-consistency error
// (spec.md §7) and is returned rather than panicking, leaving the decision
// to abort to the caller (the CLI drivers treat it as exit code 5).
func (t *Table) Reset() error {
	counted := 0
	for _, head := range t.buckets {
		for node := head; node != nil; node = node.next {
			counted++
		}
	}
	if counted != t.population {
		return fmt.Errorf("%w: counted %d, tracked %d", ErrPopulationMismatch, counted, t.population)
	}

	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.population = 0
	t.resets++

	return nil
}
