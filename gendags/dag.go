package gendags

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPair indicates a DAG text line did not match the "(x,y) ..."
// format String produces.
var ErrMalformedPair = errors.New("gendags: malformed pair")

// Pair holds one DAG node's parent coordinates: the node combines the
// values already computed at positions X and Y, with Y <= X < the node's
// own index (spec.md §3).
type Pair struct {
	X, Y int
}

// DAG is one canonical labeling of q internal nodes over the implicit
// source node 0. Pairs[k] gives the parents of node k+1.
type DAG struct {
	Pairs []Pair
}

// Q reports the number of internal (non-source) nodes.
func (d DAG) Q() int { return len(d.Pairs) }

// String renders the DAG in the "(x,y) (x,y) ..." line format spec.md §6
// requires of the gendags CLI and dagsearch's stdin format.
func (d DAG) String() string {
	var b strings.Builder
	for i, p := range d.Pairs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%d,%d)", p.X, p.Y)
	}

	return b.String()
}

// ParseDAG parses the "(x,y) (x,y) ..." line format String produces, the
// format spec.md §6 specifies for piping gendags output into dagsearch.
func ParseDAG(line string) (DAG, error) {
	fields := strings.Fields(line)
	pairs := make([]Pair, 0, len(fields))
	for _, f := range fields {
		var x, y int
		if _, err := fmt.Sscanf(f, "(%d,%d)", &x, &y); err != nil {
			return DAG{}, fmt.Errorf("%w: %q", ErrMalformedPair, f)
		}
		pairs = append(pairs, Pair{X: x, Y: y})
	}

	return DAG{Pairs: pairs}, nil
}
