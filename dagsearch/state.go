package dagsearch

import "github.com/rocky/mult-by-constants/core"

// tier identifies which of the three rotation slots spec.md §4.4 assigns a
// node's current candidate value to.
type tier int

const (
	tierAddRight tier = iota // v[x] + (v[y] << shift)
	tierAddLeft              // (v[x] << shift) + v[y]
	tierSubRight             // |v[x] - (v[y] << shift)|
)

// nodeState is one node's position in the rotation: which tier it occupies
// and how far that tier's shift has advanced.
type nodeState struct {
	tier  tier
	shift uint
}

// initialState is the state a freshly visited node starts in: unshifted
// addition, spec.md §4.4's "Initial state".
var initialState = nodeState{tier: tierAddRight, shift: 0}

func computeValue(st nodeState, x, y core.Value) core.Value {
	switch st.tier {
	case tierAddRight:
		return x + (y << st.shift)
	case tierAddLeft:
		return (x << st.shift) + y
	default: // tierSubRight
		shifted := y << st.shift
		if x >= shifted {
			return x - shifted
		}

		return shifted - x
	}
}

// step advances cur to the next candidate state for operands (x, y),
// rotating tiers whenever the current one overflows mmax, and reports false
// once all three tiers are exhausted (the caller then backtracks).
func step(cur nodeState, x, y, mmax core.Value) (nodeState, core.Value, bool) {
	next := nodeState{tier: cur.tier, shift: cur.shift + 1}

	return rotateUntilValid(next, x, y, mmax)
}

// rotateUntilValid evaluates st for operands (x, y), rotating through the
// remaining tiers whenever the current candidate overflows mmax -- spec.md
// §4.4's "on overflow, rotate through ..." -- and reports false once every
// tier has been exhausted without producing a value within bound. Both the
// forward-entry state (shift 0, tier ADD-right) and every subsequent step()
// candidate must pass through this same check: an over-mmax value must never
// be accepted, whether it is the first value tried for a node or a later
// rotation.
func rotateUntilValid(st nodeState, x, y, mmax core.Value) (nodeState, core.Value, bool) {
	val := computeValue(st, x, y)

	for val > mmax {
		switch st.tier {
		case tierAddRight:
			st = nodeState{tier: tierAddLeft, shift: 1}
		case tierAddLeft:
			st = nodeState{tier: tierSubRight, shift: 0}
		default:
			return nodeState{}, 0, false
		}
		val = computeValue(st, x, y)
	}

	return st, val, true
}
