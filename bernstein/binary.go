package bernstein

import (
	"math/bits"

	"github.com/rocky/mult-by-constants/core"
)

// BinaryCost computes the admissible upper bound spec.md §4.2 calls the
// "binary method", used both to seed the branch-and-bound search's initial
// limit and to answer the `bernstein -b/--binary` CLI flag directly.
//
// When subtraction is disabled (params.SubCost >= core.NoSub) it charges one
// shift+add per set bit of n, the schoolbook shift-and-add method from the
// GLOSSARY -- a deliberately loose bound matching spec.md §8's illustrative
// figure, so it overcounts by one (n's top set bit is a free leaf, not a
// shift+add) rather than computing popcount-1. When subtraction is available
// it instead recodes n into
// non-adjacent form (NAF) and charges one shift+(add or sub) per nonzero NAF
// digit beyond the first, which lets a run of set bits collapse into a
// single subtract the way spec.md describes ("collapse a run of 1s into
// shift + subtract"). n must be odd and positive.
func BinaryCost(n core.Value, params core.CostParams) uint32 {
	if params.SubCost >= core.NoSub {
		return uint32(bits.OnesCount64(uint64(n))) * (params.ShiftCost + params.AddCost)
	}

	digits := nafDigits(n)

	var cost uint32
	seenFirst := false
	for i := len(digits) - 1; i >= 0; i-- { // MSB to LSB
		d := digits[i]
		if d == 0 {
			continue
		}
		if !seenFirst {
			seenFirst = true // the top nonzero digit is the free leaf/base
			continue
		}
		cost += params.ShiftCost
		if d > 0 {
			cost += params.AddCost
		} else {
			cost += params.SubCost
		}
	}

	return cost
}

// nafDigits computes the non-adjacent form of n as a slice of {-1, 0, +1}
// digits, index i holding the coefficient of 2^i, least-significant first.
func nafDigits(n core.Value) []int8 {
	var digits []int8
	for n > 0 {
		var d int8
		if n&1 == 1 {
			r := int64(n & 3)
			if r == 3 {
				d = -1
			} else {
				d = 1
			}
			if d == 1 {
				n -= 1
			} else {
				n += 1
			}
		}
		digits = append(digits, d)
		n >>= 1
	}

	return digits
}
