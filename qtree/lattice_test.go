package qtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocky/mult-by-constants/qtree"
)

func TestCompute_RejectsBadM(t *testing.T) {
	_, err := qtree.Compute(qtree.Config{M: 0})
	assert.ErrorIs(t, err, qtree.ErrBadM)
}

func TestCompute_PowersOfTwoAndZeroAreFree(t *testing.T) {
	l, err := qtree.Compute(qtree.Config{M: 64})
	require.NoError(t, err)

	for _, n := range []uint64{0, 1, 2, 4, 8, 16, 32, 64} {
		c, ok := l.Cost(n)
		require.True(t, ok)
		assert.Equal(t, 0, c, "f_m(%d) should be 0", n)
	}
}

func TestCompute_EveryIndexAssigned(t *testing.T) {
	l, err := qtree.Compute(qtree.Config{M: 100})
	require.NoError(t, err)

	for n := uint64(0); n <= 100; n++ {
		c, ok := l.Cost(n)
		require.True(t, ok)
		assert.Less(t, c, 128, "cost must fit spec.md's single-byte domain")
	}
}

func TestCompute_ThreeHasCostOne(t *testing.T) {
	// 3 = 2+1, f(2)=f(1)=0, so f(3) <= 0+0+1 = 1, and 3 is not a power of
	// two so f(3) != 0.
	l, err := qtree.Compute(qtree.Config{M: 16})
	require.NoError(t, err)

	c, ok := l.Cost(3)
	require.True(t, ok)
	assert.Equal(t, 1, c)
}

func TestCompute_WitnessExistsForEveryPositiveCost(t *testing.T) {
	l, err := qtree.Compute(qtree.Config{M: 80})
	require.NoError(t, err)

	for n := uint64(0); n <= 80; n++ {
		c, ok := l.Cost(n)
		require.True(t, ok)
		if c == 0 {
			continue
		}
		found := false
		for a := uint64(0); a <= n && !found; a++ {
			ca, ok := l.Cost(a)
			if !ok {
				continue
			}
			for b := uint64(0); b <= 80 && !found; b++ {
				cb, ok := l.Cost(b)
				if !ok {
					continue
				}
				if (a+b == n || absDiff(a, b) == n) && ca+cb+1 == c {
					found = true
				}
				if a*b == n && ca+cb == c {
					found = true
				}
			}
		}
		assert.True(t, found, "no witness found for f_m(%d)=%d", n, c)
	}
}

func absDiff(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}

	return b - a
}

func TestCompute_LowMemoryMatchesDefault(t *testing.T) {
	def, err := qtree.Compute(qtree.Config{M: 150})
	require.NoError(t, err)
	low, err := qtree.Compute(qtree.Config{M: 150, LowMemory: true})
	require.NoError(t, err)

	assert.Equal(t, def.Bytes(), low.Bytes())
}

func TestCompute_OnLevelCallback(t *testing.T) {
	var levels []int
	_, err := qtree.Compute(qtree.Config{
		M: 50,
		OnLevel: func(level int, cost []uint8) {
			levels = append(levels, level)
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, levels)
	assert.Equal(t, 0, levels[0])
}
