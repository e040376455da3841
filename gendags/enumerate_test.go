package gendags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocky/mult-by-constants/gendags"
)

func countDAGs(t *testing.T, level, q int) []gendags.DAG {
	t.Helper()
	seq, err := gendags.Enumerate(level, q)
	require.NoError(t, err)

	var out []gendags.DAG
	for d := range seq {
		out = append(out, d)
	}

	return out
}

func TestEnumerate_KnownCountsAtLevel1(t *testing.T) {
	cases := []struct {
		q     int
		count int
	}{
		{3, 3},
		{4, 14},
		{5, 80},
	}
	for _, tc := range cases {
		dags := countDAGs(t, 1, tc.q)
		assert.Len(t, dags, tc.count, "q=%d", tc.q)
	}
}

func TestEnumerate_Level1IsSubsetOfLevel0(t *testing.T) {
	for _, q := range []int{3, 4, 5} {
		level0 := countDAGs(t, 0, q)
		level1 := countDAGs(t, 1, q)
		assert.GreaterOrEqual(t, len(level0), len(level1), "q=%d", q)

		seen := make(map[string]bool, len(level0))
		for _, d := range level0 {
			seen[d.String()] = true
		}
		for _, d := range level1 {
			assert.True(t, seen[d.String()], "level1 dag %q not present in level0 output", d.String())
		}
	}
}

func TestEnumerate_EveryDAGIsReachableAndOrdered(t *testing.T) {
	for _, q := range []int{3, 4, 5, 6} {
		for _, d := range countDAGs(t, 0, q) {
			used := make([]bool, q)
			for i, p := range d.Pairs {
				require.LessOrEqual(t, p.Y, p.X, "pair %d", i)
				require.Less(t, p.X, i+1, "pair %d x=%d must be < node index %d", i, p.X, i+1)
				used[p.X] = true
				used[p.Y] = true
			}
			for idx := 0; idx < q-1; idx++ {
				assert.True(t, used[idx], "node %d unused in dag %q", idx, d.String())
			}
		}
	}
}

func TestEnumerate_QOne(t *testing.T) {
	dags := countDAGs(t, 0, 1)
	require.Len(t, dags, 1)
	assert.Equal(t, "(0,0)", dags[0].String())
}

func TestEnumerate_RejectsBadInput(t *testing.T) {
	_, err := gendags.Enumerate(-1, 3)
	assert.ErrorIs(t, err, gendags.ErrLevelNegative)

	_, err = gendags.Enumerate(0, 0)
	assert.ErrorIs(t, err, gendags.ErrQRange)

	_, err = gendags.Enumerate(0, 32)
	assert.ErrorIs(t, err, gendags.ErrQRange)
}

func TestEnumerate_EarlyStopViaYieldFalse(t *testing.T) {
	seq, err := gendags.Enumerate(0, 5)
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}
