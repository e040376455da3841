package dagsearch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocky/mult-by-constants/dagsearch"
	"github.com/rocky/mult-by-constants/gendags"
)

func evaluateAll(t *testing.T, e *dagsearch.Evaluator, q int) {
	t.Helper()
	seq, err := gendags.Enumerate(1, q)
	require.NoError(t, err)

	idx := 0
	for d := range seq {
		require.NoError(t, e.Evaluate(idx, d))
		e.Closure()
		idx++
	}
}

func TestEvaluator_RejectsBadBound(t *testing.T) {
	_, err := dagsearch.NewEvaluator(0, 10)
	assert.ErrorIs(t, err, dagsearch.ErrBadBound)

	_, err = dagsearch.NewEvaluator(10, 5)
	assert.ErrorIs(t, err, dagsearch.ErrBadBound)
}

func TestEvaluator_BaseCasesAlwaysFree(t *testing.T) {
	e, err := dagsearch.NewEvaluator(16, 64)
	require.NoError(t, err)

	q, ok := e.Cost(1)
	require.True(t, ok)
	assert.Equal(t, 0, q)

	q, ok = e.Cost(0)
	require.True(t, ok)
	assert.Equal(t, 0, q)
}

func TestEvaluator_ReachesSmallOddValues(t *testing.T) {
	e, err := dagsearch.NewEvaluator(31, 64)
	require.NoError(t, err)
	evaluateAll(t, e, 2)

	for _, n := range []uint64{3, 5, 7, 9} {
		_, ok := e.Cost(n)
		assert.True(t, ok, "expected value %d reachable with q<=2", n)
	}
}

func TestEvaluator_ClosureIsIdempotent(t *testing.T) {
	e, err := dagsearch.NewEvaluator(64, 128)
	require.NoError(t, err)
	evaluateAll(t, e, 3)

	snapshot := make(map[uint64]int)
	for n := uint64(0); n <= 64; n++ {
		if q, ok := e.Cost(n); ok {
			snapshot[n] = q
		}
	}

	e.Closure()

	for n, q := range snapshot {
		got, ok := e.Cost(n)
		require.True(t, ok)
		assert.Equal(t, q, got, "value %d changed after redundant closure call", n)
	}
}

func TestEvaluator_ClosurePropagatesToEvenMultiples(t *testing.T) {
	e, err := dagsearch.NewEvaluator(64, 128)
	require.NoError(t, err)
	evaluateAll(t, e, 3)

	oddQ, ok := e.Cost(5)
	require.True(t, ok)

	for _, mult := range []uint64{10, 20, 40} {
		q, ok := e.Cost(mult)
		require.True(t, ok, "expected %d reachable via closure from 5", mult)
		assert.LessOrEqual(t, q, oddQ, "closure must not worsen %d's cost", mult)
	}
}

func TestEvaluator_CostNeverExceedsQ(t *testing.T) {
	e, err := dagsearch.NewEvaluator(31, 64)
	require.NoError(t, err)
	evaluateAll(t, e, 3)

	for n := uint64(1); n <= 31; n++ {
		if q, ok := e.Cost(n); ok {
			assert.LessOrEqual(t, q, 3)
		}
	}
}

func TestEvaluator_CodeRecordingStaysWithinBounds(t *testing.T) {
	e, err := dagsearch.NewEvaluator(31, 64, dagsearch.WithCodeRecording())
	require.NoError(t, err)
	evaluateAll(t, e, 3)
}

func TestEvaluator_AuxArraysOption(t *testing.T) {
	e, err := dagsearch.NewEvaluator(31, 64, dagsearch.WithAuxArrays())
	require.NoError(t, err)
	evaluateAll(t, e, 2)

	_, ok := e.Cost(3)
	assert.True(t, ok)
}
