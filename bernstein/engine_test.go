package bernstein_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocky/mult-by-constants/bernstein"
	"github.com/rocky/mult-by-constants/core"
)

func TestBuild_KnownCosts(t *testing.T) {
	params := core.NewCostParams() // ADD_COST=SUB_COST=1, SHIFT_COST=0
	cases := []struct {
		n    core.Value
		cost uint32
	}{
		{1, 0},
		{3, 1},
		{7, 1},
		{5, 1},
	}

	for _, tc := range cases {
		e := bernstein.NewEngine(params)
		prog, err := e.Build(tc.n)
		require.NoError(t, err, "n=%d", tc.n)
		assert.Equal(t, tc.cost, prog.Cost, "Cost(%d)", tc.n)
	}
}

func TestBuild_ReconstructionEvaluatesCorrectly(t *testing.T) {
	params := core.NewCostParams()
	for n := core.Value(1); n <= 200; n += 2 { // every odd constant up to 200
		e := bernstein.NewEngine(params)
		prog, err := e.Build(n)
		require.NoError(t, err, "n=%d", n)
		for _, x := range []core.Value{1, 2, 5, 97} {
			got := prog.Verify(x)
			assert.Equal(t, n*x, got, "n=%d x=%d program:\n%s", n, x, prog)
		}
	}
}

func TestBuild_EvenConstantAppliesTrailingShift(t *testing.T) {
	params := core.NewCostParams()
	e := bernstein.NewEngine(params)

	prog, err := e.Build(10) // 10 = 5 * 2^1
	require.NoError(t, err)
	assert.Equal(t, core.Value(10), prog.Verify(1))
	assert.Equal(t, uint32(1), prog.Cost) // cost(5)=1, ShiftCost=0
}

func TestBuild_MonotonicityUnderShift(t *testing.T) {
	params := core.NewCostParams()
	for n := core.Value(1); n <= 50; n += 2 {
		e := bernstein.NewEngine(params)
		base, err := e.Build(n)
		require.NoError(t, err)
		shifted, err := e.Build(n << 3)
		require.NoError(t, err)
		assert.LessOrEqual(t, shifted.Cost, base.Cost+params.ShiftCost)
	}
}

func TestBuild_NeverExceedsBinaryCost(t *testing.T) {
	params := core.NewCostParams()
	for n := core.Value(1); n <= 500; n += 2 {
		e := bernstein.NewEngine(params)
		prog, err := e.Build(n)
		require.NoError(t, err)
		bc := bernstein.BinaryCost(n, params)
		assert.LessOrEqual(t, prog.Cost, bc, "n=%d", n)
	}
}

func TestBuild_ZeroRejected(t *testing.T) {
	e := bernstein.NewEngine(core.NewCostParams())
	_, err := e.Build(0)
	assert.ErrorIs(t, err, core.ErrZeroConstant)
}

func TestBuild_SubtractionDisabled(t *testing.T) {
	params := core.NewCostParams(core.WithSubCost(core.NoSub))
	e := bernstein.NewEngine(params)
	prog, err := e.Build(7)
	require.NoError(t, err)
	for _, s := range prog.Steps {
		assert.NotEqual(t, core.Sub1, s.Op)
		assert.NotEqual(t, core.FactorSub, s.Op)
	}
}

func TestEngine_SharedMemoAmortizesAcrossBuilds(t *testing.T) {
	e := bernstein.NewEngine(core.NewCostParams())
	_, err := e.Build(51)
	require.NoError(t, err)
	popAfterFirst := e.Table().Population()
	require.Greater(t, popAfterFirst, 0)

	_, err = e.Build(51)
	require.NoError(t, err)
	assert.Equal(t, popAfterFirst, e.Table().Population(), "second build of same constant should not grow the memo")
}
