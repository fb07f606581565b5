package stats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"edakit/pkg/stats"
)

func TestGroupRates(t *testing.T) {
	groups := []float64{2, 1, 2, 1, 1, 3}
	target := []float64{1, 0, 0, 1, 1, 0}
	rates, err := stats.GroupRates(groups, target)
	require.NoError(t, err)
	require.Equal(t, []stats.GroupRate{
		{Value: 1, Count: 3, Positives: 2, Rate: 2.0 / 3.0},
		{Value: 2, Count: 2, Positives: 1, Rate: 0.5},
		{Value: 3, Count: 1, Positives: 0, Rate: 0},
	}, rates)

	require.InDelta(t, 0.5, stats.OverallRate(target), 1e-12)
	require.Equal(t, 0.0, stats.OverallRate(nil))
}

func TestGroupRatesErrors(t *testing.T) {
	_, err := stats.GroupRates([]float64{1}, nil)
	require.Error(t, err)
	_, err = stats.GroupRates([]float64{math.NaN()}, []float64{1})
	require.Error(t, err)
}

func TestStandardize(t *testing.T) {
	z := stats.Standardize([]float64{1, 2, 3})
	require.InDeltaSlice(t, []float64{-math.Sqrt(1.5), 0, math.Sqrt(1.5)}, z, 1e-12)

	require.Equal(t, []float64{0, 0}, stats.Standardize([]float64{4, 4}))
}

func TestUnfittedScalerCopies(t *testing.T) {
	in := [][]float64{{1, 2}}
	out := stats.NewStandardScaler().Transform(in)
	require.Equal(t, in, out)
	out[0][0] = 9
	require.Equal(t, 1.0, in[0][0])
}
