package loader_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"edakit/pkg/loader"
)

func TestKFoldPartitionsRows(t *testing.T) {
	folds, err := loader.KFold{Splits: 3, Shuffle: true, Seed: 1}.Split(10)
	require.NoError(t, err)
	require.Len(t, folds, 3)
	require.Len(t, folds[0], 4)
	require.Len(t, folds[1], 3)
	require.Len(t, folds[2], 3)

	var all []int
	for _, f := range folds {
		all = append(all, f...)
	}
	sort.Ints(all)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)
}

func TestKFoldWithoutShuffleIsContiguous(t *testing.T) {
	folds, err := loader.KFold{Splits: 2}.Split(5)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 2}, {3, 4}}, folds)
}

func TestKFoldSeedIsReproducible(t *testing.T) {
	a, err := loader.KFold{Splits: 4, Shuffle: true, Seed: 42}.Split(20)
	require.NoError(t, err)
	b, err := loader.KFold{Splits: 4, Shuffle: true, Seed: 42}.Split(20)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestKFoldRejectsBadSplits(t *testing.T) {
	_, err := loader.KFold{Splits: 1}.Split(10)
	require.Error(t, err)
	_, err = loader.KFold{Splits: 5}.Split(3)
	require.Error(t, err)
}

func TestComplementAndGather(t *testing.T) {
	require.Equal(t, []int{0, 2, 4}, loader.Complement(5, []int{3, 1}))

	X := [][]float64{{0}, {1}, {2}}
	y := []int{0, 1, 0}
	Xs, ys := loader.Gather(X, y, []int{2, 1})
	require.Equal(t, [][]float64{{2}, {1}}, Xs)
	require.Equal(t, []int{0, 1}, ys)
}
