package loader

import (
	"math/rand"

	"github.com/pkg/errors"
)

// KFold cuts row indices into Splits contiguous test folds, optionally after
// a seeded shuffle. The first n%Splits folds hold one extra row.
type KFold struct {
	Splits  int
	Shuffle bool
	Seed    int64
}

// Split returns the test indices of every fold for n rows.
func (kf KFold) Split(n int) ([][]int, error) {
	if kf.Splits < 2 {
		return nil, errors.Errorf("loader: need at least 2 folds, got %d", kf.Splits)
	}
	if kf.Splits > n {
		return nil, errors.Errorf("loader: cannot split %d rows into %d folds", n, kf.Splits)
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		rnd := rand.New(rand.NewSource(kf.Seed))
		rnd.Shuffle(n, func(a, b int) { indices[a], indices[b] = indices[b], indices[a] })
	}
	folds := make([][]int, kf.Splits)
	start := 0
	for k := range folds {
		size := n / kf.Splits
		if k < n%kf.Splits {
			size++
		}
		folds[k] = indices[start : start+size : start+size]
		start += size
	}
	return folds, nil
}

// Complement returns the indices in [0,n) that are not in fold, ascending.
func Complement(n int, fold []int) []int {
	skip := make([]bool, n)
	for _, i := range fold {
		skip[i] = true
	}
	out := make([]int, 0, n-len(fold))
	for i := 0; i < n; i++ {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}

// Gather returns the rows of X and labels of y at idx.
func Gather(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	Xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for k, i := range idx {
		Xs[k] = X[i]
		ys[k] = y[i]
	}
	return Xs, ys
}
