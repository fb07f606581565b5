package model

import (
	"runtime"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// KNN classifies a row by the labels of its K nearest training rows.
type KNN struct {
	K int
	X [][]float64
	y []int
}

// NewKNN creates and returns a new KNN model.
func NewKNN(k int) *KNN {
	return &KNN{K: k}
}

// Fit stores a copy of the training data.
func (m *KNN) Fit(X [][]float64, y []int) error {
	if _, err := checkXY(X, y); err != nil {
		return err
	}
	if m.K < 1 {
		return errors.Errorf("model: knn needs K >= 1, got %d", m.K)
	}
	m.X = make([][]float64, len(X))
	for i, row := range X {
		m.X[i] = append([]float64(nil), row...)
	}
	m.y = append([]int(nil), y...)
	return nil
}

// PredictProba returns the share of each class among the neighbours.
// Rows are processed in parallel chunks.
func (m *KNN) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	if len(m.X) == 0 {
		for i := range out {
			out[i] = []float64{0.5, 0.5}
		}
		return out
	}
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(X))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				p := m.positiveShare(X[i])
				out[i] = []float64{1 - p, p}
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

// Predict is the majority vote of the neighbours; an even split gives 0.
func (m *KNN) Predict(X [][]float64) []int {
	return argmaxProba(m.PredictProba(X))
}

// Score is the accuracy of Predict on (X, y).
func (m *KNN) Score(X [][]float64, y []int) float64 {
	return Accuracy(y, m.Predict(X))
}

// positiveShare returns the fraction of class-1 labels among the K nearest
// rows. Equal distances keep training order.
func (m *KNN) positiveShare(xi []float64) float64 {
	type neighbour struct {
		d   float64
		pos int
		y   int
	}
	k := min(m.K, len(m.X))
	nbrs := make([]neighbour, 0, k+1)
	less := func(a, b neighbour) bool {
		if a.d != b.d {
			return a.d < b.d
		}
		return a.pos < b.pos
	}
	for j, xj := range m.X {
		cand := neighbour{d: euclidSquared(xi, xj), pos: j, y: m.y[j]}
		if len(nbrs) < k {
			nbrs = append(nbrs, cand)
		} else if less(cand, nbrs[len(nbrs)-1]) {
			nbrs[len(nbrs)-1] = cand
		} else {
			continue
		}
		sort.Slice(nbrs, func(a, b int) bool { return less(nbrs[a], nbrs[b]) })
	}
	sum := 0
	for _, nb := range nbrs {
		sum += nb.y
	}
	return float64(sum) / float64(len(nbrs))
}

// euclidSquared computes the squared Euclidean distance between two vectors.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
