package model

import (
	"math/rand"
	"sync"
	"time"
)

// RandomForest for classification
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	Bootstrap       bool
	RandomState     int64

	Trees []*DecisionTreeClassifier
}

// RandomForestOption functional config for RandomForest
type RandomForestOption func(*RandomForest)

func WithNEstimators(n int) RandomForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) RandomForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithForestRandomState(seed int64) RandomForestOption {
	return func(rf *RandomForest) { rf.RandomState = seed }
}

// NewRandomForest initializes the forest with 100 bootstrapped trees.
func NewRandomForest(opts ...RandomForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains every tree concurrently. Tree i uses seed RandomState+i for
// both its bootstrap sample and its feature sampling, so a fixed
// RandomState reproduces the forest.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if _, err := checkXY(X, y); err != nil {
		return err
	}
	n := len(X)
	trees := make([]*DecisionTreeClassifier, max(rf.NEstimators, 1))
	var wg sync.WaitGroup
	errCh := make(chan error, len(trees))

	for i := range trees {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			seed := rf.RandomState + int64(idx)
			treeRand := rand.New(rand.NewSource(seed))

			Xs, ys := X, y
			if rf.Bootstrap {
				Xs = make([][]float64, n)
				ys = make([]int, n)
				for j := 0; j < n; j++ {
					k := treeRand.Intn(n)
					Xs[j], ys[j] = X[k], y[k]
				}
			}
			tree := NewDecisionTreeClassifier(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(rf.MaxFeatures),
				WithRandomState(seed),
			)
			if err := tree.Fit(Xs, ys); err != nil {
				errCh <- err
				return
			}
			trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	rf.Trees = trees
	return nil
}

// PredictProba averages the class distributions of all trees.
func (rf *RandomForest) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range out {
		out[i] = []float64{0.5, 0.5}
	}
	if len(rf.Trees) == 0 {
		return out
	}
	for i := range out {
		out[i][0], out[i][1] = 0, 0
	}
	for _, tree := range rf.Trees {
		for i, pr := range tree.PredictProba(X) {
			out[i][0] += pr[0]
			out[i][1] += pr[1]
		}
	}
	k := float64(len(rf.Trees))
	for i := range out {
		out[i][0] /= k
		out[i][1] /= k
	}
	return out
}

// Predict returns the class with the larger averaged probability.
func (rf *RandomForest) Predict(X [][]float64) []int {
	return argmaxProba(rf.PredictProba(X))
}

// Score is the accuracy of Predict on (X, y).
func (rf *RandomForest) Score(X [][]float64, y []int) float64 {
	return Accuracy(y, rf.Predict(X))
}
