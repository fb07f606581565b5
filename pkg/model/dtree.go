package model

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrNaN is returned when a training row holds a NaN; impute first.
var ErrNaN = errors.New("model: NaN in X")

// DecisionTreeClassifier is a CART-style binary classifier with numeric
// threshold splits (x <= threshold goes left).
type DecisionTreeClassifier struct {
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => all features, >0 => features sampled per node
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for feature subsampling

	root *dtNode
}

type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64
	left      *dtNode
	right     *dtNode

	n      int
	probas [2]float64
}

// Option functional config
type Option func(*DecisionTreeClassifier)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) Option { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) Option  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) Option {
	return func(t *DecisionTreeClassifier) { t.MinImpurityDecrease = v }
}
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns an unlimited-depth gini tree.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Fit grows the tree from scratch on X (n x p) and y (0/1 labels).
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	p, err := checkXY(X, y)
	if err != nil {
		return err
	}
	for i, row := range X {
		for j, v := range row {
			if math.IsNaN(v) {
				return errors.Wrapf(ErrNaN, "row %d, feature %d", i, j)
			}
		}
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(t.RandomState))
	impurity := giniFromCounts
	if t.Criterion == "entropy" {
		impurity = entropyFromCounts
	}
	t.root = t.buildNode(X, y, idx, 0, p, impurity, rnd)
	return nil
}

// PredictProba returns the leaf class distribution [p0, p1] of every row.
// An unfitted tree answers [0.5, 0.5].
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		pr := t.predictProbaSingle(X[i])
		out[i] = []float64{pr[0], pr[1]}
	}
	return out
}

// Predict returns the majority class of each row's leaf; ties go to 0.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		pr := t.predictProbaSingle(X[i])
		if pr[1] > pr[0] {
			out[i] = 1
		}
	}
	return out
}

// Score is the accuracy of Predict on (X, y).
func (t *DecisionTreeClassifier) Score(X [][]float64, y []int) float64 {
	return Accuracy(y, t.Predict(X))
}

// Depth returns the depth of the fitted tree (a lone leaf has depth 0).
func (t *DecisionTreeClassifier) Depth() int { return nodeDepth(t.root) }

func nodeDepth(n *dtNode) int {
	if n == nil || n.isLeaf {
		return 0
	}
	return 1 + max(nodeDepth(n.left), nodeDepth(n.right))
}

type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	leftIdx   []int
	rightIdx  []int
}

type pair struct {
	v float64
	i int
}

func (t *DecisionTreeClassifier) leaf(node *dtNode, counts [2]int) *dtNode {
	node.isLeaf = true
	node.probas = countsToProbas(counts)
	return node
}

func (t *DecisionTreeClassifier) buildNode(X [][]float64, y []int, idx []int, depth, p int, impurity func([2]int) float64, rnd *rand.Rand) *dtNode {
	node := &dtNode{n: len(idx)}
	counts := countsFromIndices(y, idx)
	if counts[0] == 0 || counts[1] == 0 || len(idx) < t.MinSamplesSplit {
		return t.leaf(node, counts)
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return t.leaf(node, counts)
	}

	featIndices := make([]int, p)
	for j := range featIndices {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { featIndices[a], featIndices[b] = featIndices[b], featIndices[a] })
		featIndices = featIndices[:t.MaxFeatures]
		sort.Ints(featIndices)
	}

	parentImpurity := impurity(counts)

	// one search per feature; results are kept by position so the
	// first feature wins equal gains regardless of goroutine timing
	results := make([]splitResult, len(featIndices))
	var wg sync.WaitGroup
	for k, f := range featIndices {
		wg.Add(1)
		go func(k, f int) {
			defer wg.Done()
			results[k] = t.findBestSplitForFeature(X, y, idx, f, parentImpurity, impurity)
		}(k, f)
	}
	wg.Wait()

	best := splitResult{feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		return t.leaf(node, counts)
	}

	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.buildNode(X, y, best.leftIdx, depth+1, p, impurity, rnd)
	node.right = t.buildNode(X, y, best.rightIdx, depth+1, p, impurity, rnd)
	return node
}

// findBestSplitForFeature scans the midpoints between consecutive distinct
// values of feature f.
func (t *DecisionTreeClassifier) findBestSplitForFeature(X [][]float64, y []int, idx []int, f int, parentImpurity float64, impurity func([2]int) float64) splitResult {
	result := splitResult{feature: -1}

	valid := make([]pair, 0, len(idx))
	for _, ii := range idx {
		valid = append(valid, pair{X[ii][f], ii})
	}
	sort.SliceStable(valid, func(a, b int) bool { return valid[a].v < valid[b].v })

	total := countsFromIndices(y, idx)
	var left [2]int
	n := float64(len(valid))
	bestAt := -1
	for s := 1; s < len(valid); s++ {
		left[y[valid[s-1].i]]++
		if valid[s].v == valid[s-1].v {
			continue
		}
		if s < t.MinSamplesLeaf || len(valid)-s < t.MinSamplesLeaf {
			continue
		}
		right := [2]int{total[0] - left[0], total[1] - left[1]}
		weighted := (float64(s)/n)*impurity(left) + (float64(len(valid)-s)/n)*impurity(right)
		gain := parentImpurity - weighted
		if gain > result.gain {
			result.gain = gain
			result.feature = f
			result.threshold = (valid[s-1].v + valid[s].v) / 2.0
			bestAt = s
		}
	}
	if bestAt > 0 {
		result.leftIdx = indicesFromPairs(valid[:bestAt])
		result.rightIdx = indicesFromPairs(valid[bestAt:])
	}
	return result
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}

func countsFromIndices(y []int, idx []int) [2]int {
	var counts [2]int
	for _, ii := range idx {
		counts[y[ii]]++
	}
	return counts
}

func (t *DecisionTreeClassifier) predictProbaSingle(x []float64) [2]float64 {
	if t.root == nil {
		return [2]float64{0.5, 0.5}
	}
	node := t.root
	for !node.isLeaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.probas
}

func giniFromCounts(counts [2]int) float64 {
	n := float64(counts[0] + counts[1])
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts [2]int) float64 {
	n := float64(counts[0] + counts[1])
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func countsToProbas(counts [2]int) [2]float64 {
	n := counts[0] + counts[1]
	if n == 0 {
		return [2]float64{0.5, 0.5}
	}
	return [2]float64{float64(counts[0]) / float64(n), float64(counts[1]) / float64(n)}
}
