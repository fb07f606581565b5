package model

import "github.com/pkg/errors"

// Classifier is a binary (0/1) supervised model.
//
// Fit replaces every learned parameter, so a Classifier can be refit many
// times in a row; reading results must happen before the next Fit. A
// Classifier is not safe for concurrent use; use a Factory to get
// independent instances.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
	// PredictProba returns [p(y=0), p(y=1)] for every row.
	PredictProba(X [][]float64) [][]float64
	// Score is the accuracy of Predict on (X, y).
	Score(X [][]float64, y []int) float64
}

// Factory returns a fresh, unfitted Classifier.
type Factory func() Classifier

var (
	ErrEmpty         = errors.New("model: empty X")
	ErrLength        = errors.New("model: X and y length mismatch")
	ErrRagged        = errors.New("model: inconsistent number of features in X rows")
	ErrLabel         = errors.New("model: labels must be 0 or 1")
	ErrNoFeatures    = errors.New("model: X has no feature columns")
	ErrNotConverged  = errors.New("model: solver did not converge")
	ErrUnknownSolver = errors.New("model: unknown solver")
)

// checkXY validates a training set and returns the feature count.
func checkXY(X [][]float64, y []int) (int, error) {
	if len(X) == 0 {
		return 0, ErrEmpty
	}
	if len(y) != len(X) {
		return 0, errors.Wrapf(ErrLength, "%d rows, %d labels", len(X), len(y))
	}
	p := len(X[0])
	if p == 0 {
		return 0, ErrNoFeatures
	}
	for i := range X {
		if len(X[i]) != p {
			return 0, errors.Wrapf(ErrRagged, "row %d has %d features, want %d", i, len(X[i]), p)
		}
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return 0, errors.Wrapf(ErrLabel, "label %d at row %d", v, i)
		}
	}
	return p, nil
}

// argmaxProba turns [p0, p1] rows into labels; equal probabilities give 0.
func argmaxProba(proba [][]float64) []int {
	out := make([]int, len(proba))
	for i, p := range proba {
		if p[1] > p[0] {
			out[i] = 1
		}
	}
	return out
}
