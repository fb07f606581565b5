package model

import (
	"math"

	"github.com/pkg/errors"
)

// probability clip used by LogLoss
const logLossEps = 1e-15

// ConfusionMatrix counts binary outcomes indexed [actual][predicted].
type ConfusionMatrix [2][2]int

// NewConfusionMatrix tallies yTrue against yPred. It is always 2x2, even when
// one of the classes never occurs.
func NewConfusionMatrix(yTrue, yPred []int) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if len(yTrue) != len(yPred) {
		return cm, errors.Wrapf(ErrLength, "%d labels, %d predictions", len(yTrue), len(yPred))
	}
	for i := range yTrue {
		a, p := yTrue[i], yPred[i]
		if (a != 0 && a != 1) || (p != 0 && p != 1) {
			return cm, errors.Wrapf(ErrLabel, "row %d: actual %d, predicted %d", i, a, p)
		}
		cm[a][p]++
	}
	return cm, nil
}

// Total is the number of observations counted.
func (cm ConfusionMatrix) Total() int {
	return cm[0][0] + cm[0][1] + cm[1][0] + cm[1][1]
}

// Precision is TP / (TP + FP). A zero denominator yields 0.
func (cm ConfusionMatrix) Precision() float64 {
	return float64(cm[1][1]) / float64(max(cm[0][1]+cm[1][1], 1))
}

// Recall is TP / (TP + FN). A zero denominator yields 0.
func (cm ConfusionMatrix) Recall() float64 {
	return float64(cm[1][1]) / float64(max(cm[1][0]+cm[1][1], 1))
}

// Accuracy is (TN + TP) / total. A zero denominator yields 0.
func (cm ConfusionMatrix) Accuracy() float64 {
	return float64(cm[0][0]+cm[1][1]) / float64(max(cm.Total(), 1))
}

// Summarize computes precision, recall and accuracy for each matrix, in that order.
func Summarize(cms []ConfusionMatrix) (precision, recall, accuracy []float64) {
	precision = make([]float64, len(cms))
	recall = make([]float64, len(cms))
	accuracy = make([]float64, len(cms))
	for i, cm := range cms {
		precision[i] = cm.Precision()
		recall[i] = cm.Recall()
		accuracy[i] = cm.Accuracy()
	}
	return
}

// Accuracy is the fraction of matching labels. Empty input yields 0.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// LogLoss is the binary cross-entropy of y under proba ([p0, p1] rows).
// Probabilities are clipped away from 0 and 1 and each row renormalized.
// With normalize the mean is returned, otherwise the sum.
func LogLoss(y []int, proba [][]float64, normalize bool) (float64, error) {
	if len(y) == 0 {
		return 0, ErrEmpty
	}
	if len(y) != len(proba) {
		return 0, errors.Wrapf(ErrLength, "%d labels, %d probability rows", len(y), len(proba))
	}
	s := 0.0
	for i, label := range y {
		if label != 0 && label != 1 {
			return 0, errors.Wrapf(ErrLabel, "label %d at row %d", label, i)
		}
		if len(proba[i]) != 2 {
			return 0, errors.Errorf("model: row %d has %d probabilities, want 2", i, len(proba[i]))
		}
		p0 := math.Min(math.Max(proba[i][0], logLossEps), 1-logLossEps)
		p1 := math.Min(math.Max(proba[i][1], logLossEps), 1-logLossEps)
		p := p1 / (p0 + p1)
		if label == 0 {
			p = p0 / (p0 + p1)
		}
		s -= math.Log(p)
	}
	if normalize {
		return s / float64(len(y)), nil
	}
	return s, nil
}

// Deviance is -2 times the log-likelihood of y under proba.
func Deviance(y []int, proba [][]float64) (float64, error) {
	ll, err := LogLoss(y, proba, false)
	if err != nil {
		return 0, err
	}
	return 2 * ll, nil
}
