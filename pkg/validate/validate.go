// Package validate produces out-of-fold predictions and confusion matrices.
package validate

import (
	"context"

	"github.com/pkg/errors"

	"edakit/pkg/core"
	"edakit/pkg/loader"
	"edakit/pkg/model"
)

// CrossValPredict returns, for every row, the prediction of m fit on all the
// other folds. m is refit once per fold and keeps the last fold's fit.
func CrossValPredict(ctx context.Context, m model.Classifier, X [][]float64, y []int, kf loader.KFold) ([]int, error) {
	if len(X) != len(y) {
		return nil, errors.Wrapf(model.ErrLength, "validate: %d rows, %d labels", len(X), len(y))
	}
	folds, err := kf.Split(len(X))
	if err != nil {
		return nil, err
	}
	pred := make([]int, len(X))
	for k, test := range folds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		Xtr, ytr := loader.Gather(X, y, loader.Complement(len(X), test))
		if err := m.Fit(Xtr, ytr); err != nil {
			return nil, errors.Wrapf(err, "validate: fold %d", k)
		}
		Xte, _ := loader.Gather(X, y, test)
		for i, p := range m.Predict(Xte) {
			pred[test[i]] = p
		}
	}
	return pred, nil
}

// PerformValidations cross-validates m on each feature subset of X and
// returns one confusion matrix per subset. Every subset must name at least
// one column.
func PerformValidations(ctx context.Context, X *core.Frame, y []int, sets [][]string, kf loader.KFold, m model.Classifier) ([]model.ConfusionMatrix, error) {
	out := make([]model.ConfusionMatrix, 0, len(sets))
	for _, set := range sets {
		if len(set) == 0 {
			return nil, errors.Wrap(model.ErrNoFeatures, "validate: empty feature subset")
		}
		rows, err := X.SelectRows(set...)
		if err != nil {
			return nil, err
		}
		pred, err := CrossValPredict(ctx, m, rows, y, kf)
		if err != nil {
			return nil, errors.Wrapf(err, "validate: subset %v", set)
		}
		cm, err := model.NewConfusionMatrix(y, pred)
		if err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, nil
}

// NonEmpty drops empty subsets, such as the first entry of a forward
// selection result.
func NonEmpty(sets [][]string) [][]string {
	out := make([][]string, 0, len(sets))
	for _, s := range sets {
		if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}
