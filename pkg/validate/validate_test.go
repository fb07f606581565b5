package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"edakit/pkg/core"
	"edakit/pkg/loader"
	"edakit/pkg/model"
	"edakit/pkg/validate"
)

// recorder remembers which rows it was trained on and predicts 1 for rows
// whose first feature is positive.
type recorder struct {
	trained [][]int
}

func (r *recorder) Fit(X [][]float64, y []int) error {
	ids := make([]int, len(X))
	for i, row := range X {
		ids[i] = int(row[len(row)-1])
	}
	r.trained = append(r.trained, ids)
	return nil
}

func (r *recorder) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		if row[0] > 0 {
			out[i] = 1
		}
	}
	return out
}

func (r *recorder) PredictProba(X [][]float64) [][]float64 { return nil }
func (r *recorder) Score(X [][]float64, y []int) float64   { return 0 }

func TestCrossValPredictHoldsOutEachFold(t *testing.T) {
	// last column is the row id
	X := [][]float64{{1, 0}, {-1, 1}, {1, 2}, {-1, 3}, {1, 4}, {-1, 5}}
	y := []int{1, 0, 1, 0, 0, 0}
	rec := &recorder{}
	pred, err := validate.CrossValPredict(context.Background(), rec, X, y, loader.KFold{Splits: 3})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 1, 0, 1, 0}, pred)
	require.Equal(t, [][]int{{2, 3, 4, 5}, {0, 1, 4, 5}, {0, 1, 2, 3}}, rec.trained)
}

func TestCrossValPredictErrors(t *testing.T) {
	_, err := validate.CrossValPredict(context.Background(), &recorder{}, [][]float64{{1}}, []int{1, 0}, loader.KFold{Splits: 2})
	require.ErrorIs(t, err, model.ErrLength)

	_, err = validate.CrossValPredict(context.Background(), &recorder{}, [][]float64{{1}, {2}}, []int{1, 0}, loader.KFold{Splits: 3})
	require.Error(t, err)
}

func TestPerformValidations(t *testing.T) {
	X, err := core.NewFrame(
		[]string{"good", "noise"},
		[][]float64{
			{0, 0, 0, 0, 0, 1, 1, 1, 1, 1},
			{0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
		},
	)
	require.NoError(t, err)
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}

	sets := validate.NonEmpty([][]string{{}, {"good"}, {"good", "noise"}})
	require.Len(t, sets, 2)

	kf := loader.KFold{Splits: 5, Shuffle: true, Seed: 1}
	cms, err := validate.PerformValidations(context.Background(), X, y, sets, kf, model.NewDecisionTreeClassifier(model.WithRandomState(1)))
	require.NoError(t, err)
	require.Len(t, cms, 2)
	require.Equal(t, model.ConfusionMatrix{{5, 0}, {0, 5}}, cms[0])
	for _, cm := range cms {
		require.Equal(t, 10, cm.Total())
	}

	_, err = validate.PerformValidations(context.Background(), X, y, [][]string{{}}, kf, model.NewKNN(1))
	require.ErrorIs(t, err, model.ErrNoFeatures)

	_, err = validate.PerformValidations(context.Background(), X, y, [][]string{{"missing"}}, kf, model.NewKNN(1))
	require.ErrorIs(t, err, core.ErrUnknownColumn)
}
