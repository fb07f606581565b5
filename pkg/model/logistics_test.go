package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"edakit/pkg/model"
)

func overlapping() ([][]float64, []int) {
	X := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}}
	y := []int{0, 0, 0, 1, 0, 1, 1, 1}
	return X, y
}

func TestLogisticNewton(t *testing.T) {
	X, y := overlapping()
	m := model.NewLogisticRegression()
	require.NoError(t, m.Fit(X, y))
	require.Greater(t, m.W[0], 0.0)
	require.Equal(t, []int{0, 1}, m.Predict([][]float64{{0}, {7}}))
	require.GreaterOrEqual(t, m.Score(X, y), 0.75)

	for _, p := range m.PredictProba(X) {
		require.InDelta(t, 1.0, p[0]+p[1], 1e-12)
	}
}

func TestLogisticRefitReplacesParameters(t *testing.T) {
	X, y := overlapping()
	m := model.NewLogisticRegression()
	require.NoError(t, m.Fit(X, y))
	first := append([]float64(nil), m.W...)

	flipped := make([]int, len(y))
	for i, v := range y {
		flipped[i] = 1 - v
	}
	require.NoError(t, m.Fit(X, flipped))
	require.Less(t, m.W[0], 0.0)

	require.NoError(t, m.Fit(X, y))
	require.InDeltaSlice(t, first, m.W, 1e-9)
}

func TestLogisticSolversAgree(t *testing.T) {
	X, y := overlapping()
	newton := model.NewLogisticRegression()
	require.NoError(t, newton.Fit(X, y))

	sgd := model.NewLogisticRegression(
		model.WithSolver(model.SolverSGD),
		model.WithLearningRate(0.05),
		model.WithMaxIter(20000),
		model.WithTol(1e-9),
	)
	require.NoError(t, sgd.Fit(X, y))
	require.InDelta(t, newton.W[0], sgd.W[0], 1e-3)
	require.InDelta(t, newton.Bias(), sgd.Bias(), 1e-3)
}

func TestLogisticSeparableDataStaysFinite(t *testing.T) {
	X := [][]float64{{0}, {0}, {1}, {1}}
	y := []int{0, 0, 1, 1}
	m := model.NewLogisticRegression()
	require.NoError(t, m.Fit(X, y))
	require.Equal(t, 1.0, m.Score(X, y))

	dev, err := model.Deviance(y, m.PredictProba(X))
	require.NoError(t, err)
	require.Greater(t, dev, 0.0)
}

func TestLogisticErrors(t *testing.T) {
	X, y := overlapping()
	require.ErrorIs(t, model.NewLogisticRegression(model.WithSolver("lbfgs")).Fit(X, y), model.ErrUnknownSolver)
	require.ErrorIs(t, model.NewLogisticRegression().Fit([][]float64{{}, {}}, []int{0, 1}), model.ErrNoFeatures)
}
