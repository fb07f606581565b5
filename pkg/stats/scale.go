package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler remembers per-column mean and population standard deviation.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns the statistics of each column. Constant columns get Std 1.
func (s *StandardScaler) Fit(cols [][]float64) {
	s.Mean = make([]float64, len(cols))
	s.Std = make([]float64, len(cols))
	for j, col := range cols {
		mean, variance := stat.PopMeanVariance(col, nil)
		s.Mean[j] = mean
		s.Std[j] = 1
		if variance > 0 {
			s.Std[j] = math.Sqrt(variance)
		}
	}
	s.fit = true
}

// Transform returns z-scored copies of cols. An unfitted scaler copies cols unchanged.
func (s *StandardScaler) Transform(cols [][]float64) [][]float64 {
	out := make([][]float64, len(cols))
	for j, col := range cols {
		out[j] = make([]float64, len(col))
		for i, v := range col {
			if s.fit {
				v = (v - s.Mean[j]) / s.Std[j]
			}
			out[j][i] = v
		}
	}
	return out
}

func (s *StandardScaler) FitTransform(cols [][]float64) [][]float64 {
	s.Fit(cols)
	return s.Transform(cols)
}

// Standardize z-scores a single column.
func Standardize(col []float64) []float64 {
	return NewStandardScaler().FitTransform([][]float64{col})[0]
}
