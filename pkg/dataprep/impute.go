package dataprep

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Imputation strategies for ImputeColumn.
const (
	ImputeMean   = "mean"
	ImputeMedian = "median"
	ImputeZero   = "zero"
)

// ImputeColumn returns a copy of col with NaN entries replaced according to
// strategy. A column with no observed values is filled with 0.
func ImputeColumn(col []float64, strategy string) ([]float64, error) {
	var observed []float64
	for _, v := range col {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	fill := 0.0
	if len(observed) > 0 {
		switch strategy {
		case ImputeMean:
			fill = stat.Mean(observed, nil)
		case ImputeMedian:
			sort.Float64s(observed)
			n := len(observed)
			if n%2 == 1 {
				fill = observed[n/2]
			} else {
				fill = (observed[n/2-1] + observed[n/2]) / 2
			}
		case ImputeZero:
		default:
			return nil, errors.Errorf("dataprep: unknown imputation strategy %q", strategy)
		}
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if math.IsNaN(v) {
			out[i] = fill
		} else {
			out[i] = v
		}
	}
	return out, nil
}

// MissingCount is the number of NaN entries in col.
func MissingCount(col []float64) int {
	n := 0
	for _, v := range col {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
