package stats

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// GroupRate is the share of positive targets among rows with one group value.
type GroupRate struct {
	Value     float64
	Count     int
	Positives float64
	Rate      float64
}

// GroupRates computes, for each distinct value of groups in ascending order,
// the mean of target over the rows holding that value.
func GroupRates(groups, target []float64) ([]GroupRate, error) {
	if len(groups) != len(target) {
		return nil, errors.Errorf("stats: %d group values, %d targets", len(groups), len(target))
	}
	byValue := map[float64][]float64{}
	for i, g := range groups {
		if math.IsNaN(g) {
			return nil, errors.Errorf("stats: NaN group value at row %d", i)
		}
		byValue[g] = append(byValue[g], target[i])
	}
	out := make([]GroupRate, 0, len(byValue))
	for v, ts := range byValue {
		pos := floats.Sum(ts)
		out = append(out, GroupRate{
			Value:     v,
			Count:     len(ts),
			Positives: pos,
			Rate:      pos / float64(len(ts)),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Value < out[b].Value })
	return out, nil
}

// OverallRate is the mean of target, 0 for an empty slice.
func OverallRate(target []float64) float64 {
	if len(target) == 0 {
		return 0
	}
	return floats.Sum(target) / float64(len(target))
}
