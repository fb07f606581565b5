package dataprep

import (
	"math"
	"sort"
	"strconv"

	"edakit/pkg/core"
	"edakit/pkg/data"
)

// EncodeQualitative one-hot encodes a qualitative variable. Every distinct
// value not listed in exclude becomes a column named prefix_value holding 1
// where the row has that value and 0 elsewhere. All levels are kept (no
// reference level is dropped), so rows sum to 1 unless their value was
// excluded. Missing cells (see data.IsMissing) are never a level and their
// rows are all zeros. Columns are ordered by value: numerically when every
// value parses as a number, lexically otherwise.
func EncodeQualitative(values []string, prefix string, exclude ...string) (*core.Frame, error) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	levels := UniqueSorted(values)
	kept := levels[:0]
	for _, l := range levels {
		if !skip[l] && !data.IsMissing(l) {
			kept = append(kept, l)
		}
	}

	names := make([]string, len(kept))
	cols := make([][]float64, len(kept))
	pos := make(map[string]int, len(kept))
	for j, l := range kept {
		names[j] = prefix + "_" + l
		cols[j] = make([]float64, len(values))
		pos[l] = j
	}
	for i, v := range values {
		if j, ok := pos[v]; ok {
			cols[j][i] = 1
		}
	}
	if len(kept) == 0 {
		return core.Empty(len(values)), nil
	}
	return core.NewFrame(names, cols)
}

// UniqueSorted returns the distinct values, numerically ordered when all of
// them are numbers. NaN sorts after every number.
func UniqueSorted(values []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	nums := make(map[string]float64, len(out))
	numeric := true
	for _, v := range out {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[v] = f
	}
	if numeric {
		sort.SliceStable(out, func(a, b int) bool {
			x, y := nums[out[a]], nums[out[b]]
			if math.IsNaN(x) || math.IsNaN(y) {
				return !math.IsNaN(x) && math.IsNaN(y)
			}
			return x < y
		})
	} else {
		sort.Strings(out)
	}
	return out
}

// LabelEncode encodes categories as integers in first-seen order.
func LabelEncode(data []string) ([]int, map[string]int) {
	unique := map[string]int{}
	out := make([]int, len(data))
	for i, v := range data {
		if _, ok := unique[v]; !ok {
			unique[v] = len(unique)
		}
		out[i] = unique[v]
	}
	return out, unique
}
