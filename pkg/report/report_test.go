package report_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"edakit/pkg/report"
	"edakit/pkg/selection"
	"edakit/pkg/stats"
)

func init() {
	color.NoColor = true
}

func result() *selection.Result {
	return &selection.Result{
		Subsets: [][]string{{}, {"age"}, {"age", "sex_1"}},
		Trace:   []float64{-120.5, -98.25},
	}
}

func requireSameResult(t *testing.T, want, got *selection.Result) {
	t.Helper()
	require.Len(t, got.Subsets, len(want.Subsets))
	require.Empty(t, got.Subsets[0])
	require.Equal(t, want.Subsets[1:], got.Subsets[1:])
	require.Equal(t, want.Trace, got.Trace)
}

func TestSelectionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteSelection(&buf, result()))
	got, err := report.ReadSelection(&buf)
	require.NoError(t, err)
	requireSameResult(t, result(), got)

	path := filepath.Join(t.TempDir(), "sel.msgpack")
	require.NoError(t, report.SaveSelection(path, result()))
	got, err = report.LoadSelection(path)
	require.NoError(t, err)
	requireSameResult(t, result(), got)
}

func TestReadSelectionRejectsInconsistentResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteSelection(&buf, &selection.Result{Subsets: [][]string{{}}, Trace: []float64{1}}))
	_, err := report.ReadSelection(&buf)
	require.Error(t, err)
}

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.PrintSelection(&buf, selection.Deviance, result()))
	out := buf.String()
	require.Contains(t, out, "Deviance")
	require.Contains(t, out, "sex_1")
	require.Contains(t, out, "-98.250000")
}

func TestPrintSummaries(t *testing.T) {
	var buf bytes.Buffer
	sets := [][]string{{"age"}, {"age", "sex_1"}}
	require.NoError(t, report.PrintSummaries(&buf, sets, []float64{0.5, 1}, []float64{0.25, 1}, []float64{0.75, 1}))
	require.Contains(t, buf.String(), "age,sex_1")
	require.Contains(t, buf.String(), "0.7500")

	require.Error(t, report.PrintSummaries(&buf, sets, nil, nil, nil))
}

func TestPrintRates(t *testing.T) {
	rates, err := stats.GroupRates([]float64{1, 2, 2, 1, 2}, []float64{0, 1, 1, 0, 0})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, report.PrintRates(&buf, "sex", rates))
	out := buf.String()
	require.Contains(t, out, "positives")
	require.Contains(t, out, "0.6667")
}
