// Package report persists selection results and prints result tables.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"edakit/pkg/selection"
	"edakit/pkg/stats"
)

var headColor = color.New(color.FgCyan, color.Bold)

// WriteSelection encodes res as msgpack.
func WriteSelection(w io.Writer, res *selection.Result) error {
	if err := msgpack.NewEncoder(w).Encode(res); err != nil {
		return errors.Wrap(err, "report: encode selection")
	}
	return nil
}

// ReadSelection decodes a Result written by WriteSelection.
func ReadSelection(r io.Reader) (*selection.Result, error) {
	var res selection.Result
	if err := msgpack.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "report: decode selection")
	}
	if len(res.Subsets) != len(res.Trace)+1 {
		return nil, errors.Errorf("report: %d subsets for %d trace values", len(res.Subsets), len(res.Trace))
	}
	return &res, nil
}

// SaveSelection writes res to path.
func SaveSelection(path string, res *selection.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "report: create")
	}
	if err := WriteSelection(f, res); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "report: close")
}

// LoadSelection reads a Result from path.
func LoadSelection(path string) (*selection.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "report: open")
	}
	defer f.Close()
	return ReadSelection(f)
}

// PrintSelection lists the feature added in each round with its score.
func PrintSelection(w io.Writer, c selection.Criterion, res *selection.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	headColor.Fprintf(tw, "step\tadded\t%s\n", c)
	for k := 1; k < len(res.Subsets); k++ {
		sub := res.Subsets[k]
		fmt.Fprintf(tw, "%d\t%s\t%.6f\n", k, sub[len(sub)-1], res.Trace[k-1])
	}
	return tw.Flush()
}

// PrintSummaries lists precision, recall and accuracy per feature subset.
func PrintSummaries(w io.Writer, sets [][]string, precision, recall, accuracy []float64) error {
	if len(sets) != len(precision) || len(sets) != len(recall) || len(sets) != len(accuracy) {
		return errors.New("report: summary columns differ in length")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	headColor.Fprintln(tw, "features\tprecision\trecall\taccuracy\tsubset")
	for i, set := range sets {
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t%s\n", len(set), precision[i], recall[i], accuracy[i], strings.Join(set, ","))
	}
	return tw.Flush()
}

// PrintRates lists the size and target rate of each group of variable.
func PrintRates(w io.Writer, variable string, rates []stats.GroupRate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	headColor.Fprintf(tw, "%s\tcount\tpositives\trate\n", variable)
	for _, r := range rates {
		fmt.Fprintf(tw, "%g\t%d\t%g\t%.4f\n", r.Value, r.Count, r.Positives, r.Rate)
	}
	return tw.Flush()
}
