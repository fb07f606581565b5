package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"

	"edakit/pkg/config"
	"edakit/pkg/loader"
	"edakit/pkg/model"
	"edakit/pkg/plotting"
	"edakit/pkg/report"
	"edakit/pkg/selection"
	"edakit/pkg/stats"
	"edakit/pkg/validate"
)

// Select runs forward selection as configured. With more than one worker
// the candidates of a round are fit concurrently on fresh classifiers.
func Select(ctx context.Context, cfg config.Config, ds *Dataset, observe func(selection.Step)) (*selection.Result, error) {
	c, err := cfg.Criterion()
	if err != nil {
		return nil, err
	}
	factory := cfg.Factory()
	var opts []selection.Option
	if observe != nil {
		opts = append(opts, selection.WithObserver(observe))
	}
	if cfg.Selection.Workers > 1 {
		opts = append(opts, selection.WithFactory(factory, cfg.Selection.Workers))
	}
	return selection.Forward(ctx, ds.X, ds.Y, factory(), c, opts...)
}

// Summary holds cross-validated metrics for a list of feature subsets.
type Summary struct {
	Sets      [][]string
	Matrices  []model.ConfusionMatrix
	Precision []float64
	Recall    []float64
	Accuracy  []float64
}

// Validate cross-validates every non-empty subset of sets.
func Validate(ctx context.Context, cfg config.Config, ds *Dataset, sets [][]string) (*Summary, error) {
	sets = validate.NonEmpty(sets)
	kf := loader.KFold{Splits: cfg.Validation.Folds, Shuffle: cfg.Validation.Shuffle, Seed: cfg.Validation.Seed}
	cms, err := validate.PerformValidations(ctx, ds.X, ds.Y, sets, kf, cfg.Factory()())
	if err != nil {
		return nil, err
	}
	p, r, a := model.Summarize(cms)
	return &Summary{Sets: sets, Matrices: cms, Precision: p, Recall: r, Accuracy: a}, nil
}

// Plot draws one rate chart per configured plot into cfg.PlotDir, plus a
// grid of all of them, and returns the written paths.
func Plot(cfg config.Config, ds *Dataset) ([]string, error) {
	target := make([]float64, len(ds.Y))
	for i, v := range ds.Y {
		target[i] = float64(v)
	}
	var paths []string
	var plots []*plot.Plot
	for _, pc := range cfg.Plots {
		groups, err := ds.Table.Floats(pc.Column)
		if err != nil {
			return nil, err
		}
		rates, err := stats.GroupRates(groups, target)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: plot %q", pc.Column)
		}
		mapping := pc.Mapping
		if len(mapping) == 0 {
			mapping = identity(rates)
		}
		p, err := plotting.RateChart(pc.Column, pc.Label, rates, mapping)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: plot %q", pc.Column)
		}
		path := filepath.Join(cfg.PlotDir, pc.Column+"_rate.png")
		if err := plotting.Save(p, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
		plots = append(plots, p)
	}
	if len(plots) > 1 {
		path := filepath.Join(cfg.PlotDir, "rates_grid.png")
		if err := plotting.SaveGrid(plots, cfg.GridCols, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// identity labels each group by its own value.
func identity(rates []stats.GroupRate) map[string]string {
	m := make(map[string]string, len(rates))
	for _, r := range rates {
		k := strconv.Itoa(int(r.Value))
		m[k] = k
	}
	return m
}

// Run is the whole notebook flow: plots, forward selection, then
// cross-validation of every selected subset, with tables written to w.
func Run(ctx context.Context, cfg config.Config, ds *Dataset, w io.Writer, observe func(selection.Step)) (*selection.Result, *Summary, error) {
	paths, err := Plot(cfg, ds)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range paths {
		fmt.Fprintln(w, "wrote", p)
	}

	res, err := Select(ctx, cfg, ds, observe)
	if err != nil {
		return nil, nil, err
	}
	c, _ := cfg.Criterion()
	if err := report.PrintSelection(w, c, res); err != nil {
		return nil, nil, err
	}

	sum, err := Validate(ctx, cfg, ds, res.Subsets)
	if err != nil {
		return nil, nil, err
	}
	if err := report.PrintSummaries(w, sum.Sets, sum.Precision, sum.Recall, sum.Accuracy); err != nil {
		return nil, nil, err
	}
	return res, sum, nil
}
