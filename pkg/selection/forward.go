// Package selection implements greedy forward feature selection.
package selection

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"edakit/pkg/core"
	"edakit/pkg/model"
)

// ErrNaNScore is returned when a candidate's criterion value is NaN and
// therefore cannot be ranked.
var ErrNaNScore = errors.New("selection: criterion value is NaN")

// Result is the outcome of a forward search. Subsets[k] holds the k features
// chosen after k rounds (Subsets[0] is empty) and Trace[k-1] the criterion
// value that Subsets[k] achieved.
type Result struct {
	Subsets [][]string `msgpack:"subsets"`
	Trace   []float64  `msgpack:"trace"`
}

// Step describes one completed round.
type Step struct {
	Round      int // 1-based
	Feature    string
	Score      float64
	Candidates int
}

type options struct {
	factory  model.Factory
	workers  int
	observer func(Step)
}

// Option configures Forward.
type Option func(*options)

// WithFactory evaluates the candidates of a round concurrently, each on its
// own classifier from f, with at most workers fits in flight.
func WithFactory(f model.Factory, workers int) Option {
	return func(o *options) {
		o.factory = f
		o.workers = workers
	}
}

// WithObserver registers fn to be called after every round.
func WithObserver(fn func(Step)) Option {
	return func(o *options) { o.observer = fn }
}

// Forward grows feature subsets one column at a time. Each round refits m on
// the current subset plus every remaining column and keeps the column with
// the strictly greatest criterion value; on equal values the column that
// comes first in X wins. It runs X.Width() rounds, so the last subset holds
// every column.
//
// m is refit O(Width²) times and is left holding the last candidate's fit.
// A failing fit aborts the search.
func Forward(ctx context.Context, X *core.Frame, y []int, m model.Classifier, c Criterion, opts ...Option) (*Result, error) {
	if c != Deviance && c != Rate {
		return nil, errors.Wrap(ErrCriterion, c.String())
	}
	if len(y) != X.Len() {
		return nil, errors.Wrapf(model.ErrLength, "selection: %d rows, %d labels", X.Len(), len(y))
	}
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	remaining := X.Names()
	chosen := []string{}
	res := &Result{Subsets: [][]string{{}}, Trace: []float64{}}

	for round := 1; len(remaining) > 0; round++ {
		candidates := make([][]string, len(remaining))
		for k, f := range remaining {
			candidates[k] = append(append(make([]string, 0, len(chosen)+1), chosen...), f)
		}

		var scores []float64
		var err error
		if o.factory != nil {
			scores, err = scoreParallel(ctx, X, y, o.factory, o.workers, c, candidates)
		} else {
			scores, err = scoreSequential(ctx, X, y, m, c, candidates)
		}
		if err != nil {
			return nil, err
		}

		best := -1
		for k, s := range scores {
			if best == -1 || s > scores[best] {
				best = k
			}
		}

		feature := remaining[best]
		chosen = append(chosen, feature)
		res.Subsets = append(res.Subsets, append([]string(nil), chosen...))
		res.Trace = append(res.Trace, scores[best])
		remaining = append(remaining[:best:best], remaining[best+1:]...)

		if o.observer != nil {
			o.observer(Step{Round: round, Feature: feature, Score: scores[best], Candidates: len(candidates)})
		}
	}
	return res, nil
}

func scoreSequential(ctx context.Context, X *core.Frame, y []int, m model.Classifier, c Criterion, candidates [][]string) ([]float64, error) {
	scores := make([]float64, len(candidates))
	for k, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := fitAndScore(X, y, m, c, cand)
		if err != nil {
			return nil, err
		}
		scores[k] = s
	}
	return scores, nil
}

// scoreParallel fills scores by candidate position so the caller's scan, and
// with it the tie-break, does not depend on completion order.
func scoreParallel(ctx context.Context, X *core.Frame, y []int, f model.Factory, workers int, c Criterion, candidates [][]string) ([]float64, error) {
	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for k, cand := range candidates {
		k, cand := k, cand
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := fitAndScore(X, y, f(), c, cand)
			if err != nil {
				return err
			}
			scores[k] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func fitAndScore(X *core.Frame, y []int, m model.Classifier, c Criterion, cand []string) (float64, error) {
	rows, err := X.SelectRows(cand...)
	if err != nil {
		return 0, err
	}
	if err := m.Fit(rows, y); err != nil {
		return 0, errors.Wrapf(err, "selection: fit %v", cand)
	}
	s, err := c.evaluate(m, rows, y)
	if err != nil {
		return 0, errors.Wrapf(err, "selection: score %v", cand)
	}
	if math.IsNaN(s) {
		return 0, errors.Wrapf(ErrNaNScore, "%v", cand)
	}
	return s, nil
}
