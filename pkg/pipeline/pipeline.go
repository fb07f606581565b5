// Package pipeline turns a configured CSV into a feature frame and runs the
// selection, validation and plotting steps over it.
package pipeline

import (
	"github.com/pkg/errors"

	"edakit/pkg/config"
	"edakit/pkg/core"
	"edakit/pkg/data"
	"edakit/pkg/dataprep"
	"edakit/pkg/stats"
)

// Step derives feature columns from a table.
type Step interface {
	Apply(t *data.Table) (*core.Frame, error)
}

// Pipeline concatenates the columns produced by its steps, in order.
type Pipeline struct {
	steps []Step
}

func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Apply runs every step on t and joins their frames.
func (p *Pipeline) Apply(t *data.Table) (*core.Frame, error) {
	frames := []*core.Frame{core.Empty(t.Len())}
	for _, step := range p.steps {
		f, err := step.Apply(t)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return core.Concat(frames...)
}

// Numeric copies numeric columns, filling NaN and optionally z-scoring.
type Numeric struct {
	Columns     []string
	Impute      string
	Standardize bool
}

func (n Numeric) Apply(t *data.Table) (*core.Frame, error) {
	cols := make([][]float64, len(n.Columns))
	for j, name := range n.Columns {
		raw, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		col, err := dataprep.ImputeColumn(raw, n.Impute)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: column %q", name)
		}
		cols[j] = col
	}
	if n.Standardize {
		cols = stats.NewStandardScaler().FitTransform(cols)
	}
	if len(cols) == 0 {
		return core.Empty(t.Len()), nil
	}
	return core.NewFrame(n.Columns, cols)
}

// Qualitative one-hot encodes a categorical column.
type Qualitative struct {
	Column  string
	Prefix  string
	Exclude []string
}

func (q Qualitative) Apply(t *data.Table) (*core.Frame, error) {
	values, err := t.Strings(q.Column)
	if err != nil {
		return nil, err
	}
	return dataprep.EncodeQualitative(values, q.Prefix, q.Exclude...)
}

// FromConfig builds the feature pipeline described by cfg: numeric columns
// first, then each qualitative column.
func FromConfig(cfg config.Config) *Pipeline {
	steps := []Step{Numeric{Columns: cfg.Numeric, Impute: cfg.Impute, Standardize: cfg.Standardize}}
	for _, q := range cfg.Qualitative {
		steps = append(steps, Qualitative{Column: q.Column, Prefix: q.PrefixOrColumn(), Exclude: q.Exclude})
	}
	return NewPipeline(steps...)
}

// Dataset is a loaded table with its features and target.
type Dataset struct {
	Table *data.Table
	X     *core.Frame
	Y     []int
}

// Load reads cfg.Data and prepares features and target.
func Load(cfg config.Config) (*Dataset, error) {
	t, err := data.OpenCSV(cfg.Data)
	if err != nil {
		return nil, err
	}
	return Prepare(cfg, t)
}

// Prepare derives the dataset of cfg from an already loaded table.
func Prepare(cfg config.Config, t *data.Table) (*Dataset, error) {
	y, err := t.Labels(cfg.Target)
	if err != nil {
		return nil, err
	}
	X, err := FromConfig(cfg).Apply(t)
	if err != nil {
		return nil, err
	}
	if X.Has(cfg.Target) {
		return nil, errors.Errorf("pipeline: target %q is also a feature", cfg.Target)
	}
	return &Dataset{Table: t, X: X, Y: y}, nil
}
