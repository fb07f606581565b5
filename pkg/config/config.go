// Package config loads experiment settings from TOML.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"edakit/pkg/dataprep"
	"edakit/pkg/model"
	"edakit/pkg/selection"
)

// Model kinds.
const (
	KindLogistic = "logistic"
	KindTree     = "tree"
	KindForest   = "forest"
	KindKNN      = "knn"
)

// Qualitative describes one categorical column to one-hot encode.
type Qualitative struct {
	Column  string   `toml:"column"`
	Prefix  string   `toml:"prefix"`
	Exclude []string `toml:"exclude"`
}

// Model selects and parameterizes the classifier.
type Model struct {
	Kind     string  `toml:"kind"`
	C        float64 `toml:"c"`
	MaxIter  int     `toml:"max_iter"`
	Solver   string  `toml:"solver"`
	MaxDepth int     `toml:"max_depth"`
	Trees    int     `toml:"trees"`
	K        int     `toml:"k"`
	Seed     int64   `toml:"seed"`
}

// Selection configures forward selection.
type Selection struct {
	Criterion string `toml:"criterion"`
	Workers   int    `toml:"workers"`
}

// Validation configures k-fold cross-validation.
type Validation struct {
	Folds   int   `toml:"folds"`
	Seed    int64 `toml:"seed"`
	Shuffle bool  `toml:"shuffle"`
}

// Plot is one rate-by-group chart.
type Plot struct {
	Column  string            `toml:"column"`
	Label   string            `toml:"label"`
	Mapping map[string]string `toml:"mapping"`
}

// Config is a full experiment.
type Config struct {
	Data        string        `toml:"data"`
	Target      string        `toml:"target"`
	Numeric     []string      `toml:"numeric"`
	Impute      string        `toml:"impute"`
	Standardize bool          `toml:"standardize"`
	Qualitative []Qualitative `toml:"qualitative"`
	Model       Model         `toml:"model"`
	Selection   Selection     `toml:"selection"`
	Validation  Validation    `toml:"validation"`
	Plots       []Plot        `toml:"plots"`
	PlotDir     string        `toml:"plot_dir"`
	GridCols    int           `toml:"grid_cols"`
}

// Default returns the settings used for anything a file leaves out.
func Default() Config {
	return Config{
		Impute: dataprep.ImputeMean,
		Model: Model{
			Kind:    KindLogistic,
			C:       1.0,
			MaxIter: 100,
			Solver:  model.SolverNewton,
			Trees:   100,
			K:       5,
			Seed:    1,
		},
		Selection:  Selection{Criterion: "Deviance", Workers: 1},
		Validation: Validation{Folds: 10, Seed: 1, Shuffle: true},
		PlotDir:    "plots",
		GridCols:   2,
	}
}

// Load decodes path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "config: decode %s", path)
	}
	return finish(cfg, meta)
}

// Decode parses TOML text over Default and validates the result.
func Decode(text string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "config: decode")
	}
	return finish(cfg, meta)
}

// finish rejects keys that match no field, then validates.
func finish(cfg Config, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks required fields and enumerations.
func (c Config) Validate() error {
	if c.Data == "" {
		return errors.New("config: data is required")
	}
	if c.Target == "" {
		return errors.New("config: target is required")
	}
	if _, err := c.Criterion(); err != nil {
		return err
	}
	switch c.Model.Kind {
	case KindLogistic, KindTree, KindForest, KindKNN:
	default:
		return errors.Errorf("config: unknown model kind %q", c.Model.Kind)
	}
	switch c.Impute {
	case dataprep.ImputeMean, dataprep.ImputeMedian, dataprep.ImputeZero:
	default:
		return errors.Errorf("config: unknown impute strategy %q", c.Impute)
	}
	if c.Validation.Folds < 2 {
		return errors.Errorf("config: validation.folds must be >= 2, got %d", c.Validation.Folds)
	}
	for i, q := range c.Qualitative {
		if q.Column == "" {
			return errors.Errorf("config: qualitative[%d] has no column", i)
		}
	}
	for i, p := range c.Plots {
		if p.Column == "" {
			return errors.Errorf("config: plots[%d] has no column", i)
		}
	}
	return nil
}

// Criterion parses the selection criterion.
func (c Config) Criterion() (selection.Criterion, error) {
	return selection.ParseCriterion(c.Selection.Criterion)
}

// Factory builds classifiers as configured.
func (c Config) Factory() model.Factory {
	m := c.Model
	switch m.Kind {
	case KindTree:
		return func() model.Classifier {
			return model.NewDecisionTreeClassifier(model.WithMaxDepth(m.MaxDepth), model.WithRandomState(m.Seed))
		}
	case KindForest:
		return func() model.Classifier {
			return model.NewRandomForest(
				model.WithNEstimators(m.Trees),
				model.WithForestMaxDepth(m.MaxDepth),
				model.WithForestRandomState(m.Seed),
			)
		}
	case KindKNN:
		return func() model.Classifier { return model.NewKNN(m.K) }
	default:
		return func() model.Classifier {
			return model.NewLogisticRegression(model.WithC(m.C), model.WithMaxIter(m.MaxIter), model.WithSolver(m.Solver))
		}
	}
}

// PrefixOrColumn is the encoded column prefix, the column name when unset.
func (q Qualitative) PrefixOrColumn() string {
	if q.Prefix != "" {
		return q.Prefix
	}
	return q.Column
}
