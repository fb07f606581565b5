package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"edakit/pkg/config"
	"edakit/pkg/model"
	"edakit/pkg/selection"
)

const full = `
data = "train.csv"
target = "death"
numeric = ["age"]

[[qualitative]]
column = "race"
prefix = "r"
exclude = ["9"]

[[qualitative]]
column = "sex"

[model]
kind = "tree"
max_depth = 3

[selection]
criterion = "rate"
workers = 4

[validation]
folds = 5

[[plots]]
column = "sex"
[plots.mapping]
"1" = "male"
"2" = "female"
`

func TestDecodeOverDefaults(t *testing.T) {
	cfg, err := config.Decode(full)
	require.NoError(t, err)
	require.Equal(t, "train.csv", cfg.Data)
	require.Equal(t, []string{"age"}, cfg.Numeric)
	require.Len(t, cfg.Qualitative, 2)
	require.Equal(t, "r", cfg.Qualitative[0].PrefixOrColumn())
	require.Equal(t, "sex", cfg.Qualitative[1].PrefixOrColumn())
	require.Equal(t, []string{"9"}, cfg.Qualitative[0].Exclude)
	require.Equal(t, 5, cfg.Validation.Folds)
	require.True(t, cfg.Validation.Shuffle)
	require.Equal(t, "mean", cfg.Impute)
	require.Equal(t, map[string]string{"1": "male", "2": "female"}, cfg.Plots[0].Mapping)

	c, err := cfg.Criterion()
	require.NoError(t, err)
	require.Equal(t, selection.Rate, c)

	tree, ok := cfg.Factory()().(*model.DecisionTreeClassifier)
	require.True(t, ok)
	require.Equal(t, 3, tree.MaxDepth)
}

func TestFactoryKinds(t *testing.T) {
	cfg := config.Default()
	_, ok := cfg.Factory()().(*model.LogisticRegression)
	require.True(t, ok)

	cfg.Model.Kind = config.KindForest
	_, ok = cfg.Factory()().(*model.RandomForest)
	require.True(t, ok)

	cfg.Model.Kind = config.KindKNN
	knn, ok := cfg.Factory()().(*model.KNN)
	require.True(t, ok)
	require.Equal(t, 5, knn.K)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"missing data":   `target = "y"`,
		"missing target": `data = "a.csv"`,
		"bad criterion":  "data = \"a\"\ntarget = \"y\"\n[selection]\ncriterion = \"aic\"",
		"bad kind":       "data = \"a\"\ntarget = \"y\"\n[model]\nkind = \"svm\"",
		"bad folds":      "data = \"a\"\ntarget = \"y\"\n[validation]\nfolds = 1",
		"bad impute":     "data = \"a\"\ntarget = \"y\"\nimpute = \"knn\"",
		"no column":      "data = \"a\"\ntarget = \"y\"\n[[qualitative]]\nprefix = \"p\"",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Decode(text)
			require.Error(t, err)
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte(full), 0o644))
	_, err := config.Load(good)
	require.NoError(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("colour = \"red\"\n"+full), 0o644))
	_, err = config.Load(bad)
	require.ErrorContains(t, err, "colour")
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := config.Decode("colour = \"red\"\n" + full)
	require.ErrorContains(t, err, "colour")

	_, err = config.Decode("data = \"a\"\ntarget = \"y\"\n[model]\ndepth = 3")
	require.ErrorContains(t, err, "model.depth")
}
