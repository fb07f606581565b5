package main

import (
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"edakit/pkg/config"
	"edakit/pkg/selection"
)

func TestSelectionBarCountsEveryFit(t *testing.T) {
	bar := newSelectionBar(4).SetWriter(io.Discard)
	require.EqualValues(t, 10, bar.Total())

	bar.Start()
	step := observe(bar)
	for round, n := 1, 4; n > 0; round, n = round+1, n-1 {
		step(selection.Step{Round: round, Candidates: n})
		if n > 1 {
			require.True(t, bar.IsStarted())
		}
	}
	require.EqualValues(t, 10, bar.Current())
	require.False(t, bar.IsStarted())
	stopBar(bar)
}

func TestSelectionBarWithoutColumns(t *testing.T) {
	bar := newSelectionBar(0).SetWriter(io.Discard)
	require.EqualValues(t, 0, bar.Total())
	bar.Start()
	stopBar(bar)
	require.False(t, bar.IsStarted())
}

func TestApplySelectFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "select"}
	addSelectFlags(cmd)

	cfg := config.Default()
	applySelectFlags(cmd, &cfg)
	require.Equal(t, "Deviance", cfg.Selection.Criterion)
	require.Equal(t, 1, cfg.Selection.Workers)

	require.NoError(t, cmd.Flags().Set("criterion", "Rate"))
	require.NoError(t, cmd.Flags().Set("workers", "3"))
	applySelectFlags(cmd, &cfg)
	require.Equal(t, "Rate", cfg.Selection.Criterion)
	require.Equal(t, 3, cfg.Selection.Workers)
}
