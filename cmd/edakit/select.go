package main

import (
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"edakit/pkg/config"
	"edakit/pkg/pipeline"
	"edakit/pkg/report"
	"edakit/pkg/selection"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Run greedy forward feature selection",
	Args:  cobra.NoArgs,
	RunE:  runSelect,
}

func init() {
	addSelectFlags(selectCmd)
}

func addSelectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "save the selection result to this file")
	cmd.Flags().String("criterion", "", "override the selection criterion (Deviance|Rate)")
	cmd.Flags().Int("workers", 0, "override the number of concurrent fits")
}

// applySelectFlags copies the set overrides of cmd into cfg.
func applySelectFlags(cmd *cobra.Command, cfg *config.Config) {
	if c, _ := cmd.Flags().GetString("criterion"); c != "" {
		cfg.Selection.Criterion = c
	}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		cfg.Selection.Workers = n
	}
}

// newSelectionBar counts candidate fits: a search over w columns makes
// w + (w-1) + ... + 1 of them.
func newSelectionBar(w int) *pb.ProgressBar {
	return pb.New(w * (w + 1) / 2).SetWriter(os.Stderr)
}

// observe advances bar by the fits of each round and finishes it after the
// last round, which always has a single candidate.
func observe(bar *pb.ProgressBar) func(selection.Step) {
	return func(s selection.Step) {
		bar.Add(s.Candidates)
		if s.Candidates == 1 {
			bar.Finish()
		}
	}
}

func stopBar(bar *pb.ProgressBar) {
	if bar.IsStarted() {
		bar.Finish()
	}
}

func runSelect(cmd *cobra.Command, _ []string) error {
	cfg, ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}
	applySelectFlags(cmd, &cfg)
	c, err := cfg.Criterion()
	if err != nil {
		return err
	}

	bar := newSelectionBar(ds.X.Width())
	bar.Start()
	res, err := pipeline.Select(cmd.Context(), cfg, ds, observe(bar))
	stopBar(bar)
	if err != nil {
		return err
	}
	if err := report.PrintSelection(os.Stdout, c, res); err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := report.SaveSelection(out, res); err != nil {
			return err
		}
		color.Green("saved selection to %s", out)
	}
	return nil
}
