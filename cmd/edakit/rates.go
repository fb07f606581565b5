package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"edakit/pkg/config"
	"edakit/pkg/pipeline"
	"edakit/pkg/report"
	"edakit/pkg/stats"
)

var ratesCmd = &cobra.Command{
	Use:   "rates [column...]",
	Short: "Print target rates by group and draw the configured rate charts",
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().Bool("no-plots", false, "only print tables")
}

func runRates(cmd *cobra.Command, args []string) error {
	cfg, ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}
	columns := args
	if len(columns) == 0 {
		for _, p := range cfg.Plots {
			columns = append(columns, p.Column)
		}
	}

	target := make([]float64, len(ds.Y))
	for i, v := range ds.Y {
		target[i] = float64(v)
	}
	color.New(color.Bold).Printf("overall rate %.4f\n", stats.OverallRate(target))
	for _, col := range columns {
		groups, err := ds.Table.Floats(col)
		if err != nil {
			return err
		}
		rates, err := stats.GroupRates(groups, target)
		if err != nil {
			return err
		}
		if err := report.PrintRates(os.Stdout, col, rates); err != nil {
			return err
		}
	}

	if skip, _ := cmd.Flags().GetBool("no-plots"); skip {
		return nil
	}
	return drawPlots(cfg, ds)
}

func drawPlots(cfg config.Config, ds *pipeline.Dataset) error {
	paths, err := pipeline.Plot(cfg, ds)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Printf("wrote %s", p)
	}
	return nil
}
