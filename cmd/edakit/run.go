package main

import (
	"os"

	"github.com/spf13/cobra"

	"edakit/pkg/pipeline"
	"edakit/pkg/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plot rates, select features and cross-validate every selected subset",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringP("out", "o", "", "also save the selection result to this file")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}
	bar := newSelectionBar(ds.X.Width())
	bar.Start()
	res, _, err := pipeline.Run(cmd.Context(), cfg, ds, os.Stdout, observe(bar))
	stopBar(bar)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := report.SaveSelection(out, res); err != nil {
			return err
		}
		logger.Printf("saved selection to %s", out)
	}
	return nil
}
