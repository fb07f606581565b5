package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"edakit/pkg/pipeline"
	"edakit/pkg/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate [features...]",
	Short: "Cross-validate feature subsets",
	Long: `Cross-validate feature subsets with k-fold predictions and print
precision, recall and accuracy for each.

Subsets come from a saved selection (--subsets) or from the arguments,
each a comma-separated list of feature names.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringP("subsets", "s", "", "selection result file to read subsets from")
	validateCmd.Flags().Int("folds", 0, "override the number of folds")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}
	if k, _ := cmd.Flags().GetInt("folds"); k > 0 {
		cfg.Validation.Folds = k
	}

	var sets [][]string
	if path, _ := cmd.Flags().GetString("subsets"); path != "" {
		res, err := report.LoadSelection(path)
		if err != nil {
			return err
		}
		sets = res.Subsets
	}
	for _, a := range args {
		sets = append(sets, strings.Split(a, ","))
	}
	if len(sets) == 0 {
		return errors.New("validate: no subsets given")
	}

	sum, err := pipeline.Validate(cmd.Context(), cfg, ds, sets)
	if err != nil {
		return err
	}
	return report.PrintSummaries(os.Stdout, sum.Sets, sum.Precision, sum.Recall, sum.Accuracy)
}
