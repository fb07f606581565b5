package main

import (
	"os"

	"github.com/spf13/cobra"

	"edakit/pkg/data"
	"edakit/pkg/dataprep"
)

var encodeCmd = &cobra.Command{
	Use:   "encode column",
	Short: "One-hot encode a qualitative column and write the indicators as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringP("prefix", "p", "", "column name prefix (defaults to the column name)")
	encodeCmd.Flags().StringSliceP("exclude", "x", nil, "values that get no indicator column")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	t, err := data.OpenCSV(cfg.Data)
	if err != nil {
		return err
	}
	values, err := t.Strings(args[0])
	if err != nil {
		return err
	}
	prefix, _ := cmd.Flags().GetString("prefix")
	if prefix == "" {
		prefix = args[0]
	}
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	f, err := dataprep.EncodeQualitative(values, prefix, exclude...)
	if err != nil {
		return err
	}
	return data.WriteCSV(os.Stdout, f)
}
