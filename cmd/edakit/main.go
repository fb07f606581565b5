package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"edakit/pkg/config"
	"edakit/pkg/pipeline"
)

var logger = log.New(os.Stderr, "edakit: ", 0)

var rootCmd = &cobra.Command{
	Use:           "edakit",
	Short:         "Exploratory analysis and feature selection for binary targets",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(encodeCmd)

	rootCmd.PersistentFlags().StringP("config", "c", "edakit.toml", "experiment config file")
	rootCmd.PersistentFlags().String("data", "", "override the CSV path of the config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

// loadConfig reads the --config file and applies --data.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.Data = data
	}
	return cfg, nil
}

func loadDataset(cmd *cobra.Command) (config.Config, *pipeline.Dataset, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, err
	}
	ds, err := pipeline.Load(cfg)
	if err != nil {
		return cfg, nil, err
	}
	logger.Printf("%s: %d rows, %d features", cfg.Data, ds.X.Len(), ds.X.Width())
	return cfg, ds, nil
}
