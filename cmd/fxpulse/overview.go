package main

import (
	"context"
	"fmt"

	"github.com/nvoss/fxpulse/internal/analysis"
	"github.com/nvoss/fxpulse/internal/logger"
	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview [PAIR...]",
	Short: "Print current rates for the configured or given pairs",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug, "")
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	source, err := buildSource(cfg)
	if err != nil {
		return fmt.Errorf("creating market data source: %w", err)
	}

	pairs := cfg.Monitor.Pairs
	if len(args) > 0 {
		pairs = args
	}

	overview := analysis.New(source, log).Overview(context.Background(), pairs)

	fmt.Println("Market overview")
	for _, line := range overview {
		if line.Err != nil {
			fmt.Printf("  %-8s unavailable (%v)\n", line.Pair, line.Err)
			continue
		}
		fmt.Printf("  %-8s %.5f (bid %.5f / ask %.5f)\n",
			line.Pair, line.Quote.Price, line.Quote.Bid, line.Quote.Ask)
	}

	return nil
}
