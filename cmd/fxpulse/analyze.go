package main

import (
	"context"
	"fmt"

	"github.com/nvoss/fxpulse/internal/analysis"
	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/core"
	"github.com/nvoss/fxpulse/internal/logger"
	"github.com/spf13/cobra"
)

var analyzeDaily bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze PAIR",
	Short: "Run a one-shot technical analysis for a currency pair",
	Long: `Fetches the current quote and historical series for a pair such as
USD/EUR, computes technical indicators, and prints the resulting trading
signal.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDaily, "daily", true, "use daily candles (intraday otherwise)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug, "")
	defer log.Sync()

	from, to, ok := core.SplitPair(args[0])
	if !ok {
		return core.WrapError(core.ErrInvalidPair, fmt.Errorf("expected BASE/QUOTE, got %q", args[0]))
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	source, err := buildSource(cfg)
	if err != nil {
		return fmt.Errorf("creating market data source: %w", err)
	}

	interval := collector.IntervalDaily
	if !analyzeDaily {
		interval = collector.IntervalIntraday
	}

	res, err := analysis.New(source, log).AnalyzePair(context.Background(), from, to, interval)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", args[0], err)
	}

	printAnalysis(res)
	return nil
}

func printAnalysis(res *analysis.PairAnalysis) {
	fmt.Printf("%s @ %.5f (bid %.5f / ask %.5f)\n\n",
		res.Quote.Pair, res.Quote.Price, res.Quote.Bid, res.Quote.Ask)

	ind := res.Indicators
	fmt.Println("Indicators")
	fmt.Printf("  RSI(14):     %.2f\n", ind.RSI)
	fmt.Printf("  MACD:        %.5f (signal %.5f, hist %.5f)\n",
		ind.MACD.Line, ind.MACD.Signal, ind.MACD.Histogram)
	fmt.Printf("  Bollinger:   %.5f / %.5f / %.5f\n",
		ind.Bollinger.Lower, ind.Bollinger.Middle, ind.Bollinger.Upper)
	fmt.Printf("  SMA 20/50:   %.5f / %.5f\n", ind.MovingAverages.SMA20, ind.MovingAverages.SMA50)
	fmt.Printf("  EMA 12/26:   %.5f / %.5f\n", ind.MovingAverages.EMA12, ind.MovingAverages.EMA26)
	fmt.Printf("  Stochastic:  %%K %.2f / %%D %.2f\n", ind.Stochastic.K, ind.Stochastic.D)

	sig := res.Signal
	fmt.Println("\nSignal")
	fmt.Printf("  Type:        %s\n", sig.Type)
	fmt.Printf("  Strength:    %.2f\n", sig.Strength)
	fmt.Printf("  Confidence:  %.2f\n", sig.Confidence)
	fmt.Printf("  Entry:       %.5f\n", sig.EntryPrice)
	if sig.StopLoss != nil {
		fmt.Printf("  Stop loss:   %.5f\n", *sig.StopLoss)
	}
	if sig.TakeProfit != nil {
		fmt.Printf("  Take profit: %.5f\n", *sig.TakeProfit)
	}
	if reasoning := sig.Reasoning(); reasoning != "" {
		fmt.Printf("  Reasoning:   %s\n", reasoning)
	}
}
