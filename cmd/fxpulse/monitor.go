package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/collector/alphavantage"
	"github.com/nvoss/fxpulse/internal/collector/staticsrc"
	"github.com/nvoss/fxpulse/internal/config"
	"github.com/nvoss/fxpulse/internal/core"
	"github.com/nvoss/fxpulse/internal/logger"
	"github.com/nvoss/fxpulse/internal/monitor"
	"github.com/nvoss/fxpulse/internal/notifier"
	"github.com/nvoss/fxpulse/internal/notifier/webhook"
	"github.com/nvoss/fxpulse/internal/router"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Start the continuous rate monitoring loop",
	RunE:  runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
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

	mCfg := monitorConfig(cfg)
	if err := mCfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	portfolio := monitor.NewPortfolio(cfg.Portfolio.InitialAmount, cfg.Portfolio.InitialCurrency)

	mon := monitor.New(mCfg, source, portfolio, log)

	if r := buildRouter(cfg, log); r != nil {
		mon.SetRouter(r)
	}

	// Metrics endpoint
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, mon.Metrics().Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			log.Info("metrics endpoint listening",
				zap.String("addr", cfg.Metrics.Addr),
				zap.String("path", cfg.Metrics.Path),
			)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- mon.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("shutdown signal received")
		mon.Stop()
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	if metricsSrv != nil {
		metricsSrv.Close()
	}

	printSummary(mon.Summary(context.Background()))
	return nil
}

// loadConfig reads the config file named by --config, falling back to
// defaults, and validates the result.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		cfg.Collector.Provider = "static"
		log.Warn("no config file specified, using defaults with static rates")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// buildSource creates the configured market data source. The static provider
// serves deterministic generated rates for the configured pairs, which is
// useful for demos and local runs without an API key.
func buildSource(cfg *config.Config) (collector.Source, error) {
	switch cfg.Collector.Provider {
	case "alphavantage":
		return alphavantage.New(alphavantage.Config{
			APIKey:         cfg.Collector.APIKey,
			BaseURL:        cfg.Collector.BaseURL,
			Timeout:        cfg.Collector.Timeout,
			RequestsPerMin: cfg.Collector.RequestsPerMin,
		})
	case "static":
		src := staticsrc.New()
		base := 0.75
		for _, pair := range cfg.Monitor.Pairs {
			from, to, ok := core.SplitPair(pair)
			if !ok {
				continue
			}
			src.SetRate(from, to, base)
			src.SetSeries(from, to, staticsrc.GenerateSeries(base, 120))
			base += 0.1
		}
		return src, nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown collector provider %q", cfg.Collector.Provider))
	}
}

// buildRouter wires enabled notifiers into a recommendation router, or
// returns nil when none are configured.
func buildRouter(cfg *config.Config, log *zap.Logger) *router.Router {
	registry := notifier.NewRegistry()
	registered := 0

	for name, nc := range cfg.Notifiers {
		if !nc.Enabled {
			continue
		}
		if nc.URL == "" {
			log.Warn("skipping notifier without url", zap.String("name", name))
			continue
		}
		if err := registry.Register(webhook.New(nc.URL, nc.Headers)); err != nil {
			log.Warn("registering notifier failed", zap.String("name", name), zap.Error(err))
			continue
		}
		registered++
	}

	if registered == 0 {
		return nil
	}

	return router.New(router.Config{
		MinConfidence:    cfg.Router.MinConfidence,
		CooldownDuration: cfg.Router.Cooldown,
	}, registry, log)
}

func monitorConfig(cfg *config.Config) monitor.Config {
	return monitor.Config{
		Interval:           cfg.Monitor.Interval,
		ChangeThresholdPct: cfg.Monitor.ChangeThresholdPct,
		Pairs:              cfg.Monitor.Pairs,
		MaxRiskPerTradePct: cfg.Monitor.MaxRiskPerTradePct,
		StopLossPct:        cfg.Monitor.StopLossPct,
		TakeProfitPct:      cfg.Monitor.TakeProfitPct,
		BaseCurrency:       cfg.Monitor.BaseCurrency,
		FetchDelay:         cfg.Monitor.FetchDelay,
		HistoryCapacity:    cfg.Monitor.HistoryCapacity,
	}
}

func printSummary(s monitor.Summary) {
	fmt.Println("\nPortfolio summary")
	fmt.Printf("  Initial investment: %.2f %s\n", s.InitialInvestment, s.InitialCurrency)
	fmt.Printf("  Total value:        %.2f %s\n", s.TotalValue, s.InitialCurrency)
	fmt.Printf("  Profit/loss:        %+.2f (%+.2f%%)\n", s.ProfitLoss, s.ProfitLossPct)
	fmt.Printf("  Transactions:       %d\n", s.TotalTransactions)
	fmt.Println("  Holdings:")
	for currency, amount := range s.Holdings {
		fmt.Printf("    %s: %.4f\n", currency, amount)
	}
}
