package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"quant-core/internal/api"
	"quant-core/internal/backtest"
	"quant-core/internal/data"
	"quant-core/internal/engine"
	"quant-core/internal/events"
	"quant-core/internal/market"
	"quant-core/internal/monitor"
	"quant-core/internal/pattern"
	"quant-core/internal/risk"
	"quant-core/internal/strategy"
	"quant-core/pkg/config"
	"quant-core/pkg/db"
	"quant-core/pkg/market/binance"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}
	log.Info("starting quant-core",
		zap.String("symbol", cfg.Symbol),
		zap.String("interval", cfg.Interval),
		zap.String("port", cfg.Port),
		zap.Bool("mock_source", cfg.UseMockSource),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if dir := filepath.Dir(cfg.DBPath); dir != "." && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal("create data dir failed", zap.Error(err))
		}
	}
	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer database.Close()
	if err := db.ApplyMigrations(database); err != nil {
		log.Fatal("db migrations failed", zap.Error(err))
	}
	queries := database.Queries()

	bus := events.NewBus()
	metrics := monitor.NewMetrics()
	monitor.New(bus, log).Start(ctx)

	var source market.Source
	if cfg.UseMockSource {
		source = market.NewMockSource()
		log.Info("using mock candle source")
	} else {
		source = binance.NewSource(cfg.BinanceTestnet)
		log.Info("using binance candle source", zap.Bool("testnet", cfg.BinanceTestnet))
	}

	eng := engine.New(engine.Config{
		Symbol:         cfg.Symbol,
		Interval:       cfg.Interval,
		Leverage:       cfg.Leverage,
		InitialBalance: cfg.InitialBalance,
		Source:         source,
		Ensemble:       strategy.NewEnsemble(log, cfg.DisabledGenerators),
		Risk:           risk.NewManager(),
		Bus:            bus,
		Queries:        queries,
		Metrics:        metrics,
		Log:            log,
	})
	go func() {
		if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("engine stopped", zap.Error(err))
		}
	}()

	sim := backtest.NewSimulator(source, queries, log)

	server, err := api.NewServer(bus, eng, sim, queries, metrics, api.SystemMeta{
		Symbol:        cfg.Symbol,
		Interval:      cfg.Interval,
		UseMockSource: cfg.UseMockSource,
		Version:       version(),
	}, cfg.JWTSecret, cfg.AdminUser, cfg.AdminPassword, log)
	if err != nil {
		log.Fatal("api server init failed", zap.Error(err))
	}
	if cfg.PatternCorpusPath != "" {
		corpus, err := data.LoadCandlesCSV(cfg.PatternCorpusPath)
		if err != nil {
			log.Fatal("pattern corpus load failed", zap.Error(err))
		}
		server.Matcher = pattern.NewMatcher(corpus, 0, 0)
		server.Source = source
		log.Info("pattern matcher ready",
			zap.String("corpus", cfg.PatternCorpusPath),
			zap.Int("points", server.Matcher.HistorySize()))
	}
	go func() {
		if err := server.Start(":" + cfg.Port); err != nil {
			log.Fatal("api server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
}

func version() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return "v1.0-dev"
}
