package main

// Runs an offline backtest against the synthetic candle source and prints
// the report. No database, no network.
//
//	go run ./scripts/backtest_demo

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quant-core/internal/backtest"
	"quant-core/internal/market"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	interval := "4h"
	if len(os.Args) > 1 {
		interval = os.Args[1]
	}

	sim := backtest.NewSimulator(market.NewMockSource(), nil, logger)
	result, err := sim.Run(context.Background(), backtest.Params{
		Symbol:       "BTCUSDT",
		Interval:     interval,
		StartBalance: decimal.NewFromInt(10000),
		Leverage:     decimal.NewFromInt(10),
	})
	if err != nil {
		log.Fatalf("backtest failed: %v", err)
	}

	fmt.Println(result.Report)
	fmt.Printf("Run %s | Final: %s | PnL: %s | MDD: %s%% | W/L: %d/%d\n",
		result.RunID,
		result.FinalBalance.StringFixed(2),
		result.TotalPnL.StringFixed(2),
		result.MaxDrawdown.StringFixed(2),
		result.WinCount, result.LossCount,
	)
}
