package risk

import (
	"github.com/shopspring/decimal"

	"quant-core/internal/strategy"
)

// TradePnL is the realized profit of closing amount units at exit, net of
// taker fees on both sides.
func TradePnL(entry, exit, amount decimal.Decimal, position strategy.Signal) decimal.Decimal {
	rawDiff := exit.Sub(entry)
	if position == strategy.Sell {
		rawDiff = entry.Sub(exit)
	}
	profit := rawDiff.Mul(amount)
	fees := entry.Mul(amount).Mul(FeeRate).Add(exit.Mul(amount).Mul(FeeRate))
	return profit.Sub(fees)
}
