package risk

import "github.com/shopspring/decimal"

// Position sizing: risk a fixed fraction of the balance per trade, derived
// from the stop distance, instead of deploying the full margin.
var (
	riskFraction = decimal.RequireFromString("0.02")
	minNotional  = decimal.NewFromInt(10)
)

// PositionSize returns the quantity to buy so that hitting the stop loses
// about riskFraction of the balance. The notional is capped at the maximum
// the leverage allows and floored at the exchange minimum.
func PositionSize(balance, price, leverage, stopLossPct decimal.Decimal) decimal.Decimal {
	if price.IsZero() || stopLossPct.IsZero() {
		return decimal.Zero
	}

	stopDistance := price.Mul(stopLossPct).Div(hundred)
	qty := balance.Mul(riskFraction).Div(stopDistance)

	maxQty := balance.Mul(leverage).Div(price)
	if qty.GreaterThan(maxQty) {
		qty = maxQty
	}

	if qty.Mul(price).LessThan(minNotional) {
		qty = minNotional.Div(price)
	}
	return qty
}
