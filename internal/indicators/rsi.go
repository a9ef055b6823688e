package indicators

import "quant-core/internal/market"

// RSI computes the Wilder-smoothed relative strength index over the whole
// window, seeded from the first period changes. Returns 50 when the window
// is too short and 100 when there are no losses.
func RSI(candles []market.Candle, period int) float64 {
	if len(candles) < period+1 {
		return 50
	}

	var up, down float64
	for i := 1; i <= period; i++ {
		diff := candles[i].CloseF() - candles[i-1].CloseF()
		if diff > 0 {
			up += diff
		} else {
			down -= diff
		}
	}
	au := up / float64(period)
	ad := down / float64(period)

	for i := period + 1; i < len(candles); i++ {
		diff := candles[i].CloseF() - candles[i-1].CloseF()
		if diff > 0 {
			au = (au*float64(period-1) + diff) / float64(period)
			ad = (ad * float64(period-1)) / float64(period)
		} else {
			au = (au * float64(period-1)) / float64(period)
			ad = (ad*float64(period-1) - diff) / float64(period)
		}
	}

	if ad == 0 {
		return 100
	}
	rs := au / ad
	return 100 - (100 / (1 + rs))
}

// RSISeries returns one RSI value per candle index starting at period,
// so the result has len(candles)-period entries. Used by the divergence
// generator which compares RSI extremes across two windows.
func RSISeries(candles []market.Candle, period int) []float64 {
	if len(candles) < period+1 {
		return nil
	}

	series := make([]float64, 0, len(candles)-period)
	var up, down float64
	for i := 1; i <= period; i++ {
		diff := candles[i].CloseF() - candles[i-1].CloseF()
		if diff > 0 {
			up += diff
		} else {
			down -= diff
		}
	}
	au := up / float64(period)
	ad := down / float64(period)
	series = append(series, rsiValue(au, ad))

	for i := period + 1; i < len(candles); i++ {
		diff := candles[i].CloseF() - candles[i-1].CloseF()
		if diff > 0 {
			au = (au*float64(period-1) + diff) / float64(period)
			ad = (ad * float64(period-1)) / float64(period)
		} else {
			au = (au * float64(period-1)) / float64(period)
			ad = (ad*float64(period-1) - diff) / float64(period)
		}
		series = append(series, rsiValue(au, ad))
	}
	return series
}

func rsiValue(au, ad float64) float64 {
	if ad == 0 {
		ad = 1
	}
	return 100 - (100 / (1 + au/ad))
}
