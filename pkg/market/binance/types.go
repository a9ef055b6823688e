package binance

// Kline is a single candlestick as returned by the futures klines endpoint.
type Kline struct {
	OpenTime            int64   // 0: Open time (ms)
	Open                string  // 1: Open price
	High                string  // 2: High price
	Low                 string  // 3: Low price
	Close               string  // 4: Close price
	Volume              string  // 5: Base asset volume
	CloseTime           int64   // 6: Close time (ms)
	QuoteVolume         string  // 7: Quote asset volume
	NumberOfTrades      int     // 8: Number of trades
	TakerBuyBaseVolume  string  // 9: Taker buy base asset volume
	TakerBuyQuoteVolume string  // 10: Taker buy quote asset volume
	// Field 11 is unused/ignore
}
