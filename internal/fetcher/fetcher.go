package fetcher

import (
	"context"

	"github.com/shopspring/decimal"
)

// Candle is a single minute-interval price sample. The upstream feed returns
// candles ordered newest-first; only the trade (closing) price is consumed
// downstream.
type Candle struct {
	Market      string          `json:"market"`
	DateTimeUTC string          `json:"candle_date_time_utc"`
	TradePrice  decimal.Decimal `json:"trade_price"`
}

// MarketLister retrieves the tradable market identifiers for the configured
// quote currency.
type MarketLister interface {
	ListMarkets(ctx context.Context) ([]string, error)
}

// CandleFetcher retrieves recent minute candles for a single market,
// newest-first.
type CandleFetcher interface {
	FetchCandles(ctx context.Context, market string, count int) ([]Candle, error)
}
