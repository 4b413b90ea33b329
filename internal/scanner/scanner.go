package scanner

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"momentum-scout/internal/fetcher"
	"momentum-scout/internal/momentum"
)

// Result is the per-market outcome of a scan pass: either a ranked candidate
// or a skip reason. Skips never abort the scan.
type Result struct {
	Market     string
	Candidate  *momentum.Candidate
	SkipReason string
}

// Options tune the scan pass.
type Options struct {
	CandleCount int
	Throttle    time.Duration
}

// Scanner walks every tradable market once and keeps the best-scoring
// candidate.
type Scanner struct {
	markets fetcher.MarketLister
	candles fetcher.CandleFetcher
	opts    Options
	logger  zerolog.Logger
}

// New constructs a Scanner.
func New(markets fetcher.MarketLister, candles fetcher.CandleFetcher, opts Options, logger zerolog.Logger) *Scanner {
	if opts.CandleCount < momentum.MinSamples {
		opts.CandleCount = momentum.MinSamples
	}
	return &Scanner{
		markets: markets,
		candles: candles,
		opts:    opts,
		logger:  logger.With().Str("component", "scanner").Logger(),
	}
}

// Scan returns the single best candidate, or nil when every market was
// skipped or the listing was empty. A listing failure is fatal to the run;
// per-market failures only remove that market from consideration.
func (s *Scanner) Scan(ctx context.Context) (*momentum.Candidate, error) {
	markets, err := s.markets.ListMarkets(ctx)
	if err != nil {
		return nil, err
	}

	var best *momentum.Candidate
	ranked, skipped := 0, 0

	for i, market := range markets {
		if i > 0 && s.opts.Throttle > 0 {
			if err := sleepCtx(ctx, s.opts.Throttle); err != nil {
				return nil, err
			}
		}

		res := s.evaluate(ctx, market)
		if res.Candidate == nil {
			skipped++
			s.logger.Debug().Str("market", market).Str("reason", res.SkipReason).Msg("market skipped")
			continue
		}

		ranked++
		// Strictly greater keeps the first-seen candidate on ties.
		if best == nil || res.Candidate.Score.GreaterThan(best.Score) {
			best = res.Candidate
		}
	}

	s.logger.Info().
		Int("markets", len(markets)).
		Int("ranked", ranked).
		Int("skipped", skipped).
		Msg("scan pass complete")

	return best, nil
}

func (s *Scanner) evaluate(ctx context.Context, market string) Result {
	candles, err := s.candles.FetchCandles(ctx, market, s.opts.CandleCount)
	if err != nil {
		s.logger.Warn().Err(err).Str("market", market).Msg("candle fetch failed")
		return Result{Market: market, SkipReason: "fetch failed"}
	}

	closes := make([]decimal.Decimal, 0, len(candles))
	for _, candle := range candles {
		closes = append(closes, candle.TradePrice)
	}

	candidate, ok := momentum.Evaluate(market, closes)
	if !ok {
		return Result{Market: market, SkipReason: "insufficient samples"}
	}

	return Result{Market: market, Candidate: &candidate}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
