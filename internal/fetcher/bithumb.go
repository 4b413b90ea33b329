package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	marketAllPath     = "/market/all"
	minuteCandlesPath = "/candles/minutes/1"
)

// BithumbOptions parameterise the public market-data client.
type BithumbOptions struct {
	BaseURL       string
	QuoteCurrency string
	Timeout       time.Duration
	UserAgent     string
}

// Bithumb fetches market listings and minute candles from the public REST API.
type Bithumb struct {
	opts    BithumbOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
	prefix  string
}

// NewBithumb constructs a market-data client.
func NewBithumb(opts BithumbOptions, logger zerolog.Logger) *Bithumb {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.bithumb.com/v1"
	}

	if opts.QuoteCurrency == "" {
		opts.QuoteCurrency = "KRW"
	}

	return &Bithumb{
		opts:    opts,
		logger:  logger.With().Str("component", "bithumb_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		prefix:  opts.QuoteCurrency + "-",
	}
}

// ListMarkets returns market identifiers quoted in the configured currency.
func (b *Bithumb) ListMarkets(ctx context.Context) ([]string, error) {
	query := url.Values{"isDetails": {"false"}}
	payload, err := b.get(ctx, marketAllPath, query)
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Market string `json:"market"`
	}
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode market list: %w", err)
	}

	markets := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Market, b.prefix) {
			markets = append(markets, entry.Market)
		}
	}

	b.logger.Debug().Int("markets", len(markets)).Str("quote", b.opts.QuoteCurrency).Msg("market list fetched")
	return markets, nil
}

// FetchCandles returns up to count most-recent minute candles, newest-first.
func (b *Bithumb) FetchCandles(ctx context.Context, market string, count int) ([]Candle, error) {
	query := url.Values{
		"market": {market},
		"count":  {strconv.Itoa(count)},
	}
	payload, err := b.get(ctx, minuteCandlesPath, query)
	if err != nil {
		return nil, err
	}

	var candles []Candle
	if err := json.Unmarshal(payload, &candles); err != nil {
		return nil, fmt.Errorf("decode candles for %s: %w", market, err)
	}

	return candles, nil
}

func (b *Bithumb) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := b.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(b.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(path, resp.StatusCode, payload)
	}

	return payload, nil
}

type errorResponse struct {
	Error struct {
		Name    json.Number `json:"name"`
		Message string      `json:"message"`
	} `json:"error"`
}

func parseHTTPError(path string, status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("bithumb api error (%d) on %s: %s", status, path, apiErr.Error.Message)
	}
	if len(payload) > 0 {
		return fmt.Errorf("bithumb api error (%d) on %s: %s", status, path, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("bithumb api error (%d) on %s", status, path)
}

var _ MarketLister = (*Bithumb)(nil)
var _ CandleFetcher = (*Bithumb)(nil)
