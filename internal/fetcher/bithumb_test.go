package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestClient(baseURL string) *Bithumb {
	return NewBithumb(BithumbOptions{
		BaseURL:       baseURL,
		QuoteCurrency: "KRW",
		Timeout:       time.Second,
		UserAgent:     "test",
	}, noopLogger())
}

func TestListMarketsFiltersQuoteCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/market/all" {
			t.Fatalf("路径不正确: %s", r.URL.Path)
		}
		if r.URL.Query().Get("isDetails") != "false" {
			t.Fatalf("isDetails 参数缺失: %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"market": "KRW-BTC"},
			{"market": "BTC-ETH"},
			{"market": "KRW-XRP"},
			{"market": "USDT-TRX"},
		})
	}))
	defer srv.Close()

	markets, err := newTestClient(srv.URL).ListMarkets(context.Background())
	if err != nil {
		t.Fatalf("ListMarkets 应成功: %v", err)
	}
	if len(markets) != 2 || markets[0] != "KRW-BTC" || markets[1] != "KRW-XRP" {
		t.Fatalf("过滤结果不正确: %#v", markets)
	}
}

func TestListMarketsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"name": 429, "message": "too many requests"}})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).ListMarkets(context.Background()); err == nil {
		t.Fatal("HTTP 429 应返回错误")
	}
}

func TestListMarketsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).ListMarkets(context.Background()); err == nil {
		t.Fatal("坏响应体应返回错误")
	}
}

func TestFetchCandlesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candles/minutes/1" {
			t.Fatalf("路径不正确: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("market") != "KRW-BTC" || q.Get("count") != "60" {
			t.Fatalf("查询参数不正确: %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"market": "KRW-BTC", "candle_date_time_utc": "2024-05-01T12:01:00", "trade_price": 68250000},
			{"market": "KRW-BTC", "candle_date_time_utc": "2024-05-01T12:00:00", "trade_price": 68200000.5},
		})
	}))
	defer srv.Close()

	candles, err := newTestClient(srv.URL).FetchCandles(context.Background(), "KRW-BTC", 60)
	if err != nil {
		t.Fatalf("FetchCandles 应成功: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("期望 2 根 K 线, 实际 %d", len(candles))
	}
	if candles[0].TradePrice.String() != "68250000" {
		t.Fatalf("最新价不正确: %s", candles[0].TradePrice)
	}
	if candles[1].TradePrice.String() != "68200000.5" {
		t.Fatalf("第二根价不正确: %s", candles[1].TradePrice)
	}
}

func TestFetchCandlesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchCandles(context.Background(), "KRW-NONE", 60); err == nil {
		t.Fatal("HTTP 404 应返回错误")
	}
}
