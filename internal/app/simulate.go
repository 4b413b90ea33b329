package app

import (
	"context"

	"github.com/shopspring/decimal"

	"momentum-scout/internal/cooldown"
	"momentum-scout/internal/momentum"
	"momentum-scout/internal/service"
)

// SimulateOptions describe the fabricated candidate for a dry-run alert.
type SimulateOptions struct {
	Market     string
	Price      float64
	Change15   float64
	Change60   float64
	Overheated bool
}

// SimulateAlert 用虚构的候选走一遍真实告警链路，验证通道配置。
// The cooldown state on disk is untouched; the pass runs against an
// in-memory store.
func (a *App) SimulateAlert(ctx context.Context, opts SimulateOptions) error {
	chg15 := decimal.NullDecimal{Decimal: decimal.NewFromFloat(opts.Change15), Valid: true}
	chg60 := decimal.NullDecimal{Decimal: decimal.NewFromFloat(opts.Change60), Valid: true}

	candidate := momentum.Candidate{
		Market:     opts.Market,
		Price:      decimal.NewFromFloat(opts.Price),
		Change15:   chg15,
		Change60:   chg60,
		Score:      momentum.Score(chg15, chg60),
		Overheated: opts.Overheated,
	}

	svc := service.New(
		staticScanner{candidate: candidate},
		cooldown.NewGate(0),
		cooldown.NewMemoryStore(),
		a.newNotifier(),
		nil,
		a.Logger,
	)
	return svc.RunOnce(ctx)
}

type staticScanner struct {
	candidate momentum.Candidate
}

func (s staticScanner) Scan(ctx context.Context) (*momentum.Candidate, error) {
	c := s.candidate
	return &c, nil
}

var _ service.Scanner = staticScanner{}
