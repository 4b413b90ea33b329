package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"momentum-scout/internal/alerting"
	"momentum-scout/internal/cooldown"
	"momentum-scout/internal/momentum"
	"momentum-scout/internal/scheduler"
)

// Scanner yields the best candidate of one scan pass, or nil when nothing
// ranked.
type Scanner interface {
	Scan(ctx context.Context) (*momentum.Candidate, error)
}

// Service orchestrates one scan-gate-notify pass over the market data.
type Service struct {
	scanner   Scanner
	gate      cooldown.Gate
	store     cooldown.Store
	notifier  alerting.Notifier
	scheduler *scheduler.Scheduler
	logger    zerolog.Logger
}

// New constructs the alerting service. The scheduler may be nil for one-shot
// use.
func New(scan Scanner, gate cooldown.Gate, store cooldown.Store, notifier alerting.Notifier, sched *scheduler.Scheduler, logger zerolog.Logger) *Service {
	return &Service{
		scanner:   scan,
		gate:      gate,
		store:     store,
		notifier:  notifier,
		scheduler: sched,
		logger:    logger.With().Str("component", "service").Logger(),
	}
}

// Run drives RunOnce on the configured interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return s.scheduler.Run(ctx, func(ctx context.Context, _ time.Time) error {
		return s.RunOnce(ctx)
	})
}

// RunOnce executes a single pass: load the cooldown record, scan all markets,
// suppress a repeat of the recorded market inside the window, otherwise
// notify and overwrite the record. Only a listing failure or a failed state
// write aborts the pass; an undeliverable notification is logged and the
// record is still updated.
func (s *Service) RunOnce(ctx context.Context) error {
	rec, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cooldown state load failed; treating as empty")
		rec = nil
	}

	best, err := s.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan markets: %w", err)
	}

	if best == nil {
		s.logger.Info().Msg("no candidate selected")
		s.deliver(ctx, alerting.RenderNoCandidate())
		return nil
	}

	now := time.Now().UTC()

	if s.gate.Suppressed(rec, best.Market, now) {
		s.logger.Info().
			Str("market", best.Market).
			Str("last_ts", rec.TS).
			Msg("duplicate within cooldown window; suppressed")
		return nil
	}

	s.logger.Info().
		Str("market", best.Market).
		Str("score", best.Score.String()).
		Bool("overheated", best.Overheated).
		Msg("top candidate selected")

	s.deliver(ctx, alerting.RenderCandidate(*best))

	if err := s.store.Save(ctx, cooldown.NewRecord(best.Market, now)); err != nil {
		return fmt.Errorf("persist cooldown record: %w", err)
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, text string) {
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.logger.Error().Err(err).Msg("failed to dispatch alert")
	}
}
