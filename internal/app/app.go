package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"momentum-scout/internal/alerting"
	"momentum-scout/internal/config"
	"momentum-scout/internal/cooldown"
	"momentum-scout/internal/fetcher"
	"momentum-scout/internal/scanner"
	"momentum-scout/internal/scheduler"
	"momentum-scout/internal/service"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newScanner() *scanner.Scanner {
	client := fetcher.NewBithumb(fetcher.BithumbOptions{
		BaseURL:       a.Config.Exchange.BaseURL,
		QuoteCurrency: a.Config.Exchange.QuoteCurrency,
		Timeout:       a.Config.Exchange.RequestTimeout,
		UserAgent:     a.Config.Exchange.UserAgent,
	}, a.Logger)

	return scanner.New(client, client, scanner.Options{
		CandleCount: a.Config.Scan.CandleCount,
		Throttle:    a.Config.Scan.Throttle,
	}, a.Logger)
}

func (a *App) newNotifier() alerting.Notifier {
	tg := a.Config.Alerting.Telegram
	if tg.BotToken == "" || tg.ChatID == "" {
		return alerting.NewNoopNotifier(a.Logger)
	}
	return alerting.NewTelegramNotifier(tg.BotToken, tg.ChatID, tg.APIBase, a.Config.Exchange.RequestTimeout, a.Logger)
}

func (a *App) newService(sched *scheduler.Scheduler) *service.Service {
	store := cooldown.NewFileStore(a.Config.Cooldown.StatePath, a.Logger)
	gate := cooldown.NewGate(a.Config.Cooldown.Window)
	return service.New(a.newScanner(), gate, store, a.newNotifier(), sched, a.Logger)
}

// Scan executes a single scan pass, the cron-style entry point.
func (a *App) Scan(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.newService(nil).RunOnce(ctx)
}

// Run executes the long-running scheduled loop.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToBucket,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	svc := a.newService(sched)

	a.Logger.Info().Msg("starting momentum scan loop")
	err := svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("scan loop terminated with error")
		return err
	}

	a.Logger.Info().Msg("scan loop stopped")
	return nil
}
