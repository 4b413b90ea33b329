package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"momentum-scout/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Exchange  ExchangeConfig  `mapstructure:"exchange"`
	Scan      ScanConfig      `mapstructure:"scan"`
	Cooldown  CooldownConfig  `mapstructure:"cooldown"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Alerting  AlertingConfig  `mapstructure:"alerting"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ExchangeConfig covers the public market-data API.
type ExchangeConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	QuoteCurrency  string        `mapstructure:"quote_currency"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// ScanConfig governs the candidate scan pass.
type ScanConfig struct {
	CandleCount int           `mapstructure:"candle_count"`
	Throttle    time.Duration `mapstructure:"throttle"`
}

// CooldownConfig governs duplicate-notification suppression.
type CooldownConfig struct {
	Window    time.Duration `mapstructure:"window"`
	StatePath string        `mapstructure:"state_path"`
}

// SchedulerConfig governs the optional long-running loop.
type SchedulerConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	AlignToBucket bool          `mapstructure:"align_to_bucket"`
	StartupDelay  time.Duration `mapstructure:"startup_delay"`
}

// AlertingConfig defines alert routing.
type AlertingConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig 描述 Telegram 告警参数。
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MOMENTUMSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyCredentialEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyCredentialEnv keeps the historical TELEGRAM_* variables working when the
// prefixed keys are not set. Both absent means the notifier degrades to a
// local no-op rather than failing the run.
func applyCredentialEnv(cfg *Config) {
	if cfg.Alerting.Telegram.BotToken == "" {
		cfg.Alerting.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if cfg.Alerting.Telegram.ChatID == "" {
		cfg.Alerting.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")
	}
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "momentumscout")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("exchange.base_url", "https://api.bithumb.com/v1")
	v.SetDefault("exchange.quote_currency", "KRW")
	v.SetDefault("exchange.request_timeout", "20s")
	v.SetDefault("exchange.user_agent", "momentumscout/1.0")

	v.SetDefault("scan.candle_count", 60)
	v.SetDefault("scan.throttle", "20ms")

	v.SetDefault("cooldown.window", "2h")
	v.SetDefault("cooldown.state_path", ".state.json")

	v.SetDefault("scheduler.interval", "15m")
	v.SetDefault("scheduler.align_to_bucket", true)
	v.SetDefault("scheduler.startup_delay", "0s")

	v.SetDefault("alerting.telegram.api_base", "https://api.telegram.org")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url is required")
	}
	if c.Exchange.QuoteCurrency == "" {
		return fmt.Errorf("exchange.quote_currency is required")
	}
	if c.Scan.CandleCount < 60 {
		return fmt.Errorf("scan.candle_count must be at least 60")
	}
	if c.Cooldown.Window <= 0 {
		return fmt.Errorf("cooldown.window must be greater than zero")
	}
	if c.Cooldown.StatePath == "" {
		return fmt.Errorf("cooldown.state_path is required")
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be greater than zero")
	}
	return nil
}
