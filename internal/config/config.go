package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Universe struct {
		File    string   `yaml:"file"`
		Tickers []string `yaml:"tickers"`
	} `yaml:"universe"`
	DataSource struct {
		Provider       string `yaml:"provider"` // yahoo, stooq or mock
		BaseURL        string `yaml:"base_url"`
		LookbackDays   int    `yaml:"lookback_days"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Workers        int    `yaml:"workers"`
	} `yaml:"data_source"`
	Rules struct {
		RSIPeriod     int     `yaml:"rsi_period"`
		RSIOversold   float64 `yaml:"rsi_oversold"`
		RSIOverbought float64 `yaml:"rsi_overbought"`
		MAShortWindow int     `yaml:"ma_short_window"`
		MALongWindow  int     `yaml:"ma_long_window"`
	} `yaml:"rules"`
	Report struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"report"`
	Email struct {
		Host     string   `yaml:"host"`
		Port     int      `yaml:"port"`
		Username string   `yaml:"username"`
		Password string   `yaml:"password"`
		From     string   `yaml:"from"`
		To       []string `yaml:"to"`
	} `yaml:"email"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TICKERS_FILE"); v != "" {
		cfg.Universe.File = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		var days int
		if _, err := fmt.Sscanf(v, "%d", &days); err == nil {
			cfg.DataSource.LookbackDays = days
		}
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.Host = v
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.Email.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Email.To = splitList(v)
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Universe.File == "" && len(cfg.Universe.Tickers) == 0 {
		cfg.Universe.File = "stocks.txt"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 300
	}
	if cfg.DataSource.TimeoutSeconds == 0 {
		cfg.DataSource.TimeoutSeconds = 30
	}
	if cfg.DataSource.Workers == 0 {
		cfg.DataSource.Workers = 1
	}
	if cfg.Rules.RSIPeriod == 0 {
		cfg.Rules.RSIPeriod = 14
	}
	if cfg.Rules.RSIOversold == 0 {
		cfg.Rules.RSIOversold = 30
	}
	if cfg.Rules.RSIOverbought == 0 {
		cfg.Rules.RSIOverbought = 70
	}
	if cfg.Rules.MAShortWindow == 0 {
		cfg.Rules.MAShortWindow = 50
	}
	if cfg.Rules.MALongWindow == 0 {
		cfg.Rules.MALongWindow = 200
	}
	if cfg.Report.CSVPath == "" {
		cfg.Report.CSVPath = "data/report.csv"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = 587
	}
	if cfg.Redis.TTLHours == 0 {
		cfg.Redis.TTLHours = 24
	}
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "stock-signals"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockagent.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "stooq", "mock":
	default:
		return fmt.Errorf("data_source.provider must be yahoo, stooq or mock, got %q", c.DataSource.Provider)
	}
	if c.DataSource.LookbackDays < c.Rules.MALongWindow {
		return fmt.Errorf("data_source.lookback_days (%d) must cover rules.ma_long_window (%d)",
			c.DataSource.LookbackDays, c.Rules.MALongWindow)
	}
	if c.DataSource.Workers < 1 {
		return fmt.Errorf("data_source.workers must be at least 1")
	}
	if c.Rules.RSIPeriod < 2 {
		return fmt.Errorf("rules.rsi_period must be at least 2")
	}
	if c.Rules.RSIOversold <= 0 || c.Rules.RSIOverbought >= 100 || c.Rules.RSIOversold >= c.Rules.RSIOverbought {
		return fmt.Errorf("rules thresholds must satisfy 0 < rsi_oversold < rsi_overbought < 100")
	}
	if c.Rules.MAShortWindow < 1 || c.Rules.MALongWindow < c.Rules.MAShortWindow {
		return fmt.Errorf("rules ma windows must satisfy 1 <= ma_short_window <= ma_long_window")
	}
	if c.Email.Host != "" {
		if c.Email.From == "" || len(c.Email.To) == 0 {
			return fmt.Errorf("email.from and email.to are required when email.host is set")
		}
	}
	return nil
}

// StrategyRules returns the indicator windows and signal thresholds as a
// single structure passed explicitly to the calculator and classifier.
func (c *Config) StrategyRules() model.Rules {
	return model.Rules{
		RSIPeriod:     c.Rules.RSIPeriod,
		RSIOversold:   c.Rules.RSIOversold,
		RSIOverbought: c.Rules.RSIOverbought,
		MAShortWindow: c.Rules.MAShortWindow,
		MALongWindow:  c.Rules.MALongWindow,
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
