package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/collector"
	"github.com/chumbawanba/Stock-agent-ai/internal/config"
	"github.com/chumbawanba/Stock-agent-ai/internal/events"
	"github.com/chumbawanba/Stock-agent-ai/internal/metrics"
	"github.com/chumbawanba/Stock-agent-ai/internal/notifier"
	"github.com/chumbawanba/Stock-agent-ai/internal/recorder"
	"github.com/chumbawanba/Stock-agent-ai/internal/report"
	"github.com/chumbawanba/Stock-agent-ai/internal/scheduler"
	"github.com/chumbawanba/Stock-agent-ai/internal/universe"
)

func main() {
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config validation: %v", err))
	}

	logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("stockagent starting", zap.String("config", cfgPath))

	// Ticker universe
	tickers := cfg.Universe.Tickers
	if cfg.Universe.File != "" {
		fromFile, err := universe.Load(cfg.Universe.File)
		if err != nil {
			if len(tickers) == 0 {
				logger.Fatal("load ticker universe", zap.String("file", cfg.Universe.File), zap.Error(err))
			}
			logger.Warn("Ticker file unreadable, using inline list", zap.Error(err))
		} else {
			tickers = append(tickers, fromFile...)
		}
	}
	tickers = universe.Normalize(tickers)
	if len(tickers) == 0 {
		logger.Warn("Ticker universe is empty, reports will be empty")
	}

	// Init fetcher
	timeout := time.Duration(cfg.DataSource.TimeoutSeconds) * time.Second
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "stooq":
		f := collector.NewStooqFetcher(cfg.Proxy, timeout)
		if cfg.DataSource.BaseURL != "" {
			f.BaseURL = cfg.DataSource.BaseURL
		}
		fetcher = f
	case "mock":
		fetcher = &collector.MockFetcher{}
	default:
		f := collector.NewYahooFetcher(cfg.Proxy, timeout)
		if cfg.DataSource.BaseURL != "" {
			f.BaseURL = cfg.DataSource.BaseURL
		}
		fetcher = f
	}

	// Optional Redis series cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, running without series cache", zap.Error(err))
		} else {
			ttl := time.Duration(cfg.Redis.TTLHours) * time.Hour
			fetcher = collector.NewCachedFetcher(fetcher, rdb, ttl, logger)
		}
	}
	logger.Info("data source ready", zap.String("fetcher", fetcher.Name()))

	agg := report.NewAggregator(fetcher, cfg.StrategyRules(), cfg.DataSource.LookbackDays, cfg.DataSource.Workers, logger)

	// Notification sinks
	var sinks []notifier.Notifier
	if cfg.Email.Host != "" {
		sinks = append(sinks, notifier.NewEmailNotifier(
			cfg.Email.Host, cfg.Email.Port,
			cfg.Email.Username, cfg.Email.Password,
			cfg.Email.From, cfg.Email.To, logger))
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		sinks = append(sinks, notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		pub := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer pub.Close()
		sinks = append(sinks, pub)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, tickers, agg, sinks, rec, logger)
	sched.Out = os.Stdout
	sched.CSVPath = cfg.Report.CSVPath

	// Metrics and health endpoint
	if cfg.Metrics.Addr != "" {
		sched.Metrics = metrics.NewMetrics()
		sched.Health = metrics.NewHealthStatus()
		srv := metrics.NewServer(cfg.Metrics.Addr, sched.Health, logger)
		srv.Start()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			srv.Stop(shutdownCtx)
		}()
	}

	// Without a cron expression the agent evaluates once and exits.
	if cfg.Schedule.Cron == "" {
		if err := sched.RunNow(); err != nil {
			logger.Fatal("Evaluation run failed", zap.Error(err))
		}
		logger.Info("stockagent finished")
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		logger.Fatal("register cron task", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, executing evaluation now")
		go func() {
			if err := sched.RunNow(); err != nil {
				logger.Error("Evaluation run failed", zap.Error(err))
			}
		}()
	}

	logger.Info("stockagent is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()
	logger.Info("stockagent stopped")
}
