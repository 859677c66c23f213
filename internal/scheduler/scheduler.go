// Package scheduler drives evaluation runs, either once or on a cron
// schedule, and fans the finished report out to its sinks.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/metrics"
	"github.com/chumbawanba/Stock-agent-ai/internal/notifier"
	"github.com/chumbawanba/Stock-agent-ai/internal/recorder"
	"github.com/chumbawanba/Stock-agent-ai/internal/report"
)

// Scheduler owns the cron loop and the per-run pipeline.
type Scheduler struct {
	Cron       *cron.Cron
	Tickers    []string
	Aggregator *report.Aggregator
	Notifiers  []notifier.Notifier
	Recorder   recorder.Recorder
	Logger     *zap.Logger
	Ctx        context.Context

	// Optional sinks, left nil/empty when not configured.
	CSVPath string
	Out     io.Writer
	Metrics *metrics.Metrics
	Health  *metrics.HealthStatus
}

// NewScheduler creates a Scheduler around the run pipeline.
func NewScheduler(ctx context.Context, tickers []string, agg *report.Aggregator, sinks []notifier.Notifier, rec recorder.Recorder, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Tickers:    tickers,
		Aggregator: agg,
		Notifiers:  sinks,
		Recorder:   rec,
		Logger:     logger,
		Ctx:        ctx,
	}
}

// Register adds the evaluation task under the given cron expression.
func (s *Scheduler) Register(cronSpec string) error {
	if _, err := s.Cron.AddFunc(cronSpec, s.evaluationTask); err != nil {
		return fmt.Errorf("register evaluation task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("scheduler stopped")
}

func (s *Scheduler) evaluationTask() {
	if err := s.RunNow(); err != nil {
		s.Logger.Error("Evaluation run failed", zap.Error(err))
	}
}

// RunNow executes one full evaluation run: evaluate every ticker, then
// write the table and CSV, notify, record, and observe. Per-ticker
// failures are already folded into the report as degraded records; the
// returned error covers run-level sink failures only.
func (s *Scheduler) RunNow() error {
	start := time.Now()
	s.Logger.Info("Starting evaluation run", zap.Int("tickers", len(s.Tickers)))

	rep := s.Aggregator.Evaluate(s.Ctx, s.Tickers)

	var failures []string

	if s.Out != nil {
		if err := report.WriteTable(s.Out, &rep); err != nil {
			s.Logger.Warn("Table output failed", zap.Error(err))
		}
	}

	if s.CSVPath != "" {
		if err := report.SaveCSV(s.CSVPath, &rep); err != nil {
			s.Logger.Error("CSV write failed", zap.String("path", s.CSVPath), zap.Error(err))
			failures = append(failures, fmt.Sprintf("csv: %v", err))
		} else {
			s.Logger.Info("Report written", zap.String("path", s.CSVPath))
		}
	}

	for _, n := range s.Notifiers {
		if err := n.Notify(s.Ctx, &rep); err != nil {
			s.Logger.Error("Notification failed", zap.String("notifier", n.Name()), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", n.Name(), err))
		}
	}

	if s.Recorder != nil {
		if err := s.Recorder.RecordRun(&rep); err != nil {
			s.Logger.Error("History record failed", zap.Error(err))
			failures = append(failures, fmt.Sprintf("recorder: %v", err))
		}
	}

	took := time.Since(start)
	if s.Metrics != nil {
		s.Metrics.ObserveRun(&rep, took)
	}

	var runErr error
	if len(failures) > 0 {
		runErr = fmt.Errorf("run completed with %d sink failures: %s", len(failures), strings.Join(failures, "; "))
	}
	if s.Health != nil {
		s.Health.RecordRun(rep.GeneratedAt, runErr)
	}

	s.Logger.Info("Evaluation run finished",
		zap.Duration("took", took),
		zap.Int("records", len(rep.Records)),
		zap.Int("actionable", len(rep.Actionable())))
	return runErr
}
