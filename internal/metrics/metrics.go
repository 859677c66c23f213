// Package metrics exposes Prometheus metrics and a health endpoint for
// the evaluation agent.
package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// Metrics holds all Prometheus metrics for the agent.
type Metrics struct {
	RunsTotal        prometheus.Counter
	RunDuration      prometheus.Histogram
	TickerErrors     prometheus.Counter
	SignalsTotal     *prometheus.CounterVec // labels: signal
	LastRunTime      prometheus.Gauge
	TickersEvaluated prometheus.Gauge
}

// NewMetrics registers all metrics with the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers all metrics with the given registerer, used
// by tests to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockagent_runs_total",
			Help: "Total evaluation runs completed",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockagent_run_duration_seconds",
			Help:    "End-to-end evaluation run latency",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		TickerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockagent_ticker_errors_total",
			Help: "Tickers that failed ingestion or indicator computation",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockagent_signals_total",
			Help: "Signals produced (by classification)",
		}, []string{"signal"}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockagent_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		}),
		TickersEvaluated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockagent_tickers_evaluated",
			Help: "Tickers evaluated in the last run",
		}),
	}

	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.TickerErrors,
		m.SignalsTotal,
		m.LastRunTime,
		m.TickersEvaluated,
	)

	return m
}

// ObserveRun updates all run-level metrics from a finished report.
func (m *Metrics) ObserveRun(report *model.Report, took time.Duration) {
	m.RunsTotal.Inc()
	m.RunDuration.Observe(took.Seconds())
	m.LastRunTime.Set(float64(report.GeneratedAt.Unix()))
	m.TickersEvaluated.Set(float64(len(report.Records)))

	for _, rec := range report.Records {
		m.SignalsTotal.WithLabelValues(string(rec.Signal)).Inc()
		if rec.ErrorNote != "" {
			m.TickerErrors.Inc()
		}
	}
}

// HealthStatus tracks liveness of the evaluation loop.
type HealthStatus struct {
	mu sync.RWMutex

	startedAt  time.Time
	lastRunAt  time.Time
	lastRunErr string
	runsOK     int
	runsFailed int
}

// NewHealthStatus returns a default health status.
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{startedAt: time.Now()}
}

// RecordRun notes the outcome of an evaluation run.
func (h *HealthStatus) RecordRun(at time.Time, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastRunAt = at
	if err != nil {
		h.lastRunErr = err.Error()
		h.runsFailed++
		return
	}
	h.lastRunErr = ""
	h.runsOK++
}

// ServeHTTP handles the /healthz endpoint.
func (h *HealthStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	overallStatus := "ok"
	httpCode := http.StatusOK
	if h.lastRunErr != "" {
		overallStatus = "degraded"
		httpCode = http.StatusServiceUnavailable
	}

	lastRun := ""
	runAge := ""
	if !h.lastRunAt.IsZero() {
		lastRun = h.lastRunAt.Format(time.RFC3339)
		runAge = time.Since(h.lastRunAt).Round(time.Second).String()
	}

	status := struct {
		Status     string `json:"status"`
		Uptime     string `json:"uptime"`
		LastRunAt  string `json:"last_run_at"`
		LastRunAge string `json:"last_run_age"`
		LastRunErr string `json:"last_run_error,omitempty"`
		RunsOK     int    `json:"runs_ok"`
		RunsFailed int    `json:"runs_failed"`
	}{
		Status:     overallStatus,
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		LastRunAt:  lastRun,
		LastRunAge: runAge,
		LastRunErr: h.lastRunErr,
		RunsOK:     h.runsOK,
		RunsFailed: h.runsFailed,
	}

	w.Header().Set("Content-Type", "application/json")
	if httpCode != http.StatusOK {
		w.WriteHeader(httpCode)
	}
	json.NewEncoder(w).Encode(status)
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	addr   string
	srv    *http.Server
	logger *zap.Logger
}

// NewServer creates a metrics and health server.
func NewServer(addr string, health *HealthStatus, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", health.ServeHTTP)

	return &Server{
		addr:   addr,
		logger: logger,
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("metrics server listening", zap.String("addr", s.addr))
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Error("metrics server error", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}
