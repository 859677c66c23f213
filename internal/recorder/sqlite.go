package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

var _ Recorder = (*SQLiteRecorder)(nil)

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the agent writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			ticker_count INTEGER NOT NULL,
			error_count  INTEGER NOT NULL,
			buy_count    INTEGER NOT NULL,
			sell_count   INTEGER NOT NULL,
			hold_count   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL REFERENCES runs(id),
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			latest_price REAL,
			rsi14        REAL,
			ma50         REAL,
			ma200        REAL,
			signal       TEXT NOT NULL,
			error_note   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ticker ON signals(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one row into runs and one row per record into
// signals. Undefined indicators are stored as NULL, never as zero.
func (r *SQLiteRecorder) RecordRun(report *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var buys, sells, holds, errs int
	for _, rec := range report.Records {
		switch rec.Signal {
		case model.SignalBuy:
			buys++
		case model.SignalSell:
			sells++
		default:
			holds++
		}
		if rec.ErrorNote != "" {
			errs++
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	ts := report.GeneratedAt.Unix()
	res, err := tx.Exec(`INSERT INTO runs
		(timestamp, ticker_count, error_count, buy_count, sell_count, hold_count)
		VALUES (?,?,?,?,?,?)`,
		ts, len(report.Records), errs, buys, sells, holds,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("run id: %w", err)
	}

	for _, rec := range report.Records {
		// A degraded record has no usable price.
		var price interface{}
		if rec.ErrorNote == "" {
			price = rec.Snapshot.LatestPrice
		}
		if _, err := tx.Exec(`INSERT INTO signals
			(run_id, timestamp, ticker, latest_price, rsi14, ma50, ma200, signal, error_note)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			runID, ts, rec.Ticker, price,
			rec.Snapshot.RSI14, rec.Snapshot.MA50, rec.Snapshot.MA200,
			string(rec.Signal), rec.ErrorNote,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert signal for %s: %w", rec.Ticker, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
