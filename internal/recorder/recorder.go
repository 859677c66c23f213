// Package recorder persists evaluation history for later analysis.
package recorder

import "github.com/chumbawanba/Stock-agent-ai/internal/model"

// Recorder persists evaluation runs and the signals they produced.
type Recorder interface {
	RecordRun(report *model.Report) error
	Close() error
}
