package recorder

import "github.com/chumbawanba/Stock-agent-ai/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

var _ Recorder = (*NoopRecorder)(nil)

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *model.Report) error { return nil }
func (n *NoopRecorder) Close() error                    { return nil }
