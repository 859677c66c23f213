package notifier

import (
	"context"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// Notifier delivers the actionable subset of a report to one channel.
// Implementations skip silently when the report holds no Buy or Sell
// signals.
type Notifier interface {
	Notify(ctx context.Context, report *model.Report) error
	Name() string
}
