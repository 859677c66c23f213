// Package events publishes actionable signals to a Kafka topic so
// downstream consumers can react without polling the report files.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
	"github.com/chumbawanba/Stock-agent-ai/internal/notifier"
)

const (
	eventTypeSignal = "stock.signal"
	eventSource     = "stockagent"
	schemaVersion   = "1.0"
)

// KafkaWriter is the subset of kafka.Writer the publisher needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits one SignalEvent per Buy or Sell record, keyed by
// ticker so per-ticker ordering is stable across partitions.
type Publisher struct {
	writer KafkaWriter
	logger *zap.Logger
}

var _ notifier.Notifier = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Publisher{writer: w, logger: logger}
}

// NewPublisherWithWriter injects a writer, used by tests.
func NewPublisherWithWriter(writer KafkaWriter, logger *zap.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) Name() string { return "kafka" }

// Notify publishes the actionable rows of the report. Hold rows and
// degraded rows never reach the topic.
func (p *Publisher) Notify(ctx context.Context, report *model.Report) error {
	actionable := report.Actionable()
	if len(actionable) == 0 {
		p.logger.Info("No actionable signals, skipping event publish")
		return nil
	}

	msgs := make([]kafka.Message, 0, len(actionable))
	for _, rec := range actionable {
		event := newSignalEvent(rec, report.GeneratedAt)
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event for %s: %w", rec.Ticker, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(rec.Ticker),
			Value: value,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d signal events: %w", len(msgs), err)
	}

	p.logger.Info("Published signal events", zap.Int("count", len(msgs)))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newSignalEvent(rec model.ReportRecord, generatedAt time.Time) model.SignalEvent {
	return model.SignalEvent{
		EventType:     eventTypeSignal,
		Source:        eventSource,
		SchemaVersion: schemaVersion,
		Timestamp:     generatedAt,
		Data: model.SignalEventData{
			Ticker:      rec.Ticker,
			Signal:      rec.Signal,
			LatestPrice: rec.Snapshot.LatestPrice,
			RSI14:       rec.Snapshot.RSI14,
			MA50:        rec.Snapshot.MA50,
			MA200:       rec.Snapshot.MA200,
		},
	}
}
