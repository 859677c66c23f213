package model

import "time"

// SignalEvent is the message published to the event stream for each
// actionable signal.
type SignalEvent struct {
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	SchemaVersion string          `json:"schema_version"`
	Timestamp     time.Time       `json:"timestamp"`
	Data          SignalEventData `json:"data"`
}

// SignalEventData carries the per-ticker payload of a SignalEvent.
type SignalEventData struct {
	Ticker      string   `json:"ticker"`
	Signal      Signal   `json:"signal"`
	LatestPrice float64  `json:"latest_price"`
	RSI14       *float64 `json:"rsi14,omitempty"`
	MA50        *float64 `json:"ma50,omitempty"`
	MA200       *float64 `json:"ma200,omitempty"`
}
