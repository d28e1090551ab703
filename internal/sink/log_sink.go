package sink

import (
	"github.com/tourboxd/tourboxd/internal/logger"
	"github.com/tourboxd/tourboxd/internal/mapping"
)

// LogSink logs each action at Debug level. Used when the websocket
// sink is disabled in config (SPEC_FULL.md §6.5) — the Non-goals
// exclude a GUI, not ambient observability.
type LogSink struct {
	log logger.Logger
}

// NewLogSink builds a LogSink backed by log.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// Publish logs the action and never fails.
func (s *LogSink) Publish(action mapping.Action) error {
	s.log.Debug("action: %s %s", action.Kind, action.Token)
	return nil
}

// Close is a no-op for LogSink.
func (s *LogSink) Close() error { return nil }
