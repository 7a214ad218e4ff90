package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded events. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards events with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendEvent logs and discards a single event.
func (n *NoOpNotifier) SendEvent(_ context.Context, event *EventPayload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"topic", event.Topic,
		"shop", event.Shop,
	)
	return nil
}

// SendBatch logs and discards a batch of events.
func (n *NoOpNotifier) SendBatch(_ context.Context, events []EventPayload) error {
	n.log.Debug("batch notification discarded (no backend configured)",
		"count", len(events),
	)
	return nil
}
