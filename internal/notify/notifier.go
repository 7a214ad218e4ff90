// Package notify defines the notification interface and implementations
// for forwarding webhook events to chat backends.
package notify

import (
	"context"
)

// EventPayload contains the data needed to announce a webhook delivery.
type EventPayload struct {
	Topic string
	Shop  string
	// Summary is a short human-readable description of the event, for
	// example the order name or product title extracted from the body.
	Summary string
	Bytes   int
}

// Notifier defines the interface for announcing webhook deliveries.
type Notifier interface {
	SendEvent(ctx context.Context, event *EventPayload) error
	SendBatch(ctx context.Context, events []EventPayload) error
}
