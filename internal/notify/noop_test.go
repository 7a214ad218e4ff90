package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	n := NewNoOpNotifier(log)

	event := testEvent("orders/create")
	require.NoError(t, n.SendEvent(context.Background(), &event))
	assert.Contains(t, buf.String(), "orders/create")

	buf.Reset()
	require.NoError(t, n.SendBatch(context.Background(), []EventPayload{event, event}))
	assert.Contains(t, buf.String(), "count=2")
}
