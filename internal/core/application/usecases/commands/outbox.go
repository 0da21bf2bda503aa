package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// enqueue stores messages in the outbox and returns the keys that were new.
// Keys already present belong to an earlier delivery of the same event.
func enqueue(ctx context.Context, outbox ports.NotificationOutbox, messages ...ports.Notification) ([]string, error) {
	keys := make([]string, 0, len(messages))
	for _, n := range messages {
		inserted, err := outbox.Enqueue(ctx, n)
		if err != nil {
			return nil, err
		}
		if inserted {
			keys = append(keys, n.DedupeKey)
		}
	}
	return keys, nil
}

// flush attempts immediate delivery of freshly committed notifications.
func flush(ctx context.Context, flusher NotificationFlusher, logger *slog.Logger, keys []string, attrs ...any) {
	if len(keys) == 0 || flusher == nil {
		return
	}

	if err := flusher.Flush(ctx, keys); err != nil {
		logger.WarnContext(ctx, "notification delivery deferred to retry",
			append(attrs, "keys", keys, "error", err)...)
	}
}
