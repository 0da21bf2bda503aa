package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// RecipientKind labels who a notification is for.
type RecipientKind string

const (
	RecipientCustomer RecipientKind = "customer"
	RecipientAdmin    RecipientKind = "admin"
	RecipientPrinter  RecipientKind = "printer"
)

// Notification is an outbound email. DedupeKey identifies it across retries and repeated
// webhook deliveries; two notifications with the same key are the same notification.
type Notification struct {
	DedupeKey string
	Recipient RecipientKind
	To        string
	Subject   string
	Body      string
}

// Notifier is the outbound send-email capability (NotificationPort).
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// OutboxEntry is a persisted notification awaiting delivery.
type OutboxEntry struct {
	ID           kernel.UUID
	Notification Notification
	Attempts     int
}

// NotificationOutbox is the durable queue between state changes and the Notifier.
type NotificationOutbox interface {
	// Enqueue stores n unless its DedupeKey already exists. It reports whether a row was inserted.
	Enqueue(ctx context.Context, n Notification) (bool, error)

	// ClaimDue row-locks up to limit pending entries whose next attempt is due, skipping rows
	// locked by other dispatchers. When keys is non-empty only those dedupe keys are considered.
	ClaimDue(ctx context.Context, now time.Time, limit int, keys []string) ([]OutboxEntry, error)

	MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error

	// MarkFailed records a failed attempt. When nextAttemptAt is nil the entry is given up on.
	MarkFailed(ctx context.Context, id kernel.UUID, lastError string, nextAttemptAt *time.Time) error
}
