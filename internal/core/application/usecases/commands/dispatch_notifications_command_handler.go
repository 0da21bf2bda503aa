package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/multierr"
)

// Dispatch outcomes reported to DispatchObserver.
const (
	OutcomeSent    = "sent"
	OutcomeRetry   = "retry"
	OutcomeGivenUp = "failed"
)

// RetryPolicy controls redelivery of failed notifications.
type RetryPolicy struct {
	// MaxAttempts is the number of sends after which an entry is marked failed.
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries for roughly a day before giving up.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 8, InitialInterval: time.Minute, MaxInterval: 6 * time.Hour}
}

// Delay returns how long to wait after the given failed attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()

	d := b.NextBackOff()
	for i := 1; i < attempt; i++ {
		d = b.NextBackOff()
	}
	return d
}

// DispatchObserver receives one call per delivery attempt.
type DispatchObserver interface {
	ObserveNotification(recipient, outcome string)
}

// DispatchReport summarizes one dispatch run.
type DispatchReport struct {
	Sent    int
	Retried int
	Failed  int
}

// DispatchNotificationsCommandHandler delivers outbox entries through the Notifier.
// Entries are claimed with row locks that skip rows held by another dispatcher, so the
// post-commit flush and the periodic job never send the same entry concurrently.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
	policy     RetryPolicy
	observer   DispatchObserver
	logger     *slog.Logger
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.Notifier,
	policy RetryPolicy,
	observer DispatchObserver,
	logger *slog.Logger,
) *DispatchNotificationsCommandHandler {
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	return &DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     policy,
		observer:   observer,
		logger:     logger.With("component", "notification-dispatch"),
	}
}

// Handle sends every claimed entry once. Send failures are collected into the returned
// error after bookkeeping commits; storage failures abort the run.
func (h *DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchReport, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationOutbox()
	now := time.Now().UTC()
	entries, err := outbox.ClaimDue(ctx, now, cmd.Limit(), cmd.Keys())
	if err != nil {
		return DispatchReport{}, err
	}

	var report DispatchReport
	var sendErr error
	for _, entry := range entries {
		n := entry.Notification
		if err = h.notifier.Send(ctx, n); err == nil {
			if err = outbox.MarkSent(ctx, entry.ID, time.Now().UTC()); err != nil {
				return report, err
			}
			report.Sent++
			h.observe(n.Recipient, OutcomeSent)
			continue
		}

		sendErr = multierr.Append(sendErr, errs.NewNotificationError(n.DedupeKey, err))
		attempt := entry.Attempts + 1

		var next *time.Time
		outcome := OutcomeGivenUp
		if attempt < h.policy.MaxAttempts {
			at := now.Add(h.policy.Delay(attempt))
			next = &at
			outcome = OutcomeRetry
			report.Retried++
		} else {
			report.Failed++
			h.logger.ErrorContext(ctx, "notification given up",
				"dedupe_key", n.DedupeKey, "attempts", attempt, "error", err)
		}

		if err = outbox.MarkFailed(ctx, entry.ID, err.Error(), next); err != nil {
			return report, err
		}
		h.observe(n.Recipient, outcome)
	}

	if err = uow.Commit(ctx); err != nil {
		return report, err
	}

	return report, sendErr
}

// Flush implements NotificationFlusher.
func (h *DispatchNotificationsCommandHandler) Flush(ctx context.Context, keys []string) error {
	_, err := h.Handle(ctx, NewDispatchNotificationsCommand(len(keys), keys...))
	return err
}

func (h *DispatchNotificationsCommandHandler) observe(recipient ports.RecipientKind, outcome string) {
	if h.observer != nil {
		h.observer.ObserveNotification(string(recipient), outcome)
	}
}
