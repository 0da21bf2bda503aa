package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationOutbox implements ports.NotificationOutbox.
type GormNotificationOutbox struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Enqueue inserts n as a pending row. A row with the same dedupe key, in any state, wins
// and nothing is inserted.
func (o *GormNotificationOutbox) Enqueue(ctx context.Context, n ports.Notification) (bool, error) {
	if n.DedupeKey == "" {
		return false, errs.NewValueIsRequiredError("dedupeKey")
	}
	if n.To == "" {
		return false, errs.NewValueIsRequiredError("to")
	}

	dto := fromNotification(kernel.NewUUID(), n, o.now())
	result := o.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, errs.NewPersistenceError("enqueue notification", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ClaimDue locks due pending rows oldest first. Rows locked by a concurrent dispatcher are skipped.
func (o *GormNotificationOutbox) ClaimDue(ctx context.Context, now time.Time, limit int, keys []string) ([]ports.OutboxEntry, error) {
	query := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)", StatusPending, now).
		Order("created_at ASC").
		Order("id ASC")
	if len(keys) > 0 {
		query = query.Where("dedupe_key IN ?", keys)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []NotificationDTO
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.NewPersistenceError("claim notifications", err)
	}

	entries := make([]ports.OutboxEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := toEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (o *GormNotificationOutbox) MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error {
	return o.update(ctx, id, "mark notification sent", map[string]any{
		"status":          StatusSent,
		"sent_at":         sentAt,
		"next_attempt_at": nil,
		"attempts":        gorm.Expr("attempts + 1"),
	})
}

// MarkFailed counts the attempt and either reschedules the row or gives up on it.
func (o *GormNotificationOutbox) MarkFailed(ctx context.Context, id kernel.UUID, lastError string, nextAttemptAt *time.Time) error {
	status := StatusPending
	if nextAttemptAt == nil {
		status = StatusFailed
	}
	return o.update(ctx, id, "mark notification failed", map[string]any{
		"status":          status,
		"last_error":      lastError,
		"next_attempt_at": nextAttemptAt,
		"attempts":        gorm.Expr("attempts + 1"),
	})
}

func (o *GormNotificationOutbox) update(ctx context.Context, id kernel.UUID, op string, values map[string]any) error {
	result := o.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(values)
	if result.Error != nil {
		return errs.NewPersistenceError(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}
	return nil
}
