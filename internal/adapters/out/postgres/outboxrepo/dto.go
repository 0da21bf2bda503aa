// Package outboxrepo stores outbound notifications until the dispatcher delivers them.
package outboxrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

// Delivery states of an outbox row.
const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

// NotificationDTO is a notification_outbox row.
type NotificationDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DedupeKey     string     `gorm:"type:text;not null;uniqueIndex"`
	Recipient     string     `gorm:"type:text;not null"`
	ToAddress     string     `gorm:"type:text;not null"`
	Subject       string     `gorm:"type:text;not null"`
	Body          string     `gorm:"type:text;not null"`
	Status        string     `gorm:"type:text;not null;default:PENDING;index:idx_notification_outbox_due,priority:1"`
	Attempts      int        `gorm:"not null;default:0"`
	LastError     *string    `gorm:"type:text"`
	NextAttemptAt *time.Time `gorm:"index:idx_notification_outbox_due,priority:2"`
	SentAt        *time.Time
	CreatedAt     time.Time
}

func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

func fromNotification(id kernel.UUID, n ports.Notification, now time.Time) NotificationDTO {
	return NotificationDTO{
		ID:            id.Bytes(),
		DedupeKey:     n.DedupeKey,
		Recipient:     string(n.Recipient),
		ToAddress:     n.To,
		Subject:       n.Subject,
		Body:          n.Body,
		Status:        StatusPending,
		NextAttemptAt: &now,
		CreatedAt:     now,
	}
}

func toEntry(dto NotificationDTO) (ports.OutboxEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxEntry{}, err
	}
	return ports.OutboxEntry{
		ID: id,
		Notification: ports.Notification{
			DedupeKey: dto.DedupeKey,
			Recipient: ports.RecipientKind(dto.Recipient),
			To:        dto.ToAddress,
			Subject:   dto.Subject,
			Body:      dto.Body,
		},
		Attempts: dto.Attempts,
	}, nil
}
