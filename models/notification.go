// models/notification.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationQuoteReceived  NotificationType = "quote_received"
	NotificationQuoteAccepted  NotificationType = "quote_accepted"
	NotificationQuoteRejected  NotificationType = "quote_rejected"
	NotificationBookingCreated NotificationType = "booking_created"
	NotificationReviewReceived NotificationType = "review_received"
	NotificationNewMessage     NotificationType = "new_message"
)

// Notification is a best-effort in-app alert. Creation happens inside the
// service layer after a triggering write; a failed insert is logged and never
// fails the operation that triggered it.
type Notification struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type         NotificationType `gorm:"not null" json:"type"`
	Title        string           `gorm:"not null" json:"title"`
	Body         string           `gorm:"type:text" json:"body"`
	JobRequestID *uuid.UUID       `gorm:"type:uuid" json:"job_request_id,omitempty"`
	Metadata     datatypes.JSON   `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	IsRead       bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}

// MetadataJSON encodes the entity ids carried alongside a notification
// (quote_id, booking_id, review_id, message_id) for the metadata column.
// nil and empty both encode as the empty object.
func MetadataJSON(meta map[string]string) datatypes.JSON {
	if len(meta) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
