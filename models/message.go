// models/message.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one append-only chat line between two parties about a job.
// There is no stored Conversation entity: a conversation is the derived
// grouping of messages by (job_request_id, other_party_id), computed at read
// time. A message is editable and deletable only by its sender.
type Message struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_job_parties" json:"job_request_id"`
	SenderID     uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_job_parties" json:"sender_id"`
	ReceiverID   uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_job_parties" json:"receiver_id"`
	Body         string    `gorm:"type:text;not null" json:"message"`
	IsRead       bool      `gorm:"default:false" json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Sender   *Profile    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *Profile    `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Job      *JobRequest `gorm:"foreignKey:JobRequestID" json:"job,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// ConversationSummary is the derived per-(job, other party) thread preview:
// the newest message's text and timestamp plus the caller's unread count.
type ConversationSummary struct {
	JobRequestID   uuid.UUID `json:"job_request_id"`
	JobTitle       string    `json:"job_title,omitempty"`
	OtherPartyID   uuid.UUID `json:"other_party_id"`
	OtherPartyName string    `json:"other_party_name,omitempty"`
	LastMessage    string    `json:"last_message"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    int       `json:"unread_count"`
}
