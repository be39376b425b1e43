package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/homepro/config"
	"p9e.in/homepro/models"
)

var ErrEmptyMessage = errors.New("message body must not be empty")

// MessageService handles job-scoped chat between customers and contractors
type MessageService struct {
	db *gorm.DB
}

// NewMessageService creates a new MessageService instance
func NewMessageService() *MessageService {
	return &MessageService{
		db: config.DB,
	}
}

type SendMessageRequest struct {
	JobRequestID uuid.UUID `json:"job_request_id"`
	ReceiverID   uuid.UUID `json:"receiver_id"`
	Body         string    `json:"message"`
}

// SendMessage appends one chat line. Messages are job-scoped; both ends plus
// the job must exist.
func (s *MessageService) SendMessage(senderID uuid.UUID, req SendMessageRequest) (*models.Message, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if req.JobRequestID == uuid.Nil || req.ReceiverID == uuid.Nil {
		return nil, errors.New("job_request_id and receiver_id are required")
	}
	if req.ReceiverID == senderID {
		return nil, errors.New("cannot message yourself")
	}

	var job models.JobRequest
	if err := s.db.First(&job, "id = ?", req.JobRequestID).Error; err != nil {
		return nil, fmt.Errorf("job: %w", ErrNotFound)
	}
	var receiver models.Profile
	if err := s.db.First(&receiver, "id = ?", req.ReceiverID).Error; err != nil {
		return nil, fmt.Errorf("receiver: %w", ErrNotFound)
	}

	msg := &models.Message{
		JobRequestID: req.JobRequestID,
		SenderID:     senderID,
		ReceiverID:   req.ReceiverID,
		Body:         body,
		IsRead:       false,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	notifyUser(req.ReceiverID, models.NotificationNewMessage,
		"New message",
		fmt.Sprintf("New message about \"%s\"", job.Title),
		&req.JobRequestID,
		map[string]string{"message_id": msg.ID.String(), "sender_id": senderID.String()})

	return msg, nil
}

// GroupConversations derives conversation summaries from a user's messages.
// Pure function over already-fetched rows: input must be sorted newest
// first. One summary per (job, other party); the first occurrence supplies
// the preview; unread counts messages addressed to the caller and not yet
// read; rows without a job are dropped.
func GroupConversations(callerID uuid.UUID, messages []models.Message) []models.ConversationSummary {
	var order []string
	byKey := map[string]*models.ConversationSummary{}

	for i := range messages {
		m := &messages[i]
		if m.JobRequestID == uuid.Nil {
			continue
		}
		other := m.SenderID
		if other == callerID {
			other = m.ReceiverID
		}
		key := m.JobRequestID.String() + "|" + other.String()

		summary, seen := byKey[key]
		if !seen {
			summary = &models.ConversationSummary{
				JobRequestID:  m.JobRequestID,
				OtherPartyID:  other,
				LastMessage:   m.Body,
				LastMessageAt: m.CreatedAt,
			}
			if m.Job != nil {
				summary.JobTitle = m.Job.Title
			}
			otherProfile := m.Sender
			if m.SenderID == callerID {
				otherProfile = m.Receiver
			}
			if otherProfile != nil {
				summary.OtherPartyName = otherProfile.FullName
			}
			byKey[key] = summary
			order = append(order, key)
		}
		if m.ReceiverID == callerID && !m.IsRead {
			summary.UnreadCount++
		}
	}

	out := make([]models.ConversationSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

// ListConversations fetches all of the caller's messages and groups them.
func (s *MessageService) ListConversations(callerID uuid.UUID) ([]models.ConversationSummary, error) {
	var messages []models.Message
	err := s.db.
		Preload("Sender").
		Preload("Receiver").
		Preload("Job").
		Where("sender_id = ? OR receiver_id = ?", callerID, callerID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return GroupConversations(callerID, messages), nil
}

// ListThread returns one conversation's messages oldest first and marks the
// caller's received messages read.
func (s *MessageService) ListThread(callerID, jobID, otherID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.
		Preload("Sender").
		Preload("Receiver").
		Where("job_request_id = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			jobID, callerID, otherID, otherID, callerID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list thread: %w", err)
	}

	if err := s.db.Model(&models.Message{}).
		Where("job_request_id = ? AND sender_id = ? AND receiver_id = ? AND is_read = ?",
			jobID, otherID, callerID, false).
		Update("is_read", true).Error; err != nil {
		log.Printf("⚠️ Failed to mark thread read: %v", err)
	}

	return messages, nil
}

// EditMessage rewrites the body of the caller's own message. Ownership is in
// the query filter, not checked after load.
func (s *MessageService) EditMessage(callerID, messageID uuid.UUID, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	var msg models.Message
	if err := s.db.First(&msg, "id = ? AND sender_id = ?", messageID, callerID).Error; err != nil {
		return nil, ErrNotFound
	}
	if err := s.db.Model(&msg).Update("body", body).Error; err != nil {
		return nil, fmt.Errorf("failed to edit message: %w", err)
	}
	msg.Body = body
	return &msg, nil
}

// DeleteMessage removes the caller's own message.
func (s *MessageService) DeleteMessage(callerID, messageID uuid.UUID) error {
	result := s.db.Where("id = ? AND sender_id = ?", messageID, callerID).Delete(&models.Message{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteConversation removes every message between the caller and the other
// party on one job, both directions, in a single transaction.
func (s *MessageService) DeleteConversation(callerID, jobID, otherID uuid.UUID) (int64, error) {
	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("job_request_id = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			jobID, callerID, otherID, otherID, callerID).
			Delete(&models.Message{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete conversation: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Printf("✅ Deleted conversation job=%s between %s and %s (%d messages)", jobID, callerID, otherID, deleted)
	return deleted, nil
}
