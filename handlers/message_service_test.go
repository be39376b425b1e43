package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"p9e.in/homepro/models"
)

var (
	caller   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	alice    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	bob      = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	jobPlumb = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	jobPaint = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
)

func msg(job, sender, receiver uuid.UUID, body string, read bool, minutesAgo int) models.Message {
	return models.Message{
		ID:           uuid.New(),
		JobRequestID: job,
		SenderID:     sender,
		ReceiverID:   receiver,
		Body:         body,
		IsRead:       read,
		CreatedAt:    time.Now().Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

func TestGroupConversations(t *testing.T) {
	// newest first, as the query returns them
	messages := []models.Message{
		msg(jobPlumb, alice, caller, "latest from alice", false, 1),
		msg(jobPlumb, caller, alice, "reply to alice", false, 5),
		msg(jobPlumb, alice, caller, "first from alice", false, 10),
		msg(jobPaint, bob, caller, "bob about painting", true, 3),
		msg(jobPlumb, bob, caller, "bob about plumbing", false, 7),
	}

	conversations := GroupConversations(caller, messages)

	if len(conversations) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(conversations))
	}

	// first-occurrence order preserved
	first := conversations[0]
	if first.JobRequestID != jobPlumb || first.OtherPartyID != alice {
		t.Errorf("first conversation should be (plumbing, alice), got (%s, %s)",
			first.JobRequestID, first.OtherPartyID)
	}
	if first.LastMessage != "latest from alice" {
		t.Errorf("preview should be the newest message, got %q", first.LastMessage)
	}
	// two unread from alice to caller; caller's own message doesn't count
	if first.UnreadCount != 2 {
		t.Errorf("expected 2 unread for alice conversation, got %d", first.UnreadCount)
	}

	second := conversations[1]
	if second.JobRequestID != jobPaint || second.OtherPartyID != bob {
		t.Errorf("second conversation should be (painting, bob), got (%s, %s)",
			second.JobRequestID, second.OtherPartyID)
	}
	if second.UnreadCount != 0 {
		t.Errorf("read message should not count as unread, got %d", second.UnreadCount)
	}

	third := conversations[2]
	if third.JobRequestID != jobPlumb || third.OtherPartyID != bob {
		t.Errorf("third conversation should be (plumbing, bob), got (%s, %s)",
			third.JobRequestID, third.OtherPartyID)
	}
	if third.LastMessage != "bob about plumbing" {
		t.Errorf("preview mismatch: %q", third.LastMessage)
	}
}

func TestGroupConversationsSameJobTwoParties(t *testing.T) {
	// same job, two different counterparties, must stay separate threads
	messages := []models.Message{
		msg(jobPlumb, alice, caller, "from alice", false, 1),
		msg(jobPlumb, bob, caller, "from bob", false, 2),
	}

	conversations := GroupConversations(caller, messages)
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations for two parties on one job, got %d", len(conversations))
	}
}

func TestGroupConversationsDropsJoblessRows(t *testing.T) {
	messages := []models.Message{
		msg(uuid.Nil, alice, caller, "orphan row", false, 1),
		msg(jobPlumb, alice, caller, "real row", false, 2),
	}

	conversations := GroupConversations(caller, messages)
	if len(conversations) != 1 {
		t.Fatalf("expected jobless rows to be dropped, got %d conversations", len(conversations))
	}
	if conversations[0].LastMessage != "real row" {
		t.Errorf("unexpected preview %q", conversations[0].LastMessage)
	}
}

func TestGroupConversationsDeterministic(t *testing.T) {
	messages := []models.Message{
		msg(jobPlumb, alice, caller, "a", false, 1),
		msg(jobPaint, bob, caller, "b", false, 2),
		msg(jobPlumb, bob, caller, "c", true, 3),
		msg(jobPaint, caller, alice, "d", false, 4),
	}

	base := GroupConversations(caller, messages)
	for i := 0; i < 10; i++ {
		again := GroupConversations(caller, messages)
		if len(again) != len(base) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range base {
			if base[j] != again[j] {
				t.Fatalf("run %d: element %d differs: %+v vs %+v", i, j, base[j], again[j])
			}
		}
	}
}

func TestGroupConversationsEmpty(t *testing.T) {
	if got := GroupConversations(caller, nil); len(got) != 0 {
		t.Errorf("expected empty result for no messages, got %d", len(got))
	}
}

func TestGroupConversationsSentUnreadNotCounted(t *testing.T) {
	// an unread message the caller SENT must not appear in their unread count
	messages := []models.Message{
		msg(jobPlumb, caller, alice, "sent and unread by alice", false, 1),
	}
	conversations := GroupConversations(caller, messages)
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(conversations))
	}
	if conversations[0].UnreadCount != 0 {
		t.Errorf("caller's own unread message counted, got %d", conversations[0].UnreadCount)
	}
}
