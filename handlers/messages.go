// handlers/messages.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var messageServiceInstance *MessageService

func getMessageService() *MessageService {
	if messageServiceInstance == nil {
		messageServiceInstance = NewMessageService()
	}
	return messageServiceInstance
}

// SendMessage appends a chat line
// POST /api/v1/messages
func SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := getMessageService().SendMessage(senderID, req)
	if err != nil {
		log.Printf("❌ Error sending message: %v", err)
		if errors.Is(err, ErrEmptyMessage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// ListConversations returns the caller's derived conversation list
// GET /api/v1/conversations
func ListConversations(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}

	conversations, err := getMessageService().ListConversations(callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(conversations),
		"data":  conversations,
	})
}

func threadVars(w http.ResponseWriter, r *http.Request) (jobID, otherID uuid.UUID, ok bool) {
	vars := mux.Vars(r)
	jobID, err := uuid.Parse(vars["jobId"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	otherID, err = uuid.Parse(vars["otherId"])
	if err != nil {
		http.Error(w, "invalid party id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return jobID, otherID, true
}

// GetThread returns one conversation and marks received messages read
// GET /api/v1/conversations/{jobId}/{otherId}
func GetThread(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	jobID, otherID, ok := threadVars(w, r)
	if !ok {
		return
	}

	messages, err := getMessageService().ListThread(callerID, jobID, otherID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(messages),
		"data":  messages,
	})
}

// DeleteConversation removes a whole thread, both directions
// DELETE /api/v1/conversations/{jobId}/{otherId}
func DeleteConversation(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	jobID, otherID, ok := threadVars(w, r)
	if !ok {
		return
	}

	deleted, err := getMessageService().DeleteConversation(callerID, jobID, otherID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "conversation deleted",
		"deleted": deleted,
	})
}

type editMessageReq struct {
	Body string `json:"message"`
}

// EditMessage rewrites the caller's own message
// PUT /api/v1/messages/{id}
func EditMessage(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	messageID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid message id", http.StatusBadRequest)
		return
	}

	var req editMessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := getMessageService().EditMessage(callerID, messageID, req.Body)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}

// DeleteMessage removes the caller's own message
// DELETE /api/v1/messages/{id}
func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerUUID(w, r)
	if !ok {
		return
	}
	messageID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid message id", http.StatusBadRequest)
		return
	}

	if err := getMessageService().DeleteMessage(callerID, messageID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "message deleted"})
}
