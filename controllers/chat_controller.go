package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"pawhub_server/services"
)

// ChatController handles HTTP requests for adoption-inquiry conversations
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleGetMessages fetches messages for a conversation
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversationId")
	limitStr := r.URL.Query().Get("limit")

	if conversationID == "" {
		http.Error(w, `{"error": "conversationId is required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50 // Default to 50 messages
	}

	messages, err := c.ChatService.GetMessagesByConversationID(r.Context(), conversationID, limit)
	if err != nil {
		log.Printf("❌ Error fetching messages: %v", err)
		http.Error(w, `{"error": "Failed to fetch messages"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// HandleSendMessage stores a new message
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string  `json:"conversationId"`
		SenderID       string  `json:"senderId"`
		RecipientID    string  `json:"recipientId"`
		Content        string  `json:"content"`
		ImageURL       *string `json:"imageUrl,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ConversationID == "" || request.SenderID == "" || request.RecipientID == "" {
		http.Error(w, `{"error": "conversationId, senderId and recipientId are required"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.ConversationID, request.SenderID, request.RecipientID, request.Content, request.ImageURL)
	if err != nil {
		if errors.Is(err, services.ErrBlocked) {
			http.Error(w, `{"error": "Messaging is not available between these users"}`, http.StatusForbidden)
			return
		}
		log.Printf("❌ Error sending message: %v", err)
		http.Error(w, `{"error": "Failed to send message"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(message)
}

// HandleMarkMessagesAsRead marks messages received by a user as read
func (c *ChatController) HandleMarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string `json:"conversationId"`
		UserID         string `json:"userId"` // Who is marking messages as read
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ConversationID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.MarkMessagesRead(r.Context(), request.ConversationID, request.UserID); err != nil {
		http.Error(w, `{"error": "Failed to mark messages as read"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Messages marked as read"})
}
