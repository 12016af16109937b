package routes

import (
	"pawhub_server/controllers"
	"pawhub_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for adoption-inquiry chat under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages/read", controller.HandleMarkMessagesAsRead).Methods("PUT")
}
