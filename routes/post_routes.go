package routes

import (
	"pawhub_server/controllers"
	"pawhub_server/services"

	"github.com/gorilla/mux"
)

// RegisterPostRoutes sets up routes for pet posts under /api/posts
func RegisterPostRoutes(r *mux.Router, postService *services.PostService) {
	controller := controllers.NewPostController(postService)

	postRouter := r.PathPrefix("/api/posts").Subrouter()
	postRouter.HandleFunc("", controller.CreatePost).Methods("POST")
	postRouter.HandleFunc("", controller.GetPostsByOwner).Methods("GET") // Handles /api/posts?ownerId=...
	postRouter.HandleFunc("/{postId}", controller.GetPost).Methods("GET")
	postRouter.HandleFunc("/{postId}", controller.UpdatePost).Methods("PATCH")
	postRouter.HandleFunc("/{postId}", controller.DeletePost).Methods("DELETE")
	postRouter.HandleFunc("/{postId}/react", controller.ToggleReaction).Methods("POST")
	postRouter.HandleFunc("/{postId}/interest", controller.MarkInterest).Methods("POST")
}
