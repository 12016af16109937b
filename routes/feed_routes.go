package routes

import (
	"pawhub_server/controllers"
	"pawhub_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedRoutes sets up routes for the personalized feed under /api/feed
func RegisterFeedRoutes(r *mux.Router, feedService *services.FeedService) {
	controller := controllers.NewFeedController(feedService)

	feedRouter := r.PathPrefix("/api/feed").Subrouter()
	feedRouter.HandleFunc("", controller.GetFeed).Methods("GET")
}
