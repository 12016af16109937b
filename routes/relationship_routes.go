package routes

import (
	"pawhub_server/controllers"
	"pawhub_server/services"

	"github.com/gorilla/mux"
)

// RegisterRelationshipRoutes sets up routes for blocks, follows and
// friendships under /api/relationships
func RegisterRelationshipRoutes(r *mux.Router, relationshipService *services.RelationshipService) {
	controller := controllers.NewRelationshipController(relationshipService)

	relRouter := r.PathPrefix("/api/relationships").Subrouter()
	relRouter.HandleFunc("", controller.GetRelationships).Methods("GET")
	relRouter.HandleFunc("/block", controller.BlockUser).Methods("POST")
	relRouter.HandleFunc("/unblock", controller.UnblockUser).Methods("POST")
	relRouter.HandleFunc("/follow", controller.FollowUser).Methods("POST")
	relRouter.HandleFunc("/unfollow", controller.UnfollowUser).Methods("POST")
	relRouter.HandleFunc("/friends", controller.AddFriend).Methods("POST")
	relRouter.HandleFunc("/unfriend", controller.RemoveFriend).Methods("POST")
}
