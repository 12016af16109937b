package routes

import (
	"pawhub_server/controllers"
	"pawhub_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profiles under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.AddUserProfile).Methods("POST")
	profileRouter.HandleFunc("/lookup", controller.GetUserProfileByEmail).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.GetUserProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.UpdateUserProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}", controller.DeleteUserProfile).Methods("DELETE")
}
