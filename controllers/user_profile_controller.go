package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pawhub_server/models"
	"pawhub_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles HTTP requests for user profiles
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController creates a new UserProfileController instance
func NewUserProfileController(userProfileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService}
}

// AddUserProfile handles creating a new user profile
func (upc *UserProfileController) AddUserProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if profile.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	created, err := upc.UserProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create profile: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetUserProfile handles fetching a profile, optionally with the distance
// to another user when targetUserId is supplied.
func (upc *UserProfileController) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	targetUserID := r.URL.Query().Get("targetUserId")

	var target *string
	if targetUserID != "" {
		target = &targetUserID
	}

	profile, distance, err := upc.UserProfileService.GetUserProfileWithDistance(r.Context(), userID, target)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch profile", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"profile": profile,
	}
	if target != nil {
		response["distanceKm"] = distance
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetUserProfileByEmail handles looking a profile up by email address
func (upc *UserProfileController) GetUserProfileByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	profile, err := upc.UserProfileService.GetUserProfileByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateUserProfile handles a partial profile update
func (upc *UserProfileController) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil || len(updates) == 0 {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	profile, err := upc.UserProfileService.UpdateUserProfile(r.Context(), userID, updates)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to update profile: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// DeleteUserProfile handles deleting a profile
func (upc *UserProfileController) DeleteUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := upc.UserProfileService.DeleteUserProfile(r.Context(), userID); err != nil {
		http.Error(w, "Failed to delete profile", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
