package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pawhub_server/services"
)

// RelationshipController handles HTTP requests for blocks, follows and friendships
type RelationshipController struct {
	RelationshipService *services.RelationshipService
}

// NewRelationshipController creates a new RelationshipController instance
func NewRelationshipController(relationshipService *services.RelationshipService) *RelationshipController {
	return &RelationshipController{RelationshipService: relationshipService}
}

type relationshipRequest struct {
	UserID  string `json:"userId"`
	OtherID string `json:"otherId"`
}

func decodeRelationshipRequest(w http.ResponseWriter, r *http.Request) (*relationshipRequest, bool) {
	var req relationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.OtherID == "" {
		http.Error(w, "userId and otherId are required", http.StatusBadRequest)
		return nil, false
	}
	if req.UserID == req.OtherID {
		http.Error(w, "userId and otherId must differ", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (rc *RelationshipController) respond(w http.ResponseWriter, err error, message string) {
	if err != nil {
		if errors.Is(err, services.ErrBlocked) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("%s: %v", "Relationship update failed", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// BlockUser handles POST /api/relationships/block
func (rc *RelationshipController) BlockUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRelationshipRequest(w, r)
	if !ok {
		return
	}
	rc.respond(w, rc.RelationshipService.BlockUser(r.Context(), req.UserID, req.OtherID), "User blocked")
}

// UnblockUser handles POST /api/relationships/unblock
func (rc *RelationshipController) UnblockUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRelationshipRequest(w, r)
	if !ok {
		return
	}
	rc.respond(w, rc.RelationshipService.UnblockUser(r.Context(), req.UserID, req.OtherID), "User unblocked")
}

// FollowUser handles POST /api/relationships/follow
func (rc *RelationshipController) FollowUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRelationshipRequest(w, r)
	if !ok {
		return
	}
	rc.respond(w, rc.RelationshipService.FollowUser(r.Context(), req.UserID, req.OtherID), "User followed")
}

// UnfollowUser handles POST /api/relationships/unfollow
func (rc *RelationshipController) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRelationshipRequest(w, r)
	if !ok {
		return
	}
	rc.respond(w, rc.RelationshipService.UnfollowUser(r.Context(), req.UserID, req.OtherID), "User unfollowed")
}

// AddFriend handles POST /api/relationships/friends
func (rc *RelationshipController) AddFriend(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRelationshipRequest(w, r)
	if !ok {
		return
	}
	rc.respond(w, rc.RelationshipService.AddFriend(r.Context(), req.UserID, req.OtherID), "Friend added")
}

// RemoveFriend handles POST /api/relationships/unfriend
func (rc *RelationshipController) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRelationshipRequest(w, r)
	if !ok {
		return
	}
	rc.respond(w, rc.RelationshipService.RemoveFriend(r.Context(), req.UserID, req.OtherID), "Friend removed")
}

// GetRelationships handles GET /api/relationships?userId=...
func (rc *RelationshipController) GetRelationships(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	friends, err := rc.RelationshipService.GetFriendIDs(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch relationships", http.StatusInternalServerError)
		return
	}
	followees, err := rc.RelationshipService.GetFolloweeIDs(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch relationships", http.StatusInternalServerError)
		return
	}
	followers, err := rc.RelationshipService.GetFollowerIDs(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch relationships", http.StatusInternalServerError)
		return
	}
	blocked, err := rc.RelationshipService.GetBlockedEitherDirection(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch relationships", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"friends":   setKeys(friends),
		"followees": setKeys(followees),
		"followers": setKeys(followers),
		"blocked":   setKeys(blocked),
	})
}

func setKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}
