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

// PostController handles HTTP requests for pet posts
type PostController struct {
	PostService *services.PostService
}

// NewPostController creates a new PostController instance
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{PostService: postService}
}

// CreatePost handles creating a new pet post
func (pc *PostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if post.OwnerID == "" || post.Species == "" || post.PostType == "" {
		http.Error(w, "ownerId, species and postType are required", http.StatusBadRequest)
		return
	}
	if post.PostType != models.PostTypeAdoption && post.PostType != models.PostTypeBreeding {
		http.Error(w, "postType must be adoption or breeding", http.StatusBadRequest)
		return
	}

	created, err := pc.PostService.CreatePost(r.Context(), post)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create post: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetPost handles fetching a single post
func (pc *PostController) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := pc.PostService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// GetPostsByOwner handles listing a user's posts
func (pc *PostController) GetPostsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		http.Error(w, "ownerId is required", http.StatusBadRequest)
		return
	}

	posts, err := pc.PostService.GetPostsByOwner(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"posts": posts,
	})
}

// UpdatePost handles a partial post update
func (pc *PostController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil || len(updates) == 0 {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	post, err := pc.PostService.UpdatePost(r.Context(), postID, updates)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to update post: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// DeletePost handles deleting a post
func (pc *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	if err := pc.PostService.DeletePost(r.Context(), postID); err != nil {
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleReaction handles flipping a user's reaction on a post
func (pc *PostController) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	post, err := pc.PostService.ToggleReaction(r.Context(), payload.UserID, postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to toggle reaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// MarkInterest handles recording an interested / not-interested mark
func (pc *PostController) MarkInterest(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	var payload struct {
		UserID       string `json:"userId"`
		InterestType string `json:"interestType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.UserID == "" || payload.InterestType == "" {
		http.Error(w, "userId and interestType are required", http.StatusBadRequest)
		return
	}

	if err := pc.PostService.MarkInterest(r.Context(), payload.UserID, postID, payload.InterestType); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to mark interest: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Interest recorded"})
}
