package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"pawhub_server/models"
	"pawhub_server/services"
)

// FeedController handles HTTP requests for the personalized feed
type FeedController struct {
	FeedService *services.FeedService
}

// NewFeedController creates a new FeedController instance
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// GetFeed handles GET /api/feed
func (fc *FeedController) GetFeed(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	userID := queryParams.Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	page, err := parseIntParam(queryParams.Get("page"), 0)
	if err != nil {
		http.Error(w, "page must be an integer", http.StatusBadRequest)
		return
	}
	size, err := parseIntParam(queryParams.Get("size"), 10)
	if err != nil {
		http.Error(w, "size must be an integer", http.StatusBadRequest)
		return
	}

	filter := models.FeedFilter{
		SortBy:         queryParams.Get("sortBy"),
		SortDescending: queryParams.Get("sortDesc") != "false", // Descending unless explicitly asked otherwise
		Species:        queryParams.Get("species"),
		PostType:       queryParams.Get("postType"),
		From:           queryParams.Get("from"),
		To:             queryParams.Get("to"),
	}

	feedPage, err := fc.FeedService.GetFeed(r.Context(), userID, filter, page, size)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFilter):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			log.Printf("❌ Failed to build feed for %s: %v", userID, err)
			http.Error(w, "Failed to build feed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(feedPage)
}

func parseIntParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
