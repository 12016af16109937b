package models

// FeedFilter carries the sort key and optional predicates of a feed request.
// Species, PostType, From and To apply identically under every sort key.
type FeedFilter struct {
	SortBy         string `json:"sortBy"`         // recency, reacts, score
	SortDescending bool   `json:"sortDescending"` // Ignored when SortBy is score
	Species        string `json:"species,omitempty"`
	PostType       string `json:"postType,omitempty"`
	From           string `json:"from,omitempty"` // RFC3339 lower bound on createdAt
	To             string `json:"to,omitempty"`   // RFC3339 upper bound on createdAt
}

// FeedPage is one page of an ordered feed result.
// TotalElements is exact for simple sort keys and best-effort for score,
// where it is bounded by the candidates actually retrieved.
type FeedPage struct {
	Posts         []Post `json:"posts"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
}

// FeatureVector holds the per-candidate ranking features, each in [0,1]
type FeatureVector struct {
	Recency      float64 `json:"recency"`
	Distance     float64 `json:"distance"`
	SocialWeight float64 `json:"socialWeight"`
	Affinity     float64 `json:"affinity"`
}

// Candidate pairs a post with its computed features and final score.
// Candidates only live for the duration of a single feed request.
type Candidate struct {
	Post     Post          `json:"post"`
	Features FeatureVector `json:"features"`
	Score    float64       `json:"score"`
}
