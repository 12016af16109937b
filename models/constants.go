package models

// ✅ Post Types (adoption, breeding)
const (
	PostTypeAdoption = "adoption"
	PostTypeBreeding = "breeding"
)

// ✅ Post Statuses
const (
	PostStatusActive = "active"
	PostStatusClosed = "closed"
)

// ✅ Interest Types
const (
	InterestTypeInterested    = "interested"
	InterestTypeNotInterested = "not-interested"
)

// ✅ Feed Sort Keys
const (
	SortByRecency = "recency"
	SortByReacts  = "reacts"
	SortByScore   = "score"
)
