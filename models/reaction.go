package models

// Reaction records a user's reaction on a post. Species and postType are
// denormalized from the post so per-user history aggregates are one query.
type Reaction struct {
	UserID    string `dynamodbav:"userId" json:"userId"`     // ✅ Partition Key
	PostID    string `dynamodbav:"postId" json:"postId"`     // ✅ Sort Key
	Species   string `dynamodbav:"species" json:"species"`   // Copied from the post
	PostType  string `dynamodbav:"postType" json:"postType"` // Copied from the post
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Interest records an interested / not-interested mark on a post.
// Composite key (userId, postId) means re-marking overwrites the prior row.
type Interest struct {
	UserID       string `dynamodbav:"userId" json:"userId"`             // ✅ Partition Key
	PostID       string `dynamodbav:"postId" json:"postId"`             // ✅ Sort Key
	InterestType string `dynamodbav:"interestType" json:"interestType"` // interested, not-interested
	Species      string `dynamodbav:"species" json:"species"`           // Copied from the post
	Breed        string `dynamodbav:"breed,omitempty" json:"breed,omitempty"`
	PostType     string `dynamodbav:"postType" json:"postType"`
	OwnerID      string `dynamodbav:"ownerId" json:"ownerId"` // Post author
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

// Table names for engagement history
const (
	ReactionsTable = "Reactions"
	InterestsTable = "Interests"
)

// ReactionPostIndex is the GSI for finding all reactions on a post (PK: postId)
const ReactionPostIndex = "postId-index"

// InterestPostIndex is the GSI for finding all interests on a post (PK: postId)
const InterestPostIndex = "postId-index"
