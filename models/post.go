package models

// Post represents a pet listing published by a user
type Post struct {
	PostID      string   `dynamodbav:"postId" json:"postId"`         // ✅ Partition Key
	OwnerID     string   `dynamodbav:"ownerId" json:"ownerId"`       // Author of the post, indexed via GSI
	PetName     string   `dynamodbav:"petName,omitempty" json:"petName,omitempty"`
	Species     string   `dynamodbav:"species" json:"species"`       // dog, cat, ...
	Breed       string   `dynamodbav:"breed,omitempty" json:"breed,omitempty"`
	PostType    string   `dynamodbav:"postType" json:"postType"`     // adoption or breeding
	Status      string   `dynamodbav:"status" json:"status"`         // active, closed
	Photos      []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	Description string   `dynamodbav:"description,omitempty" json:"description,omitempty"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"`   // RFC3339 timestamp
	ReactCount  int      `dynamodbav:"reactCount" json:"reactCount"` // Number of users who reacted
	ReactedBy   []string `dynamodbav:"reactedBy,stringset,omitemptyelem" json:"reactedBy,omitempty"`
}

// PostsTable is the DynamoDB table name for pet posts
const PostsTable = "Posts"

// OwnerIndex is the GSI used to list a user's posts (PK: ownerId)
const OwnerIndex = "ownerId-index"
