package models

// Block represents a directional block edge between two users.
// "Blocking exists" between A and B when a row exists in either direction.
type Block struct {
	BlockerID string `dynamodbav:"blockerId" json:"blockerId"` // ✅ Partition Key
	BlockedID string `dynamodbav:"blockedId" json:"blockedId"` // ✅ Sort Key
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Follow represents a directional follow edge
type Follow struct {
	FollowerID string `dynamodbav:"followerId" json:"followerId"` // ✅ Partition Key
	FollowedID string `dynamodbav:"followedId" json:"followedId"` // ✅ Sort Key
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// Friendship is an undirected edge stored once, with the lower user ID
// always in user1Id. Lookups must normalize order via CanonicalPair.
type Friendship struct {
	User1ID   string `dynamodbav:"user1Id" json:"user1Id"` // ✅ Partition Key (lower ID)
	User2ID   string `dynamodbav:"user2Id" json:"user2Id"` // ✅ Sort Key (higher ID)
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// CanonicalPair orders two user IDs so undirected friendship edges are
// stored and looked up consistently.
func CanonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// Table names for relationship edges
const (
	BlocksTable      = "Blocks"
	FollowsTable     = "Follows"
	FriendshipsTable = "Friendships"
)

// BlockedIndex is the GSI for the reverse block direction (PK: blockedId)
const BlockedIndex = "blockedId-index"

// FollowedIndex is the GSI for listing a user's followers (PK: followedId)
const FollowedIndex = "followedId-index"

// Friend2Index is the GSI so the higher-ID member can list friendships (PK: user2Id)
const Friend2Index = "user2Id-index"
