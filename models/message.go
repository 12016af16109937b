package models

// Message represents an adoption-inquiry chat message stored in DynamoDB
type Message struct {
	ConversationID string  `dynamodbav:"conversationId" json:"conversationId"` // ✅ Partition Key
	CreatedAt      string  `dynamodbav:"createdAt" json:"createdAt"`           // ✅ Sort Key (Timestamp)
	MessageID      string  `dynamodbav:"messageId" json:"messageId"`           // ✅ Unique message ID (UUID-based)
	SenderID       string  `dynamodbav:"senderId" json:"senderId"`             // User who sent the message
	Content        string  `dynamodbav:"content,omitempty" json:"content,omitempty"`
	ImageURL       *string `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"` // Optional pet photo attachment
	IsUnread       bool    `dynamodbav:"isUnread" json:"isUnread"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
