package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"pawhub_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService handles adoption-inquiry conversations between a post owner
// and an interested user.
type ChatService struct {
	Dynamo        *DynamoService
	Relationships *RelationshipService
}

// GetMessagesByConversationID fetches messages for a conversation sorted by createdAt
func (s *ChatService) GetMessagesByConversationID(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	keyCondition := "#conversationId = :conversationId"
	expressionValues := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	expressionNames := map[string]string{
		"#conversationId": "conversationId", // Avoids DynamoDB reserved word conflicts
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit))
	if err != nil {
		log.Printf("❌ Error querying messages: %v", err)
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	err = attributevalue.UnmarshalListOfMaps(items, &messages)
	if err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// Newest first; RFC3339 strings sort correctly
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt > messages[j].CreatedAt
	})

	return messages, nil
}

// SendMessage stores a new message. Sending is refused when a block exists
// between sender and recipient in either direction.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, senderID, recipientID, content string, imageURL *string) (*models.Message, error) {
	blocked, err := s.Relationships.IsBlockedEitherDirection(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	message := models.Message{
		ConversationID: conversationID,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		MessageID:      uuid.NewString(),
		SenderID:       senderID,
		Content:        content,
		ImageURL:       imageURL,
		IsUnread:       true,
	}

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	log.Printf("✅ Message %s stored for conversation %s", message.MessageID, conversationID)
	return &message, nil
}

// MarkMessagesRead flags every unread message in a conversation that was
// not sent by the reader.
func (s *ChatService) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	messages, err := s.GetMessagesByConversationID(ctx, conversationID, 0)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if !msg.IsUnread || msg.SenderID == readerID {
			continue
		}
		key := map[string]types.AttributeValue{
			"conversationId": &types.AttributeValueMemberS{Value: msg.ConversationID},
			"createdAt":      &types.AttributeValueMemberS{Value: msg.CreatedAt},
		}
		_, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, "SET isUnread = :read", key,
			map[string]types.AttributeValue{
				":read": &types.AttributeValueMemberBOOL{Value: false},
			}, nil)
		if err != nil {
			return fmt.Errorf("failed to mark message %s read: %w", msg.MessageID, err)
		}
	}
	return nil
}
