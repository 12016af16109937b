package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pawhub_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type PostService struct {
	Dynamo *DynamoService
}

// CreatePost stores a new pet post for a user
func (ps *PostService) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	post.PostID = uuid.NewString()
	post.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	post.Status = models.PostStatusActive
	post.ReactCount = 0
	post.ReactedBy = nil

	if err := ps.Dynamo.PutItem(ctx, models.PostsTable, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// GetPost retrieves a post by ID
func (ps *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	key := map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	}

	item, err := ps.Dynamo.GetItem(ctx, models.PostsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(item, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return &post, nil
}

// GetPostsByOwner lists a user's posts, newest first
func (ps *PostService) GetPostsByOwner(ctx context.Context, ownerID string) ([]models.Post, error) {
	items, err := ps.Dynamo.QueryItemsWithIndex(ctx, models.PostsTable, models.OwnerIndex, "ownerId = :owner",
		map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts for owner %s: %w", ownerID, err)
	}

	var posts []models.Post
	if err := attributevalue.UnmarshalListOfMaps(items, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	sortPostsByCreatedAtDesc(posts)
	return posts, nil
}

// UpdatePost applies a partial update to a post
func (ps *PostService) UpdatePost(ctx context.Context, postID string, updates map[string]interface{}) (*models.Post, error) {
	key := map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for k, v := range updates {
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","

		attrValue, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update for '%s': %w", k, err)
		}
		expressionAttributeValues[placeholder] = attrValue
		expressionAttributeNames[attributeName] = k
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ps.Dynamo.UpdateItem(ctx, models.PostsTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(updatedItem, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post together with the reaction and interest rows
// that reference it.
func (ps *PostService) DeletePost(ctx context.Context, postID string) error {
	key := map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	}
	if err := ps.Dynamo.DeleteItem(ctx, models.PostsTable, key); err != nil {
		return err
	}

	if err := ps.deleteEngagementRows(ctx, models.ReactionsTable, models.ReactionPostIndex, postID); err != nil {
		return err
	}
	if err := ps.deleteEngagementRows(ctx, models.InterestsTable, models.InterestPostIndex, postID); err != nil {
		return err
	}

	log.Printf("✅ Post %s deleted with its engagement history", postID)
	return nil
}

// deleteEngagementRows batch-deletes every row of a (userId, postId) keyed
// table that references the given post, found through its postId GSI.
func (ps *PostService) deleteEngagementRows(ctx context.Context, tableName, indexName, postID string) error {
	items, err := ps.Dynamo.QueryItemsWithIndex(ctx, tableName, indexName, "postId = :post",
		map[string]types.AttributeValue{
			":post": &types.AttributeValueMemberS{Value: postID},
		}, nil, 0)
	if err != nil {
		return fmt.Errorf("failed to list '%s' rows for post %s: %w", tableName, postID, err)
	}
	if len(items) == 0 {
		return nil
	}

	writeRequests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"userId": item["userId"],
					"postId": item["postId"],
				},
			},
		})
	}
	return ps.Dynamo.BatchWriteItems(ctx, tableName, writeRequests)
}

// ToggleReaction flips a user's reaction on a post. The post row keeps the
// reacting-user set and the counter; the Reactions table keeps the
// denormalized history row used for affinity aggregates.
func (ps *PostService) ToggleReaction(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := ps.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	alreadyReacted := false
	for _, id := range post.ReactedBy {
		if id == userID {
			alreadyReacted = true
			break
		}
	}

	key := map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	}
	reactionKey := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
		"postId": &types.AttributeValueMemberS{Value: postID},
	}

	if alreadyReacted {
		updated, err := ps.Dynamo.UpdateItem(ctx, models.PostsTable,
			"SET reactCount = reactCount - :one DELETE reactedBy :user", key,
			map[string]types.AttributeValue{
				":one":  &types.AttributeValueMemberN{Value: "1"},
				":user": &types.AttributeValueMemberSS{Value: []string{userID}},
			}, nil)
		if err != nil {
			return nil, err
		}
		if err := ps.Dynamo.DeleteItem(ctx, models.ReactionsTable, reactionKey); err != nil {
			return nil, err
		}

		var result models.Post
		if err := attributevalue.UnmarshalMap(updated, &result); err != nil {
			return nil, err
		}
		log.Printf("✅ Reaction removed: %s on post %s", userID, postID)
		return &result, nil
	}

	updated, err := ps.Dynamo.UpdateItem(ctx, models.PostsTable,
		"SET reactCount = if_not_exists(reactCount, :zero) + :one ADD reactedBy :user", key,
		map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":user": &types.AttributeValueMemberSS{Value: []string{userID}},
		}, nil)
	if err != nil {
		return nil, err
	}

	reaction := models.Reaction{
		UserID:    userID,
		PostID:    postID,
		Species:   post.Species,
		PostType:  post.PostType,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := ps.Dynamo.PutItem(ctx, models.ReactionsTable, reaction); err != nil {
		return nil, err
	}

	var result models.Post
	if err := attributevalue.UnmarshalMap(updated, &result); err != nil {
		return nil, err
	}
	log.Printf("✅ Reaction added: %s on post %s", userID, postID)
	return &result, nil
}

// MarkInterest records an interested / not-interested mark on a post.
// Re-marking overwrites the prior row for the same (user, post) pair.
func (ps *PostService) MarkInterest(ctx context.Context, userID, postID, interestType string) error {
	if interestType != models.InterestTypeInterested && interestType != models.InterestTypeNotInterested {
		return fmt.Errorf("invalid interest type: %s", interestType)
	}

	post, err := ps.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	interest := models.Interest{
		UserID:       userID,
		PostID:       postID,
		InterestType: interestType,
		Species:      post.Species,
		Breed:        post.Breed,
		PostType:     post.PostType,
		OwnerID:      post.OwnerID,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	return ps.Dynamo.PutItem(ctx, models.InterestsTable, interest)
}
