package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pawhub_server/models"
	"pawhub_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RelationshipService owns the block, follow and friendship edges.
// The feed pipeline only ever uses its read side.
type RelationshipService struct {
	Dynamo *DynamoService
}

// GetBlockedEitherDirection returns every user in a block relationship with
// the given user, regardless of who initiated the block.
func (rs *RelationshipService) GetBlockedEitherDirection(ctx context.Context, userID string) (map[string]struct{}, error) {
	blocked := make(map[string]struct{})

	// Users this user has blocked
	items, err := rs.Dynamo.QueryItems(ctx, models.BlocksTable, "blockerId = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outgoing blocks: %w", err)
	}
	for _, item := range items {
		blocked[utils.ExtractString(item, "blockedId")] = struct{}{}
	}

	// Users who have blocked this user
	items, err = rs.Dynamo.QueryItemsWithIndex(ctx, models.BlocksTable, models.BlockedIndex, "blockedId = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incoming blocks: %w", err)
	}
	for _, item := range items {
		blocked[utils.ExtractString(item, "blockerId")] = struct{}{}
	}

	delete(blocked, "")
	return blocked, nil
}

// IsBlockedEitherDirection reports whether a block exists between two users
func (rs *RelationshipService) IsBlockedEitherDirection(ctx context.Context, userID, otherID string) (bool, error) {
	blocked, err := rs.GetBlockedEitherDirection(ctx, userID)
	if err != nil {
		return false, err
	}
	_, exists := blocked[otherID]
	return exists, nil
}

// GetFriendIDs returns the user's friends. Friendships are stored once in
// canonical order, so both the user1 and user2 sides are queried.
func (rs *RelationshipService) GetFriendIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	friends := make(map[string]struct{})

	items, err := rs.Dynamo.QueryItems(ctx, models.FriendshipsTable, "user1Id = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch friendships: %w", err)
	}
	for _, item := range items {
		friends[utils.ExtractString(item, "user2Id")] = struct{}{}
	}

	items, err = rs.Dynamo.QueryItemsWithIndex(ctx, models.FriendshipsTable, models.Friend2Index, "user2Id = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch friendships: %w", err)
	}
	for _, item := range items {
		friends[utils.ExtractString(item, "user1Id")] = struct{}{}
	}

	delete(friends, "")
	return friends, nil
}

// GetFolloweeIDs returns the set of users this user follows
func (rs *RelationshipService) GetFolloweeIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	followees := make(map[string]struct{})

	items, err := rs.Dynamo.QueryItems(ctx, models.FollowsTable, "followerId = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch follows: %w", err)
	}
	for _, item := range items {
		followees[utils.ExtractString(item, "followedId")] = struct{}{}
	}

	delete(followees, "")
	return followees, nil
}

// GetFollowerIDs returns the set of users following this user, through the
// reverse-direction GSI.
func (rs *RelationshipService) GetFollowerIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	followers := make(map[string]struct{})

	items, err := rs.Dynamo.QueryItemsWithIndex(ctx, models.FollowsTable, models.FollowedIndex, "followedId = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch followers: %w", err)
	}
	for _, item := range items {
		followers[utils.ExtractString(item, "followerId")] = struct{}{}
	}

	delete(followers, "")
	return followers, nil
}

// BlockUser records a block edge and tears down any friendship or follow
// edges between the two users, in both directions.
func (rs *RelationshipService) BlockUser(ctx context.Context, blockerID, blockedID string) error {
	block := models.Block{
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := rs.Dynamo.PutItem(ctx, models.BlocksTable, block); err != nil {
		return fmt.Errorf("failed to save block: %w", err)
	}

	// A block supersedes every friendlier edge between the pair
	if err := rs.RemoveFriend(ctx, blockerID, blockedID); err != nil {
		return err
	}
	if err := rs.UnfollowUser(ctx, blockerID, blockedID); err != nil {
		return err
	}
	if err := rs.UnfollowUser(ctx, blockedID, blockerID); err != nil {
		return err
	}

	log.Printf("✅ %s blocked %s", blockerID, blockedID)
	return nil
}

// UnblockUser removes the block edge owned by blockerID. A block in the
// opposite direction, if any, stays in place.
func (rs *RelationshipService) UnblockUser(ctx context.Context, blockerID, blockedID string) error {
	key := map[string]types.AttributeValue{
		"blockerId": &types.AttributeValueMemberS{Value: blockerID},
		"blockedId": &types.AttributeValueMemberS{Value: blockedID},
	}
	return rs.Dynamo.DeleteItem(ctx, models.BlocksTable, key)
}

// FollowUser records a follow edge
func (rs *RelationshipService) FollowUser(ctx context.Context, followerID, followedID string) error {
	blocked, err := rs.IsBlockedEitherDirection(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if blocked {
		return ErrBlocked
	}

	follow := models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return rs.Dynamo.PutItem(ctx, models.FollowsTable, follow)
}

// UnfollowUser removes a follow edge
func (rs *RelationshipService) UnfollowUser(ctx context.Context, followerID, followedID string) error {
	key := map[string]types.AttributeValue{
		"followerId": &types.AttributeValueMemberS{Value: followerID},
		"followedId": &types.AttributeValueMemberS{Value: followedID},
	}
	return rs.Dynamo.DeleteItem(ctx, models.FollowsTable, key)
}

// AddFriend stores an undirected friendship edge in canonical order
func (rs *RelationshipService) AddFriend(ctx context.Context, userID, otherID string) error {
	blocked, err := rs.IsBlockedEitherDirection(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if blocked {
		return ErrBlocked
	}

	user1, user2 := models.CanonicalPair(userID, otherID)
	friendship := models.Friendship{
		User1ID:   user1,
		User2ID:   user2,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return rs.Dynamo.PutItem(ctx, models.FriendshipsTable, friendship)
}

// RemoveFriend deletes the friendship edge between two users, if present
func (rs *RelationshipService) RemoveFriend(ctx context.Context, userID, otherID string) error {
	user1, user2 := models.CanonicalPair(userID, otherID)
	key := map[string]types.AttributeValue{
		"user1Id": &types.AttributeValueMemberS{Value: user1},
		"user2Id": &types.AttributeValueMemberS{Value: user2},
	}
	return rs.Dynamo.DeleteItem(ctx, models.FriendshipsTable, key)
}
