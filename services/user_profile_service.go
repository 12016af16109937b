package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"pawhub_server/models"
	"pawhub_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo *DynamoService
}

// AddUserProfile adds a new user profile to DynamoDB
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}

	if item == nil {
		return nil, ErrUserNotFound
	}

	var profile models.UserProfile
	err = attributevalue.UnmarshalMap(item, &profile)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

// GetUserProfileByEmail looks a profile up through the email GSI
func (ups *UserProfileService) GetUserProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	items, err := ups.Dynamo.QueryItemsWithIndex(ctx, models.UserProfilesTable, models.EmailIndex, "email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile by email: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrUserNotFound
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(items[0], &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// GetUserProfileWithDistance fetches a profile and, when a target user is
// provided, attaches the distance between the two users' locations.
func (ups *UserProfileService) GetUserProfileWithDistance(ctx context.Context, userID string, targetUserID *string) (*models.UserProfile, float64, error) {
	profile, err := ups.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	if targetUserID == nil || *targetUserID == "" {
		return profile, 0, nil
	}

	targetProfile, err := ups.GetUserProfile(ctx, *targetUserID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch target profile: %w", err)
	}

	// A zero coordinate means the user never shared a location
	if profile.Latitude == 0 || profile.Longitude == 0 || targetProfile.Latitude == 0 || targetProfile.Longitude == 0 {
		log.Printf("⚠️ One or both profiles missing latitude/longitude, skipping distance calculation")
		return profile, 0, nil
	}

	distance := utils.CalculateDistance(profile.Latitude, profile.Longitude, targetProfile.Latitude, targetProfile.Longitude)
	distance = math.Round(distance*100) / 100 // Round to 2 decimal places

	return profile, distance, nil
}

// UpdateUserProfile updates an existing user profile
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
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

	updatedItem, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedProfile models.UserProfile
	err = attributevalue.UnmarshalMap(updatedItem, &updatedProfile)
	if err != nil {
		return nil, err
	}

	return &updatedProfile, nil
}

// DeleteUserProfile removes a user profile from DynamoDB
func (ups *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	return ups.Dynamo.DeleteItem(ctx, models.UserProfilesTable, key)
}
