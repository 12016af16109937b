package services

import (
	"context"
	"fmt"
	"sort"

	"pawhub_server/models"
	"pawhub_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FeedStore is the read surface the feed pipeline needs. Keeping it an
// interface lets every sourcing strategy run against plain in-memory data
// in tests, with no storage mocks involved.
type FeedStore interface {
	// GetUserProfile returns (nil, nil) when the user does not exist
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	// GetProfiles fetches a batch of profiles; missing users are skipped
	GetProfiles(ctx context.Context, userIDs []string) (map[string]*models.UserProfile, error)

	GetBlockedEitherDirection(ctx context.Context, userID string) (map[string]struct{}, error)
	GetFriendIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	GetFolloweeIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	// FindPostsByOwners returns up to limit active posts authored by the
	// given owners, newest first, skipping excluded owners.
	FindPostsByOwners(ctx context.Context, ownerIDs []string, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error)
	// FindPostsByAffinity returns up to limit active posts matching any of
	// the given species, breeds or post types, newest first.
	FindPostsByAffinity(ctx context.Context, species, breeds, postTypes []string, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error)
	// FindMostReacted returns up to limit active posts ordered by reaction
	// count, ties broken by recency.
	FindMostReacted(ctx context.Context, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error)
	// FindPostsSorted backs the non-personalized branch: one filtered,
	// sorted, paginated query with an exact total.
	FindPostsSorted(ctx context.Context, filter models.FeedFilter, exclude map[string]struct{}, page, size int) ([]models.Post, int, error)

	CountReactionsByDimension(ctx context.Context, userID string) (ReactionAggregates, error)
	CountInterestsByDimension(ctx context.Context, userID string) (InterestAggregates, error)
}

// DynamoFeedStore implements FeedStore on top of the DynamoDB wrapper and
// the relationship service's read side.
type DynamoFeedStore struct {
	Dynamo        *DynamoService
	Relationships *RelationshipService
}

func (fs *DynamoFeedStore) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := fs.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (fs *DynamoFeedStore) GetProfiles(ctx context.Context, userIDs []string) (map[string]*models.UserProfile, error) {
	keys := profileKeys(userIDs)
	profiles := make(map[string]*models.UserProfile, len(keys))
	if len(keys) == 0 {
		return profiles, nil
	}

	items, err := fs.Dynamo.BatchGetItems(ctx, models.UserProfilesTable, keys)
	if err != nil {
		return nil, err
	}

	var fetched []models.UserProfile
	if err := attributevalue.UnmarshalListOfMaps(items, &fetched); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}
	for i := range fetched {
		profile := fetched[i]
		profiles[profile.UserID] = &profile
	}
	return profiles, nil
}

// profileKeys builds deduplicated batch-get keys for a list of user IDs
func profileKeys(userIDs []string) []map[string]types.AttributeValue {
	seen := make(map[string]struct{}, len(userIDs))
	keys := make([]map[string]types.AttributeValue, 0, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: id},
		})
	}
	return keys
}

func (fs *DynamoFeedStore) GetBlockedEitherDirection(ctx context.Context, userID string) (map[string]struct{}, error) {
	return fs.Relationships.GetBlockedEitherDirection(ctx, userID)
}

func (fs *DynamoFeedStore) GetFriendIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return fs.Relationships.GetFriendIDs(ctx, userID)
}

func (fs *DynamoFeedStore) GetFolloweeIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return fs.Relationships.GetFolloweeIDs(ctx, userID)
}

func (fs *DynamoFeedStore) FindPostsByOwners(ctx context.Context, ownerIDs []string, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error) {
	// No Limit on the query itself: DynamoDB applies Limit before any
	// filtering and returns GSI order, not newest-first, so a capped fetch
	// could hand back an owner's oldest rows and let closed posts occupy
	// window slots. The window is cut only after the in-code filter+sort.
	var posts []models.Post
	for _, ownerID := range ownerIDs {
		if _, blocked := exclude[ownerID]; blocked {
			continue
		}

		items, err := fs.Dynamo.QueryItemsWithIndex(ctx, models.PostsTable, models.OwnerIndex, "ownerId = :owner",
			map[string]types.AttributeValue{
				":owner": &types.AttributeValueMemberS{Value: ownerID},
			}, nil, 0)
		if err != nil {
			return nil, err
		}

		var ownerPosts []models.Post
		if err := attributevalue.UnmarshalListOfMaps(items, &ownerPosts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
		}
		posts = append(posts, ownerPosts...)
	}

	return newestWithinWindow(posts, filter, limit), nil
}

// newestWithinWindow applies the feed predicates to everything fetched,
// sorts newest first, then truncates to the window.
func newestWithinWindow(posts []models.Post, filter models.FeedFilter, limit int) []models.Post {
	posts = filterPosts(posts, filter)
	sortPostsByCreatedAtDesc(posts)
	return truncatePosts(posts, limit)
}

func (fs *DynamoFeedStore) FindPostsByAffinity(ctx context.Context, species, breeds, postTypes []string, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error) {
	speciesSet := toSet(species)
	breedSet := toSet(breeds)
	typeSet := toSet(postTypes)

	var posts []models.Post
	err := fs.Dynamo.ScanWithFilter(ctx, models.PostsTable, func(item map[string]types.AttributeValue) bool {
		if _, blocked := exclude[utils.ExtractString(item, "ownerId")]; blocked {
			return false
		}
		if _, ok := speciesSet[utils.ExtractString(item, "species")]; ok {
			return true
		}
		if _, ok := breedSet[utils.ExtractString(item, "breed")]; ok {
			return true
		}
		_, ok := typeSet[utils.ExtractString(item, "postType")]
		return ok
	}, &posts)
	if err != nil {
		return nil, err
	}

	return newestWithinWindow(posts, filter, limit), nil
}

func (fs *DynamoFeedStore) FindMostReacted(ctx context.Context, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := fs.Dynamo.ScanWithFilter(ctx, models.PostsTable, func(item map[string]types.AttributeValue) bool {
		_, blocked := exclude[utils.ExtractString(item, "ownerId")]
		return !blocked
	}, &posts)
	if err != nil {
		return nil, err
	}

	posts = filterPosts(posts, filter)
	sortPostsByReactsDesc(posts)
	return truncatePosts(posts, limit), nil
}

func (fs *DynamoFeedStore) FindPostsSorted(ctx context.Context, filter models.FeedFilter, exclude map[string]struct{}, page, size int) ([]models.Post, int, error) {
	var posts []models.Post
	err := fs.Dynamo.ScanWithFilter(ctx, models.PostsTable, func(item map[string]types.AttributeValue) bool {
		_, blocked := exclude[utils.ExtractString(item, "ownerId")]
		return !blocked
	}, &posts)
	if err != nil {
		return nil, 0, err
	}

	posts = filterPosts(posts, filter)

	// DynamoDB scans come back unordered, so the sort happens here
	switch filter.SortBy {
	case models.SortByReacts:
		sortPostsByReactsDesc(posts)
	default:
		sortPostsByCreatedAtDesc(posts)
	}
	if !filter.SortDescending {
		reversePosts(posts)
	}

	total := len(posts)
	start := page * size
	if start >= total {
		return []models.Post{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return posts[start:end], total, nil
}

func (fs *DynamoFeedStore) CountReactionsByDimension(ctx context.Context, userID string) (ReactionAggregates, error) {
	agg := ReactionAggregates{
		BySpecies:  make(map[string]int),
		ByPostType: make(map[string]int),
	}

	items, err := fs.Dynamo.QueryItems(ctx, models.ReactionsTable, "userId = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return agg, fmt.Errorf("failed to fetch reaction history: %w", err)
	}

	var reactions []models.Reaction
	if err := attributevalue.UnmarshalListOfMaps(items, &reactions); err != nil {
		return agg, fmt.Errorf("failed to unmarshal reactions: %w", err)
	}

	for _, r := range reactions {
		agg.Total++
		agg.BySpecies[r.Species]++
		agg.ByPostType[r.PostType]++
	}
	return agg, nil
}

func (fs *DynamoFeedStore) CountInterestsByDimension(ctx context.Context, userID string) (InterestAggregates, error) {
	agg := InterestAggregates{
		BySpecies:  make(map[string]int),
		ByBreed:    make(map[string]int),
		ByPostType: make(map[string]int),
		ByOwner:    make(map[string]int),
	}

	items, err := fs.Dynamo.QueryItems(ctx, models.InterestsTable, "userId = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return agg, fmt.Errorf("failed to fetch interest history: %w", err)
	}

	var interests []models.Interest
	if err := attributevalue.UnmarshalListOfMaps(items, &interests); err != nil {
		return agg, fmt.Errorf("failed to unmarshal interests: %w", err)
	}

	for _, i := range interests {
		// Not-interested marks are a negative signal and stay out of
		// the affinity aggregates
		if i.InterestType != models.InterestTypeInterested {
			continue
		}
		agg.Total++
		agg.BySpecies[i.Species]++
		agg.ByBreed[i.Breed]++
		agg.ByPostType[i.PostType]++
		agg.ByOwner[i.OwnerID]++
	}
	return agg, nil
}

// matchesFeedFilter applies the optional feed predicates plus the
// active-status requirement shared by every candidate source.
func matchesFeedFilter(post models.Post, filter models.FeedFilter) bool {
	if post.Status != models.PostStatusActive {
		return false
	}
	if filter.Species != "" && post.Species != filter.Species {
		return false
	}
	if filter.PostType != "" && post.PostType != filter.PostType {
		return false
	}
	// RFC3339 UTC timestamps compare correctly as strings
	if filter.From != "" && post.CreatedAt < filter.From {
		return false
	}
	if filter.To != "" && post.CreatedAt > filter.To {
		return false
	}
	return true
}

func filterPosts(posts []models.Post, filter models.FeedFilter) []models.Post {
	filtered := posts[:0]
	for _, post := range posts {
		if matchesFeedFilter(post, filter) {
			filtered = append(filtered, post)
		}
	}
	return filtered
}

func sortPostsByCreatedAtDesc(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt != posts[j].CreatedAt {
			return posts[i].CreatedAt > posts[j].CreatedAt
		}
		return posts[i].PostID < posts[j].PostID
	})
}

func sortPostsByReactsDesc(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].ReactCount != posts[j].ReactCount {
			return posts[i].ReactCount > posts[j].ReactCount
		}
		if posts[i].CreatedAt != posts[j].CreatedAt {
			return posts[i].CreatedAt > posts[j].CreatedAt
		}
		return posts[i].PostID < posts[j].PostID
	})
}

func reversePosts(posts []models.Post) {
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
}

func truncatePosts(posts []models.Post, limit int) []models.Post {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
