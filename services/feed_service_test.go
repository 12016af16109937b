package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"pawhub_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeedStore serves the feed pipeline from plain in-memory slices and
// records the window each candidate source asked for.
type fakeFeedStore struct {
	mu sync.Mutex

	users     map[string]*models.UserProfile
	posts     []models.Post
	blocked   map[string]struct{}
	friends   map[string]struct{}
	followees map[string]struct{}
	reacts    ReactionAggregates
	interests InterestAggregates

	ownerLimits    []int
	affinityLimits []int
	popularLimits  []int
	sortedCalls    int
}

func newFakeFeedStore() *fakeFeedStore {
	return &fakeFeedStore{
		users:     map[string]*models.UserProfile{},
		blocked:   map[string]struct{}{},
		friends:   map[string]struct{}{},
		followees: map[string]struct{}{},
	}
}

func (f *fakeFeedStore) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return f.users[userID], nil
}

func (f *fakeFeedStore) GetProfiles(ctx context.Context, userIDs []string) (map[string]*models.UserProfile, error) {
	profiles := make(map[string]*models.UserProfile)
	for _, id := range userIDs {
		if p, ok := f.users[id]; ok {
			profiles[id] = p
		}
	}
	return profiles, nil
}

func (f *fakeFeedStore) GetBlockedEitherDirection(ctx context.Context, userID string) (map[string]struct{}, error) {
	return f.blocked, nil
}

func (f *fakeFeedStore) GetFriendIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return f.friends, nil
}

func (f *fakeFeedStore) GetFolloweeIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return f.followees, nil
}

func (f *fakeFeedStore) FindPostsByOwners(ctx context.Context, ownerIDs []string, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error) {
	f.mu.Lock()
	f.ownerLimits = append(f.ownerLimits, limit)
	f.mu.Unlock()

	owners := toSet(ownerIDs)
	var posts []models.Post
	for _, post := range f.posts {
		if _, ok := owners[post.OwnerID]; !ok {
			continue
		}
		if _, blocked := exclude[post.OwnerID]; blocked {
			continue
		}
		if matchesFeedFilter(post, filter) {
			posts = append(posts, post)
		}
	}
	sortPostsByCreatedAtDesc(posts)
	return truncatePosts(posts, limit), nil
}

func (f *fakeFeedStore) FindPostsByAffinity(ctx context.Context, species, breeds, postTypes []string, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error) {
	f.mu.Lock()
	f.affinityLimits = append(f.affinityLimits, limit)
	f.mu.Unlock()

	speciesSet, breedSet, typeSet := toSet(species), toSet(breeds), toSet(postTypes)
	var posts []models.Post
	for _, post := range f.posts {
		if _, blocked := exclude[post.OwnerID]; blocked {
			continue
		}
		_, bySpecies := speciesSet[post.Species]
		_, byBreed := breedSet[post.Breed]
		_, byType := typeSet[post.PostType]
		if (bySpecies || byBreed || byType) && matchesFeedFilter(post, filter) {
			posts = append(posts, post)
		}
	}
	sortPostsByCreatedAtDesc(posts)
	return truncatePosts(posts, limit), nil
}

func (f *fakeFeedStore) FindMostReacted(ctx context.Context, exclude map[string]struct{}, filter models.FeedFilter, limit int) ([]models.Post, error) {
	f.mu.Lock()
	f.popularLimits = append(f.popularLimits, limit)
	f.mu.Unlock()

	var posts []models.Post
	for _, post := range f.posts {
		if _, blocked := exclude[post.OwnerID]; blocked {
			continue
		}
		if matchesFeedFilter(post, filter) {
			posts = append(posts, post)
		}
	}
	sortPostsByReactsDesc(posts)
	return truncatePosts(posts, limit), nil
}

func (f *fakeFeedStore) FindPostsSorted(ctx context.Context, filter models.FeedFilter, exclude map[string]struct{}, page, size int) ([]models.Post, int, error) {
	f.mu.Lock()
	f.sortedCalls++
	f.mu.Unlock()

	var posts []models.Post
	for _, post := range f.posts {
		if _, blocked := exclude[post.OwnerID]; blocked {
			continue
		}
		if matchesFeedFilter(post, filter) {
			posts = append(posts, post)
		}
	}
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

func (f *fakeFeedStore) CountReactionsByDimension(ctx context.Context, userID string) (ReactionAggregates, error) {
	return f.reacts, nil
}

func (f *fakeFeedStore) CountInterestsByDimension(ctx context.Context, userID string) (InterestAggregates, error) {
	return f.interests, nil
}

func testPost(id, owner string, ageHours, reactCount int) models.Post {
	return models.Post{
		PostID:     id,
		OwnerID:    owner,
		PetName:    "Rex",
		Species:    "dog",
		Breed:      "husky",
		PostType:   models.PostTypeAdoption,
		Status:     models.PostStatusActive,
		CreatedAt:  ts(testNow.Add(-time.Duration(ageHours) * time.Hour)),
		ReactCount: reactCount,
	}
}

func newTestFeedService(store *fakeFeedStore) *FeedService {
	svc := NewFeedService(store)
	svc.now = func() time.Time { return testNow }
	return svc
}

func postIDs(page *models.FeedPage) []string {
	ids := make([]string, 0, len(page.Posts))
	for _, p := range page.Posts {
		ids = append(ids, p.PostID)
	}
	return ids
}

func TestGetFeedInvalidPaging(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	svc := newTestFeedService(store)

	_, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{}, -1, 10)
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = svc.GetFeed(context.Background(), "viewer", models.FeedFilter{}, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: "trending"}, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestGetFeedUnknownUser(t *testing.T) {
	store := newFakeFeedStore()
	svc := newTestFeedService(store)

	_, err := svc.GetFeed(context.Background(), "ghost", models.FeedFilter{}, 0, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetFeedDefaultsToRecency(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.posts = []models.Post{
		testPost("old", "a", 48, 50),
		testPost("new", "b", 1, 0),
		testPost("mid", "c", 12, 10),
	}
	svc := newTestFeedService(store)

	page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortDescending: true}, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, store.sortedCalls)
	assert.Empty(t, store.popularLimits, "simple sort keys must not run the sourcing pipeline")
	assert.Equal(t, []string{"new", "mid", "old"}, postIDs(page))
	assert.Equal(t, 3, page.TotalElements)
}

func TestGetFeedReactsSortSkipsScoringPipeline(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.friends["a"] = struct{}{}
	store.posts = []models.Post{
		testPost("quiet", "a", 1, 2),
		testPost("loud", "b", 48, 90),
		testPost("medium", "c", 24, 30),
	}
	svc := newTestFeedService(store)

	page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByReacts, SortDescending: true}, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, store.sortedCalls)
	assert.Empty(t, store.ownerLimits)
	assert.Empty(t, store.affinityLimits)
	assert.Empty(t, store.popularLimits)
	assert.Equal(t, []string{"loud", "medium", "quiet"}, postIDs(page))
}

func TestGetFeedWindowCoversRequestedPage(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.friends["friend"] = struct{}{}
	store.followees["followee"] = struct{}{}
	store.reacts = ReactionAggregates{
		Total:     1,
		BySpecies: map[string]int{"dog": 1},
	}
	svc := newTestFeedService(store)

	// page=1, size=2 must re-source everything covering pages 0 and 1
	_, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 1, 2)
	require.NoError(t, err)

	require.Len(t, store.ownerLimits, 2) // friends + followees
	for _, limit := range store.ownerLimits {
		assert.Equal(t, 4, limit)
	}
	assert.Equal(t, []int{4}, store.affinityLimits)
	assert.Equal(t, []int{4}, store.popularLimits)
}

func TestGetFeedNoHistorySkipsAffinitySource(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.posts = []models.Post{testPost("p1", "stranger", 2, 40)}
	svc := newTestFeedService(store)

	page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 0, 10)
	require.NoError(t, err)

	assert.Empty(t, store.ownerLimits, "no friends or followees, no authored-post queries")
	assert.Empty(t, store.affinityLimits, "no history, no interest-matched query")
	assert.Equal(t, []int{10}, store.popularLimits)
	assert.Equal(t, []string{"p1"}, postIDs(page), "popular fallback keeps a cold-start feed non-empty")
}

func TestGetFeedDeduplicatesAcrossSources(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.users["friend"] = &models.UserProfile{UserID: "friend"}
	store.friends["friend"] = struct{}{}
	// The friend's post is also the most reacted post globally, so it is
	// produced by two sources at once
	store.posts = []models.Post{
		testPost("shared", "friend", 1, 99),
		testPost("other", "stranger", 2, 5),
	}
	svc := newTestFeedService(store)

	page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, page.TotalElements)
	assert.Equal(t, []string{"shared", "other"}, postIDs(page))
}

func TestGetFeedExcludesBlockedOwners(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.blocked["enemy"] = struct{}{}
	store.friends["enemy"] = struct{}{}
	store.posts = []models.Post{
		testPost("theirs", "enemy", 1, 500),
		testPost("fine", "stranger", 2, 3),
	}

	svc := newTestFeedService(store)
	for _, sortBy := range []string{models.SortByRecency, models.SortByReacts, models.SortByScore} {
		page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: sortBy, SortDescending: true}, 0, 10)
		require.NoError(t, err, sortBy)
		assert.Equal(t, []string{"fine"}, postIDs(page), sortBy)
	}
}

func TestGetFeedFriendOutranksStranger(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.users["friend"] = &models.UserProfile{UserID: "friend"}
	store.users["stranger"] = &models.UserProfile{UserID: "stranger"}
	store.friends["friend"] = struct{}{}
	// Same age, same reactions: the social edge has to decide
	store.posts = []models.Post{
		testPost("strangerPost", "stranger", 3, 10),
		testPost("friendPost", "friend", 3, 10),
	}
	svc := newTestFeedService(store)

	page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"friendPost", "strangerPost"}, postIDs(page))
}

func TestGetFeedScoredPagination(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.posts = []models.Post{
		testPost("p1", "a", 1, 50),
		testPost("p2", "b", 2, 40),
		testPost("p3", "c", 3, 30),
		testPost("p4", "d", 4, 20),
		testPost("p5", "e", 5, 10),
	}
	svc := newTestFeedService(store)

	first, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 0, 2)
	require.NoError(t, err)
	assert.Len(t, first.Posts, 2)
	assert.Equal(t, 5, first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)

	last, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Posts, 1)

	beyond, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond.Posts)
	assert.NotNil(t, beyond.Posts, "an exhausted page serializes as [] not null")

	// Pages must not overlap
	for _, p := range last.Posts {
		assert.NotContains(t, postIDs(first), p.PostID)
	}
}

func TestGetFeedDeterministic(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	store.friends["friend"] = struct{}{}
	store.followees["followee"] = struct{}{}
	store.posts = []models.Post{
		testPost("p1", "friend", 1, 5),
		testPost("p2", "followee", 1, 5),
		testPost("p3", "stranger", 1, 5),
		testPost("p4", "stranger", 1, 5),
	}
	svc := newTestFeedService(store)

	first, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 0, 10)
	require.NoError(t, err)
	second, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, postIDs(first), postIDs(second))
}

func TestGetFeedClosedPostsNeverAppear(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	closed := testPost("closed", "a", 1, 100)
	closed.Status = models.PostStatusClosed
	store.posts = []models.Post{closed, testPost("open", "b", 2, 1)}
	svc := newTestFeedService(store)

	page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"open"}, postIDs(page))
}

func TestGetFeedSpeciesFilter(t *testing.T) {
	store := newFakeFeedStore()
	store.users["viewer"] = &models.UserProfile{UserID: "viewer"}
	cat := testPost("cat", "a", 1, 10)
	cat.Species = "cat"
	cat.Breed = "siamese"
	store.posts = []models.Post{cat, testPost("dog", "b", 2, 10)}
	svc := newTestFeedService(store)

	page, err := svc.GetFeed(context.Background(), "viewer", models.FeedFilter{SortBy: models.SortByScore, Species: "cat"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, postIDs(page))
}
