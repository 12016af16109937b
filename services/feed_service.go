package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pawhub_server/models"

	"golang.org/x/sync/errgroup"
)

// FeedService produces a user's personalized feed page. Simple sort keys
// go straight to one filtered, sorted, paginated query; the score sort key
// runs the full sourcing/scoring pipeline.
type FeedService struct {
	Store   FeedStore
	Weights ScoreWeights

	// now is swappable so tests can pin the clock
	now func() time.Time
}

// NewFeedService creates a FeedService with the default weight table
func NewFeedService(store FeedStore) *FeedService {
	return &FeedService{
		Store:   store,
		Weights: DefaultScoreWeights,
		now:     time.Now,
	}
}

// GetFeed returns one ordered page of posts for the requesting user.
// Returns ErrInvalidFilter for malformed paging or an unknown sort key and
// ErrUserNotFound when the requester does not exist. Any storage failure
// aborts the whole request; there is no partial feed.
func (s *FeedService) GetFeed(ctx context.Context, userID string, filter models.FeedFilter, page, size int) (*models.FeedPage, error) {
	if page < 0 || size <= 0 {
		return nil, ErrInvalidFilter
	}
	if filter.SortBy == "" {
		filter.SortBy = models.SortByRecency
	}
	switch filter.SortBy {
	case models.SortByRecency, models.SortByReacts, models.SortByScore:
	default:
		return nil, ErrInvalidFilter
	}

	user, err := s.Store.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	exclude, err := s.Store.GetBlockedEitherDirection(ctx, userID)
	if err != nil {
		return nil, err
	}

	if filter.SortBy != models.SortByScore {
		return s.simpleFeed(ctx, filter, exclude, page, size)
	}
	return s.scoredFeed(ctx, user, filter, exclude, page, size)
}

// simpleFeed delegates to a single database-level sorted query
func (s *FeedService) simpleFeed(ctx context.Context, filter models.FeedFilter, exclude map[string]struct{}, page, size int) (*models.FeedPage, error) {
	posts, total, err := s.Store.FindPostsSorted(ctx, filter, exclude, page, size)
	if err != nil {
		return nil, err
	}
	return buildFeedPage(posts, page, size, total), nil
}

// scoredFeed runs the personalized pipeline: relationship and history state
// is loaded once, the four candidate sources fan out concurrently over a
// window covering everything up to the requested page, and the merged,
// deduplicated set is scored and sliced.
//
// The window is (page+1)*size because no ranking state survives between
// page requests; every page re-sources from the top of the feed.
func (s *FeedService) scoredFeed(ctx context.Context, user *models.UserProfile, filter models.FeedFilter, exclude map[string]struct{}, page, size int) (*models.FeedPage, error) {
	window := (page + 1) * size

	friends, err := s.Store.GetFriendIDs(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	followees, err := s.Store.GetFolloweeIDs(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	reacts, err := s.Store.CountReactionsByDimension(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	interests, err := s.Store.CountInterestsByDimension(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	// Four independent reads, exactly four in flight, joined before the
	// merge. A failure or a cancelled request context aborts all of them.
	var batches [4][]models.Post
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := friendsAuthored(gctx, s.Store, friends, exclude, filter, window)
		batches[0] = posts
		return err
	})
	g.Go(func() error {
		posts, err := followeesAuthored(gctx, s.Store, followees, exclude, filter, window)
		batches[1] = posts
		return err
	})
	g.Go(func() error {
		posts, err := interestMatched(gctx, s.Store, reacts, interests, exclude, filter, window)
		batches[2] = posts
		return err
	})
	g.Go(func() error {
		posts, err := popularFallback(gctx, s.Store, exclude, filter, window)
		batches[3] = posts
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("candidate sourcing failed: %w", err)
	}

	merged := mergeCandidates(batches[0], batches[1], batches[2], batches[3])

	owners, err := s.Store.GetProfiles(ctx, ownerIDs(merged))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	candidates := make([]models.Candidate, 0, len(merged))
	for _, post := range merged {
		features := ComputeFeatures(post, user, owners[post.OwnerID], friends, followees, reacts, interests, now)
		candidates = append(candidates, models.Candidate{
			Post:     post,
			Features: features,
			Score:    Score(features, s.Weights),
		})
	}
	RankCandidates(candidates)

	// Total is bounded by what the sources actually retrieved; scoring the
	// whole corpus per request is deliberately not done.
	total := len(candidates)
	start := page * size
	var posts []models.Post
	if start < total {
		end := start + size
		if end > total {
			end = total
		}
		posts = make([]models.Post, 0, end-start)
		for _, c := range candidates[start:end] {
			posts = append(posts, c.Post)
		}
	}

	log.Printf("Scored feed for %s: %d candidates, page %d/%d", user.UserID, total, page, pageCount(total, size))
	return buildFeedPage(posts, page, size, total), nil
}

func buildFeedPage(posts []models.Post, page, size, total int) *models.FeedPage {
	if posts == nil {
		posts = []models.Post{}
	}
	return &models.FeedPage{
		Posts:         posts,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pageCount(total, size),
	}
}

func pageCount(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func ownerIDs(posts []models.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.OwnerID)
	}
	return ids
}
