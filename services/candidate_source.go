package services

import (
	"context"
	"sort"

	"pawhub_server/models"
)

// The four candidate sources are plain functions over the FeedStore read
// surface. Each one is side-effect free, independently callable, and
// returns at most `window` posts sorted by its own key. Sparse data means
// fewer rows, never an error.

// friendsAuthored fetches recent posts authored by the user's friends
func friendsAuthored(ctx context.Context, store FeedStore, friends map[string]struct{}, exclude map[string]struct{}, filter models.FeedFilter, window int) ([]models.Post, error) {
	if len(friends) == 0 {
		return nil, nil
	}
	return store.FindPostsByOwners(ctx, setToSlice(friends), exclude, filter, window)
}

// followeesAuthored fetches recent posts authored by users this user follows
func followeesAuthored(ctx context.Context, store FeedStore, followees map[string]struct{}, exclude map[string]struct{}, filter models.FeedFilter, window int) ([]models.Post, error) {
	if len(followees) == 0 {
		return nil, nil
	}
	return store.FindPostsByOwners(ctx, setToSlice(followees), exclude, filter, window)
}

// interestMatched fetches recent posts matching the user's strongest
// historical dimensions. A user with no history contributes nothing here;
// the popular fallback keeps their feed from being empty.
func interestMatched(ctx context.Context, store FeedStore, reacts ReactionAggregates, interests InterestAggregates, exclude map[string]struct{}, filter models.FeedFilter, window int) ([]models.Post, error) {
	species := topKeys(mergeCounts(reacts.BySpecies, interests.BySpecies), topDimensionsPerKind)
	breeds := topKeys(interests.ByBreed, topDimensionsPerKind)
	postTypes := topKeys(mergeCounts(reacts.ByPostType, interests.ByPostType), topDimensionsPerKind)

	if len(species) == 0 && len(breeds) == 0 && len(postTypes) == 0 {
		return nil, nil
	}
	return store.FindPostsByAffinity(ctx, species, breeds, postTypes, exclude, filter, window)
}

// popularFallback fetches the globally most-reacted posts
func popularFallback(ctx context.Context, store FeedStore, exclude map[string]struct{}, filter models.FeedFilter, window int) ([]models.Post, error) {
	return store.FindMostReacted(ctx, exclude, filter, window)
}

// topDimensionsPerKind caps how many species/breeds/post types the
// interest-matched source asks for
const topDimensionsPerKind = 3

// mergeCandidates merges source batches with set semantics: the first
// source to contribute a post wins, later duplicates are dropped.
func mergeCandidates(batches ...[]models.Post) []models.Post {
	seen := make(map[string]struct{})
	var merged []models.Post
	for _, batch := range batches {
		for _, post := range batch {
			if _, dup := seen[post.PostID]; dup {
				continue
			}
			seen[post.PostID] = struct{}{}
			merged = append(merged, post)
		}
	}
	return merged
}

// topKeys returns up to n keys ordered by descending count, ties broken
// alphabetically so the result is deterministic.
func topKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func mergeCounts(a, b map[string]int) map[string]int {
	merged := make(map[string]int, len(a)+len(b))
	for k, v := range a {
		merged[k] += v
	}
	for k, v := range b {
		merged[k] += v
	}
	return merged
}

func setToSlice(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
