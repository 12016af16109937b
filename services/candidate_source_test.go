package services

import (
	"context"
	"testing"

	"pawhub_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCandidatesFirstSourceWins(t *testing.T) {
	a := []models.Post{{PostID: "p1", OwnerID: "first"}, {PostID: "p2"}}
	b := []models.Post{{PostID: "p1", OwnerID: "second"}, {PostID: "p3"}}

	merged := mergeCandidates(a, b)

	require.Len(t, merged, 3)
	assert.Equal(t, "p1", merged[0].PostID)
	assert.Equal(t, "first", merged[0].OwnerID)
	assert.Equal(t, "p2", merged[1].PostID)
	assert.Equal(t, "p3", merged[2].PostID)
}

func TestMergeCandidatesEmptyBatches(t *testing.T) {
	assert.Empty(t, mergeCandidates(nil, nil, nil))
	assert.Len(t, mergeCandidates(nil, []models.Post{{PostID: "p1"}}), 1)
}

func TestTopKeysOrderingAndCap(t *testing.T) {
	counts := map[string]int{"dog": 5, "cat": 5, "parrot": 9, "rabbit": 1, "": 7}

	keys := topKeys(counts, 3)

	// Descending by count, alphabetical on ties, empty keys dropped
	assert.Equal(t, []string{"parrot", "cat", "dog"}, keys)
}

func TestTopKeysFewerThanCap(t *testing.T) {
	assert.Equal(t, []string{"dog"}, topKeys(map[string]int{"dog": 2}, 3))
	assert.Empty(t, topKeys(map[string]int{}, 3))
}

func TestMergeCountsSumsOverlap(t *testing.T) {
	merged := mergeCounts(map[string]int{"dog": 2, "cat": 1}, map[string]int{"dog": 3, "parrot": 1})

	assert.Equal(t, 5, merged["dog"])
	assert.Equal(t, 1, merged["cat"])
	assert.Equal(t, 1, merged["parrot"])
}

func TestFriendsAuthoredNoFriendsSkipsStore(t *testing.T) {
	store := newFakeFeedStore()

	posts, err := friendsAuthored(context.Background(), store, nil, nil, models.FeedFilter{}, 10)

	require.NoError(t, err)
	assert.Nil(t, posts)
	assert.Empty(t, store.ownerLimits)
}

func TestInterestMatchedNoHistorySkipsStore(t *testing.T) {
	store := newFakeFeedStore()

	posts, err := interestMatched(context.Background(), store, ReactionAggregates{}, InterestAggregates{}, nil, models.FeedFilter{}, 10)

	require.NoError(t, err)
	assert.Nil(t, posts)
	assert.Empty(t, store.affinityLimits)
}

func TestInterestMatchedQueriesTopDimensions(t *testing.T) {
	store := newFakeFeedStore()
	store.posts = []models.Post{
		testPost("dogPost", "a", 1, 0),
	}
	reacts := ReactionAggregates{
		Total:     3,
		BySpecies: map[string]int{"dog": 3},
	}

	posts, err := interestMatched(context.Background(), store, reacts, InterestAggregates{}, nil, models.FeedFilter{}, 10)

	require.NoError(t, err)
	assert.Equal(t, []int{10}, store.affinityLimits)
	require.Len(t, posts, 1)
	assert.Equal(t, "dogPost", posts[0].PostID)
}

func TestSetToSliceSorted(t *testing.T) {
	ids := setToSlice(map[string]struct{}{"c": {}, "a": {}, "b": {}})
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
