package services

import (
	"testing"

	"pawhub_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewestWithinWindowFiltersBeforeTruncating(t *testing.T) {
	// An owner's fetch can contain closed posts and more rows than the
	// window; those rows must not occupy window slots or push out the
	// newest active posts.
	closed := testPost("closed", "owner", 2, 0)
	closed.Status = models.PostStatusClosed
	posts := []models.Post{
		testPost("oldest", "owner", 96, 0),
		testPost("older", "owner", 72, 0),
		closed,
		testPost("mid", "owner", 48, 0),
		testPost("newest", "owner", 1, 0),
	}

	window := newestWithinWindow(posts, models.FeedFilter{}, 3)

	require.Len(t, window, 3)
	assert.Equal(t, "newest", window[0].PostID)
	assert.Equal(t, "mid", window[1].PostID)
	assert.Equal(t, "older", window[2].PostID)
	for _, post := range window {
		assert.NotEqual(t, "closed", post.PostID)
	}
}

func TestNewestWithinWindowShortResultIsValid(t *testing.T) {
	posts := []models.Post{testPost("only", "owner", 1, 0)}

	window := newestWithinWindow(posts, models.FeedFilter{}, 5)

	assert.Len(t, window, 1)
	assert.Empty(t, newestWithinWindow(nil, models.FeedFilter{}, 5))
}

func TestProfileKeysDeduplicates(t *testing.T) {
	keys := profileKeys([]string{"a", "b", "a", "c", "b"})

	require.Len(t, keys, 3)
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, extractKeyID(t, key))
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	assert.Empty(t, profileKeys(nil))
}

func extractKeyID(t *testing.T, key map[string]types.AttributeValue) string {
	t.Helper()
	attr, ok := key["userId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	return attr.Value
}
