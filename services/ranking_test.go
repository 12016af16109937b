package services

import (
	"testing"
	"time"

	"pawhub_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func TestRecencyScoreStrictlyDecreasing(t *testing.T) {
	fresh := recencyScore(ts(testNow.Add(-1*time.Hour)), testNow)
	day := recencyScore(ts(testNow.Add(-24*time.Hour)), testNow)
	week := recencyScore(ts(testNow.Add(-7*24*time.Hour)), testNow)

	assert.Greater(t, fresh, day)
	assert.Greater(t, day, week)

	for _, score := range []float64{fresh, day, week} {
		assert.Greater(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestRecencyScoreEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, recencyScore("not-a-timestamp", testNow))
	assert.Equal(t, 1.0, recencyScore(ts(testNow.Add(time.Hour)), testNow))
	assert.Equal(t, 1.0, recencyScore(ts(testNow), testNow))
}

func TestDistanceScoreCloserIsHigher(t *testing.T) {
	user := &models.UserProfile{UserID: "u1", Latitude: 51.5074, Longitude: -0.1278} // London
	near := &models.UserProfile{UserID: "u2", Latitude: 51.7520, Longitude: -1.2577} // Oxford
	far := &models.UserProfile{UserID: "u3", Latitude: 48.8566, Longitude: 2.3522}   // Paris

	nearScore := distanceScore(user, near)
	farScore := distanceScore(user, far)

	assert.Greater(t, nearScore, farScore)
	assert.Greater(t, farScore, 0.0)
	assert.LessOrEqual(t, nearScore, 1.0)
}

func TestDistanceScoreMissingCoordinatesIsNeutral(t *testing.T) {
	located := &models.UserProfile{UserID: "u1", Latitude: 51.5, Longitude: -0.12}
	unlocated := &models.UserProfile{UserID: "u2"}

	assert.Equal(t, neutralDistanceScore, distanceScore(located, unlocated))
	assert.Equal(t, neutralDistanceScore, distanceScore(unlocated, located))
	assert.Equal(t, neutralDistanceScore, distanceScore(located, nil))
}

func TestSocialWeightOrdering(t *testing.T) {
	friends := map[string]struct{}{"friend": {}}
	followees := map[string]struct{}{"followee": {}, "friend": {}}

	friendWeight := socialWeight("friend", friends, followees)
	followeeWeight := socialWeight("followee", friends, followees)
	strangerWeight := socialWeight("stranger", friends, followees)

	// Friendship must outrank a plain follow, even when both edges exist
	assert.Greater(t, friendWeight, followeeWeight)
	assert.Greater(t, followeeWeight, strangerWeight)
	assert.Equal(t, 0.0, strangerWeight)
}

func TestAffinityScoreZeroHistory(t *testing.T) {
	post := models.Post{PostID: "p1", OwnerID: "o1", Species: "dog", Breed: "husky", PostType: models.PostTypeAdoption}

	score := affinityScore(post, ReactionAggregates{}, InterestAggregates{})
	assert.Equal(t, 0.0, score)
}

func TestAffinityScoreNormalized(t *testing.T) {
	post := models.Post{PostID: "p1", OwnerID: "o1", Species: "dog", Breed: "husky", PostType: models.PostTypeAdoption}

	reacts := ReactionAggregates{
		Total:      4,
		BySpecies:  map[string]int{"dog": 3, "cat": 1},
		ByPostType: map[string]int{models.PostTypeAdoption: 4},
	}
	interests := InterestAggregates{
		Total:      2,
		BySpecies:  map[string]int{"dog": 2},
		ByBreed:    map[string]int{"husky": 1},
		ByPostType: map[string]int{models.PostTypeAdoption: 2},
		ByOwner:    map[string]int{"o1": 1},
	}

	score := affinityScore(post, reacts, interests)
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	// A post matching none of the history dimensions scores zero
	unrelated := models.Post{PostID: "p2", OwnerID: "o2", Species: "parrot", Breed: "macaw", PostType: models.PostTypeBreeding}
	assert.Equal(t, 0.0, affinityScore(unrelated, reacts, interests))
}

func TestScoreMonotonicity(t *testing.T) {
	base := models.FeatureVector{Recency: 0.4, Distance: 0.5, SocialWeight: 0.5, Affinity: 0.2}
	baseScore := Score(base, DefaultScoreWeights)

	bumps := []models.FeatureVector{
		{Recency: 0.9, Distance: 0.5, SocialWeight: 0.5, Affinity: 0.2},
		{Recency: 0.4, Distance: 0.9, SocialWeight: 0.5, Affinity: 0.2},
		{Recency: 0.4, Distance: 0.5, SocialWeight: 1.0, Affinity: 0.2},
		{Recency: 0.4, Distance: 0.5, SocialWeight: 0.5, Affinity: 0.8},
	}
	for _, bumped := range bumps {
		assert.GreaterOrEqual(t, Score(bumped, DefaultScoreWeights), baseScore)
	}
}

func TestRankCandidatesDeterministicTieBreak(t *testing.T) {
	candidates := []models.Candidate{
		{Post: models.Post{PostID: "b"}, Score: 0.5},
		{Post: models.Post{PostID: "a"}, Score: 0.5},
		{Post: models.Post{PostID: "c"}, Score: 0.9},
	}

	RankCandidates(candidates)

	require.Len(t, candidates, 3)
	assert.Equal(t, "c", candidates[0].Post.PostID)
	assert.Equal(t, "a", candidates[1].Post.PostID)
	assert.Equal(t, "b", candidates[2].Post.PostID)
}

func TestRankCandidatesIdempotent(t *testing.T) {
	candidates := []models.Candidate{
		{Post: models.Post{PostID: "p1"}, Score: 0.3},
		{Post: models.Post{PostID: "p2"}, Score: 0.7},
		{Post: models.Post{PostID: "p3"}, Score: 0.7},
	}

	RankCandidates(candidates)
	first := make([]string, len(candidates))
	for i, c := range candidates {
		first[i] = c.Post.PostID
	}

	RankCandidates(candidates)
	for i, c := range candidates {
		assert.Equal(t, first[i], c.Post.PostID)
	}
}
