package services

import (
	"math"
	"sort"
	"time"

	"pawhub_server/models"
	"pawhub_server/utils"
)

// ScoreWeights blends the per-candidate features into a single relevance
// score. The values are heuristic constants, not a contract: tests assert
// ordering properties only, never exact scores.
type ScoreWeights struct {
	Recency  float64
	Distance float64
	Social   float64
	Affinity float64
}

// DefaultScoreWeights is the weight table used by the feed service
var DefaultScoreWeights = ScoreWeights{
	Recency:  0.30,
	Distance: 0.15,
	Social:   0.35,
	Affinity: 0.20,
}

const (
	// recencyDecayHours controls how fast the recency feature decays
	recencyDecayHours = 72.0

	// distanceHalfScoreKm is the distance at which the geo feature
	// drops to half of its maximum
	distanceHalfScoreKm = 50.0

	// neutralDistanceScore is used when either side has no coordinates
	neutralDistanceScore = 0.5

	// Social weights; a friend must always outrank a followee
	friendSocialWeight   = 1.0
	followeeSocialWeight = 0.5
)

// ReactionAggregates holds a user's reaction history grouped per dimension
type ReactionAggregates struct {
	Total      int
	BySpecies  map[string]int
	ByPostType map[string]int
}

// InterestAggregates holds a user's interest history grouped per dimension
type InterestAggregates struct {
	Total      int
	BySpecies  map[string]int
	ByBreed    map[string]int
	ByPostType map[string]int
	ByOwner    map[string]int
}

// recencyScore maps the post's age onto (0,1], strictly decreasing with age.
// Unparseable timestamps score zero, future timestamps clamp to one.
func recencyScore(createdAt string, now time.Time) float64 {
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return 0
	}
	ageHours := now.Sub(ts).Hours()
	if ageHours < 0 {
		return 1
	}
	return math.Exp(-ageHours / recencyDecayHours)
}

// distanceScore maps the distance between the requesting user and the post
// owner onto (0,1], closer is higher. A zero coordinate on either side means
// the location is unknown and yields the neutral mid-value.
func distanceScore(user *models.UserProfile, owner *models.UserProfile) float64 {
	if user == nil || owner == nil {
		return neutralDistanceScore
	}
	if user.Latitude == 0 || user.Longitude == 0 || owner.Latitude == 0 || owner.Longitude == 0 {
		return neutralDistanceScore
	}
	km := utils.CalculateDistance(user.Latitude, user.Longitude, owner.Latitude, owner.Longitude)
	return 1 / (1 + km/distanceHalfScoreKm)
}

// socialWeight scores the relationship between the requester and the post
// owner. Friendship wins over a plain follow.
func socialWeight(ownerID string, friends, followees map[string]struct{}) float64 {
	if _, ok := friends[ownerID]; ok {
		return friendSocialWeight
	}
	if _, ok := followees[ownerID]; ok {
		return followeeSocialWeight
	}
	return 0
}

// affinityScore blends six normalized history sub-scores. A user with no
// history gets zero affinity for every candidate.
func affinityScore(post models.Post, reacts ReactionAggregates, interests InterestAggregates) float64 {
	sub := []float64{
		normalizedCount(reacts.BySpecies, post.Species, reacts.Total),
		normalizedCount(reacts.ByPostType, post.PostType, reacts.Total),
		normalizedCount(interests.BySpecies, post.Species, interests.Total),
		normalizedCount(interests.ByBreed, post.Breed, interests.Total),
		normalizedCount(interests.ByPostType, post.PostType, interests.Total),
		normalizedCount(interests.ByOwner, post.OwnerID, interests.Total),
	}

	total := 0.0
	for _, s := range sub {
		total += s
	}
	return total / float64(len(sub))
}

func normalizedCount(counts map[string]int, key string, total int) float64 {
	if total <= 0 || key == "" {
		return 0
	}
	return float64(counts[key]) / float64(total)
}

// ComputeFeatures builds the feature vector for one candidate post. Pure
// function of its inputs; `now` is passed in so a request scores every
// candidate against the same clock.
func ComputeFeatures(
	post models.Post,
	user *models.UserProfile,
	owner *models.UserProfile,
	friends, followees map[string]struct{},
	reacts ReactionAggregates,
	interests InterestAggregates,
	now time.Time,
) models.FeatureVector {
	return models.FeatureVector{
		Recency:      recencyScore(post.CreatedAt, now),
		Distance:     distanceScore(user, owner),
		SocialWeight: socialWeight(post.OwnerID, friends, followees),
		Affinity:     affinityScore(post, reacts, interests),
	}
}

// Score combines a feature vector into the final relevance scalar
func Score(f models.FeatureVector, w ScoreWeights) float64 {
	return w.Recency*f.Recency +
		w.Distance*f.Distance +
		w.Social*f.SocialWeight +
		w.Affinity*f.Affinity
}

// RankCandidates orders candidates descending by score, breaking exact ties
// ascending by post ID so the ordering is total and idempotent.
func RankCandidates(candidates []models.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Post.PostID < candidates[j].Post.PostID
	})
}
