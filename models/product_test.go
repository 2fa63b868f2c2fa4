package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReview(user primitive.ObjectID, rating float64) Review {
	return Review{
		ID:        primitive.NewObjectID(),
		User:      user,
		Name:      "Tester",
		Rating:    rating,
		Comment:   "solid camera",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestAddReviewRecomputesRating(t *testing.T) {
	p := Product{Name: "EOS R6"}
	require.Equal(t, float64(0), p.Rating)
	require.Equal(t, 0, p.NumReviews)

	u := primitive.NewObjectID()
	require.NoError(t, p.AddReview(newReview(u, 4)))

	assert.Equal(t, float64(4), p.Rating)
	assert.Equal(t, 1, p.NumReviews)

	v := primitive.NewObjectID()
	require.NoError(t, p.AddReview(newReview(v, 2)))

	assert.Equal(t, float64(3), p.Rating)
	assert.Equal(t, 2, p.NumReviews)
}

func TestAddReviewRejectsSecondReviewBySameUser(t *testing.T) {
	p := Product{Name: "EOS R6"}
	u := primitive.NewObjectID()

	require.NoError(t, p.AddReview(newReview(u, 4)))
	err := p.AddReview(newReview(u, 5))

	require.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, float64(4), p.Rating)
	assert.Equal(t, 1, p.NumReviews)
}

func TestRatingIsMeanOfReviews(t *testing.T) {
	p := Product{Name: "A7 IV"}
	ratings := []float64{5, 4, 3, 2, 1, 4, 5}
	var sum float64
	for _, r := range ratings {
		require.NoError(t, p.AddReview(newReview(primitive.NewObjectID(), r)))
		sum += r
	}

	assert.InDelta(t, sum/float64(len(ratings)), p.Rating, 0.005)
	assert.Equal(t, len(ratings), p.NumReviews)
}

func TestUpdateReviewRecomputesRating(t *testing.T) {
	p := Product{Name: "X-T5"}
	u := primitive.NewObjectID()
	v := primitive.NewObjectID()
	require.NoError(t, p.AddReview(newReview(u, 2)))
	require.NoError(t, p.AddReview(newReview(v, 4)))

	require.NoError(t, p.UpdateReview(u, 5, "changed my mind"))

	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, "changed my mind", p.FindReview(u).Comment)
}

func TestUpdateReviewMissing(t *testing.T) {
	p := Product{Name: "X-T5"}
	err := p.UpdateReview(primitive.NewObjectID(), 5, "nope")
	require.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	p := Product{Name: "Z6 III"}
	u := primitive.NewObjectID()
	v := primitive.NewObjectID()
	require.NoError(t, p.AddReview(newReview(u, 5)))
	require.NoError(t, p.AddReview(newReview(v, 1)))

	require.NoError(t, p.DeleteReview(v))

	assert.Equal(t, float64(5), p.Rating)
	assert.Equal(t, 1, p.NumReviews)
}

func TestDeleteLastReviewResetsRating(t *testing.T) {
	p := Product{Name: "Z6 III"}
	u := primitive.NewObjectID()
	require.NoError(t, p.AddReview(newReview(u, 5)))

	require.NoError(t, p.DeleteReview(u))

	assert.Equal(t, float64(0), p.Rating)
	assert.Equal(t, 0, p.NumReviews)
	assert.Empty(t, p.Reviews)

	require.ErrorIs(t, p.DeleteReview(u), ErrReviewNotFound)
}
