package models

import (
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrReviewNotFound  = errors.New("review not found")
)

// Review lives embedded inside its product. It never exists on its own.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	Name         string             `bson:"name" json:"name" binding:"required"`
	Brand        string             `bson:"brand" json:"brand"`
	Category     primitive.ObjectID `bson:"category" json:"category"`
	Image        string             `bson:"image" json:"image"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	Description  string             `bson:"description" json:"description"`
	Rating       float64            `bson:"rating" json:"rating"`
	NumReviews   int                `bson:"numReviews" json:"numReviews"`
	Price        float64            `bson:"price" json:"price"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Reviews      []Review           `bson:"reviews" json:"reviews"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindReview returns the review written by the given user, if any.
func (p *Product) FindReview(userID primitive.ObjectID) *Review {
	for i := range p.Reviews {
		if p.Reviews[i].User == userID {
			return &p.Reviews[i]
		}
	}
	return nil
}

// AddReview appends a review and refreshes the derived rating fields.
// A user gets at most one review per product.
func (p *Product) AddReview(review Review) error {
	if p.FindReview(review.User) != nil {
		return ErrAlreadyReviewed
	}
	p.Reviews = append(p.Reviews, review)
	p.recomputeRating()
	return nil
}

// UpdateReview replaces the rating and comment of the user's existing review.
func (p *Product) UpdateReview(userID primitive.ObjectID, rating float64, comment string) error {
	review := p.FindReview(userID)
	if review == nil {
		return ErrReviewNotFound
	}
	review.Rating = rating
	review.Comment = comment
	review.UpdatedAt = time.Now()
	p.recomputeRating()
	return nil
}

// DeleteReview removes the user's review. Deleting the last review resets
// the rating to 0.
func (p *Product) DeleteReview(userID primitive.ObjectID) error {
	for i := range p.Reviews {
		if p.Reviews[i].User == userID {
			p.Reviews = append(p.Reviews[:i], p.Reviews[i+1:]...)
			p.recomputeRating()
			return nil
		}
	}
	return ErrReviewNotFound
}

func (p *Product) recomputeRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = round2(sum / float64(p.NumReviews))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
