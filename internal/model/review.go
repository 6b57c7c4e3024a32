package model

import "time"

// Review mirrors the 'reviews' table. The (racket_id, user_id) pair is
// unique: a user writes at most one review per racket. Rating is an integer
// between 1 and 5 inclusive, enforced at the API boundary.
type Review struct {
	ID              uint64    `json:"id"`               // reviews.id
	RacketID        uint64    `json:"racket_id"`        // reviews.racket_id
	UserID          uint64    `json:"user_id"`          // reviews.user_id
	Rating          int       `json:"rating"`           // reviews.rating (1..5)
	Title           *string   `json:"title"`            // reviews.title (nullable)
	Content         string    `json:"content"`          // reviews.content
	PlayStyle       *string   `json:"play_style"`       // reviews.play_style (nullable)
	ExperienceLevel *string   `json:"experience_level"` // reviews.experience_level (nullable)
	UsageDuration   *string   `json:"usage_duration"`   // reviews.usage_duration (nullable)
	IsHidden        bool      `json:"-"`                // reviews.is_hidden
	CreatedAt       time.Time `json:"created_at"`       // reviews.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // reviews.updated_at
}

// ReviewStats aggregates the visible reviews of one racket.
// AverageRating is rounded half-up to one decimal place; with zero reviews
// every field is zero, which is a valid (empty) result rather than an error.
type ReviewStats struct {
	AverageRating      float64     `json:"average_rating"`
	TotalReviews       int         `json:"total_reviews"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
