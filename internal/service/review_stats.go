package service

import (
	"context"
	"math"

	"github.com/courtside/racketdb/internal/model"
)

// RatingStore is the slice of the review repository the aggregator needs.
type RatingStore interface {
	Ratings(ctx context.Context, racketID uint64) ([]int, error)
}

// ReviewStats computes per-racket rating aggregates.
type ReviewStats struct {
	Reviews RatingStore
}

func NewReviewStats(r RatingStore) *ReviewStats {
	return &ReviewStats{Reviews: r}
}

// ForRacket loads the visible ratings of a racket and aggregates them.
func (s *ReviewStats) ForRacket(ctx context.Context, racketID uint64) (model.ReviewStats, error) {
	ratings, err := s.Reviews.Ratings(ctx, racketID)
	if err != nil {
		return model.ReviewStats{}, err
	}
	return ComputeReviewStats(ratings), nil
}

// ComputeReviewStats aggregates a slice of 1–5 ratings: arithmetic mean
// rounded half-up to one decimal place, plus a count per rating value.
// Zero ratings yields average 0 and an all-zero distribution.
func ComputeReviewStats(ratings []int) model.ReviewStats {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sum := 0
	for _, r := range ratings {
		if r >= 1 && r <= 5 {
			dist[r]++
			sum += r
		}
	}
	stats := model.ReviewStats{
		TotalReviews:       len(ratings),
		RatingDistribution: dist,
	}
	if len(ratings) > 0 {
		avg := float64(sum) / float64(len(ratings))
		stats.AverageRating = math.Floor(avg*10+0.5) / 10
	}
	return stats
}
