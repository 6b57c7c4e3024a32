package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeReviewStats(t *testing.T) {
	stats := ComputeReviewStats([]int{5, 5, 4, 3})

	assert.Equal(t, 4.3, stats.AverageRating) // 17/4 = 4.25 rounds half-up
	assert.Equal(t, 4, stats.TotalReviews)
	assert.Equal(t, map[int]int{5: 2, 4: 1, 3: 1, 2: 0, 1: 0}, stats.RatingDistribution)
}

func TestComputeReviewStatsEmpty(t *testing.T) {
	stats := ComputeReviewStats(nil)

	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Equal(t, 0, stats.TotalReviews)
	assert.Equal(t, map[int]int{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}, stats.RatingDistribution)
}

func TestComputeReviewStatsRoundsHalfUp(t *testing.T) {
	// 4+5 = 9/2 = 4.5 -> 4.5; 1+2+2 = 5/3 = 1.666.. -> 1.7
	assert.Equal(t, 4.5, ComputeReviewStats([]int{4, 5}).AverageRating)
	assert.Equal(t, 1.7, ComputeReviewStats([]int{1, 2, 2}).AverageRating)
	// 1+2 = 3/2 = 1.5 stays 1.5; 3.25 -> 3.3
	assert.Equal(t, 3.3, ComputeReviewStats([]int{3, 3, 3, 4}).AverageRating)
}

func TestComputeReviewStatsSingle(t *testing.T) {
	stats := ComputeReviewStats([]int{5})
	assert.Equal(t, 5.0, stats.AverageRating)
	assert.Equal(t, 1, stats.TotalReviews)
}
