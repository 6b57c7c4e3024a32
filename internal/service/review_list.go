package service

import (
	"context"
	"log"

	"github.com/courtside/racketdb/internal/model"
)

// ReviewStore is the slice of the review repository the list composer needs.
type ReviewStore interface {
	ListByRacket(ctx context.Context, racketID uint64) ([]model.Review, error)
}

// ReviewWithAuthor is a review annotated with its author's display profile.
type ReviewWithAuthor struct {
	model.Review
	Author model.AuthorProfile `json:"author"`
}

// ReviewList composes a racket's reviews with one batched author lookup.
type ReviewList struct {
	Reviews  ReviewStore
	Profiles ProfileStore
}

func NewReviewList(r ReviewStore, p ProfileStore) *ReviewList {
	return &ReviewList{Reviews: r, Profiles: p}
}

// ForRacket returns the visible reviews newest first, each with its author.
// A failed profile batch degrades every author to anonymous; only the
// review query failing is fatal.
func (s *ReviewList) ForRacket(ctx context.Context, racketID uint64) ([]ReviewWithAuthor, error) {
	reviews, err := s.Reviews.ListByRacket(ctx, racketID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return []ReviewWithAuthor{}, nil
	}

	var ids []uint64
	seen := map[uint64]bool{}
	for _, rv := range reviews {
		if !seen[rv.UserID] {
			seen[rv.UserID] = true
			ids = append(ids, rv.UserID)
		}
	}
	profiles, err := s.Profiles.GetBatch(ctx, ids)
	if err != nil {
		log.Printf("review list: profile batch failed for racket %d (degraded): %v", racketID, err)
		profiles = nil
	}

	out := make([]ReviewWithAuthor, len(reviews))
	for i, rv := range reviews {
		author, ok := profiles[rv.UserID]
		if !ok {
			author = model.AnonymousAuthor(rv.UserID)
		}
		out[i] = ReviewWithAuthor{Review: rv, Author: author}
	}
	return out, nil
}
