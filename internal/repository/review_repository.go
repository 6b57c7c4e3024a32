// This file defines the review repository. The one-review-per-racket-per-user
// rule is enforced by the unique (racket_id, user_id) index, not by a prior
// read, so two concurrent first reviews cannot both land.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/courtside/racketdb/internal/model"
)

// ReviewRepo encapsulates all database queries related to reviews.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

const reviewCols = "id, racket_id, user_id, rating, title, content, play_style, experience_level, usage_duration, is_hidden, created_at, updated_at"

func scanReview(row interface{ Scan(...any) error }) (model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.RacketID, &rv.UserID, &rv.Rating, &rv.Title, &rv.Content,
		&rv.PlayStyle, &rv.ExperienceLevel, &rv.UsageDuration, &rv.IsHidden,
		&rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

// ReviewDraft carries the validated fields of a new review.
type ReviewDraft struct {
	RacketID        uint64
	Rating          int
	Title           *string
	Content         string
	PlayStyle       *string
	ExperienceLevel *string
	UsageDuration   *string
}

// Create inserts a review and returns the stored row. A duplicate
// (racket, user) pair surfaces as ErrDuplicateReview via the unique index.
func (r *ReviewRepo) Create(ctx context.Context, userID uint64, d ReviewDraft) (*model.Review, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (racket_id, user_id, rating, title, content, play_style, experience_level, usage_duration)
		 VALUES (?,?,?,?,?,?,?,?)`,
		d.RacketID, userID, d.Rating, d.Title, d.Content, d.PlayStyle, d.ExperienceLevel, d.UsageDuration)
	if err != nil {
		// 1062 = MySQL duplicate entry against uq_reviews_racket_user
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrDuplicateReview
		}
		// 1452 = foreign key failure, the racket does not exist
		if strings.Contains(strings.ToLower(err.Error()), "1452") {
			return nil, ErrNotFound
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	rv, err := scanReview(r.db.QueryRowContext(ctx,
		"SELECT "+reviewCols+" FROM reviews WHERE id=?", id))
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// ReviewPatch carries the optional fields of a partial update; nil leaves
// the column untouched.
type ReviewPatch struct {
	Rating          *int
	Title           *string
	Content         *string
	PlayStyle       *string
	ExperienceLevel *string
	UsageDuration   *string
}

// Update applies a partial update conditioned on ownership in the same
// statement. A zero-row result is classified afterwards as ErrNotFound or
// ErrForbidden.
func (r *ReviewRepo) Update(ctx context.Context, id, userID uint64, p ReviewPatch) (*model.Review, error) {
	set := []string{"updated_at=CURRENT_TIMESTAMP"}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if p.Rating != nil {
		add("rating", *p.Rating)
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Content != nil {
		add("content", *p.Content)
	}
	if p.PlayStyle != nil {
		add("play_style", *p.PlayStyle)
	}
	if p.ExperienceLevel != nil {
		add("experience_level", *p.ExperienceLevel)
	}
	if p.UsageDuration != nil {
		add("usage_duration", *p.UsageDuration)
	}
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET "+strings.Join(set, ", ")+" WHERE id=? AND user_id=? AND is_hidden=0",
		args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, r.classifyMiss(ctx, id)
	}

	rv, err := scanReview(r.db.QueryRowContext(ctx,
		"SELECT "+reviewCols+" FROM reviews WHERE id=?", id))
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Delete removes a review permanently, conditioned on ownership.
func (r *ReviewRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reviews WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

func (r *ReviewRepo) classifyMiss(ctx context.Context, id uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM reviews WHERE id=? AND is_hidden=0 LIMIT 1", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrForbidden
}

// ListByRacket returns the visible reviews of a racket, newest first.
func (r *ReviewRepo) ListByRacket(ctx context.Context, racketID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewCols+` FROM reviews
		 WHERE racket_id=? AND is_hidden=0
		 ORDER BY created_at DESC, id DESC`, racketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

// ListByUser returns the visible reviews a user wrote, newest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewCols+` FROM reviews
		 WHERE user_id=? AND is_hidden=0
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

// Ratings returns just the rating values of a racket's visible reviews,
// feeding the aggregation service.
func (r *ReviewRepo) Ratings(ctx context.Context, racketID uint64) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT rating FROM reviews WHERE racket_id=? AND is_hidden=0", racketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func collectReviews(rows *sql.Rows) ([]model.Review, error) {
	var out []model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
