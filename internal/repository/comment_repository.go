// This file defines the comment repository. Reads exclude soft-hidden rows;
// mutations are owner-conditional in a single statement so a row can never
// be changed by anyone but its author, regardless of interleaving.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/courtside/racketdb/internal/model"
)

// CommentRepo encapsulates all database queries related to comments.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo constructs a CommentRepo with the provided DB handle.
func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

const commentCols = "id, racket_id, user_id, parent_comment_id, content, is_hidden, created_at, updated_at"

func scanComment(row interface{ Scan(...any) error }) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.RacketID, &c.UserID, &c.ParentCommentID, &c.Content,
		&c.IsHidden, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a comment and returns the stored row. When parentID is
// set, the parent must be a visible top-level comment on the same racket:
// a missing or hidden parent is ErrNotFound, a parent that is itself a
// reply is ErrReplyDepth (one level of nesting only).
func (r *CommentRepo) Create(ctx context.Context, racketID, userID uint64, content string, parentID *uint64) (*model.Comment, error) {
	if parentID != nil {
		var (
			parentRacket uint64
			grandparent  sql.NullInt64
		)
		err := r.db.QueryRowContext(ctx,
			"SELECT racket_id, parent_comment_id FROM comments WHERE id=? AND is_hidden=0 LIMIT 1",
			*parentID).Scan(&parentRacket, &grandparent)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if grandparent.Valid {
			return nil, ErrReplyDepth
		}
		if parentRacket != racketID {
			return nil, ErrNotFound
		}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (racket_id, user_id, content, parent_comment_id) VALUES (?,?,?,?)",
		racketID, userID, content, parentID)
	if err != nil {
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

	c, err := scanComment(r.db.QueryRowContext(ctx,
		"SELECT "+commentCols+" FROM comments WHERE id=?", id))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContent rewrites a comment's content, conditioned on ownership in
// the same statement. A zero-row result is classified afterwards: missing
// or hidden row is ErrNotFound, someone else's row is ErrForbidden.
func (r *CommentRepo) UpdateContent(ctx context.Context, id, userID uint64, content string) (*model.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND user_id=? AND is_hidden=0`,
		content, id, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, r.classifyMiss(ctx, id)
	}

	c, err := scanComment(r.db.QueryRowContext(ctx,
		"SELECT "+commentCols+" FROM comments WHERE id=?", id))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a comment permanently, conditioned on ownership. Replies
// go with it via the ON DELETE CASCADE on parent_comment_id.
func (r *CommentRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM comments WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// classifyMiss distinguishes 404 from 403 after a conditional mutation
// affected nothing. It runs only on the failure path and never gates the
// mutation itself.
func (r *CommentRepo) classifyMiss(ctx context.Context, id uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM comments WHERE id=? AND is_hidden=0 LIMIT 1", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrForbidden
}

// ListTopLevel returns the visible top-level comments of a racket, newest
// first.
func (r *CommentRepo) ListTopLevel(ctx context.Context, racketID uint64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentCols+` FROM comments
		 WHERE racket_id=? AND is_hidden=0 AND parent_comment_id IS NULL
		 ORDER BY created_at DESC, id DESC`, racketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

// ListReplies returns the visible direct replies of the given parents in
// one batch, oldest first.
func (r *CommentRepo) ListReplies(ctx context.Context, parentIDs []uint64) ([]model.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(parentIDs))
	for i, id := range parentIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentCols+` FROM comments
		 WHERE parent_comment_id IN (`+placeholders(len(args))+`) AND is_hidden=0
		 ORDER BY created_at ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

// ListByUser returns the visible comments a user wrote, newest first, for
// the profile page.
func (r *CommentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentCols+` FROM comments
		 WHERE user_id=? AND is_hidden=0
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]model.Comment, error) {
	var out []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
