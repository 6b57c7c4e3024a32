package model

import "time"

// Comment mirrors the 'comments' table. ParentCommentID is nil for a
// top-level comment and points at a top-level comment for a reply; the
// write path rejects deeper chains so the tree is at most two levels.
//
// IsHidden is a soft-delete flag: hidden rows are excluded from every read
// but never physically removed by moderation.
type Comment struct {
	ID              uint64    `json:"id"`                // comments.id
	RacketID        uint64    `json:"racket_id"`         // comments.racket_id
	UserID          uint64    `json:"user_id"`           // comments.user_id
	ParentCommentID *uint64   `json:"parent_comment_id"` // comments.parent_comment_id (nullable)
	Content         string    `json:"content"`           // comments.content
	IsHidden        bool      `json:"-"`                 // comments.is_hidden
	CreatedAt       time.Time `json:"created_at"`        // comments.created_at
	UpdatedAt       time.Time `json:"updated_at"`        // comments.updated_at
}
