// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting SQL
// errors. For example, ErrForbidden indicates that the current user tried to
// mutate a resource owned by someone else, while ErrDuplicateReview signals
// the one-review-per-racket-per-user constraint.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no visible row. A row that
// exists but is inactive or soft-hidden is reported identically to a row
// that never existed. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicateReview is returned when a user already has a review for the
// racket. Handlers translate this into HTTP 409.
var ErrDuplicateReview = errors.New("review already exists for this racket")

// ErrReplyDepth is returned when a comment targets a parent that is itself
// a reply; only one level of nesting is materialized. Handlers translate
// this into HTTP 400.
var ErrReplyDepth = errors.New("replies to replies are not allowed")

// ErrUsernameTaken is returned when a profile update collides with another
// account's username. Handlers translate this into HTTP 409.
var ErrUsernameTaken = errors.New("username already taken")
