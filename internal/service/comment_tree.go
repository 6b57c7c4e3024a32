// Package service holds read-side composition logic that spans multiple
// repositories: the two-level comment tree, review aggregation and the
// fire-and-forget view event.
package service

import (
	"context"
	"log"
	"sync"

	"github.com/courtside/racketdb/internal/model"
)

// CommentStore is the slice of the comment repository the assembler needs.
type CommentStore interface {
	ListTopLevel(ctx context.Context, racketID uint64) ([]model.Comment, error)
	ListReplies(ctx context.Context, parentIDs []uint64) ([]model.Comment, error)
}

// ProfileStore resolves author profiles in bulk. Users missing from the
// returned map are rendered anonymously.
type ProfileStore interface {
	GetBatch(ctx context.Context, userIDs []uint64) (map[uint64]model.AuthorProfile, error)
}

// Reply is a comment nested under a top-level comment, annotated with its
// author. Replies never carry children; the tree is two levels deep.
type Reply struct {
	model.Comment
	Author model.AuthorProfile `json:"author"`
}

// CommentNode is a top-level comment with its author and direct replies.
type CommentNode struct {
	model.Comment
	Author  model.AuthorProfile `json:"author"`
	Replies []Reply             `json:"replies"`
}

// CommentTree assembles the comment tree of a racket from batched reads:
// one query for the roots, one for all replies, one or two for the distinct
// author profiles.
type CommentTree struct {
	Comments CommentStore
	Profiles ProfileStore
}

func NewCommentTree(c CommentStore, p ProfileStore) *CommentTree {
	return &CommentTree{Comments: c, Profiles: p}
}

// ForRacket returns the two-level tree: top-level comments newest first,
// replies oldest first within each thread. Only the root query failing is
// fatal; a failed reply or profile batch degrades to empty replies or
// anonymous authors for the affected nodes.
func (s *CommentTree) ForRacket(ctx context.Context, racketID uint64) ([]CommentNode, error) {
	roots, err := s.Comments.ListTopLevel(ctx, racketID)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return []CommentNode{}, nil
	}

	parentIDs := make([]uint64, len(roots))
	rootAuthors := make([]uint64, 0, len(roots))
	seen := map[uint64]bool{}
	for i, c := range roots {
		parentIDs[i] = c.ID
		if !seen[c.UserID] {
			seen[c.UserID] = true
			rootAuthors = append(rootAuthors, c.UserID)
		}
	}

	// The reply batch and the root-author profile batch are independent;
	// load them concurrently and join before assembling.
	var (
		wg       sync.WaitGroup
		replies  []model.Comment
		profiles map[uint64]model.AuthorProfile
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if replies, err = s.Comments.ListReplies(ctx, parentIDs); err != nil {
			log.Printf("comment tree: reply batch failed for racket %d (degraded): %v", racketID, err)
			replies = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if profiles, err = s.Profiles.GetBatch(ctx, rootAuthors); err != nil {
			log.Printf("comment tree: profile batch failed for racket %d (degraded): %v", racketID, err)
			profiles = nil
		}
	}()
	wg.Wait()

	// Reply authors not already resolved come in a second batch.
	var missing []uint64
	for _, rp := range replies {
		if _, ok := profiles[rp.UserID]; !ok && !seen[rp.UserID] {
			seen[rp.UserID] = true
			missing = append(missing, rp.UserID)
		}
	}
	if len(missing) > 0 {
		extra, err := s.Profiles.GetBatch(ctx, missing)
		if err != nil {
			log.Printf("comment tree: reply-author batch failed for racket %d (degraded): %v", racketID, err)
		}
		if profiles == nil {
			profiles = extra
		} else {
			for id, p := range extra {
				profiles[id] = p
			}
		}
	}

	author := func(userID uint64) model.AuthorProfile {
		if p, ok := profiles[userID]; ok {
			return p
		}
		return model.AnonymousAuthor(userID)
	}

	byParent := map[uint64][]Reply{}
	for _, rp := range replies {
		if rp.ParentCommentID == nil {
			continue
		}
		byParent[*rp.ParentCommentID] = append(byParent[*rp.ParentCommentID],
			Reply{Comment: rp, Author: author(rp.UserID)})
	}

	out := make([]CommentNode, len(roots))
	for i, c := range roots {
		out[i] = CommentNode{
			Comment: c,
			Author:  author(c.UserID),
			Replies: byParent[c.ID],
		}
	}
	return out, nil
}
