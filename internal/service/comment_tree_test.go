package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/racketdb/internal/model"
)

type fakeCommentStore struct {
	roots      []model.Comment
	replies    []model.Comment
	rootsErr   error
	repliesErr error
}

func (f *fakeCommentStore) ListTopLevel(_ context.Context, _ uint64) ([]model.Comment, error) {
	return f.roots, f.rootsErr
}

func (f *fakeCommentStore) ListReplies(_ context.Context, _ []uint64) ([]model.Comment, error) {
	return f.replies, f.repliesErr
}

type fakeProfileStore struct {
	profiles map[uint64]model.AuthorProfile
	err      error
}

func (f *fakeProfileStore) GetBatch(_ context.Context, ids []uint64) (map[uint64]model.AuthorProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[uint64]model.AuthorProfile{}
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func at(sec int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, sec, 0, time.UTC)
}

func comment(id, racketID, userID uint64, parent *uint64, created time.Time) model.Comment {
	return model.Comment{ID: id, RacketID: racketID, UserID: userID, ParentCommentID: parent, CreatedAt: created}
}

func pid(v uint64) *uint64 { return &v }

func TestTreeShapeAndOrdering(t *testing.T) {
	// roots come back newest-first from the store, replies oldest-first
	store := &fakeCommentStore{
		roots: []model.Comment{
			comment(2, 9, 20, nil, at(30)),
			comment(1, 9, 10, nil, at(10)),
		},
		replies: []model.Comment{
			comment(3, 9, 30, pid(1), at(11)),
			comment(4, 9, 10, pid(1), at(12)),
		},
	}
	profiles := &fakeProfileStore{profiles: map[uint64]model.AuthorProfile{
		10: {UserID: 10, Username: "rafa", DisplayName: "Rafa"},
		20: {UserID: 20, Username: "iga", DisplayName: "Iga"},
		30: {UserID: 30, Username: "carlos", DisplayName: "Carlos"},
	}}

	tree, err := NewCommentTree(store, profiles).ForRacket(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	// newest root first
	assert.Equal(t, uint64(2), tree[0].ID)
	assert.Empty(t, tree[0].Replies)
	assert.Equal(t, "iga", tree[0].Author.Username)

	require.Len(t, tree[1].Replies, 2)
	// replies oldest first
	assert.Equal(t, uint64(3), tree[1].Replies[0].ID)
	assert.Equal(t, uint64(4), tree[1].Replies[1].ID)
	assert.Equal(t, "carlos", tree[1].Replies[0].Author.Username)
}

func TestTreeMissingProfileRendersAnonymous(t *testing.T) {
	store := &fakeCommentStore{
		roots: []model.Comment{comment(1, 9, 10, nil, at(10))},
		replies: []model.Comment{
			comment(2, 9, 99, pid(1), at(11)), // author 99 has no profile
		},
	}
	profiles := &fakeProfileStore{profiles: map[uint64]model.AuthorProfile{
		10: {UserID: 10, Username: "rafa", DisplayName: "Rafa"},
	}}

	tree, err := NewCommentTree(store, profiles).ForRacket(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "anonymous", tree[0].Replies[0].Author.Username)
	assert.Equal(t, uint64(99), tree[0].Replies[0].Author.UserID)
}

func TestTreeProfileBatchFailureDegrades(t *testing.T) {
	store := &fakeCommentStore{
		roots: []model.Comment{comment(1, 9, 10, nil, at(10))},
	}
	profiles := &fakeProfileStore{err: errors.New("profiles down")}

	tree, err := NewCommentTree(store, profiles).ForRacket(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "anonymous", tree[0].Author.Username)
}

func TestTreeReplyBatchFailureDegrades(t *testing.T) {
	store := &fakeCommentStore{
		roots:      []model.Comment{comment(1, 9, 10, nil, at(10))},
		repliesErr: errors.New("replies down"),
	}
	profiles := &fakeProfileStore{profiles: map[uint64]model.AuthorProfile{
		10: {UserID: 10, Username: "rafa", DisplayName: "Rafa"},
	}}

	tree, err := NewCommentTree(store, profiles).ForRacket(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Replies)
	assert.Equal(t, "rafa", tree[0].Author.Username)
}

func TestTreeRootFailureIsFatal(t *testing.T) {
	store := &fakeCommentStore{rootsErr: errors.New("db down")}
	_, err := NewCommentTree(store, &fakeProfileStore{}).ForRacket(context.Background(), 9)
	assert.Error(t, err)
}

func TestTreeEmpty(t *testing.T) {
	tree, err := NewCommentTree(&fakeCommentStore{}, &fakeProfileStore{}).ForRacket(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, tree)
}
