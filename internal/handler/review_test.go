package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/repository"
	"github.com/courtside/racketdb/internal/service"
)

type fakeReviewWriter struct {
	createErr error
	updateErr error
	deleteErr error
	draft     repository.ReviewDraft
	patch     repository.ReviewPatch
}

func (f *fakeReviewWriter) Create(_ context.Context, userID uint64, d repository.ReviewDraft) (*model.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.draft = d
	return &model.Review{ID: 1, RacketID: d.RacketID, UserID: userID, Rating: d.Rating, Content: d.Content}, nil
}

func (f *fakeReviewWriter) Update(_ context.Context, id, userID uint64, p repository.ReviewPatch) (*model.Review, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.patch = p
	return &model.Review{ID: id, UserID: userID}, nil
}

func (f *fakeReviewWriter) Delete(_ context.Context, id, userID uint64) error {
	return f.deleteErr
}

type fakeReviewList struct {
	rows []service.ReviewWithAuthor
	err  error
}

func (f *fakeReviewList) ForRacket(_ context.Context, _ uint64) ([]service.ReviewWithAuthor, error) {
	return f.rows, f.err
}

type fakeReviewStats struct {
	stats model.ReviewStats
	err   error
}

func (f *fakeReviewStats) ForRacket(_ context.Context, _ uint64) (model.ReviewStats, error) {
	return f.stats, f.err
}

func newReviewHandler(w *fakeReviewWriter) *ReviewHandler {
	return NewReviewHandler(w, &fakeReviewList{}, &fakeReviewStats{})
}

func TestReviewCreate(t *testing.T) {
	w := &fakeReviewWriter{}
	h := newReviewHandler(w)

	c, rec := commentCtx(t, http.MethodPost, "/api/reviews",
		`{"racket_id": 7, "rating": 4, "content": "plays beautifully"}`, 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4, w.draft.Rating)
}

func TestReviewCreateContentBoundary(t *testing.T) {
	h := newReviewHandler(&fakeReviewWriter{})

	// nine characters: rejected
	c, rec := commentCtx(t, http.MethodPost, "/api/reviews",
		`{"racket_id": 7, "rating": 4, "content": "123456789"}`, 42)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// ten characters: accepted
	c, rec = commentCtx(t, http.MethodPost, "/api/reviews",
		`{"racket_id": 7, "rating": 4, "content": "1234567890"}`, 42)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReviewCreateRatingBounds(t *testing.T) {
	h := newReviewHandler(&fakeReviewWriter{})

	for _, rating := range []string{"0", "6", "-1"} {
		c, rec := commentCtx(t, http.MethodPost, "/api/reviews",
			`{"racket_id": 7, "rating": `+rating+`, "content": "long enough text"}`, 42)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %s", rating)
	}
}

func TestReviewCreateDuplicate(t *testing.T) {
	h := newReviewHandler(&fakeReviewWriter{createErr: repository.ErrDuplicateReview})

	c, rec := commentCtx(t, http.MethodPost, "/api/reviews",
		`{"racket_id": 7, "rating": 4, "content": "second opinion here"}`, 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReviewUpdatePartial(t *testing.T) {
	w := &fakeReviewWriter{}
	h := newReviewHandler(w)

	c, rec := commentCtx(t, http.MethodPut, "/api/reviews/5", `{"rating": 2}`, 42)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, w.patch.Rating)
	assert.Equal(t, 2, *w.patch.Rating)
	assert.Nil(t, w.patch.Content)
}

func TestReviewUpdateForbidden(t *testing.T) {
	h := newReviewHandler(&fakeReviewWriter{updateErr: repository.ErrForbidden})

	c, rec := commentCtx(t, http.MethodPut, "/api/reviews/5", `{"rating": 2}`, 42)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReviewDeleteMissing(t *testing.T) {
	h := newReviewHandler(&fakeReviewWriter{deleteErr: repository.ErrNotFound})

	c, rec := commentCtx(t, http.MethodDelete, "/api/reviews/5", "", 42)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewListForRacketIncludesStats(t *testing.T) {
	list := &fakeReviewList{rows: []service.ReviewWithAuthor{
		{Review: model.Review{ID: 1, Rating: 5, Content: "the one to beat"}},
	}}
	stats := &fakeReviewStats{stats: service.ComputeReviewStats([]int{5})}
	h := NewReviewHandler(&fakeReviewWriter{}, list, stats)

	c, rec := commentCtx(t, http.MethodGet, "/api/rackets/7/reviews", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.ListForRacket(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"average_rating":5`)
	assert.Contains(t, rec.Body.String(), `"the one to beat"`)
}
