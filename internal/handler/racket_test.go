package handler

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/racketdb/internal/filter"
	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/repository"
)

type fakeRacketStore struct {
	result   repository.SearchResult
	searched filter.Filters
	page     int
	pageSize int

	racket *model.Racket
	getErr error
}

func (f *fakeRacketStore) Search(_ context.Context, fl filter.Filters, page, pageSize int) (repository.SearchResult, error) {
	f.searched = fl
	f.page = page
	f.pageSize = pageSize
	return f.result, nil
}

func (f *fakeRacketStore) GetByID(_ context.Context, _ uint64) (*model.Racket, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.racket, nil
}

func TestRacketListDecodesFiltersAndPaginates(t *testing.T) {
	store := &fakeRacketStore{result: repository.SearchResult{Rackets: []*model.Racket{}, Total: 45}}
	h := &RacketHandler{Rackets: store}

	c, rec := commentCtx(t, http.MethodGet,
		"/api/rackets?head_size_min=95&brands=1,2&page=2&page_size=20", "", 0)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, store.page)
	assert.Equal(t, 20, store.pageSize)
	require.NotNil(t, store.searched.HeadSizeMin)
	assert.Equal(t, 95.0, *store.searched.HeadSizeMin)
	assert.Equal(t, []uint64{1, 2}, store.searched.BrandIDs)
	assert.Contains(t, rec.Body.String(), `"total_pages":3`)
}

func TestRacketListClampsPaging(t *testing.T) {
	store := &fakeRacketStore{}
	h := &RacketHandler{Rackets: store}

	c, _ := commentCtx(t, http.MethodGet, "/api/rackets?page=-3&page_size=9999", "", 0)

	require.NoError(t, h.List(c))
	assert.Equal(t, 1, store.page)
	assert.Equal(t, maxPageSize, store.pageSize)
}

func TestRacketGetPublishesView(t *testing.T) {
	store := &fakeRacketStore{racket: &model.Racket{ID: 7, Name: "Pro Staff 97"}}

	var mu sync.Mutex
	var published []uint64
	done := make(chan struct{})
	h := &RacketHandler{
		Rackets: store,
		publishView: func(id uint64) {
			mu.Lock()
			published = append(published, id)
			mu.Unlock()
			close(done)
		},
	}

	c, rec := commentCtx(t, http.MethodGet, "/api/rackets/7", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pro Staff 97")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("view event was not published")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{7}, published)
}

func TestRacketGetNotFound(t *testing.T) {
	h := &RacketHandler{Rackets: &fakeRacketStore{getErr: repository.ErrNotFound}}

	c, rec := commentCtx(t, http.MethodGet, "/api/rackets/404", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("404")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRacketGetRejectsBadID(t *testing.T) {
	h := &RacketHandler{Rackets: &fakeRacketStore{}}

	c, rec := commentCtx(t, http.MethodGet, "/api/rackets/abc", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
