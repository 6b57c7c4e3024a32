package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/repository"
	"github.com/courtside/racketdb/internal/service"
)

type fakeCommentWriter struct {
	createErr error
	updateErr error
	deleteErr error
	created   *model.Comment
}

func (f *fakeCommentWriter) Create(_ context.Context, racketID, userID uint64, content string, parentID *uint64) (*model.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &model.Comment{ID: 1, RacketID: racketID, UserID: userID, Content: content, ParentCommentID: parentID}
	return f.created, nil
}

func (f *fakeCommentWriter) UpdateContent(_ context.Context, id, userID uint64, content string) (*model.Comment, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &model.Comment{ID: id, UserID: userID, Content: content}, nil
}

func (f *fakeCommentWriter) Delete(_ context.Context, id, userID uint64) error {
	return f.deleteErr
}

type fakeTree struct {
	nodes []service.CommentNode
	err   error
}

func (f *fakeTree) ForRacket(_ context.Context, _ uint64) ([]service.CommentNode, error) {
	return f.nodes, f.err
}

func commentCtx(t *testing.T, method, target, body string, uid uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != 0 {
		c.Set("user_id", uid)
	}
	return c, rec
}

func TestCommentCreate(t *testing.T) {
	w := &fakeCommentWriter{}
	h := NewCommentHandler(w, &fakeTree{})

	c, rec := commentCtx(t, http.MethodPost, "/api/comments",
		`{"racket_id": 7, "content": "solid frame"}`, 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, w.created)
	assert.Equal(t, uint64(7), w.created.RacketID)
	assert.Equal(t, uint64(42), w.created.UserID)
}

func TestCommentCreateRejectsShortContent(t *testing.T) {
	h := NewCommentHandler(&fakeCommentWriter{}, &fakeTree{})

	c, rec := commentCtx(t, http.MethodPost, "/api/comments",
		`{"racket_id": 7, "content": " a "}`, 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentCreateRejectsReplyToReply(t *testing.T) {
	h := NewCommentHandler(&fakeCommentWriter{createErr: repository.ErrReplyDepth}, &fakeTree{})

	c, rec := commentCtx(t, http.MethodPost, "/api/comments",
		`{"racket_id": 7, "content": "nested answer", "parent_comment_id": 3}`, 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "reply")
}

func TestCommentCreateUnknownRacket(t *testing.T) {
	h := NewCommentHandler(&fakeCommentWriter{createErr: repository.ErrNotFound}, &fakeTree{})

	c, rec := commentCtx(t, http.MethodPost, "/api/comments",
		`{"racket_id": 9999, "content": "into the void"}`, 42)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentCreateRequiresAuth(t *testing.T) {
	h := NewCommentHandler(&fakeCommentWriter{}, &fakeTree{})

	c, rec := commentCtx(t, http.MethodPost, "/api/comments",
		`{"racket_id": 7, "content": "hello"}`, 0)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCommentUpdateForbiddenForNonOwner(t *testing.T) {
	h := NewCommentHandler(&fakeCommentWriter{updateErr: repository.ErrForbidden}, &fakeTree{})

	c, rec := commentCtx(t, http.MethodPut, "/api/comments/5",
		`{"content": "edited text"}`, 42)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCommentDeleteMissing(t *testing.T) {
	h := NewCommentHandler(&fakeCommentWriter{deleteErr: repository.ErrNotFound}, &fakeTree{})

	c, rec := commentCtx(t, http.MethodDelete, "/api/comments/5", "", 42)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentListForRacket(t *testing.T) {
	tree := &fakeTree{nodes: []service.CommentNode{
		{Comment: model.Comment{ID: 1, Content: "root"}},
	}}
	h := NewCommentHandler(&fakeCommentWriter{}, tree)

	c, rec := commentCtx(t, http.MethodGet, "/api/rackets/7/comments", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.ListForRacket(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"root"`)
}
