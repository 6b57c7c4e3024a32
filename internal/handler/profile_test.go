package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/repository"
)

type fakeProfileStore struct {
	profile   *model.UserProfile
	getErr    error
	updateErr error
	patch     repository.ProfilePatch
}

func (f *fakeProfileStore) Get(_ context.Context, userID uint64) (*model.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.profile != nil {
		return f.profile, nil
	}
	return &model.UserProfile{UserID: userID}, nil
}

func (f *fakeProfileStore) Update(_ context.Context, userID uint64, p repository.ProfilePatch) (*model.UserProfile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.patch = p
	return &model.UserProfile{UserID: userID, Username: p.Username}, nil
}

func TestProfileGet(t *testing.T) {
	name := "courtking"
	h := NewProfileHandler(&fakeProfileStore{profile: &model.UserProfile{UserID: 42, Username: &name}})

	c, rec := commentCtx(t, http.MethodGet, "/api/profile", "", 42)

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"courtking"`)
}

func TestProfileGetRequiresAuth(t *testing.T) {
	h := NewProfileHandler(&fakeProfileStore{})

	c, rec := commentCtx(t, http.MethodGet, "/api/profile", "", 0)

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileUpdate(t *testing.T) {
	store := &fakeProfileStore{}
	h := NewProfileHandler(store)

	c, rec := commentCtx(t, http.MethodPut, "/api/profile",
		`{"username": "courtking", "bio": "weekend warrior"}`, 42)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.patch.Username)
	assert.Equal(t, "courtking", *store.patch.Username)
	require.NotNil(t, store.patch.Bio)
	assert.Nil(t, store.patch.PlayLevel) // absent field stays untouched
}

func TestProfileUpdateUsernameBounds(t *testing.T) {
	h := NewProfileHandler(&fakeProfileStore{})

	for _, username := range []string{"x", strings.Repeat("x", 51)} {
		c, rec := commentCtx(t, http.MethodPut, "/api/profile",
			`{"username": "`+username+`"}`, 42)
		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "username %q", username)
	}

	// two characters is the minimum accepted
	c, rec := commentCtx(t, http.MethodPut, "/api/profile", `{"username": "ab"}`, 42)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileUpdateBioTooLong(t *testing.T) {
	h := NewProfileHandler(&fakeProfileStore{})

	c, rec := commentCtx(t, http.MethodPut, "/api/profile",
		`{"bio": "`+strings.Repeat("b", 501)+`"}`, 42)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileUpdateUsernameTaken(t *testing.T) {
	h := NewProfileHandler(&fakeProfileStore{updateErr: repository.ErrUsernameTaken})

	c, rec := commentCtx(t, http.MethodPut, "/api/profile", `{"username": "taken"}`, 42)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
