package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/repository"
)

// ProfileStore is the slice of the profile repository the endpoints need.
type ProfileStore interface {
	Get(ctx context.Context, userID uint64) (*model.UserProfile, error)
	Update(ctx context.Context, userID uint64, p repository.ProfilePatch) (*model.UserProfile, error)
}

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	Profiles ProfileStore
}

func NewProfileHandler(p ProfileStore) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

type updateProfileReq struct {
	Username        *string `json:"username"`
	DisplayName     *string `json:"display_name"`
	Bio             *string `json:"bio"`
	PlayLevel       *string `json:"play_level"`
	FavoriteBrandID *uint64 `json:"favorite_brand_id"`
	AvatarURL       *string `json:"avatar_url"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Profiles.Get(ctx, uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		c.Logger().Errorf("profile %d load failed: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}

// Update handles PUT /api/profile.  Absent fields keep their stored value;
// an explicit empty string clears the field.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if n := len([]rune(trimmed)); n < 2 || n > 50 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be 2-50 characters"})
		}
		req.Username = &trimmed
	}
	if req.DisplayName != nil && len([]rune(*req.DisplayName)) > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "display_name must be at most 100 characters"})
	}
	if req.Bio != nil && len([]rune(*req.Bio)) > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bio must be at most 500 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Profiles.Update(ctx, uid, repository.ProfilePatch{
		Username:        req.Username,
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		PlayLevel:       req.PlayLevel,
		FavoriteBrandID: req.FavoriteBrandID,
		AvatarURL:       req.AvatarURL,
	})
	if err != nil {
		switch err {
		case repository.ErrUsernameTaken:
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		c.Logger().Errorf("profile %d update failed: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}
