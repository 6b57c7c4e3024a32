package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/repository"
	"github.com/courtside/racketdb/internal/service"
)

// ReviewWriter is the mutating slice of the review repository.
type ReviewWriter interface {
	Create(ctx context.Context, userID uint64, d repository.ReviewDraft) (*model.Review, error)
	Update(ctx context.Context, id, userID uint64, p repository.ReviewPatch) (*model.Review, error)
	Delete(ctx context.Context, id, userID uint64) error
}

// ReviewListLoader composes a racket's reviews with their authors.
type ReviewListLoader interface {
	ForRacket(ctx context.Context, racketID uint64) ([]service.ReviewWithAuthor, error)
}

// ReviewStatsLoader aggregates a racket's ratings.
type ReviewStatsLoader interface {
	ForRacket(ctx context.Context, racketID uint64) (model.ReviewStats, error)
}

// ReviewHandler serves review reads, stats and owner-scoped mutations.
type ReviewHandler struct {
	Reviews ReviewWriter
	List    ReviewListLoader
	Stats   ReviewStatsLoader
}

func NewReviewHandler(w ReviewWriter, l ReviewListLoader, s ReviewStatsLoader) *ReviewHandler {
	return &ReviewHandler{Reviews: w, List: l, Stats: s}
}

type createReviewReq struct {
	RacketID        uint64  `json:"racket_id"`
	Rating          int     `json:"rating"`
	Title           *string `json:"title"`
	Content         string  `json:"content"`
	PlayStyle       *string `json:"play_style"`
	ExperienceLevel *string `json:"experience_level"`
	UsageDuration   *string `json:"usage_duration"`
}

type updateReviewReq struct {
	Rating          *int    `json:"rating"`
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	PlayStyle       *string `json:"play_style"`
	ExperienceLevel *string `json:"experience_level"`
	UsageDuration   *string `json:"usage_duration"`
}

// Create handles POST /api/reviews.  One review per racket per user; the
// second attempt gets a 409.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RacketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "racket_id required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	content := strings.TrimSpace(req.Content)
	if len([]rune(content)) < 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content must be at least 10 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	review, err := h.Reviews.Create(ctx, uid, repository.ReviewDraft{
		RacketID:        req.RacketID,
		Rating:          req.Rating,
		Title:           req.Title,
		Content:         content,
		PlayStyle:       req.PlayStyle,
		ExperienceLevel: req.ExperienceLevel,
		UsageDuration:   req.UsageDuration,
	})
	if err != nil {
		switch err {
		case repository.ErrDuplicateReview:
			return c.JSON(http.StatusConflict, echo.Map{"error": "you have already reviewed this racket"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "racket not found"})
		}
		c.Logger().Errorf("review create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"review": review})
}

// Update handles PUT /api/reviews/:id, owner only.  Absent fields keep
// their stored value.
func (h *ReviewHandler) Update(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if req.Content != nil {
		trimmed := strings.TrimSpace(*req.Content)
		if len([]rune(trimmed)) < 10 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "content must be at least 10 characters"})
		}
		req.Content = &trimmed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	review, err := h.Reviews.Update(ctx, id, uid, repository.ReviewPatch{
		Rating:          req.Rating,
		Title:           req.Title,
		Content:         req.Content,
		PlayStyle:       req.PlayStyle,
		ExperienceLevel: req.ExperienceLevel,
		UsageDuration:   req.UsageDuration,
	})
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the review owner"})
		}
		c.Logger().Errorf("review %d update failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update review failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"review": review})
}

// Delete handles DELETE /api/reviews/:id, owner only.
func (h *ReviewHandler) Delete(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reviews.Delete(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the review owner"})
		}
		c.Logger().Errorf("review %d delete failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete review failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}

// ListForRacket handles GET /api/rackets/:id/reviews: the visible reviews
// with author profiles plus the aggregate stats block.
func (h *ReviewHandler) ListForRacket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid racket id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.List.ForRacket(ctx, id)
	if err != nil {
		c.Logger().Errorf("review list for racket %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}
	stats, err := h.Stats.ForRacket(ctx, id)
	if err != nil {
		c.Logger().Errorf("review stats for racket %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reviews": reviews,
		"stats":   stats,
	})
}
