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

// CommentWriter is the mutating slice of the comment repository.
type CommentWriter interface {
	Create(ctx context.Context, racketID, userID uint64, content string, parentID *uint64) (*model.Comment, error)
	UpdateContent(ctx context.Context, id, userID uint64, content string) (*model.Comment, error)
	Delete(ctx context.Context, id, userID uint64) error
}

// CommentTreeLoader assembles the nested comment view of a racket.
type CommentTreeLoader interface {
	ForRacket(ctx context.Context, racketID uint64) ([]service.CommentNode, error)
}

// CommentHandler serves comment reads and owner-scoped mutations.
type CommentHandler struct {
	Comments CommentWriter
	Tree     CommentTreeLoader
}

func NewCommentHandler(w CommentWriter, t CommentTreeLoader) *CommentHandler {
	return &CommentHandler{Comments: w, Tree: t}
}

type createCommentReq struct {
	RacketID        uint64  `json:"racket_id"`
	Content         string  `json:"content"`
	ParentCommentID *uint64 `json:"parent_comment_id"`
}

type updateCommentReq struct {
	Content string `json:"content"`
}

// Create handles POST /api/comments.  A parent_comment_id makes the new
// comment a reply; replying to a reply is rejected, the thread stays one
// level deep.
func (h *CommentHandler) Create(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	var req createCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	content := strings.TrimSpace(req.Content)
	if req.RacketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "racket_id required"})
	}
	if len([]rune(content)) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content must be at least 2 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.Create(ctx, req.RacketID, uid, content, req.ParentCommentID)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "racket or parent comment not found"})
		case repository.ErrReplyDepth:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot reply to a reply"})
		}
		c.Logger().Errorf("comment create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}

// Update handles PUT /api/comments/:id, owner only.
func (h *CommentHandler) Update(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}

	var req updateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	content := strings.TrimSpace(req.Content)
	if len([]rune(content)) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content must be at least 2 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.UpdateContent(ctx, id, uid, content)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the comment owner"})
		}
		c.Logger().Errorf("comment %d update failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update comment failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": comment})
}

// Delete handles DELETE /api/comments/:id, owner only.  Replies go with
// the parent.
func (h *CommentHandler) Delete(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Comments.Delete(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the comment owner"})
		}
		c.Logger().Errorf("comment %d delete failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete comment failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}

// ListForRacket handles GET /api/rackets/:id/comments, the assembled
// two-level tree with author profiles.
func (h *CommentHandler) ListForRacket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid racket id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tree, err := h.Tree.ForRacket(ctx, id)
	if err != nil {
		c.Logger().Errorf("comment tree for racket %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load comments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": tree})
}
