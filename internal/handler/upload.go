package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/racketdb/internal/image"
	"github.com/courtside/racketdb/internal/storage"
)

// UploadHandler accepts multipart image uploads, runs them through the
// image pipeline and stores the WEBP result.
type UploadHandler struct {
	Store storage.Client
}

func NewUploadHandler(s storage.Client) *UploadHandler {
	return &UploadHandler{Store: s}
}

// Create handles POST /api/upload.  The multipart field is "file"; the
// "type" query parameter picks the variant ("profile" or "general",
// defaulting to general).
func (h *UploadHandler) Create(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	variant := c.QueryParam("type")
	if variant == "" {
		variant = "general"
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer func() { _ = src.Close() }()

	// Read one byte past the ceiling so oversized uploads are rejected
	// without buffering the whole body.
	raw, err := io.ReadAll(io.LimitReader(src, image.MaxBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}

	processed, meta, err := image.Process(raw, variant)
	if err != nil {
		switch err {
		case image.ErrTooLarge, image.ErrBadFormat, image.ErrTooSmall,
			image.ErrOversized, image.ErrBadVariant:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		c.Logger().Errorf("upload processing failed for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing failed"})
	}

	key := storage.ObjectName(variant, uid, "webp")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	url, err := h.Store.Put(ctx, key, processed, "image/webp")
	if err != nil {
		c.Logger().Errorf("upload store failed for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"url":      url,
		"path":     key,
		"size":     meta.Size,
		"metadata": meta,
	})
}
