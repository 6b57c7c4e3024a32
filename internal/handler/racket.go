package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/racketdb/internal/filter"
	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/queue"
	"github.com/courtside/racketdb/internal/repository"
	"github.com/courtside/racketdb/internal/service"
)

const maxPageSize = 100

// RacketStore is the slice of the racket repository the listing and detail
// endpoints need.
type RacketStore interface {
	Search(ctx context.Context, f filter.Filters, page, pageSize int) (repository.SearchResult, error)
	GetByID(ctx context.Context, id uint64) (*model.Racket, error)
}

// RacketHandler serves the public catalog: filtered listing and detail.
type RacketHandler struct {
	Rackets RacketStore

	// publishView fires the view-counting event after a detail render.
	// Swappable so tests do not need a broker.
	publishView func(racketID uint64)
}

func NewRacketHandler(r RacketStore) *RacketHandler {
	return &RacketHandler{
		Rackets: r,
		publishView: func(racketID uint64) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = service.PublishRacketViewed(ctx, queue.RacketViewedEvent{
				RacketID: racketID,
				ViewedAt: time.Now().UTC().Format(time.RFC3339),
			})
		},
	}
}

// List handles GET /api/rackets.  Every query parameter is part of the
// filter contract; unknown keys and malformed numbers are ignored by the
// codec, so this endpoint never 400s on filters.
func (h *RacketHandler) List(c echo.Context) error {
	f := filter.Decode(c.QueryParams())

	page := atoiQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := atoiQuery(c, "page_size", 20)
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Rackets.Search(ctx, f, page, pageSize)
	if err != nil {
		c.Logger().Errorf("racket search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"rackets":     res.Rackets,
		"total":       res.Total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": repository.TotalPages(res.Total, pageSize),
	})
}

// Get handles GET /api/rackets/:id.  A successful render fires the
// view-counting event in the background; the response never waits on the
// broker.
func (h *RacketHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid racket id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	racket, err := h.Rackets.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "racket not found"})
		}
		c.Logger().Errorf("racket %d load failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if h.publishView != nil {
		go h.publishView(id)
	}

	return c.JSON(http.StatusOK, echo.Map{"racket": racket})
}

// atoiQuery parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func atoiQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
