package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/racketdb/internal/filter"
	"github.com/courtside/racketdb/internal/model"
	"github.com/courtside/racketdb/internal/repository"
)

// BrandStore is the slice of the brand repository the public endpoints need.
type BrandStore interface {
	ListAll(ctx context.Context) ([]*model.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*model.Brand, error)
}

// BrandHandler serves the brand index, brand detail and the brand-scoped
// racket listing.
type BrandHandler struct {
	Brands     BrandStore
	RacketRepo RacketStore
}

func NewBrandHandler(b BrandStore, r RacketStore) *BrandHandler {
	return &BrandHandler{Brands: b, RacketRepo: r}
}

// List handles GET /api/brands, all brands ordered by name.
func (h *BrandHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	brands, err := h.Brands.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("brand list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"brands": brands})
}

// Get handles GET /api/brands/:slug.
func (h *BrandHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	brand, err := h.Brands.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		c.Logger().Errorf("brand %q load failed: %v", c.Param("slug"), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"brand": brand})
}

// Rackets handles GET /api/brands/:slug/rackets: the regular filtered
// listing pinned to one brand.  Any brands filter in the query string is
// overridden by the path.
func (h *BrandHandler) Rackets(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	brand, err := h.Brands.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		c.Logger().Errorf("brand %q load failed: %v", c.Param("slug"), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	f := filter.Decode(c.QueryParams())
	f.BrandIDs = []uint64{brand.ID}

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

	res, err := h.RacketRepo.Search(ctx, f, page, pageSize)
	if err != nil {
		c.Logger().Errorf("brand %q racket search failed: %v", c.Param("slug"), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"brand":       brand,
		"rackets":     res.Rackets,
		"total":       res.Total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": repository.TotalPages(res.Total, pageSize),
	})
}
