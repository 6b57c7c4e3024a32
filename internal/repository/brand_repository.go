// This file defines the brand repository. Brands are read-mostly reference
// data: the public site lists them all on the landing page and resolves one
// by slug for the per-brand racket listing.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside/racketdb/internal/model"
)

// BrandRepo encapsulates all database queries related to brands.
type BrandRepo struct {
	db *sql.DB
}

// NewBrandRepo constructs a BrandRepo with the provided DB handle, allowing
// dependency injection of the database in tests and at startup.
func NewBrandRepo(db *sql.DB) *BrandRepo {
	return &BrandRepo{db: db}
}

const brandCols = "id, name, slug, logo_url, description, website_url, created_at"

// ListAll returns every brand ordered by name for the brand index page.
func (r *BrandRepo) ListAll(ctx context.Context) ([]*model.Brand, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+brandCols+" FROM brands ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Brand
	for rows.Next() {
		b := new(model.Brand)
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description, &b.WebsiteURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySlug fetches a brand by its URL slug. Returns ErrNotFound when no
// row matches.
func (r *BrandRepo) GetBySlug(ctx context.Context, slug string) (*model.Brand, error) {
	var b model.Brand
	err := r.db.QueryRowContext(ctx,
		"SELECT "+brandCols+" FROM brands WHERE slug=? LIMIT 1", slug).
		Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description, &b.WebsiteURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByID fetches a brand by primary key. Returns ErrNotFound when no row
// matches.
func (r *BrandRepo) GetByID(ctx context.Context, id uint64) (*model.Brand, error) {
	var b model.Brand
	err := r.db.QueryRowContext(ctx,
		"SELECT "+brandCols+" FROM brands WHERE id=? LIMIT 1", id).
		Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description, &b.WebsiteURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
