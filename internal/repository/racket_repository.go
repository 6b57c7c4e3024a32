// This file defines the racket repository: detail lookups, grip-size
// loading and the view counter. The filtered listing lives in
// racket_search.go.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/courtside/racketdb/internal/model"
)

const defaultPageSize = 20

// RacketRepo encapsulates all database queries related to rackets.
type RacketRepo struct {
	db *sql.DB
}

// NewRacketRepo constructs a RacketRepo with the provided DB handle.
func NewRacketRepo(db *sql.DB) *RacketRepo {
	return &RacketRepo{db: db}
}

const racketCols = `r.id, r.brand_id, r.name, r.model_year, r.image_url, r.description,
			r.head_size_sqin, r.length_inch, r.weight_unstrung_g, r.weight_strung_g,
			r.balance_type, r.balance_mm, r.swingweight, r.string_pattern,
			r.tension_min_lbs, r.tension_max_lbs, r.beam_min_mm, r.beam_mid_mm, r.beam_max_mm,
			r.stiffness_ra, r.frame_shape, r.material, r.technology, r.player_level,
			r.is_active, r.view_count, r.created_at, r.updated_at`

// scanRacketWithBrand scans one row of racketCols plus the four joined
// brand columns (nullable, LEFT JOIN).
func scanRacketWithBrand(rows *sql.Rows) (*model.Racket, error) {
	var (
		rk        model.Racket
		brandID   sql.NullInt64
		brandName sql.NullString
		brandSlug sql.NullString
		brandLogo sql.NullString
	)
	if err := rows.Scan(
		&rk.ID, &rk.BrandID, &rk.Name, &rk.ModelYear, &rk.ImageURL, &rk.Description,
		&rk.HeadSizeSqin, &rk.LengthInch, &rk.WeightUnstrungG, &rk.WeightStrungG,
		&rk.BalanceType, &rk.BalanceMM, &rk.Swingweight, &rk.StringPattern,
		&rk.TensionMinLbs, &rk.TensionMaxLbs, &rk.BeamMinMM, &rk.BeamMidMM, &rk.BeamMaxMM,
		&rk.StiffnessRA, &rk.FrameShape, &rk.Material, &rk.Technology, &rk.PlayerLevel,
		&rk.IsActive, &rk.ViewCount, &rk.CreatedAt, &rk.UpdatedAt,
		&brandID, &brandName, &brandSlug, &brandLogo,
	); err != nil {
		return nil, err
	}
	if brandID.Valid {
		b := &model.Brand{ID: uint64(brandID.Int64), Name: brandName.String, Slug: brandSlug.String}
		if brandLogo.Valid {
			b.LogoURL = &brandLogo.String
		}
		rk.Brand = b
	}
	return &rk, nil
}

// attachGripSizes loads the grip-size sets for a batch of rackets with one
// IN query and fills the GripSizes field in place.
func (r *RacketRepo) attachGripSizes(ctx context.Context, rackets []*model.Racket) error {
	if len(rackets) == 0 {
		return nil
	}
	byID := make(map[uint64]*model.Racket, len(rackets))
	args := make([]any, 0, len(rackets))
	for _, rk := range rackets {
		byID[rk.ID] = rk
		args = append(args, rk.ID)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT racket_id, grip_size FROM racket_grip_sizes WHERE racket_id IN ("+placeholders(len(args))+") ORDER BY grip_size",
		args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uint64
			size string
		)
		if err := rows.Scan(&id, &size); err != nil {
			return err
		}
		if rk, ok := byID[id]; ok {
			rk.GripSizes = append(rk.GripSizes, size)
		}
	}
	return rows.Err()
}

// GetByID fetches a single active racket with its grip sizes and brand.
// An inactive racket is reported as ErrNotFound, identical to a missing
// row. The brand join runs as a separate read and its failure is non-fatal:
// the detail page renders with a nil brand rather than erroring.
func (r *RacketRepo) GetByID(ctx context.Context, id uint64) (*model.Racket, error) {
	var rk model.Racket
	err := r.db.QueryRowContext(ctx,
		"SELECT "+racketCols+" FROM rackets r WHERE r.id=? AND r.is_active=1 LIMIT 1", id).
		Scan(
			&rk.ID, &rk.BrandID, &rk.Name, &rk.ModelYear, &rk.ImageURL, &rk.Description,
			&rk.HeadSizeSqin, &rk.LengthInch, &rk.WeightUnstrungG, &rk.WeightStrungG,
			&rk.BalanceType, &rk.BalanceMM, &rk.Swingweight, &rk.StringPattern,
			&rk.TensionMinLbs, &rk.TensionMaxLbs, &rk.BeamMinMM, &rk.BeamMidMM, &rk.BeamMaxMM,
			&rk.StiffnessRA, &rk.FrameShape, &rk.Material, &rk.Technology, &rk.PlayerLevel,
			&rk.IsActive, &rk.ViewCount, &rk.CreatedAt, &rk.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.attachGripSizes(ctx, []*model.Racket{&rk}); err != nil {
		return nil, err
	}

	var b model.Brand
	err = r.db.QueryRowContext(ctx,
		"SELECT "+brandCols+" FROM brands WHERE id=? LIMIT 1", rk.BrandID).
		Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description, &b.WebsiteURL, &b.CreatedAt)
	switch {
	case err == nil:
		rk.Brand = &b
	case errors.Is(err, sql.ErrNoRows):
		// orphaned brand reference, render without brand
	default:
		log.Printf("racket %d: brand lookup failed (ignored): %v", rk.ID, err)
	}

	return &rk, nil
}

// IncrementViewCount bumps the view counter. Called from the queue
// consumer, never from the request path.
func (r *RacketRepo) IncrementViewCount(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE rackets SET view_count = view_count + 1 WHERE id=?", id)
	return err
}
