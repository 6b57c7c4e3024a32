package model

import "time"

// Balance type enumeration stored in rackets.balance_type.
const (
	BalanceHeadLight = "Head light"
	BalanceEven      = "Even"
	BalanceHeadHeavy = "Head heavy"
)

// Racket mirrors the 'rackets' table. Every data-sheet column is nullable because
// manufacturer data sheets are incomplete more often than not; filters simply
// never match rows with a NULL in the filtered column.
//
// Inactive rackets (is_active = false) are excluded from every listing and
// detail read; a detail lookup treats inactive exactly like not-found.
type Racket struct {
	ID              uint64   `json:"id"`               // rackets.id
	BrandID         uint64   `json:"brand_id"`         // rackets.brand_id
	Name            string   `json:"name"`             // rackets.name
	ModelYear       *int     `json:"model_year"`       // rackets.model_year
	ImageURL        *string  `json:"image_url"`        // rackets.image_url
	Description     *string  `json:"description"`      // rackets.description
	HeadSizeSqin    *float64 `json:"head_size_sqin"`   // rackets.head_size_sqin
	LengthInch      *float64 `json:"length_inch"`      // rackets.length_inch
	WeightUnstrungG *int     `json:"weight_unstrung_g"` // rackets.weight_unstrung_g
	WeightStrungG   *int     `json:"weight_strung_g"`  // rackets.weight_strung_g
	BalanceType     *string  `json:"balance_type"`     // rackets.balance_type
	BalanceMM       *int     `json:"balance_mm"`       // rackets.balance_mm
	Swingweight     *int     `json:"swingweight"`      // rackets.swingweight
	StringPattern   *string  `json:"string_pattern"`   // rackets.string_pattern
	TensionMinLbs   *int     `json:"tension_min_lbs"`  // rackets.tension_min_lbs
	TensionMaxLbs   *int     `json:"tension_max_lbs"`  // rackets.tension_max_lbs
	BeamMinMM       *float64 `json:"beam_min_mm"`      // rackets.beam_min_mm
	BeamMidMM       *float64 `json:"beam_mid_mm"`      // rackets.beam_mid_mm
	BeamMaxMM       *float64 `json:"beam_max_mm"`      // rackets.beam_max_mm
	StiffnessRA     *int     `json:"stiffness_ra"`     // rackets.stiffness_ra
	FrameShape      *string  `json:"frame_shape"`      // rackets.frame_shape
	Material        *string  `json:"material"`         // rackets.material
	Technology      *string  `json:"technology"`       // rackets.technology
	PlayerLevel     *string  `json:"player_level"`     // rackets.player_level
	GripSizes       []string `json:"grip_sizes"`       // racket_grip_sizes rows
	IsActive        bool     `json:"is_active"`        // rackets.is_active
	ViewCount       uint64   `json:"view_count"`       // rackets.view_count
	CreatedAt       time.Time `json:"created_at"`      // rackets.created_at
	UpdatedAt       time.Time `json:"updated_at"`      // rackets.updated_at

	// Brand is the joined brand row. It stays nil when the join fails;
	// a detail page renders with a missing brand rather than erroring.
	Brand *Brand `json:"brand,omitempty"`
}
