package repository

import (
	"context"
	"strings"

	"github.com/courtside/racketdb/internal/filter"
	"github.com/courtside/racketdb/internal/model"
)

// SearchResult is one page of matching rackets plus the exact number of
// matches before pagination, which callers need to compute the page count.
type SearchResult struct {
	Rackets []*model.Racket `json:"rackets"`
	Total   int64           `json:"total"`
}

// TotalPages returns ceil(total / pageSize); zero matches mean zero pages.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// placeholders returns "?,?,..,?" with n markers for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// buildRacketPredicates translates a filter record into AND-ed SQL
// predicates over the rackets table (aliased r). Every populated dimension
// contributes one independent predicate; values inside a multi-select are
// OR-ed by the IN list. The active-rows guard is always first.
func buildRacketPredicates(f filter.Filters) ([]string, []any) {
	where := []string{"r.is_active = 1"}
	args := []any{}

	if len(f.BrandIDs) > 0 {
		where = append(where, "r.brand_id IN ("+placeholders(len(f.BrandIDs))+")")
		for _, id := range f.BrandIDs {
			args = append(args, id)
		}
	}

	rangeF := func(col string, min, max *float64) {
		if min != nil {
			where = append(where, col+" >= ?")
			args = append(args, *min)
		}
		if max != nil {
			where = append(where, col+" <= ?")
			args = append(args, *max)
		}
	}
	rangeI := func(col string, min, max *int) {
		if min != nil {
			where = append(where, col+" >= ?")
			args = append(args, *min)
		}
		if max != nil {
			where = append(where, col+" <= ?")
			args = append(args, *max)
		}
	}

	rangeF("r.head_size_sqin", f.HeadSizeMin, f.HeadSizeMax)
	rangeF("r.length_inch", f.LengthMin, f.LengthMax)
	rangeI("r.weight_unstrung_g", f.WeightUnstrungMin, f.WeightUnstrungMax)
	rangeI("r.weight_strung_g", f.WeightStrungMin, f.WeightStrungMax)

	if len(f.BalanceType) > 0 {
		where = append(where, "r.balance_type IN ("+placeholders(len(f.BalanceType))+")")
		for _, v := range f.BalanceType {
			args = append(args, v)
		}
	}

	rangeI("r.balance_mm", f.BalanceMin, f.BalanceMax)
	rangeI("r.swingweight", f.SwingweightMin, f.SwingweightMax)

	if len(f.StringPattern) > 0 {
		where = append(where, "r.string_pattern IN ("+placeholders(len(f.StringPattern))+")")
		for _, v := range f.StringPattern {
			args = append(args, v)
		}
	}

	// The stated tension range must fall inside the racket's recommended
	// range, so min applies to the lower column and max to the upper one.
	rangeI("r.tension_min_lbs", f.TensionMin, nil)
	rangeI("r.tension_max_lbs", nil, f.TensionMax)
	rangeF("r.beam_min_mm", f.BeamMin, nil)
	rangeF("r.beam_max_mm", nil, f.BeamMax)
	rangeI("r.stiffness_ra", f.StiffnessMin, f.StiffnessMax)

	// Set overlap: the racket's grip-size set intersects the filter set.
	if len(f.GripSizes) > 0 {
		where = append(where,
			"EXISTS (SELECT 1 FROM racket_grip_sizes g WHERE g.racket_id = r.id AND g.grip_size IN ("+placeholders(len(f.GripSizes))+"))")
		for _, v := range f.GripSizes {
			args = append(args, v)
		}
	}

	return where, args
}

// Search returns the page of active rackets matching every populated filter
// dimension, joined with their brand, newest first, plus the exact total
// count before pagination. A page beyond the last one yields an empty slice
// and the true total; page < 1 is clamped to 1.
func (r *RacketRepo) Search(ctx context.Context, f filter.Filters, page, pageSize int) (SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	where, args := buildRacketPredicates(f)
	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := "SELECT COUNT(*) FROM rackets r WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return SearchResult{}, err
	}

	limit := pageSize
	offset := (page - 1) * pageSize

	dataSQL := `SELECT ` + racketCols + `,
			b.id, b.name, b.slug, b.logo_url
		FROM rackets r
		LEFT JOIN brands b ON b.id = r.brand_id
		WHERE ` + cond + `
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return SearchResult{}, err
	}
	defer rows.Close()

	out := make([]*model.Racket, 0, limit)
	for rows.Next() {
		rk, err := scanRacketWithBrand(rows)
		if err != nil {
			return SearchResult{}, err
		}
		out = append(out, rk)
	}
	if err := rows.Err(); err != nil {
		return SearchResult{}, err
	}

	if err := r.attachGripSizes(ctx, out); err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Rackets: out, Total: total}, nil
}
