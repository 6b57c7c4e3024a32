// Package filter converts between the URL query-string representation of the
// racket search form and its structured record. Both directions are pure and
// stateless; the repository layer turns the record into SQL.
package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// Filters is the structured form of every active search constraint. A nil
// pointer or empty slice means "no constraint on this dimension". Within a
// multi-select field values are OR-ed; across fields constraints are AND-ed.
type Filters struct {
	BrandIDs []uint64 // brands

	HeadSizeMin *float64 // head_size_min (sq in)
	HeadSizeMax *float64 // head_size_max

	LengthMin *float64 // length_min (inches)
	LengthMax *float64 // length_max

	WeightUnstrungMin *int // weight_unstrung_min (grams)
	WeightUnstrungMax *int // weight_unstrung_max
	WeightStrungMin   *int // weight_strung_min
	WeightStrungMax   *int // weight_strung_max

	BalanceType []string // balance_type ("Head light" | "Even" | "Head heavy")
	BalanceMin  *int     // balance_min (mm)
	BalanceMax  *int     // balance_max

	SwingweightMin *int // swingweight_min
	SwingweightMax *int // swingweight_max

	StringPattern []string // string_pattern (e.g. "16x19")

	TensionMin *int // tension_min (lbs)
	TensionMax *int // tension_max

	BeamMin *float64 // beam_min (mm)
	BeamMax *float64 // beam_max

	StiffnessMin *int // stiffness_min (RA)
	StiffnessMax *int // stiffness_max

	GripSizes []string // grip_sizes (set overlap, e.g. "G2")
}

// IsZero reports whether no dimension carries a constraint.
func (f Filters) IsZero() bool {
	return len(f.BrandIDs) == 0 && len(f.BalanceType) == 0 &&
		len(f.StringPattern) == 0 && len(f.GripSizes) == 0 &&
		f.HeadSizeMin == nil && f.HeadSizeMax == nil &&
		f.LengthMin == nil && f.LengthMax == nil &&
		f.WeightUnstrungMin == nil && f.WeightUnstrungMax == nil &&
		f.WeightStrungMin == nil && f.WeightStrungMax == nil &&
		f.BalanceMin == nil && f.BalanceMax == nil &&
		f.SwingweightMin == nil && f.SwingweightMax == nil &&
		f.TensionMin == nil && f.TensionMax == nil &&
		f.BeamMin == nil && f.BeamMax == nil &&
		f.StiffnessMin == nil && f.StiffnessMax == nil
}

// Decode parses the known filter keys out of a query string. Unknown keys
// and empty values are ignored. Malformed numeric values drop the field:
// a hand-edited URL degrades to a missing constraint instead of a 400 or a
// never-matching NaN predicate.
//
// The "page" key is deliberately not part of the record; pagination is
// parsed by the handler.
func Decode(q url.Values) Filters {
	var f Filters

	if raw := q.Get("brands"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
				f.BrandIDs = append(f.BrandIDs, id)
			}
		}
	}

	f.HeadSizeMin = floatParam(q, "head_size_min")
	f.HeadSizeMax = floatParam(q, "head_size_max")
	f.LengthMin = floatParam(q, "length_min")
	f.LengthMax = floatParam(q, "length_max")
	f.WeightUnstrungMin = intParam(q, "weight_unstrung_min")
	f.WeightUnstrungMax = intParam(q, "weight_unstrung_max")
	f.WeightStrungMin = intParam(q, "weight_strung_min")
	f.WeightStrungMax = intParam(q, "weight_strung_max")
	f.BalanceType = listParam(q, "balance_type")
	f.BalanceMin = intParam(q, "balance_min")
	f.BalanceMax = intParam(q, "balance_max")
	f.SwingweightMin = intParam(q, "swingweight_min")
	f.SwingweightMax = intParam(q, "swingweight_max")
	f.StringPattern = listParam(q, "string_pattern")
	f.TensionMin = intParam(q, "tension_min")
	f.TensionMax = intParam(q, "tension_max")
	f.BeamMin = floatParam(q, "beam_min")
	f.BeamMax = floatParam(q, "beam_max")
	f.StiffnessMin = intParam(q, "stiffness_min")
	f.StiffnessMax = intParam(q, "stiffness_max")
	f.GripSizes = listParam(q, "grip_sizes")

	return f
}

// Encode renders the record back into query parameters. Absent fields emit
// nothing; list fields join with a comma. Comma is not escaped inside list
// values, so a value containing one does not survive the round trip — the
// known values of these fields never contain commas.
func Encode(f Filters) url.Values {
	q := url.Values{}

	if len(f.BrandIDs) > 0 {
		parts := make([]string, len(f.BrandIDs))
		for i, id := range f.BrandIDs {
			parts[i] = strconv.FormatUint(id, 10)
		}
		q.Set("brands", strings.Join(parts, ","))
	}

	setFloat(q, "head_size_min", f.HeadSizeMin)
	setFloat(q, "head_size_max", f.HeadSizeMax)
	setFloat(q, "length_min", f.LengthMin)
	setFloat(q, "length_max", f.LengthMax)
	setInt(q, "weight_unstrung_min", f.WeightUnstrungMin)
	setInt(q, "weight_unstrung_max", f.WeightUnstrungMax)
	setInt(q, "weight_strung_min", f.WeightStrungMin)
	setInt(q, "weight_strung_max", f.WeightStrungMax)
	setList(q, "balance_type", f.BalanceType)
	setInt(q, "balance_min", f.BalanceMin)
	setInt(q, "balance_max", f.BalanceMax)
	setInt(q, "swingweight_min", f.SwingweightMin)
	setInt(q, "swingweight_max", f.SwingweightMax)
	setList(q, "string_pattern", f.StringPattern)
	setInt(q, "tension_min", f.TensionMin)
	setInt(q, "tension_max", f.TensionMax)
	setFloat(q, "beam_min", f.BeamMin)
	setFloat(q, "beam_max", f.BeamMax)
	setInt(q, "stiffness_min", f.StiffnessMin)
	setInt(q, "stiffness_max", f.StiffnessMax)
	setList(q, "grip_sizes", f.GripSizes)

	return q
}

func floatParam(q url.Values, key string) *float64 {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intParam(q url.Values, key string) *int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func listParam(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setFloat(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

func setInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}

func setList(q url.Values, key string, vs []string) {
	if len(vs) > 0 {
		q.Set(key, strings.Join(vs, ","))
	}
}
