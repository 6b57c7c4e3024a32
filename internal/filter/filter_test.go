package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestDecodeKnownKeys(t *testing.T) {
	q, err := url.ParseQuery("brands=3,7&head_size_min=95&head_size_max=100&weight_strung_min=300&balance_type=Head light,Even&string_pattern=16x19&grip_sizes=G2,G3&page=4")
	require.NoError(t, err)

	f := Decode(q)

	assert.Equal(t, []uint64{3, 7}, f.BrandIDs)
	require.NotNil(t, f.HeadSizeMin)
	assert.Equal(t, 95.0, *f.HeadSizeMin)
	require.NotNil(t, f.HeadSizeMax)
	assert.Equal(t, 100.0, *f.HeadSizeMax)
	require.NotNil(t, f.WeightStrungMin)
	assert.Equal(t, 300, *f.WeightStrungMin)
	assert.Equal(t, []string{"Head light", "Even"}, f.BalanceType)
	assert.Equal(t, []string{"16x19"}, f.StringPattern)
	assert.Equal(t, []string{"G2", "G3"}, f.GripSizes)

	// page is pagination state, not a filter dimension
	assert.Nil(t, f.TensionMin)
}

func TestDecodeIgnoresUnknownAndEmpty(t *testing.T) {
	q := url.Values{
		"utm_source":    {"newsletter"},
		"head_size_min": {""},
		"length_max":    {"27.5"},
	}
	f := Decode(q)
	assert.Nil(t, f.HeadSizeMin)
	require.NotNil(t, f.LengthMax)
	assert.Equal(t, 27.5, *f.LengthMax)
}

func TestDecodeDropsMalformedNumbers(t *testing.T) {
	q := url.Values{
		"head_size_min":   {"ninety"},
		"swingweight_max": {"32o"},
		"brands":          {"2,xyz,5"},
		"tension_min":     {"50"},
	}
	f := Decode(q)

	// malformed values drop the field instead of turning into NaN filters
	assert.Nil(t, f.HeadSizeMin)
	assert.Nil(t, f.SwingweightMax)
	assert.Equal(t, []uint64{2, 5}, f.BrandIDs)
	require.NotNil(t, f.TensionMin)
	assert.Equal(t, 50, *f.TensionMin)
}

func TestEncodeSkipsAbsentFields(t *testing.T) {
	f := Filters{
		HeadSizeMin: fptr(97.5),
		GripSizes:   []string{"G3", "G4"},
	}
	q := Encode(f)

	assert.Equal(t, "97.5", q.Get("head_size_min"))
	assert.Equal(t, "G3,G4", q.Get("grip_sizes"))
	_, hasMax := q["head_size_max"]
	assert.False(t, hasMax)
	assert.Len(t, q, 2)
}

func TestRoundTrip(t *testing.T) {
	f := Filters{
		BrandIDs:          []uint64{1, 4, 9},
		HeadSizeMin:       fptr(95),
		HeadSizeMax:       fptr(102.5),
		LengthMin:         fptr(27),
		WeightUnstrungMin: iptr(285),
		WeightUnstrungMax: iptr(320),
		WeightStrungMax:   iptr(340),
		BalanceType:       []string{"Head light"},
		BalanceMin:        iptr(310),
		BalanceMax:        iptr(330),
		SwingweightMin:    iptr(315),
		StringPattern:     []string{"16x19", "18x20"},
		TensionMin:        iptr(48),
		TensionMax:        iptr(58),
		BeamMin:           fptr(21.5),
		BeamMax:           fptr(26),
		StiffnessMin:      iptr(60),
		StiffnessMax:      iptr(70),
		GripSizes:         []string{"G2", "G3"},
	}

	got := Decode(Encode(f))
	assert.Equal(t, f, got)
}

func TestRoundTripEmpty(t *testing.T) {
	f := Decode(Encode(Filters{}))
	assert.True(t, f.IsZero())
}
