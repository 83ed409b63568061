package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := pt * PtToMm * MmToPt
		assert.InDelta(t, pt, back, 1e-9, "pt→mm→pt in=%g", pt)
	}
}

// TestResolveUnit 覆盖常见单位到 pt 的换算。
func TestResolveUnit(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"70", 70},
		{"12pt", 12},
		{"1in", 72},
		{"2 inch", 144},
		{"10mm", 10 * MmToPt},
		{"2.54cm", 25.4 * MmToPt},
		{" -3.5 ", -3.5},
		{".5in", 36},
		{"1CM", 10 * MmToPt},
	}
	for _, tc := range cases {
		got, err := ResolveUnit(tc.in)
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, tc.in)
	}
}

func TestResolveUnitRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12furlongs", "1cm 2cm", "1..2"} {
		_, err := ResolveUnit(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, ErrUnresolvableUnit), "input %q: %v", in, err)
	}
}

func TestParseLengths(t *testing.T) {
	got, err := ParseLengths("1cm 2cm\n19cm 2cm")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, Length{Value: 19, Unit: UnitCM}, got[2])
	assert.True(t, math.Abs(got[0].ToMM()-10) < 1e-9)

	empty, err := ParseLengths("  ")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseLengths("1cm 2parsecs")
	assert.True(t, errors.Is(err, ErrUnresolvableUnit))
}

func TestLengthString(t *testing.T) {
	assert.Equal(t, "2.5cm", Length{Value: 2.5, Unit: UnitCM}.String())
	assert.Equal(t, "70", Length{Value: 70}.String())
}
