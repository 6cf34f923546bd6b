package vstools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func basis(bits int, float bool, r ColorRange) Basis {
	return Basis{Bits: bits, Float: float, Range: r}
}

func TestScaleValueIdentity(t *testing.T) {
	bases := []Basis{
		basis(8, false, RangeFull),
		basis(8, false, RangeLimited),
		basis(10, false, RangeLimited),
		basis(16, false, RangeFull),
		basis(32, true, RangeFull),
	}
	values := []float64{0, 16, 24.375, 128, 235, 0.182918471}

	for _, b := range bases {
		for _, v := range values {
			for _, chroma := range []bool{false, true} {
				got, err := ScaleValue(v, b, b, chroma)
				require.NoError(t, err)
				// Exact: the identity transform must not touch the value.
				require.Equal(t, v, got)
			}
		}
	}
}

func TestScaleValueDepth(t *testing.T) {
	limited8 := basis(8, false, RangeLimited)
	limited10 := basis(10, false, RangeLimited)

	for _, tc := range []struct {
		in, want float64
	}{
		{0, 0},
		{16, 64},
		{24, 96},
		{64, 256},
		{235, 940},
		{255, 1020},
	} {
		got, err := ScaleValue(tc.in, limited8, limited10, false)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "scaling %v", tc.in)

		back, err := ScaleValue(tc.want, limited10, limited8, false)
		require.NoError(t, err)
		require.Equal(t, tc.in, back, "scaling %v back", tc.want)
	}
}

func TestScaleValueRangeConversion(t *testing.T) {
	limited := basis(8, false, RangeLimited)
	full := basis(8, false, RangeFull)

	for _, tc := range []struct {
		name     string
		in       float64
		from, to Basis
		chroma   bool
		want     float64
	}{
		{"black limited to full", 16, limited, full, false, 0},
		{"white limited to full", 235, limited, full, false, 255},
		{"sub-black clamps", 0, limited, full, false, 0},
		{"mid limited to full", 124, limited, full, false, 126},
		{"black full to limited", 0, full, limited, false, 16},
		{"white full to limited", 255, full, limited, false, 235},
		{"neutral chroma is preserved", 128, limited, full, true, 128},
		{"chroma peak limited to full", 240, limited, full, true, 255},
	} {
		got, err := ScaleValue(tc.in, tc.from, tc.to, tc.chroma)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, tc.name)
	}
}

func TestScaleValueFloat(t *testing.T) {
	limited := basis(8, false, RangeLimited)
	full := basis(8, false, RangeFull)
	float := basis(32, true, RangeFull)

	got, err := ScaleValue(16, limited, float, false)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)

	got, err = ScaleValue(235, limited, float, false)
	require.NoError(t, err)
	require.Equal(t, 1.0, got)

	got, err = ScaleValue(128, limited, float, true)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)

	// Float targets are not rounded.
	got, err = ScaleValue(100, full, float, false)
	require.NoError(t, err)
	require.InDelta(t, 100.0/255.0, got, 1e-12)

	// Integer targets round half away from zero.
	got, err = ScaleValue(0.5, float, full, false)
	require.NoError(t, err)
	require.Equal(t, 128.0, got)

	got, err = ScaleValue(1, float, full, false)
	require.NoError(t, err)
	require.Equal(t, 255.0, got)

	got, err = ScaleValue(2, float, full, false)
	require.NoError(t, err)
	require.Equal(t, 255.0, got, "over-range float input clamps on integer output")
}

func TestScaleValueMonotonic(t *testing.T) {
	from := basis(8, false, RangeLimited)
	to := basis(10, false, RangeFull)

	prev := -1.0
	for v := 16; v <= 235; v++ {
		got, err := ScaleValue(float64(v), from, to, false)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, prev)
		require.Equal(t, got, float64(int64(got)), "integer basis must yield integers")
		require.LessOrEqual(t, got, 1023.0)
		prev = got
	}
}

func TestScaleValueBadDepth(t *testing.T) {
	_, err := ScaleValue(0, basis(33, false, RangeFull), basis(8, false, RangeFull), false)
	var rangeErr RangeError
	require.True(t, errors.As(err, &rangeErr))

	_, err = ScaleValue(0, basis(8, false, RangeFull), basis(7, false, RangeFull), false)
	require.True(t, errors.As(err, &rangeErr))
}

func TestScaleDelta(t *testing.T) {
	limited8 := basis(8, false, RangeLimited)
	limited10 := basis(10, false, RangeLimited)

	// A one step delta at 8 bit is a four step delta at 10 bit; no
	// zero-point offsets may be applied.
	got, err := ScaleDelta(1, limited8, limited10, false)
	require.NoError(t, err)
	require.Equal(t, 4.0, got)

	got, err = ScaleDelta(0, limited8, limited10, true)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)
}

func TestScale8Bit(t *testing.T) {
	got, err := Scale8Bit(YUV420P10, 24, false)
	require.NoError(t, err)
	require.Equal(t, 96.0, got)

	got, err = Scale8Bit(YUV420P8, 24, false)
	require.NoError(t, err)
	require.Equal(t, 24.0, got)

	got, err = Scale8Bit(YUV444PS, 255, false)
	require.NoError(t, err)
	require.Equal(t, 1.0, got)
}

func TestPeakLowestNeutral(t *testing.T) {
	require.Equal(t, 255.0, PeakValue(YUV420P8, false, RangeFull))
	require.Equal(t, 235.0, PeakValue(YUV420P8, false, RangeLimited))
	require.Equal(t, 240.0, PeakValue(YUV420P8, true, RangeLimited))
	require.Equal(t, 940.0, PeakValue(YUV420P10, false, RangeLimited))
	require.Equal(t, 1.0, PeakValue(YUV444PS, false, RangeLimited))
	require.Equal(t, 0.5, PeakValue(YUV444PS, true, RangeLimited))

	require.Equal(t, 16.0, LowestValue(YUV420P8, false, RangeLimited))
	require.Equal(t, 0.0, LowestValue(YUV420P8, false, RangeFull))
	require.Equal(t, -0.5, LowestValue(YUV444PS, true, RangeLimited))

	// RGB has no chroma planes and is always full range.
	require.Equal(t, 255.0, PeakValue(RGB24, true, RangeLimited))
	require.Equal(t, 0.0, LowestValue(RGB24, true, RangeLimited))

	require.Equal(t, 128.0, NeutralValue(YUV420P8))
	require.Equal(t, 32768.0, NeutralValue(YUV420P16))
	require.Equal(t, 0.0, NeutralValue(YUV444PS))

	require.Equal(t, []float64{235, 240, 240}, PeakValues(YUV420P8, RangeLimited))
	require.Equal(t, []float64{16, 16, 16}, LowestValues(YUV420P8, RangeLimited))
	require.Equal(t, []float64{128, 128, 128}, NeutralValues(YUV420P8))
	require.Equal(t, []float64{128}, NeutralValues(Gray8))
}
