package vstools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldDither(t *testing.T) {
	intBasis := func(bits int, r ColorRange) Basis { return Basis{Bits: bits, Range: r} }
	floatBasis := Basis{Bits: 32, Float: true, Range: RangeFull}

	for _, tc := range []struct {
		name    string
		in, out Basis
		want    bool
	}{
		{"float target never dithers", intBasis(8, RangeFull), floatBasis, false},
		{"float source always dithers", floatBasis, intBasis(16, RangeFull), true},
		{"range conversion dithers", intBasis(8, RangeLimited), intBasis(8, RangeFull), true},
		{"same basis", intBasis(10, RangeLimited), intBasis(10, RangeLimited), false},
		{"downsample dithers", intBasis(10, RangeLimited), intBasis(8, RangeLimited), true},
		{"limited upsample is exact", intBasis(8, RangeLimited), intBasis(10, RangeLimited), false},
		{"full upsample dithers", intBasis(8, RangeFull), intBasis(10, RangeFull), true},
		{"full 8 to 16 is a shift", intBasis(8, RangeFull), intBasis(16, RangeFull), false},
	} {
		require.Equal(t, tc.want, ShouldDither(tc.in, tc.out), tc.name)
	}
}

func fillPlane(p Plane, format VideoFormat, value float64) {
	for i := 0; i < p.Width*p.Height; i++ {
		writeSample(format, p.Data, i, value)
	}
}

func samplesOf(p Plane, format VideoFormat) []float64 {
	out := make([]float64, p.Width*p.Height)
	for i := range out {
		out[i] = readSample(format, p.Data, i)
	}
	return out
}

func TestDepthFrameLimitedShift(t *testing.T) {
	frame := NewFrame(YUV420P8, 8, 8)
	fillPlane(frame.Planes[0], YUV420P8, 24)
	fillPlane(frame.Planes[1], YUV420P8, 128)
	fillPlane(frame.Planes[2], YUV420P8, 240)

	out, err := DepthFrame(frame, 10, Integer, RangeLimited, RangeLimited, DitherAuto)
	require.NoError(t, err)
	require.Equal(t, YUV420P10, out.Format)

	for _, v := range samplesOf(out.Planes[0], out.Format) {
		require.Equal(t, 96.0, v)
	}
	for _, v := range samplesOf(out.Planes[1], out.Format) {
		require.Equal(t, 512.0, v)
	}
	for _, v := range samplesOf(out.Planes[2], out.Format) {
		require.Equal(t, 960.0, v)
	}

	require.Equal(t, int(RangeLimited), out.Props["_ColorRange"])

	// The input frame is untouched.
	require.Equal(t, 24.0, readSample(YUV420P8, frame.Planes[0].Data, 0))

	back, err := DepthFrame(out, 8, Integer, RangeLimited, RangeLimited, DitherNone)
	require.NoError(t, err)
	require.Equal(t, 24.0, readSample(back.Format, back.Planes[0].Data, 0))
}

func TestDepthFrameIdentity(t *testing.T) {
	frame := NewFrame(Gray8, 4, 4)
	out, err := DepthFrame(frame, 8, Integer, RangeFull, RangeFull, DitherAuto)
	require.NoError(t, err)
	require.Same(t, frame, out)
}

func TestDepthFrameToFloat(t *testing.T) {
	frame := NewFrame(Gray8, 4, 4)
	fillPlane(frame.Planes[0], Gray8, 255)

	out, err := DepthFrame(frame, 32, Float, RangeFull, RangeFull, DitherAuto)
	require.NoError(t, err)
	require.Equal(t, GrayS, out.Format)
	for _, v := range samplesOf(out.Planes[0], out.Format) {
		require.Equal(t, 1.0, v)
	}
}

func TestDepthFrameRangeConversion(t *testing.T) {
	frame := NewFrame(Gray8, 4, 4)
	fillPlane(frame.Planes[0], Gray8, 235)

	out, err := DepthFrame(frame, 8, Integer, RangeLimited, RangeFull, DitherNone)
	require.NoError(t, err)
	for _, v := range samplesOf(out.Planes[0], out.Format) {
		require.Equal(t, 255.0, v)
	}
	require.Equal(t, int(RangeFull), out.Props["_ColorRange"])
}

func TestDepthFrameOrdered(t *testing.T) {
	frame := NewFrame(Gray8, 8, 8)
	fillPlane(frame.Planes[0], Gray8, 24)

	// Exact multiples are stable under ordered dithering.
	out, err := DepthFrame(frame, 10, Integer, RangeLimited, RangeLimited, DitherOrdered)
	require.NoError(t, err)
	for _, v := range samplesOf(out.Planes[0], out.Format) {
		require.Equal(t, 96.0, v)
	}
}

func TestDepthFrameErrorDiffusion(t *testing.T) {
	frame := NewFrame(Gray8, 16, 16)
	fillPlane(frame.Planes[0], Gray8, 100)

	out, err := DepthFrame(frame, 10, Integer, RangeFull, RangeFull, DitherErrorDiffusion)
	require.NoError(t, err)

	// 100 maps to 401.18 at 10 bit; error diffusion must keep each sample
	// adjacent to the ideal value and preserve the mean.
	exact := 100.0 * 1023 / 255
	sum := 0.0
	for _, v := range samplesOf(out.Planes[0], out.Format) {
		require.InDelta(t, exact, v, 2)
		sum += v
	}
	require.InDelta(t, exact, sum/256, 0.5)
}

func TestDepthFrameErrors(t *testing.T) {
	var unsupported UnsupportedValueError

	half := NewFrame(GrayH, 4, 4)
	_, err := DepthFrame(half, 32, Float, RangeFull, RangeFull, DitherAuto)
	require.True(t, errors.As(err, &unsupported))

	frame := NewFrame(Gray8, 4, 4)
	_, err = DepthFrame(frame, 16, Float, RangeFull, RangeFull, DitherAuto)
	require.True(t, errors.As(err, &unsupported))

	_, err = DepthFrame(frame, 10, Integer, RangeFull, RangeFull, DitherType("random"))
	require.True(t, errors.As(err, &unsupported))

	var rangeErr RangeError
	_, err = DepthFrame(frame, 33, Integer, RangeFull, RangeFull, DitherAuto)
	require.True(t, errors.As(err, &rangeErr))
}

func TestDepthClip(t *testing.T) {
	clip := NewClip(YUV420P8, 16, 16, 3)
	for _, frame := range clip.FrameData {
		fillPlane(frame.Planes[0], YUV420P8, 24)
	}

	out, err := DepthClip(clip, 16, Integer, RangeLimited, RangeLimited, DitherAuto)
	require.NoError(t, err)
	require.Equal(t, YUV420P16, out.Format)
	require.Equal(t, 16, Depth(out))
	require.Equal(t, 3, out.NumFrames())
	require.Equal(t, int(RangeLimited), out.Props["_ColorRange"])
	require.Equal(t, 6144.0, readSample(out.Format, out.FrameData[0].Planes[0].Data, 0))

	same, err := DepthClip(clip, 8, Integer, RangeLimited, RangeLimited, DitherAuto)
	require.NoError(t, err)
	require.Same(t, clip, same)
}
