package vstools

import (
	"math"
)

// Basis is the interpretation of a raw sample value: bit depth, integer or
// float storage, and pixel range.
type Basis struct {
	Bits  int
	Float bool
	Range ColorRange
}

// BasisOf derives the scaling basis of a format under a given range.
func BasisOf(holder HoldsVideoFormat, r ColorRange) Basis {
	format := holder.VideoFormat()
	if format.ColorFamily == RGB {
		r = RangeFull
	}
	return Basis{Bits: format.BitsPerSample, Float: format.SampleType == Float, Range: r}
}

func (b Basis) validate() error {
	if b.Bits < 8 || b.Bits > MaxBitDepth {
		return RangeError{Name: "BitsPerSample", Value: b.Bits, Reason: "supported depths are 8-32"}
	}
	return nil
}

// lowest and peak give the (floor, ceiling) of the channel described by the
// basis; chroma selects the chroma levels under limited range and the
// zero-centered float convention.
func (b Basis) lowest(chroma bool) float64 {
	if b.Float {
		if chroma {
			return -0.5
		}
		return 0
	}
	if b.Range.IsLimited() {
		return float64(int64(16) << (b.Bits - 8))
	}
	return 0
}

func (b Basis) peak(chroma bool) float64 {
	if b.Float {
		if chroma {
			return 0.5
		}
		return 1
	}
	if b.Range.IsLimited() {
		level := int64(235)
		if chroma {
			level = 240
		}
		return float64(level << (b.Bits - 8))
	}
	return float64(int64(1)<<b.Bits - 1)
}

func (b Basis) neutral(chroma bool) float64 {
	if b.Float {
		return 0
	}
	if chroma {
		return float64(int64(128) << (b.Bits - 8))
	}
	return 0
}

// ScaleValue converts an absolute sample value from one basis to another.
//
// Integer sources are first shifted to a zero-anchored value (chroma by its
// neutral point, limited-range luma by its floor), rescaled by the ratio of
// the target and source spans, then shifted back onto the target's anchor.
// Integer targets round half away from zero and clamp to the representable
// range of the target depth; float targets are returned untouched.
//
// Converting a value to its own basis returns it exactly, with no
// arithmetic performed.
func ScaleValue(value float64, from, to Basis, chroma bool) (float64, error) {
	return scale(value, from, to, chroma, true)
}

// ScaleDelta converts a difference between two sample values. It performs
// the same span rescale as ScaleValue but never maps zero-point offsets,
// which would corrupt a delta.
func ScaleDelta(value float64, from, to Basis, chroma bool) (float64, error) {
	return scale(value, from, to, chroma, false)
}

func scale(value float64, from, to Basis, chroma, offsets bool) (float64, error) {
	if err := from.validate(); err != nil {
		return 0, err
	}
	if err := to.validate(); err != nil {
		return 0, err
	}

	if from == to {
		return value, nil
	}

	out := value

	if offsets && !from.Float {
		if chroma {
			out -= from.neutral(true)
		} else if from.Range.IsLimited() {
			out -= from.lowest(false)
		}
	}

	out *= (to.peak(chroma) - to.lowest(chroma)) / (from.peak(chroma) - from.lowest(chroma))

	if offsets && !to.Float {
		if chroma {
			out += to.neutral(true)
		} else if to.Range.IsLimited() {
			out += to.lowest(false)
		}
	}

	if !to.Float {
		out = Clamp(math.Round(out), 0, float64(int64(1)<<to.Bits-1))
	}

	return out, nil
}

// Scale8Bit scales a full-range 8-bit value to the bit depth of the given
// format, keeping full range.
func Scale8Bit(holder HoldsVideoFormat, value float64, chroma bool) (float64, error) {
	return ScaleValue(value, Basis{Bits: 8}, BasisOf(holder, RangeFull), chroma)
}

// PeakValue returns the highest value of the format's channel under the
// given range. RGB formats have no chroma channels and are always full
// range.
func PeakValue(holder HoldsVideoFormat, chroma bool, r ColorRange) float64 {
	format := holder.VideoFormat()
	if format.ColorFamily == RGB {
		chroma = false
	}
	return BasisOf(format, r).peak(chroma)
}

// LowestValue returns the lowest value of the format's channel under the
// given range.
func LowestValue(holder HoldsVideoFormat, chroma bool, r ColorRange) float64 {
	format := holder.VideoFormat()
	if format.ColorFamily == RGB {
		chroma = false
	}
	return BasisOf(format, r).lowest(chroma)
}

// NeutralValue returns the no-op point of the format: the value a
// difference of zero maps to.
func NeutralValue(holder HoldsVideoFormat) float64 {
	format := holder.VideoFormat()
	if format.SampleType == Float {
		return 0
	}
	return float64(int64(1) << (format.BitsPerSample - 1))
}

// PeakValues returns the peak value of every plane of the format.
func PeakValues(holder HoldsVideoFormat, r ColorRange) []float64 {
	return perPlane(holder, func(chroma bool) float64 { return PeakValue(holder, chroma, r) })
}

// LowestValues returns the lowest value of every plane of the format.
func LowestValues(holder HoldsVideoFormat, r ColorRange) []float64 {
	return perPlane(holder, func(chroma bool) float64 { return LowestValue(holder, chroma, r) })
}

// NeutralValues returns the neutral value of every plane of the format.
func NeutralValues(holder HoldsVideoFormat) []float64 {
	return perPlane(holder, func(bool) float64 { return NeutralValue(holder) })
}

func perPlane(holder HoldsVideoFormat, value func(chroma bool) float64) []float64 {
	format := holder.VideoFormat()
	out := make([]float64, format.NumPlanes)
	for i := range out {
		out[i] = value(format.ColorFamily == YUV && i > 0)
	}
	return out
}
