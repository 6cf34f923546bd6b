package vstools

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// SampleType describes how samples of a format are stored.
type SampleType int

const (
	Integer SampleType = iota
	Float
)

func (s SampleType) String() string {
	if s == Float {
		return "Float"
	}
	return "Integer"
}

// ColorFamily is the plane layout family of a format.
type ColorFamily int

const (
	UndefinedFamily ColorFamily = iota
	Gray
	YUV
	RGB
)

var colorFamilyNames = map[ColorFamily]string{
	Gray: "Gray",
	YUV:  "YUV",
	RGB:  "RGB",
}

func (c ColorFamily) String() string {
	return colorFamilyNames[c]
}

// MaxBitDepth is the highest bits-per-sample any format may carry.
const MaxBitDepth = 32

// VideoFormat describes the memory layout of a frame: family, sample type,
// bit depth and chroma subsampling. Subsampling values are log2 ratios, the
// same convention the host framework uses.
type VideoFormat struct {
	ColorFamily    ColorFamily
	SampleType     SampleType
	BitsPerSample  int
	BytesPerSample int
	SubSamplingW   int
	SubSamplingH   int
	NumPlanes      int
}

// Preset formats, named after the host framework's registered formats.
var (
	Gray8  = mustFormat(Gray, Integer, 8, 0, 0)
	Gray10 = mustFormat(Gray, Integer, 10, 0, 0)
	Gray16 = mustFormat(Gray, Integer, 16, 0, 0)
	GrayH  = mustFormat(Gray, Float, 16, 0, 0)
	GrayS  = mustFormat(Gray, Float, 32, 0, 0)

	YUV410P8 = mustFormat(YUV, Integer, 8, 2, 2)
	YUV411P8 = mustFormat(YUV, Integer, 8, 2, 0)
	YUV440P8 = mustFormat(YUV, Integer, 8, 0, 1)

	YUV420P8  = mustFormat(YUV, Integer, 8, 1, 1)
	YUV420P10 = mustFormat(YUV, Integer, 10, 1, 1)
	YUV420P12 = mustFormat(YUV, Integer, 12, 1, 1)
	YUV420P16 = mustFormat(YUV, Integer, 16, 1, 1)

	YUV422P8  = mustFormat(YUV, Integer, 8, 1, 0)
	YUV422P10 = mustFormat(YUV, Integer, 10, 1, 0)
	YUV422P16 = mustFormat(YUV, Integer, 16, 1, 0)

	YUV444P8  = mustFormat(YUV, Integer, 8, 0, 0)
	YUV444P10 = mustFormat(YUV, Integer, 10, 0, 0)
	YUV444P16 = mustFormat(YUV, Integer, 16, 0, 0)
	YUV444PH  = mustFormat(YUV, Float, 16, 0, 0)
	YUV444PS  = mustFormat(YUV, Float, 32, 0, 0)

	RGB24 = mustFormat(RGB, Integer, 8, 0, 0)
	RGB30 = mustFormat(RGB, Integer, 10, 0, 0)
	RGB48 = mustFormat(RGB, Integer, 16, 0, 0)
	RGBH  = mustFormat(RGB, Float, 16, 0, 0)
	RGBS  = mustFormat(RGB, Float, 32, 0, 0)
)

// QueryVideoFormat builds a format descriptor, validating depth, sample type
// and subsampling combinations the way the host framework does.
func QueryVideoFormat(family ColorFamily, sample SampleType, bits, ssw, ssh int) (VideoFormat, error) {
	if bits < 8 || bits > MaxBitDepth {
		return VideoFormat{}, RangeError{Name: "BitsPerSample", Value: bits, Reason: "supported depths are 8-32"}
	}
	if sample == Float && bits != 16 && bits != 32 {
		return VideoFormat{}, RangeError{Name: "BitsPerSample", Value: bits, Reason: "float formats are 16 or 32 bit"}
	}
	if family != YUV && (ssw != 0 || ssh != 0) {
		return VideoFormat{}, UnsupportedValueError{Name: "SubSampling", Value: [2]int{ssw, ssh}, Reason: "only YUV formats may be subsampled"}
	}
	if ssw < 0 || ssw > 2 || ssh < 0 || ssh > 2 {
		return VideoFormat{}, UnsupportedValueError{Name: "SubSampling", Value: [2]int{ssw, ssh}}
	}
	planes := 3
	if family == Gray {
		planes = 1
	}
	return VideoFormat{
		ColorFamily:    family,
		SampleType:     sample,
		BitsPerSample:  bits,
		BytesPerSample: bytesFor(bits),
		SubSamplingW:   ssw,
		SubSamplingH:   ssh,
		NumPlanes:      planes,
	}, nil
}

func mustFormat(family ColorFamily, sample SampleType, bits, ssw, ssh int) VideoFormat {
	fmt, err := QueryVideoFormat(family, sample, bits, ssw, ssh)
	if err != nil {
		panic(err)
	}
	return fmt
}

func bytesFor(bits int) int {
	switch {
	case bits <= 8:
		return 1
	case bits <= 16:
		return 2
	}
	return 4
}

// FormatFromDepth returns the non-subsampled YUV format of the given bit
// depth; 32 bit depths become float, everything else integer.
func FormatFromDepth(bits int) (VideoFormat, error) {
	sample := Integer
	if bits == 32 {
		sample = Float
	}
	return QueryVideoFormat(YUV, sample, bits, 0, 0)
}

// VideoFormat lets a bare format satisfy HoldsVideoFormat.
func (f VideoFormat) VideoFormat() VideoFormat { return f }

func (f VideoFormat) String() string {
	if f.ColorFamily == UndefinedFamily {
		return "Undefined"
	}
	suffix := ""
	if f.SampleType == Float {
		switch f.BitsPerSample {
		case 16:
			suffix = "H"
		default:
			suffix = "S"
		}
	} else {
		suffix = fmt.Sprintf("%d", f.BitsPerSample)
	}
	switch f.ColorFamily {
	case Gray:
		return "Gray" + suffix
	case RGB:
		if f.SampleType == Integer {
			return fmt.Sprintf("RGB%d", 3*f.BitsPerSample)
		}
		return "RGB" + suffix
	}
	ss, err := f.Subsampling()
	if err != nil {
		ss = "???"
	}
	return "YUV" + ss + "P" + suffix
}

// Replace returns a copy of the format with depth and sample type swapped
// out, keeping family and subsampling.
func (f VideoFormat) Replace(bits int, sample SampleType) (VideoFormat, error) {
	return QueryVideoFormat(f.ColorFamily, sample, bits, f.SubSamplingW, f.SubSamplingH)
}

// HoldsVideoFormat is anything a format can be read off of: a format itself,
// a frame or a clip.
type HoldsVideoFormat interface {
	VideoFormat() VideoFormat
}

// Depth returns the bits per sample of whatever holds a format.
func Depth(holder HoldsVideoFormat) int {
	return holder.VideoFormat().BitsPerSample
}

// SampleTypeOf returns the sample type of whatever holds a format.
func SampleTypeOf(holder HoldsVideoFormat) SampleType {
	return holder.VideoFormat().SampleType
}

// ColorFamilyOf returns the color family of whatever holds a format.
func ColorFamilyOf(holder HoldsVideoFormat) ColorFamily {
	return holder.VideoFormat().ColorFamily
}

// Subsampling returns the human-readable chroma subsampling name ("420",
// "444", ...) of a YUV format and an empty string for other families.
func (f VideoFormat) Subsampling() (string, error) {
	if f.ColorFamily != YUV {
		return "", nil
	}
	switch [2]int{f.SubSamplingW, f.SubSamplingH} {
	case [2]int{2, 2}:
		return "410", nil
	case [2]int{2, 0}:
		return "411", nil
	case [2]int{1, 1}:
		return "420", nil
	case [2]int{1, 0}:
		return "422", nil
	case [2]int{0, 1}:
		return "440", nil
	case [2]int{0, 0}:
		return "444", nil
	}
	return "", UnsupportedValueError{Name: "SubSampling", Value: [2]int{f.SubSamplingW, f.SubSamplingH}}
}

// PlaneSize returns the dimensions of plane index for a frame of the given
// size in this format.
func (f VideoFormat) PlaneSize(index, width, height int) (int, int) {
	if index != 0 {
		width >>= f.SubSamplingW
		height >>= f.SubSamplingH
	}
	return width, height
}

// Resolution is the size of one plane.
type Resolution struct {
	Plane  int
	Width  int
	Height int
}

// Resolutions returns the per-plane resolutions of a frame-sized buffer in
// this format.
func (f VideoFormat) Resolutions(width, height int) []Resolution {
	res := make([]Resolution, f.NumPlanes)
	for i := range res {
		w, h := f.PlaneSize(i, width, height)
		res[i] = Resolution{Plane: i, Width: w, Height: h}
	}
	return res
}

// Clamp bounds val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// CRound rounds accounting for float imprecision near .5 boundaries.
func CRound(x float64) int {
	const eps = 1e-6
	if x > 0 {
		return int(math.Round(x + eps))
	}
	return int(math.Round(x - eps))
}

// ModX forces a value to be divisible by x.
func ModX(val float64, x int) int {
	return max(x*x, CRound(val/float64(x))*x)
}

// Mod2 forces a value to be divisible by 2.
func Mod2(val float64) int { return ModX(val, 2) }

// Mod4 forces a value to be divisible by 4.
func Mod4(val float64) int { return ModX(val, 4) }

// GetW calculates a width from a height and an aspect ratio, mod-aligned.
// A mod of 0 only rounds.
func GetW(height float64, aspectRatio float64, mod int) int {
	width := height * aspectRatio
	if mod != 0 {
		return ModX(width, mod)
	}
	return CRound(width)
}

// GetH calculates a height from a width and an aspect ratio, mod-aligned.
func GetH(width float64, aspectRatio float64, mod int) int {
	height := width / aspectRatio
	if mod != 0 {
		return ModX(height, mod)
	}
	return CRound(height)
}
