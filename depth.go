package vstools

import (
	"encoding/binary"
	"math"

	parallel "github.com/kovidgoyal/go-parallel"
)

// DitherType selects how quantization error is handled when reducing to an
// integer depth.
type DitherType string

const (
	DitherAuto           DitherType = "auto"
	DitherNone           DitherType = "none"
	DitherOrdered        DitherType = "ordered"
	DitherErrorDiffusion DitherType = "error_diffusion"
)

// ShouldDither reports whether a conversion between two bases needs
// dithering. Dithering is never needed when the target is float, always
// needed leaving float or changing range, and needed when downsampling or
// when upsampling full range content, except for the exact 8-to-16 case
// which is a lossless shift.
func ShouldDither(in, out Basis) bool {
	if out.Float {
		return false
	}
	if in.Float {
		return true
	}
	if in.Range != out.Range {
		return true
	}
	if in.Bits == out.Bits {
		return false
	}
	if in.Bits > out.Bits {
		return true
	}
	return in.Range.IsFull() && !(in.Bits == 8 && out.Bits == 16)
}

// 4x4 Bayer matrix, thresholds normalized to [0, 1).
var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// DepthFrame converts one frame to a new bit depth and sample type,
// optionally converting range. The input frame is left untouched.
func DepthFrame(frame *Frame, bits int, sample SampleType, rangeIn, rangeOut ColorRange, dither DitherType) (*Frame, error) {
	outFormat, err := frame.Format.Replace(bits, sample)
	if err != nil {
		return nil, err
	}
	if unsupportedSampleIO(frame.Format) || unsupportedSampleIO(outFormat) {
		return nil, UnsupportedValueError{Name: "VideoFormat", Value: frame.Format.String(), Reason: "16 bit float data is not convertible"}
	}

	if frame.Format.BitsPerSample == bits && frame.Format.SampleType == sample && rangeIn == rangeOut {
		return frame, nil
	}

	if dither == DitherAuto {
		if ShouldDither(BasisOf(frame.Format, rangeIn), BasisOf(outFormat, rangeOut)) {
			dither = DitherErrorDiffusion
		} else {
			dither = DitherNone
		}
	}
	switch dither {
	case DitherNone, DitherOrdered, DitherErrorDiffusion:
	default:
		return nil, UnsupportedValueError{Name: "DitherType", Value: string(dither)}
	}

	out := NewFrame(outFormat, frame.Width, frame.Height)
	out.Props = frame.FrameProps().Copy()
	out.Props["_ColorRange"] = int(rangeOut)

	for i := range frame.Planes {
		chroma := frame.Format.ColorFamily == YUV && i != 0
		if err := convertPlane(
			frame.Planes[i], out.Planes[i],
			frame.Format, outFormat,
			BasisOf(frame.Format, rangeIn), BasisOf(outFormat, rangeOut),
			chroma, dither,
		); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DepthClip converts a whole clip, frame by frame.
func DepthClip(clip *Clip, bits int, sample SampleType, rangeIn, rangeOut ColorRange, dither DitherType) (*Clip, error) {
	outFormat, err := clip.Format.Replace(bits, sample)
	if err != nil {
		return nil, err
	}

	if clip.Format.BitsPerSample == bits && clip.Format.SampleType == sample && rangeIn == rangeOut {
		return clip, nil
	}

	out := clip.CopyShell()
	out.Format = outFormat
	out.Props["_ColorRange"] = int(rangeOut)
	for i, frame := range clip.FrameData {
		converted, err := DepthFrame(frame, bits, sample, rangeIn, rangeOut, dither)
		if err != nil {
			return nil, err
		}
		out.FrameData[i] = converted
	}
	return out, nil
}

func unsupportedSampleIO(format VideoFormat) bool {
	return format.SampleType == Float && format.BitsPerSample == 16
}

func convertPlane(src, dst Plane, inFormat, outFormat VideoFormat, from, to Basis, chroma bool, dither DitherType) error {
	gain := (to.peak(chroma) - to.lowest(chroma)) / (from.peak(chroma) - from.lowest(chroma))

	var pre, post float64
	if !from.Float {
		if chroma {
			pre = from.neutral(true)
		} else if from.Range.IsLimited() {
			pre = from.lowest(false)
		}
	}
	if !to.Float {
		if chroma {
			post = to.neutral(true)
		} else if to.Range.IsLimited() {
			post = to.lowest(false)
		}
	}

	width, height := src.Width, src.Height
	ceiling := float64(int64(1)<<to.Bits - 1)

	transfer := func(raw float64) float64 {
		return (raw-pre)*gain + post
	}

	if to.Float || dither != DitherErrorDiffusion {
		f := func(start, limit int) {
			for y := start; y < limit; y++ {
				for x := 0; x < width; x++ {
					idx := y*width + x
					v := transfer(readSample(inFormat, src.Data, idx))
					if !to.Float {
						if dither == DitherOrdered {
							v += bayer4[y&3][x&3]/16 - 0.5
						}
						v = Clamp(math.Round(v), 0, ceiling)
					}
					writeSample(outFormat, dst.Data, idx, v)
				}
			}
		}
		return parallel.Run_in_parallel_over_range(0, f, 0, height)
	}

	// Floyd-Steinberg is inherently sequential: each pixel's error feeds
	// its right and lower neighbors.
	errCur := make([]float64, width+2)
	errNext := make([]float64, width+2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			v := transfer(readSample(inFormat, src.Data, idx)) + errCur[x+1]
			q := Clamp(math.Round(v), 0, ceiling)
			diff := v - q
			errCur[x+2] += diff * 7 / 16
			errNext[x] += diff * 3 / 16
			errNext[x+1] += diff * 5 / 16
			errNext[x+2] += diff * 1 / 16
			writeSample(outFormat, dst.Data, idx, q)
		}
		errCur, errNext = errNext, errCur
		for i := range errNext {
			errNext[i] = 0
		}
	}
	return nil
}

func readSample(format VideoFormat, data []byte, idx int) float64 {
	switch format.BytesPerSample {
	case 1:
		return float64(data[idx])
	case 2:
		return float64(binary.LittleEndian.Uint16(data[idx*2:]))
	}
	bits := binary.LittleEndian.Uint32(data[idx*4:])
	if format.SampleType == Float {
		return float64(math.Float32frombits(bits))
	}
	return float64(bits)
}

func writeSample(format VideoFormat, data []byte, idx int, v float64) {
	switch format.BytesPerSample {
	case 1:
		data[idx] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(data[idx*2:], uint16(v))
	default:
		if format.SampleType == Float {
			binary.LittleEndian.PutUint32(data[idx*4:], math.Float32bits(float32(v)))
		} else {
			binary.LittleEndian.PutUint32(data[idx*4:], uint32(v))
		}
	}
}
