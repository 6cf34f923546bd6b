// Package render turns clip frames back into standard library images for
// previewing, and writes clips out as animations.
package render

import (
	"fmt"
	"image"

	vstools "github.com/Jaded-Encoding-Thaumaturgy/vs-tools"
	parallel "github.com/kovidgoyal/go-parallel"
	xdraw "golang.org/x/image/draw"
)

var _ = fmt.Print

// BT.601-family and friends: luma weights per matrix, used to undo the
// YUV encode when composing an RGB preview.
var lumaWeights = map[vstools.Matrix][2]float64{
	vstools.MatrixBT709:     {0.2126, 0.0722},
	vstools.MatrixBT470BG:   {0.299, 0.114},
	vstools.MatrixSMPTE170M: {0.299, 0.114},
	vstools.MatrixSMPTE240M: {0.212, 0.087},
	vstools.MatrixFCC:       {0.3, 0.11},
	vstools.MatrixBT2020NC:  {0.2627, 0.0593},
	vstools.MatrixBT2020C:   {0.2627, 0.0593},
}

// FrameImage converts a frame to an image.Image. Gray clips map straight
// onto image.Gray; RGB and YUV clips become image.NRGBA, with YUV chroma
// upsampled to the luma resolution first. The frame's own properties drive
// the matrix and range interpretation, with the usual lax fallbacks.
func FrameImage(frame *vstools.Frame) (image.Image, error) {
	rangeIn, err := vstools.ColorRangeFromVideo(frame, false)
	if err != nil {
		return nil, err
	}

	// Normalize everything to 8 bit integer planes first.
	frame, err = vstools.DepthFrame(frame, 8, vstools.Integer, rangeIn, rangeIn, vstools.DitherAuto)
	if err != nil {
		return nil, err
	}

	switch frame.Format.ColorFamily {
	case vstools.Gray:
		return planeImage(frame.Planes[0]), nil
	case vstools.RGB:
		return rgbImage(frame)
	case vstools.YUV:
		return yuvImage(frame, rangeIn)
	}
	return nil, vstools.UnsupportedValueError{Name: "ColorFamily", Value: frame.Format.ColorFamily.String()}
}

func planeImage(p vstools.Plane) *image.Gray {
	return &image.Gray{Pix: p.Data, Stride: p.Width, Rect: image.Rect(0, 0, p.Width, p.Height)}
}

func rgbImage(frame *vstools.Frame) (image.Image, error) {
	width, height := frame.Width, frame.Height
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	r, g, b := frame.Planes[0].Data, frame.Planes[1].Data, frame.Planes[2].Data

	f := func(start, limit int) {
		for y := start; y < limit; y++ {
			for x := 0; x < width; x++ {
				idx := y*width + x
				s := dst.Pix[y*dst.Stride+x*4:][:4:4]
				s[0], s[1], s[2], s[3] = r[idx], g[idx], b[idx], 0xff
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, height); err != nil {
		return nil, err
	}
	return dst, nil
}

func yuvImage(frame *vstools.Frame, rangeIn vstools.ColorRange) (image.Image, error) {
	matrix, err := vstools.MatrixFromVideo(frame, false)
	if err != nil {
		return nil, err
	}
	weights, ok := lumaWeights[matrix]
	if !ok {
		return nil, vstools.UnsupportedValueError{Name: "Matrix", Value: int(matrix), Reason: "no RGB conversion"}
	}
	kr, kb := weights[0], weights[1]

	width, height := frame.Width, frame.Height
	yp := frame.Planes[0]
	up := upsample(frame.Planes[1], width, height)
	vp := upsample(frame.Planes[2], width, height)

	// Limited range stretches luma over 219 steps and chroma over 224.
	lumaGain, chromaGain := 1.0, 1.0
	lumaOff := 0.0
	if rangeIn.IsLimited() {
		lumaGain, chromaGain = 255.0/219.0, 255.0/224.0
		lumaOff = 16
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	f := func(start, limit int) {
		for y := start; y < limit; y++ {
			for x := 0; x < width; x++ {
				idx := y*width + x
				l := (float64(yp.Data[idx]) - lumaOff) * lumaGain
				cb := (float64(up.Pix[y*up.Stride+x]) - 128) * chromaGain
				cr := (float64(vp.Pix[y*vp.Stride+x]) - 128) * chromaGain

				r := l + 2*(1-kr)*cr
				b := l + 2*(1-kb)*cb
				g := (l - kr*r - kb*b) / (1 - kr - kb)

				s := dst.Pix[y*dst.Stride+x*4:][:4:4]
				s[0] = byte(vstools.Clamp(r+0.5, 0, 255))
				s[1] = byte(vstools.Clamp(g+0.5, 0, 255))
				s[2] = byte(vstools.Clamp(b+0.5, 0, 255))
				s[3] = 0xff
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, height); err != nil {
		return nil, err
	}
	return dst, nil
}

func upsample(p vstools.Plane, width, height int) *image.Gray {
	src := planeImage(p)
	if p.Width == width && p.Height == height {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Rect, src, src.Bounds(), xdraw.Src, nil)
	return dst
}
