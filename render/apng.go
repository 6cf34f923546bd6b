package render

import (
	"image/png"
	"io"

	vstools "github.com/Jaded-Encoding-Thaumaturgy/vs-tools"
	"github.com/kettek/apng"
)

// WriteAPNG renders every frame of a clip and writes the result as an
// animated PNG, with frame timing taken from the clip's frame rate.
// Single-frame clips degrade to a plain PNG.
func WriteAPNG(w io.Writer, clip *vstools.Clip, progress *Progress) error {
	images := make([]apng.Frame, clip.NumFrames())
	delayNum, delayDen := frameDelay(clip.FPSDen, clip.FPSNum)

	err := Frames(clip, progress, func(n int, frame *vstools.Frame) error {
		img, err := FrameImage(frame)
		if err != nil {
			return err
		}
		images[n] = apng.Frame{
			Image:            img,
			DelayNumerator:   delayNum,
			DelayDenominator: delayDen,
			DisposeOp:        apng.DISPOSE_OP_BACKGROUND,
			BlendOp:          apng.BLEND_OP_SOURCE,
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(images) == 1 {
		return png.Encode(w, images[0].Image)
	}
	return apng.Encode(w, apng.APNG{Frames: images})
}

// frameDelay fits the per-frame delay fraction num/den into the uint16
// fields of the fcTL chunk: reduce by the gcd, then halve both terms until
// they fit. High-rate fractions like 1001/120000 lose a little precision
// but never wrap around.
func frameDelay(num, den int) (uint16, uint16) {
	if num <= 0 || den <= 0 {
		return 1, 24
	}
	d := gcd(num, den)
	num, den = num/d, den/d
	for num > 0xffff || den > 0xffff {
		num >>= 1
		den >>= 1
	}
	if num < 1 {
		num = 1
	}
	if den < 1 {
		den = 1
	}
	return uint16(num), uint16(den)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
