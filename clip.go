package vstools

import (
	"fmt"
)

// ShiftClip shifts a clip's frames by offset, holding the edge frame to
// keep the length unchanged. Negative offsets shift backwards.
func ShiftClip(clip *Clip, offset int) (*Clip, error) {
	n := clip.NumFrames()
	if offset > n-1 || offset < -(n-1) {
		return nil, RangeError{Name: "ShiftClip", Value: offset, Reason: fmt.Sprintf("clip has %d frames", n)}
	}

	out := clip.CopyShell()
	frames := make([]*Frame, 0, n)

	switch {
	case offset < 0:
		for i := 0; i < -offset; i++ {
			frames = append(frames, clip.FrameData[0])
		}
		frames = append(frames, clip.FrameData[:n+offset]...)
	case offset > 0:
		frames = append(frames, clip.FrameData[offset:]...)
		for i := 0; i < offset; i++ {
			frames = append(frames, clip.FrameData[n-1])
		}
	default:
		frames = append(frames, clip.FrameData...)
	}

	out.FrameData = frames
	return out, nil
}

// ShiftClipMulti returns one shifted clip per offset in [start, end].
func ShiftClipMulti(clip *Clip, start, end int) ([]*Clip, error) {
	if start > end {
		return nil, RangeError{Name: "ShiftClipMulti", Value: [2]int{start, end}, Reason: "start exceeds end"}
	}
	out := make([]*Clip, 0, end-start+1)
	for offset := start; offset <= end; offset++ {
		shifted, err := ShiftClip(clip, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, shifted)
	}
	return out, nil
}

// InsertClip overlays insert's frames onto clip starting at startFrame.
// The insert must fit entirely inside the clip.
func InsertClip(clip, insert *Clip, startFrame int) (*Clip, error) {
	if startFrame < 0 || startFrame >= clip.NumFrames() {
		return nil, RangeError{Name: "InsertClip", Value: startFrame, Reason: fmt.Sprintf("clip has %d frames", clip.NumFrames())}
	}
	if startFrame+insert.NumFrames() > clip.NumFrames() {
		return nil, RangeError{
			Name: "InsertClip", Value: insert.NumFrames(),
			Reason: fmt.Sprintf("insert would extend past the end of a %d frame clip", clip.NumFrames()),
		}
	}

	out := clip.CopyShell()
	copy(out.FrameData[startFrame:], insert.FrameData)
	return out, nil
}

// PlaneClip extracts a single plane as a gray clip of the same depth.
// Plane data is shared with the source, not copied.
func PlaneClip(clip *Clip, index int) (*Clip, error) {
	if index < 0 || index >= clip.Format.NumPlanes {
		return nil, RangeError{Name: "Plane", Value: index, Reason: fmt.Sprintf("format has %d planes", clip.Format.NumPlanes)}
	}
	if clip.Format.ColorFamily == Gray {
		return clip, nil
	}

	grayFormat, err := QueryVideoFormat(Gray, clip.Format.SampleType, clip.Format.BitsPerSample, 0, 0)
	if err != nil {
		return nil, err
	}

	width, height := clip.Format.PlaneSize(index, clip.Width, clip.Height)
	out := &Clip{
		Format: grayFormat, Width: width, Height: height,
		FPSNum: clip.FPSNum, FPSDen: clip.FPSDen,
		Props: clip.Props.Copy(),
	}
	out.FrameData = make([]*Frame, clip.NumFrames())
	for i, frame := range clip.FrameData {
		shell := &Frame{Format: grayFormat, Width: width, Height: height, Props: frame.FrameProps().Copy()}
		if index < len(frame.Planes) {
			shell.Planes = []Plane{frame.Planes[index]}
		}
		out.FrameData[i] = shell
	}
	return out, nil
}

// SplitPlanes extracts every plane of a clip as a gray clip.
func SplitPlanes(clip *Clip) ([]*Clip, error) {
	out := make([]*Clip, clip.Format.NumPlanes)
	for i := range out {
		plane, err := PlaneClip(clip, i)
		if err != nil {
			return nil, err
		}
		out[i] = plane
	}
	return out, nil
}

func familyPlane(clip *Clip, family ColorFamily, index int, channel string) (*Clip, error) {
	if clip.Format.ColorFamily != family {
		return nil, UnsupportedValueError{
			Name: "ColorFamily", Value: clip.Format.ColorFamily.String(),
			Reason: fmt.Sprintf("%s requires a %s clip", channel, family),
		}
	}
	return PlaneClip(clip, index)
}

// GetY extracts the luma plane of a YUV clip.
func GetY(clip *Clip) (*Clip, error) {
	if clip.Format.ColorFamily == Gray {
		return clip, nil
	}
	return familyPlane(clip, YUV, 0, "GetY")
}

// GetU extracts the first chroma plane of a YUV clip.
func GetU(clip *Clip) (*Clip, error) { return familyPlane(clip, YUV, 1, "GetU") }

// GetV extracts the second chroma plane of a YUV clip.
func GetV(clip *Clip) (*Clip, error) { return familyPlane(clip, YUV, 2, "GetV") }

// GetR extracts the red plane of an RGB clip.
func GetR(clip *Clip) (*Clip, error) { return familyPlane(clip, RGB, 0, "GetR") }

// GetG extracts the green plane of an RGB clip.
func GetG(clip *Clip) (*Clip, error) { return familyPlane(clip, RGB, 1, "GetG") }

// GetB extracts the blue plane of an RGB clip.
func GetB(clip *Clip) (*Clip, error) { return familyPlane(clip, RGB, 2, "GetB") }
