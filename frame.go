package vstools

import (
	"fmt"
)

// FrameProps is the property dictionary attached to a frame or clip. It is
// owned by whoever produced the frame; this library only ever reads it.
type FrameProps map[string]any

// FrameProps lets a bare property map satisfy PropsHolder.
func (p FrameProps) FrameProps() FrameProps { return p }

// Copy returns a shallow copy, used wherever a merged or amended view is
// needed without touching the source frame.
func (p FrameProps) Copy() FrameProps {
	out := make(FrameProps, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// PropsHolder is anything frame properties can be read off of.
type PropsHolder interface {
	FrameProps() FrameProps
}

// Plane is one plane of frame data. Pixels are packed row-major with the
// format's BytesPerSample per sample and no padding between rows.
type Plane struct {
	Data   []byte
	Width  int
	Height int
}

// Frame is a single video frame: a format descriptor, dimensions, the
// property dictionary and optionally the plane data itself.
type Frame struct {
	Format VideoFormat
	Width  int
	Height int
	Props  FrameProps
	Planes []Plane
}

// NewFrame allocates a frame with zeroed plane data.
func NewFrame(format VideoFormat, width, height int) *Frame {
	f := &Frame{Format: format, Width: width, Height: height, Props: FrameProps{}}
	f.Planes = make([]Plane, format.NumPlanes)
	for i := range f.Planes {
		w, h := format.PlaneSize(i, width, height)
		f.Planes[i] = Plane{Data: make([]byte, w*h*format.BytesPerSample), Width: w, Height: h}
	}
	return f
}

func (f *Frame) VideoFormat() VideoFormat { return f.Format }

func (f *Frame) FrameProps() FrameProps {
	if f.Props == nil {
		return FrameProps{}
	}
	return f.Props
}

// Dimensions returns the luma plane size.
func (f *Frame) Dimensions() (int, int) { return f.Width, f.Height }

// CopyShell returns a frame sharing plane data but with its own props map,
// so metadata can be amended without mutating the source.
func (f *Frame) CopyShell() *Frame {
	out := *f
	out.Props = f.FrameProps().Copy()
	return &out
}

// Clip is a sequence of frames sharing a format and dimensions, together
// with clip-level properties and a frame rate.
type Clip struct {
	Format    VideoFormat
	Width     int
	Height    int
	FPSNum    int
	FPSDen    int
	Props     FrameProps
	FrameData []*Frame
}

// NewClip builds a clip of length zero-filled frames.
func NewClip(format VideoFormat, width, height, length int) *Clip {
	c := &Clip{Format: format, Width: width, Height: height, FPSNum: 24, FPSDen: 1, Props: FrameProps{}}
	c.FrameData = make([]*Frame, length)
	for i := range c.FrameData {
		c.FrameData[i] = NewFrame(format, width, height)
	}
	return c
}

func (c *Clip) VideoFormat() VideoFormat { return c.Format }

// FrameProps returns the clip-level props, falling back to the first
// frame's when the clip itself carries none.
func (c *Clip) FrameProps() FrameProps {
	if len(c.Props) > 0 {
		return c.Props
	}
	if len(c.FrameData) > 0 {
		return c.FrameData[0].FrameProps()
	}
	return FrameProps{}
}

func (c *Clip) Dimensions() (int, int) { return c.Width, c.Height }

// NumFrames returns the clip length.
func (c *Clip) NumFrames() int { return len(c.FrameData) }

// Frame returns frame n.
func (c *Clip) Frame(n int) (*Frame, error) {
	if n < 0 || n >= len(c.FrameData) {
		return nil, RangeError{Name: "Frame", Value: n, Reason: fmt.Sprintf("clip has %d frames", len(c.FrameData))}
	}
	return c.FrameData[n], nil
}

// CopyShell returns a clip sharing frame data but with its own props map
// and frame slice, so either can be amended without mutating the source.
func (c *Clip) CopyShell() *Clip {
	out := *c
	out.Props = c.Props.Copy()
	out.FrameData = append([]*Frame(nil), c.FrameData...)
	return &out
}

// VideoSource is a frame or clip: format, dimensions and props together.
// The metadata resolvers take this when a resolution fallback is possible.
type VideoSource interface {
	HoldsVideoFormat
	PropsHolder
	Dimensions() (int, int)
}
