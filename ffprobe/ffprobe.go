// Package ffprobe shells out to ffprobe and maps its JSON output, including
// the color metadata strings, onto the library's enums.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	vstools "github.com/Jaded-Encoding-Thaumaturgy/vs-tools"
	"github.com/sirupsen/logrus"
)

// Stream is one elementary stream as reported by ffprobe. Numeric fields
// ffprobe emits as strings stay strings.
type Stream struct {
	Index          int    `json:"index"`
	CodecName      string `json:"codec_name"`
	CodecLongName  string `json:"codec_long_name"`
	CodecType      string `json:"codec_type"`
	Profile        string `json:"profile"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	PixFmt         string `json:"pix_fmt"`
	ColorRange     string `json:"color_range"`
	ColorSpace     string `json:"color_space"`
	ColorTransfer  string `json:"color_transfer"`
	ColorPrimaries string `json:"color_primaries"`
	ChromaLocation string `json:"chroma_location"`
	FieldOrder     string `json:"field_order"`
	RFrameRate     string `json:"r_frame_rate"`
	AvgFrameRate   string `json:"avg_frame_rate"`
	BitRate        string `json:"bit_rate"`
	NbFrames       string `json:"nb_frames"`
	BitsPerRaw     string `json:"bits_per_raw_sample"`
	SampleRate     string `json:"sample_rate"`
	Channels       int    `json:"channels"`
	Duration       string `json:"duration"`
}

// Format is the container-level block of ffprobe output.
type Format struct {
	Filename       string `json:"filename"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	NbStreams      int    `json:"nb_streams"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

// Result is a full ffprobe report for one file.
type Result struct {
	Format  Format   `json:"format"`
	Streams []Stream `json:"streams"`
}

// VideoStreams returns the video streams of the report, in order.
func (r *Result) VideoStreams() []Stream {
	return r.streamsOfType("video")
}

// AudioStreams returns the audio streams of the report, in order.
func (r *Result) AudioStreams() []Stream {
	return r.streamsOfType("audio")
}

func (r *Result) streamsOfType(kind string) []Stream {
	var out []Stream
	for _, s := range r.Streams {
		if s.CodecType == kind {
			out = append(out, s)
		}
	}
	return out
}

// Probe runs ffprobe on a file and parses its JSON report.
func Probe(ctx context.Context, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-of", "json",
		path,
	)
	logrus.WithField("args", cmd.Args).Debug("running ffprobe")

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return Parse(out)
}

// Parse decodes a raw ffprobe JSON report.
func Parse(data []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &result, nil
}

var rangeNames = map[string]vstools.ColorRange{
	"tv":      vstools.RangeLimited,
	"limited": vstools.RangeLimited,
	"mpeg":    vstools.RangeLimited,
	"pc":      vstools.RangeFull,
	"full":    vstools.RangeFull,
	"jpeg":    vstools.RangeFull,
}

var matrixNames = map[string]vstools.Matrix{
	"gbr":               vstools.MatrixRGB,
	"bt709":             vstools.MatrixBT709,
	"unknown":           vstools.MatrixUnknown,
	"fcc":               vstools.MatrixFCC,
	"bt470bg":           vstools.MatrixBT470BG,
	"smpte170m":         vstools.MatrixSMPTE170M,
	"smpte240m":         vstools.MatrixSMPTE240M,
	"bt2020nc":          vstools.MatrixBT2020NC,
	"bt2020c":           vstools.MatrixBT2020C,
	"smpte2085":         vstools.MatrixSMPTE2085,
	"chroma-derived-nc": vstools.MatrixChromaDerivedNC,
	"chroma-derived-c":  vstools.MatrixChromaDerivedC,
	"ictcp":             vstools.MatrixICtCp,
}

var transferNames = map[string]vstools.Transfer{
	"bt709":        vstools.TransferBT709,
	"unknown":      vstools.TransferUnknown,
	"gamma22":      vstools.TransferBT470M,
	"gamma28":      vstools.TransferBT470BG,
	"smpte170m":    vstools.TransferBT601,
	"smpte240m":    vstools.TransferST240M,
	"linear":       vstools.TransferLinear,
	"log100":       vstools.TransferLog100,
	"log316":       vstools.TransferLog316,
	"iec61966-2-4": vstools.TransferXVYCC,
	"iec61966-2-1": vstools.TransferSRGB,
	"bt2020-10":    vstools.TransferBT2020_10,
	"bt2020-12":    vstools.TransferBT2020_12,
	"smpte2084":    vstools.TransferST2084,
	"arib-std-b67": vstools.TransferARIBB67,
}

var primariesNames = map[string]vstools.Primaries{
	"bt709":     vstools.PrimariesBT709,
	"unknown":   vstools.PrimariesUnknown,
	"bt470m":    vstools.PrimariesBT470M,
	"bt470bg":   vstools.PrimariesBT470BG,
	"smpte170m": vstools.PrimariesST170M,
	"smpte240m": vstools.PrimariesST240M,
	"film":      vstools.PrimariesFilm,
	"bt2020":    vstools.PrimariesBT2020,
	"smpte428":  vstools.PrimariesST428,
	"smpte431":  vstools.PrimariesST431_2,
	"smpte432":  vstools.PrimariesST432_1,
	"ebu3213":   vstools.PrimariesEBU3213E,
}

var chromaLocationNames = map[string]vstools.ChromaLocation{
	"left":       vstools.ChromaLeft,
	"center":     vstools.ChromaCenter,
	"topleft":    vstools.ChromaTopLeft,
	"top":        vstools.ChromaTop,
	"bottomleft": vstools.ChromaBottomLeft,
	"bottom":     vstools.ChromaBottom,
}

var fieldOrderNames = map[string]vstools.FieldBased{
	"progressive": vstools.FieldProgressive,
	"tt":          vstools.FieldTFF,
	"tb":          vstools.FieldTFF,
	"bb":          vstools.FieldBFF,
	"bt":          vstools.FieldBFF,
}

// Matrix maps the stream's color_space string onto the Matrix enum. Empty
// and "unknown" both resolve to the unknown sentinel.
func (s *Stream) Matrix() (vstools.Matrix, error) {
	if s.ColorSpace == "" {
		return vstools.MatrixUnknown, nil
	}
	if m, ok := matrixNames[s.ColorSpace]; ok {
		return m, nil
	}
	return 0, vstools.UnsupportedValueError{Name: "Matrix", Value: s.ColorSpace}
}

// Transfer maps the stream's color_transfer string onto the Transfer enum.
func (s *Stream) Transfer() (vstools.Transfer, error) {
	if s.ColorTransfer == "" {
		return vstools.TransferUnknown, nil
	}
	if t, ok := transferNames[s.ColorTransfer]; ok {
		return t, nil
	}
	return 0, vstools.UnsupportedValueError{Name: "Transfer", Value: s.ColorTransfer}
}

// Primaries maps the stream's color_primaries string onto the Primaries
// enum.
func (s *Stream) Primaries() (vstools.Primaries, error) {
	if s.ColorPrimaries == "" {
		return vstools.PrimariesUnknown, nil
	}
	if p, ok := primariesNames[s.ColorPrimaries]; ok {
		return p, nil
	}
	return 0, vstools.UnsupportedValueError{Name: "Primaries", Value: s.ColorPrimaries}
}

// Range maps the stream's color_range string onto the ColorRange enum.
// Absent range metadata means limited, matching the library default.
func (s *Stream) Range() (vstools.ColorRange, error) {
	if s.ColorRange == "" || s.ColorRange == "unknown" {
		return vstools.RangeLimited, nil
	}
	if r, ok := rangeNames[s.ColorRange]; ok {
		return r, nil
	}
	return 0, vstools.UnsupportedValueError{Name: "ColorRange", Value: s.ColorRange}
}

// ChromaLocation maps the stream's chroma_location string onto the enum,
// defaulting to left siting when absent.
func (s *Stream) ChromaLoc() (vstools.ChromaLocation, error) {
	if s.ChromaLocation == "" || s.ChromaLocation == "unspecified" {
		return vstools.ChromaLeft, nil
	}
	if c, ok := chromaLocationNames[s.ChromaLocation]; ok {
		return c, nil
	}
	return 0, vstools.UnsupportedValueError{Name: "ChromaLocation", Value: s.ChromaLocation}
}

// FieldBased maps the stream's field_order string onto the enum,
// defaulting to progressive when absent.
func (s *Stream) FieldBased() (vstools.FieldBased, error) {
	if s.FieldOrder == "" {
		return vstools.FieldProgressive, nil
	}
	if f, ok := fieldOrderNames[s.FieldOrder]; ok {
		return f, nil
	}
	return 0, vstools.UnsupportedValueError{Name: "FieldBased", Value: s.FieldOrder}
}

// FrameProps converts the stream's color metadata into the property map
// convention the rest of the library reads, so probed files can seed clip
// properties directly.
func (s *Stream) FrameProps() (vstools.FrameProps, error) {
	matrix, err := s.Matrix()
	if err != nil {
		return nil, err
	}
	transfer, err := s.Transfer()
	if err != nil {
		return nil, err
	}
	primaries, err := s.Primaries()
	if err != nil {
		return nil, err
	}
	colorRange, err := s.Range()
	if err != nil {
		return nil, err
	}
	chromaLoc, err := s.ChromaLoc()
	if err != nil {
		return nil, err
	}
	fieldBased, err := s.FieldBased()
	if err != nil {
		return nil, err
	}
	return vstools.FrameProps{
		"_Matrix":         int(matrix),
		"_Transfer":       int(transfer),
		"_Primaries":      int(primaries),
		"_ColorRange":     int(colorRange),
		"_ChromaLocation": int(chromaLoc),
		"_FieldBased":     int(fieldBased),
	}, nil
}
