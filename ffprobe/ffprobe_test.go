package ffprobe

import (
	"errors"
	"testing"

	vstools "github.com/Jaded-Encoding-Thaumaturgy/vs-tools"
	"github.com/stretchr/testify/require"
)

const sampleReport = `{
	"streams": [
		{
			"index": 0,
			"codec_name": "hevc",
			"codec_type": "video",
			"width": 3840,
			"height": 2160,
			"pix_fmt": "yuv420p10le",
			"color_range": "tv",
			"color_space": "bt2020nc",
			"color_transfer": "smpte2084",
			"color_primaries": "bt2020",
			"chroma_location": "topleft",
			"field_order": "progressive",
			"r_frame_rate": "24000/1001",
			"nb_frames": "34095",
			"bits_per_raw_sample": "10"
		},
		{
			"index": 1,
			"codec_name": "flac",
			"codec_type": "audio",
			"sample_rate": "48000",
			"channels": 2
		}
	],
	"format": {
		"filename": "movie.mkv",
		"format_name": "matroska,webm",
		"nb_streams": 2,
		"duration": "1422.088000",
		"size": "4294967296"
	}
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(sampleReport))
	require.NoError(t, err)

	require.Equal(t, "movie.mkv", result.Format.Filename)
	require.Equal(t, 2, result.Format.NbStreams)
	require.Len(t, result.Streams, 2)

	video := result.VideoStreams()
	require.Len(t, video, 1)
	require.Equal(t, "hevc", video[0].CodecName)
	require.Equal(t, 3840, video[0].Width)
	require.Equal(t, "24000/1001", video[0].RFrameRate)
	require.Equal(t, "34095", video[0].NbFrames)

	audio := result.AudioStreams()
	require.Len(t, audio, 1)
	require.Equal(t, 2, audio[0].Channels)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("not json"))
	require.Error(t, err)
}

func TestStreamEnums(t *testing.T) {
	result, err := Parse([]byte(sampleReport))
	require.NoError(t, err)
	s := result.VideoStreams()[0]

	matrix, err := s.Matrix()
	require.NoError(t, err)
	require.Equal(t, vstools.MatrixBT2020NC, matrix)

	transfer, err := s.Transfer()
	require.NoError(t, err)
	require.Equal(t, vstools.TransferST2084, transfer)

	primaries, err := s.Primaries()
	require.NoError(t, err)
	require.Equal(t, vstools.PrimariesBT2020, primaries)

	colorRange, err := s.Range()
	require.NoError(t, err)
	require.Equal(t, vstools.RangeLimited, colorRange)

	chromaLoc, err := s.ChromaLoc()
	require.NoError(t, err)
	require.Equal(t, vstools.ChromaTopLeft, chromaLoc)

	fieldBased, err := s.FieldBased()
	require.NoError(t, err)
	require.Equal(t, vstools.FieldProgressive, fieldBased)
}

func TestStreamEnumDefaults(t *testing.T) {
	s := &Stream{}

	matrix, err := s.Matrix()
	require.NoError(t, err)
	require.Equal(t, vstools.MatrixUnknown, matrix)

	colorRange, err := s.Range()
	require.NoError(t, err)
	require.Equal(t, vstools.RangeLimited, colorRange)

	chromaLoc, err := s.ChromaLoc()
	require.NoError(t, err)
	require.Equal(t, vstools.ChromaLeft, chromaLoc)

	fieldBased, err := s.FieldBased()
	require.NoError(t, err)
	require.Equal(t, vstools.FieldProgressive, fieldBased)
}

func TestStreamEnumAliases(t *testing.T) {
	s := &Stream{
		ColorRange:     "pc",
		ColorSpace:     "gbr",
		ColorTransfer:  "iec61966-2-1",
		ColorPrimaries: "smpte432",
		FieldOrder:     "tb",
	}

	colorRange, err := s.Range()
	require.NoError(t, err)
	require.Equal(t, vstools.RangeFull, colorRange)

	matrix, err := s.Matrix()
	require.NoError(t, err)
	require.Equal(t, vstools.MatrixRGB, matrix)

	transfer, err := s.Transfer()
	require.NoError(t, err)
	require.Equal(t, vstools.TransferSRGB, transfer)

	primaries, err := s.Primaries()
	require.NoError(t, err)
	require.Equal(t, vstools.PrimariesST432_1, primaries)

	fieldBased, err := s.FieldBased()
	require.NoError(t, err)
	require.Equal(t, vstools.FieldTFF, fieldBased)
}

func TestStreamEnumErrors(t *testing.T) {
	var unsupported vstools.UnsupportedValueError

	s := &Stream{ColorSpace: "ycgco"}
	_, err := s.Matrix()
	require.True(t, errors.As(err, &unsupported))

	s = &Stream{ColorTransfer: "bogus"}
	_, err = s.Transfer()
	require.True(t, errors.As(err, &unsupported))

	s = &Stream{ColorRange: "wide"}
	_, err = s.Range()
	require.True(t, errors.As(err, &unsupported))
}

func TestStreamFrameProps(t *testing.T) {
	result, err := Parse([]byte(sampleReport))
	require.NoError(t, err)
	s := result.VideoStreams()[0]

	props, err := s.FrameProps()
	require.NoError(t, err)
	require.Equal(t, vstools.FrameProps{
		"_Matrix":         9,
		"_Transfer":       16,
		"_Primaries":      9,
		"_ColorRange":     1,
		"_ChromaLocation": 2,
		"_FieldBased":     0,
	}, props)

	// The props round-trip through the resolvers.
	matrix, err := vstools.MatrixFromProps(props, true)
	require.NoError(t, err)
	require.Equal(t, vstools.MatrixBT2020NC, matrix)

	bad := &Stream{ColorSpace: "ycgco"}
	_, err = bad.FrameProps()
	require.Error(t, err)
}
