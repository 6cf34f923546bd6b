package vstools

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestVideoHeuristicsResolutionOnly(t *testing.T) {
	for _, tc := range []struct {
		name   string
		format VideoFormat
		w, h   int
		want   Heuristics
	}{
		{
			"hd", YUV420P8, 1920, 1080,
			Heuristics{MatrixBT709, TransferBT709, PrimariesBT709, RangeLimited, ChromaLeft, FieldProgressive},
		},
		{
			"pal sd", YUV420P8, 720, 576,
			Heuristics{MatrixBT470BG, TransferBT470BG, PrimariesBT470BG, RangeLimited, ChromaLeft, FieldProgressive},
		},
		{
			"ntsc sd", YUV420P8, 720, 480,
			Heuristics{MatrixSMPTE170M, TransferBT601, PrimariesST170M, RangeLimited, ChromaLeft, FieldProgressive},
		},
		{
			"uhd", YUV420P10, 3840, 2160,
			Heuristics{MatrixBT2020NC, TransferST2084, PrimariesBT2020, RangeLimited, ChromaTopLeft, FieldProgressive},
		},
		{
			"rgb", RGB24, 1920, 1080,
			Heuristics{MatrixRGB, TransferSRGB, PrimariesBT709, RangeLimited, ChromaLeft, FieldProgressive},
		},
	} {
		clip := NewClip(tc.format, tc.w, tc.h, 1)
		got := VideoHeuristics(clip, false)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s heuristics mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestVideoHeuristicsProps(t *testing.T) {
	clip := NewClip(YUV420P8, 1920, 1080, 1)
	clip.Props = FrameProps{
		"_Matrix":     int64(MatrixBT470BG),
		"_Transfer":   int64(TransferBT470BG),
		"_ColorRange": int64(RangeFull),
		"_FieldBased": int64(FieldTFF),
	}

	got := VideoHeuristics(clip, true)
	want := Heuristics{
		Matrix:     MatrixBT470BG,
		Transfer:   TransferBT470BG,
		Primaries:  PrimariesBT709,
		Range:      RangeFull,
		ChromaLoc:  ChromaLeft,
		FieldOrder: FieldTFF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("heuristics mismatch (-want +got):\n%s", diff)
	}

	// Malformed props fall back to the heuristic rather than failing.
	clip.Props["_Matrix"] = 8
	got = VideoHeuristics(clip, true)
	require.Equal(t, MatrixBT709, got.Matrix)

	// useProps false ignores the props entirely.
	got = VideoHeuristics(clip, false)
	require.Equal(t, MatrixBT709, got.Matrix)
	require.Equal(t, RangeLimited, got.Range)
}

func TestResizeArgs(t *testing.T) {
	h := Heuristics{
		Matrix:    MatrixBT709,
		Transfer:  TransferBT709,
		Primaries: PrimariesBT709,
		Range:     RangeLimited,
		ChromaLoc: ChromaLeft,
	}

	require.Equal(t, map[string]int{
		"matrix": 1, "transfer": 1, "primaries": 1, "range": 0, "chromaloc": 0,
	}, h.ResizeArgs(false))

	require.Equal(t, map[string]int{
		"matrix_in": 1, "transfer_in": 1, "primaries_in": 1, "range_in": 0, "chromaloc_in": 0,
	}, h.ResizeArgs(true))
}
