package vstools

import (
	"fmt"
	"sort"
)

// NormalizeSeq stretches or truncates a sequence to the requested length,
// repeating the last element as padding. A nil or empty input yields nil.
func NormalizeSeq[T any](vals []T, length int) []T {
	if len(vals) == 0 || length <= 0 {
		return nil
	}
	out := make([]T, length)
	for i := range out {
		if i < len(vals) {
			out[i] = vals[i]
		} else {
			out[i] = vals[len(vals)-1]
		}
	}
	return out
}

// NormalizePlanes expands a planes specification against a format: nil
// means every plane, duplicates collapse, and the result is sorted. Invalid
// indices fail with a RangeError.
func NormalizePlanes(holder HoldsVideoFormat, planes []int) ([]int, error) {
	format := holder.VideoFormat()

	if planes == nil {
		out := make([]int, format.NumPlanes)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	seen := map[int]bool{}
	out := make([]int, 0, len(planes))
	for _, p := range planes {
		if p < 0 || p >= format.NumPlanes {
			return nil, RangeError{Name: "Plane", Value: p, Reason: fmt.Sprintf("format has %d planes", format.NumPlanes)}
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out, nil
}
