package vstools

// Heuristics is the resolved color metadata bundle of a clip, with every
// field guaranteed to hold a usable (non-unknown) value.
type Heuristics struct {
	Matrix     Matrix
	Transfer   Transfer
	Primaries  Primaries
	Range      ColorRange
	ChromaLoc  ChromaLocation
	FieldOrder FieldBased
}

// VideoHeuristics determines a clip's color metadata, preferring frame
// properties when useProps is set and falling back to the per-enum
// resolution heuristics for anything absent, unknown or malformed.
func VideoHeuristics(clip *Clip, useProps bool) Heuristics {
	h := Heuristics{
		Matrix:     MatrixFromResolution(clip),
		Transfer:   TransferFromResolution(clip),
		Primaries:  PrimariesFromResolution(clip),
		Range:      RangeLimited,
		ChromaLoc:  ChromaLocationFromResolution(clip),
		FieldOrder: FieldProgressive,
	}
	if !useProps {
		return h
	}

	if m, err := MatrixFromVideo(clip, true); err == nil {
		h.Matrix = m
	}
	if t, err := TransferFromVideo(clip, true); err == nil {
		h.Transfer = t
	}
	if p, err := PrimariesFromVideo(clip, true); err == nil {
		h.Primaries = p
	}
	if r, err := ColorRangeFromVideo(clip, true); err == nil {
		h.Range = r
	}
	if c, err := ChromaLocationFromVideo(clip, true); err == nil {
		h.ChromaLoc = c
	}
	if f, err := FieldBasedFromVideo(clip, true); err == nil {
		h.FieldOrder = f
	}
	return h
}

// ResizeArgs flattens the heuristics to the numeric keyword map the host
// framework's resizers take. propIn appends the "_in" suffix used when
// describing the input clip.
func (h Heuristics) ResizeArgs(propIn bool) map[string]int {
	args := map[string]int{
		"matrix":    int(h.Matrix),
		"transfer":  int(h.Transfer),
		"primaries": int(h.Primaries),
		"range":     h.Range.ZimgValue(),
		"chromaloc": int(h.ChromaLoc),
	}
	if !propIn {
		return args
	}
	out := make(map[string]int, len(args))
	for k, v := range args {
		out[k+"_in"] = v
	}
	return out
}
