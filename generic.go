package vstools

// ChromaLocation is the chroma sample position in subsampled YUV formats.
type ChromaLocation int

const (
	ChromaLeft       ChromaLocation = 0
	ChromaCenter     ChromaLocation = 1
	ChromaTopLeft    ChromaLocation = 2
	ChromaTop        ChromaLocation = 3
	ChromaBottomLeft ChromaLocation = 4
	ChromaBottom     ChromaLocation = 5
)

var chromaLocationNames = map[ChromaLocation]string{
	ChromaLeft:       "left",
	ChromaCenter:     "center",
	ChromaTopLeft:    "top_left",
	ChromaTop:        "top",
	ChromaBottomLeft: "bottom_left",
	ChromaBottom:     "bottom",
}

func (c ChromaLocation) String() string       { return chromaLocationNames[c] }
func (c ChromaLocation) PrettyString() string { return prettify(chromaLocationNames[c]) }
func (c ChromaLocation) PropKey() string      { return "_ChromaLocation" }

func (c ChromaLocation) IsValid() bool {
	_, ok := chromaLocationNames[c]
	return ok
}

// ChromaLocationFromInt validates a host framework chroma location code.
func ChromaLocationFromInt(value int) (ChromaLocation, error) {
	c := ChromaLocation(value)
	if c.IsValid() {
		return c, nil
	}
	return 0, UnsupportedValueError{Name: "ChromaLocation", Value: value}
}

// ChromaLocationFromResolution guesses the chroma location from the clip
// width; UHD content is conventionally top-left sited.
func ChromaLocationFromResolution(src VideoSource) ChromaLocation {
	width, _ := src.Dimensions()
	if width >= 3840 {
		return ChromaTopLeft
	}
	return ChromaLeft
}

// ChromaLocationFromVideo reads the chroma location off a source's
// properties, guessing from the resolution when absent and not strict.
func ChromaLocationFromVideo(src VideoSource, strict bool) (ChromaLocation, error) {
	value, err := GetProp[int](src, "_ChromaLocation")
	if err != nil {
		if strict {
			return 0, UndefinedMetadataError{Field: "_ChromaLocation", Reason: "prop missing"}
		}
		return ChromaLocationFromResolution(src), nil
	}
	return ChromaLocationFromInt(value)
}

// ChromaLocationFromProps is ChromaLocationFromVideo for bare property
// maps. The lax fallback needs a resolution, so an absent prop always
// errors here.
func ChromaLocationFromProps(props PropsHolder, strict bool) (ChromaLocation, error) {
	value, err := GetProp[int](props, "_ChromaLocation")
	if err != nil {
		reason := "prop missing"
		if !strict {
			reason = "cannot be determined from props alone"
		}
		return 0, UndefinedMetadataError{Field: "_ChromaLocation", Reason: reason}
	}
	return ChromaLocationFromInt(value)
}

// Offsets returns the sub-pixel (x, y) offsets of the chroma planes for
// this siting in the given format. Non-subsampled (4:4:4) formats always
// yield (0, 0) no matter what the nominal tag says.
func (c ChromaLocation) Offsets(format VideoFormat) (float64, float64) {
	if format.SubSamplingW == 0 && format.SubSamplingH == 0 {
		return 0, 0
	}
	var x, y float64
	if format.SubSamplingW > 0 {
		switch c {
		case ChromaLeft, ChromaTopLeft, ChromaBottomLeft:
			x = -0.5
		}
	}
	if format.SubSamplingH > 0 {
		switch c {
		case ChromaTop, ChromaTopLeft:
			y = -0.5
		case ChromaBottom, ChromaBottomLeft:
			y = 0.5
		}
	}
	return x, y
}

// FieldBased describes whether a frame is two independent fields and, if
// so, their order.
type FieldBased int

const (
	FieldProgressive FieldBased = 0
	FieldBFF         FieldBased = 1
	FieldTFF         FieldBased = 2
)

var fieldBasedNames = map[FieldBased]string{
	FieldProgressive: "progressive",
	FieldBFF:         "bff",
	FieldTFF:         "tff",
}

func (f FieldBased) String() string       { return fieldBasedNames[f] }
func (f FieldBased) PrettyString() string { return prettify(fieldBasedNames[f]) }
func (f FieldBased) PropKey() string      { return "_FieldBased" }

func (f FieldBased) IsValid() bool {
	_, ok := fieldBasedNames[f]
	return ok
}

// IsInter reports whether the value is an interlaced one.
func (f FieldBased) IsInter() bool { return f != FieldProgressive }

// IsTFF reports whether the value is top-field-first.
func (f FieldBased) IsTFF() bool { return f == FieldTFF }

// Field returns the dominant field index. Progressive frames have none.
func (f FieldBased) Field() (int, error) {
	if f == FieldProgressive {
		return 0, UnsupportedValueError{Name: "FieldBased", Value: int(f), Reason: "progressive video is not field based"}
	}
	return int(f) - 1, nil
}

// FieldBasedFromBool maps a top-field-first flag to the enum.
func FieldBasedFromBool(tff bool) FieldBased {
	if tff {
		return FieldTFF
	}
	return FieldBFF
}

// FieldBasedFromInt validates a host framework field order code.
func FieldBasedFromInt(value int) (FieldBased, error) {
	f := FieldBased(value)
	if f.IsValid() {
		return f, nil
	}
	return 0, UnsupportedValueError{Name: "FieldBased", Value: value}
}

// FieldBasedFromVideo reads the field order off a source's properties.
// Absent metadata means progressive unless strict is set.
func FieldBasedFromVideo(src VideoSource, strict bool) (FieldBased, error) {
	return FieldBasedFromProps(src, strict)
}

// FieldBasedFromProps is FieldBasedFromVideo for bare property maps. The
// progressive default needs no resolution, so the lax fallback survives.
func FieldBasedFromProps(props PropsHolder, strict bool) (FieldBased, error) {
	value, err := GetProp[int](props, "_FieldBased")
	if err != nil {
		if strict {
			return 0, UndefinedMetadataError{Field: "_FieldBased", Reason: "prop missing"}
		}
		return FieldProgressive, nil
	}
	return FieldBasedFromInt(value)
}
