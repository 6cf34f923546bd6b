package vstools

import (
	"fmt"
	"strings"
)

var _ = fmt.Print

// Matrix is the set of matrix coefficients code points (ITU-T H.265 Table
// E.5), using the host framework's numeric values.
type Matrix int

const (
	MatrixRGB             Matrix = 0
	MatrixBT709           Matrix = 1
	MatrixUnknown         Matrix = 2
	MatrixFCC             Matrix = 4
	MatrixBT470BG         Matrix = 5
	MatrixSMPTE170M       Matrix = 6
	MatrixSMPTE240M       Matrix = 7
	MatrixBT2020NC        Matrix = 9
	MatrixBT2020C         Matrix = 10
	MatrixSMPTE2085       Matrix = 11
	MatrixChromaDerivedNC Matrix = 12
	MatrixChromaDerivedC  Matrix = 13
	MatrixICtCp           Matrix = 14

	// Aliases for readability.
	MatrixGBR   = MatrixRGB
	MatrixBT601 = MatrixBT470BG
)

var matrixNames = map[Matrix]string{
	MatrixRGB:             "rgb",
	MatrixBT709:           "bt709",
	MatrixUnknown:         "unknown",
	MatrixFCC:             "fcc",
	MatrixBT470BG:         "bt470bg",
	MatrixSMPTE170M:       "smpte170m",
	MatrixSMPTE240M:       "smpte240m",
	MatrixBT2020NC:        "bt2020nc",
	MatrixBT2020C:         "bt2020c",
	MatrixSMPTE2085:       "smpte2085",
	MatrixChromaDerivedNC: "chroma_derived_nc",
	MatrixChromaDerivedC:  "chroma_derived_c",
	MatrixICtCp:           "ictcp",
}

func (m Matrix) String() string       { return matrixNames[m] }
func (m Matrix) PrettyString() string { return prettify(matrixNames[m]) }
func (m Matrix) PropKey() string      { return "_Matrix" }
func (m Matrix) IsUnknown() bool      { return m == MatrixUnknown }

func (m Matrix) IsValid() bool {
	_, ok := matrixNames[m]
	return ok
}

// MatrixFromInt validates a host framework matrix code. Reserved code
// points and YCgCo are rejected rather than passed through.
func MatrixFromInt(value int) (Matrix, error) {
	m := Matrix(value)
	if m.IsValid() {
		return m, nil
	}
	if value == 8 {
		return 0, UnsupportedValueError{Name: "Matrix", Value: value, Reason: "YCgCo is not supported by the host framework"}
	}
	if value > int(MatrixRGB) && value < int(MatrixICtCp) {
		return 0, UnsupportedValueError{Name: "Matrix", Value: value, Reserved: true}
	}
	return 0, UnsupportedValueError{Name: "Matrix", Value: value}
}

// MatrixFromResolution guesses the matrix from a source's resolution:
// SD resolutions imply the legacy 601-family constants, HD implies BT.709
// and anything beyond implies BT.2020.
func MatrixFromResolution(src VideoSource) Matrix {
	if ColorFamilyOf(src) == RGB {
		return MatrixRGB
	}
	width, height := src.Dimensions()
	if width <= 1024 && height <= 576 {
		if height == 576 {
			return MatrixBT470BG
		}
		return MatrixSMPTE170M
	}
	if width <= 2048 && height <= 1536 {
		return MatrixBT709
	}
	return MatrixBT2020NC
}

// MatrixFromVideo reads the matrix off a source's properties. Strict
// resolution fails on absent or unknown metadata; otherwise the resolution
// heuristic supplies a default.
func MatrixFromVideo(src VideoSource, strict bool) (Matrix, error) {
	return enumFromVideo(src, "_Matrix", strict, MatrixFromInt, Matrix.IsUnknown, MatrixFromResolution)
}

// MatrixFromProps is MatrixFromVideo for bare property maps, where no
// resolution fallback exists.
func MatrixFromProps(props PropsHolder, strict bool) (Matrix, error) {
	return enumFromProps(props, "_Matrix", strict, MatrixFromInt, Matrix.IsUnknown)
}

// Transfer is the set of transfer characteristics code points (ITU-T
// H.265), extended with libplacebo's additional curves above 100.
type Transfer int

const (
	TransferBT709     Transfer = 1
	TransferUnknown   Transfer = 2
	TransferBT470M    Transfer = 4
	TransferBT470BG   Transfer = 5
	TransferBT601     Transfer = 6
	TransferST240M    Transfer = 7
	TransferLinear    Transfer = 8
	TransferLog100    Transfer = 9
	TransferLog316    Transfer = 10
	TransferXVYCC     Transfer = 11
	TransferSRGB      Transfer = 13
	TransferBT2020_10 Transfer = 14
	TransferBT2020_12 Transfer = 15
	TransferST2084    Transfer = 16
	TransferARIBB67   Transfer = 18

	// libplacebo-only curves.
	TransferBT601_525 Transfer = 100
	TransferBT601_625 Transfer = 101
	TransferEBU3213   Transfer = 102
	TransferApple     Transfer = 103
	TransferAdobe     Transfer = 104
	TransferProPhoto  Transfer = 105
	TransferCIE1931   Transfer = 106
	TransferDCIP3     Transfer = 107
	TransferDisplayP3 Transfer = 108
	TransferVGamut    Transfer = 109
	TransferSGamut    Transfer = 110
	TransferFilmC     Transfer = 111
)

var transferNames = map[Transfer]string{
	TransferBT709:     "bt709",
	TransferUnknown:   "unknown",
	TransferBT470M:    "bt470m",
	TransferBT470BG:   "bt470bg",
	TransferBT601:     "bt601",
	TransferST240M:    "st240m",
	TransferLinear:    "linear",
	TransferLog100:    "log_100",
	TransferLog316:    "log_316",
	TransferXVYCC:     "xvycc",
	TransferSRGB:      "srgb",
	TransferBT2020_10: "bt2020_10bits",
	TransferBT2020_12: "bt2020_12bits",
	TransferST2084:    "st2084",
	TransferARIBB67:   "arib_b67",
	TransferBT601_525: "bt601_525",
	TransferBT601_625: "bt601_625",
	TransferEBU3213:   "ebu_3213",
	TransferApple:     "apple",
	TransferAdobe:     "adobe",
	TransferProPhoto:  "pro_photo",
	TransferCIE1931:   "cie_1931",
	TransferDCIP3:     "dci_p3",
	TransferDisplayP3: "display_p3",
	TransferVGamut:    "v_gamut",
	TransferSGamut:    "s_gamut",
	TransferFilmC:     "film_c",
}

func (t Transfer) String() string       { return transferNames[t] }
func (t Transfer) PrettyString() string { return prettify(transferNames[t]) }
func (t Transfer) PropKey() string      { return "_Transfer" }
func (t Transfer) IsUnknown() bool      { return t == TransferUnknown }

func (t Transfer) IsValid() bool {
	_, ok := transferNames[t]
	return ok
}

// TransferFromInt validates a host framework transfer code.
func TransferFromInt(value int) (Transfer, error) {
	t := Transfer(value)
	if t.IsValid() {
		return t, nil
	}
	if value > int(TransferBT709) && value < int(TransferARIBB67) {
		return 0, UnsupportedValueError{Name: "Transfer", Value: value, Reserved: true}
	}
	return 0, UnsupportedValueError{Name: "Transfer", Value: value}
}

// TransferFromResolution guesses the transfer from a source's resolution.
func TransferFromResolution(src VideoSource) Transfer {
	if ColorFamilyOf(src) == RGB {
		return TransferSRGB
	}
	width, height := src.Dimensions()
	if width <= 1024 && height <= 576 {
		if height == 576 {
			return TransferBT470BG
		}
		return TransferBT601
	}
	if width <= 2048 && height <= 1536 {
		return TransferBT709
	}
	return TransferST2084
}

// TransferFromVideo reads the transfer off a source's properties, with the
// same strict/lax behavior as MatrixFromVideo.
func TransferFromVideo(src VideoSource, strict bool) (Transfer, error) {
	return enumFromVideo(src, "_Transfer", strict, TransferFromInt, Transfer.IsUnknown, TransferFromResolution)
}

// TransferFromProps is TransferFromVideo for bare property maps.
func TransferFromProps(props PropsHolder, strict bool) (Transfer, error) {
	return enumFromProps(props, "_Transfer", strict, TransferFromInt, Transfer.IsUnknown)
}

var matrixTransferMap = map[Matrix]Transfer{
	MatrixRGB:            TransferSRGB,
	MatrixBT709:          TransferBT709,
	MatrixBT470BG:        TransferBT601,
	MatrixSMPTE170M:      TransferBT601,
	MatrixSMPTE240M:      TransferST240M,
	MatrixChromaDerivedC: TransferSRGB,
	MatrixICtCp:          TransferBT2020_10,
}

// TransferFromMatrix derives the transfer normally paired with a matrix.
// Matrices with no conventional pairing fail in strict mode and fall back
// to reinterpreting the numeric code otherwise.
func TransferFromMatrix(matrix Matrix, strict bool) (Transfer, error) {
	if t, ok := matrixTransferMap[matrix]; ok {
		return t, nil
	}
	if strict {
		return 0, UnsupportedValueError{Name: "Matrix", Value: int(matrix), Reason: "no transfer is associated with this matrix"}
	}
	return TransferFromInt(int(matrix))
}

// MatrixFromTransfer derives a matrix from a transfer. No conventional
// pairings exist in this direction, so strict mode always fails; lax mode
// reinterprets the numeric code.
func MatrixFromTransfer(transfer Transfer, strict bool) (Matrix, error) {
	if strict {
		return 0, UnsupportedValueError{Name: "Transfer", Value: int(transfer), Reason: "no matrix is associated with this transfer"}
	}
	return MatrixFromInt(int(transfer))
}

// MatrixFromPrimaries derives a matrix from primaries, with the same
// strict/lax behavior as MatrixFromTransfer.
func MatrixFromPrimaries(primaries Primaries, strict bool) (Matrix, error) {
	if strict {
		return 0, UnsupportedValueError{Name: "Primaries", Value: int(primaries), Reason: "no matrix is associated with these primaries"}
	}
	return MatrixFromInt(int(primaries))
}

// TransferFromPrimaries derives a transfer from primaries.
func TransferFromPrimaries(primaries Primaries, strict bool) (Transfer, error) {
	if strict {
		return 0, UnsupportedValueError{Name: "Primaries", Value: int(primaries), Reason: "no transfer is associated with these primaries"}
	}
	return TransferFromInt(int(primaries))
}

// PrimariesFromMatrix derives primaries from a matrix.
func PrimariesFromMatrix(matrix Matrix, strict bool) (Primaries, error) {
	if strict {
		return 0, UnsupportedValueError{Name: "Matrix", Value: int(matrix), Reason: "no primaries are associated with this matrix"}
	}
	return PrimariesFromInt(int(matrix))
}

// PrimariesFromTransfer derives primaries from a transfer.
func PrimariesFromTransfer(transfer Transfer, strict bool) (Primaries, error) {
	if strict {
		return 0, UnsupportedValueError{Name: "Transfer", Value: int(transfer), Reason: "no primaries are associated with this transfer"}
	}
	return PrimariesFromInt(int(transfer))
}

var transferPlaceboMap = map[Transfer]int{
	TransferUnknown:   0,
	TransferBT601_525: 1,
	TransferBT601_625: 2,
	TransferBT709:     3,
	TransferBT470M:    4,
	TransferEBU3213:   5,
	TransferBT2020_10: 6,
	TransferBT2020_12: 6,
	TransferApple:     7,
	TransferAdobe:     8,
	TransferProPhoto:  9,
	TransferCIE1931:   10,
	TransferDCIP3:     11,
	TransferDisplayP3: 12,
	TransferVGamut:    13,
	TransferSGamut:    14,
	TransferFilmC:     15,
}

var placeboTransferMap = map[int]Transfer{
	0: TransferUnknown, 1: TransferBT601_525, 2: TransferBT601_625,
	3: TransferBT709, 4: TransferBT470M, 5: TransferEBU3213,
	6: TransferBT2020_12, 7: TransferApple, 8: TransferAdobe,
	9: TransferProPhoto, 10: TransferCIE1931, 11: TransferDCIP3,
	12: TransferDisplayP3, 13: TransferVGamut, 14: TransferSGamut,
	15: TransferFilmC,
}

// LibplaceboValue maps a transfer to libplacebo's numbering.
func (t Transfer) LibplaceboValue() (int, error) {
	if v, ok := transferPlaceboMap[t]; ok {
		return v, nil
	}
	return 0, UnsupportedValueError{Name: "Transfer", Value: int(t), Reason: "no libplacebo equivalent"}
}

// TransferFromLibplacebo maps a libplacebo transfer code back.
func TransferFromLibplacebo(value int) (Transfer, error) {
	if t, ok := placeboTransferMap[value]; ok {
		return t, nil
	}
	return 0, UnsupportedValueError{Name: "Transfer", Value: value, Reason: "unknown libplacebo transfer"}
}

// VSValue returns the host framework code for a transfer. libplacebo-only
// curves have none.
func (t Transfer) VSValue() (int, error) {
	if t >= TransferBT601_525 {
		return 0, UnsupportedValueError{
			Name: "Transfer", Value: int(t), Reserved: true,
			Reason: "libplacebo-only transfer has no host framework value",
		}
	}
	return int(t), nil
}

// Primaries is the set of color primaries code points (ITU-T H.265).
type Primaries int

const (
	PrimariesBT709    Primaries = 1
	PrimariesUnknown  Primaries = 2
	PrimariesBT470M   Primaries = 4
	PrimariesBT470BG  Primaries = 5
	PrimariesST170M   Primaries = 6
	PrimariesST240M   Primaries = 7
	PrimariesFilm     Primaries = 8
	PrimariesBT2020   Primaries = 9
	PrimariesST428    Primaries = 10
	PrimariesST431_2  Primaries = 11
	PrimariesST432_1  Primaries = 12
	PrimariesEBU3213E Primaries = 22
)

var primariesNames = map[Primaries]string{
	PrimariesBT709:    "bt709",
	PrimariesUnknown:  "unknown",
	PrimariesBT470M:   "bt470m",
	PrimariesBT470BG:  "bt470bg",
	PrimariesST170M:   "st170m",
	PrimariesST240M:   "st240m",
	PrimariesFilm:     "film",
	PrimariesBT2020:   "bt2020",
	PrimariesST428:    "st428",
	PrimariesST431_2:  "st431_2",
	PrimariesST432_1:  "st432_1",
	PrimariesEBU3213E: "ebu3213e",
}

func (p Primaries) String() string       { return primariesNames[p] }
func (p Primaries) PrettyString() string { return prettify(primariesNames[p]) }
func (p Primaries) PropKey() string      { return "_Primaries" }
func (p Primaries) IsUnknown() bool      { return p == PrimariesUnknown }

func (p Primaries) IsValid() bool {
	_, ok := primariesNames[p]
	return ok
}

// PrimariesFromInt validates a host framework primaries code.
func PrimariesFromInt(value int) (Primaries, error) {
	p := Primaries(value)
	if p.IsValid() {
		return p, nil
	}
	if value > int(PrimariesBT709) && value < int(PrimariesEBU3213E) {
		return 0, UnsupportedValueError{Name: "Primaries", Value: value, Reserved: true}
	}
	return 0, UnsupportedValueError{Name: "Primaries", Value: value}
}

// PrimariesFromResolution guesses the primaries from a source's resolution.
func PrimariesFromResolution(src VideoSource) Primaries {
	if ColorFamilyOf(src) == RGB {
		return PrimariesBT709
	}
	width, height := src.Dimensions()
	if width <= 1024 && height <= 576 {
		if height == 576 {
			return PrimariesBT470BG
		}
		return PrimariesST170M
	}
	if width <= 2048 && height <= 1536 {
		return PrimariesBT709
	}
	return PrimariesBT2020
}

// PrimariesFromVideo reads the primaries off a source's properties, with
// the same strict/lax behavior as MatrixFromVideo.
func PrimariesFromVideo(src VideoSource, strict bool) (Primaries, error) {
	return enumFromVideo(src, "_Primaries", strict, PrimariesFromInt, Primaries.IsUnknown, PrimariesFromResolution)
}

// PrimariesFromProps is PrimariesFromVideo for bare property maps.
func PrimariesFromProps(props PropsHolder, strict bool) (Primaries, error) {
	return enumFromProps(props, "_Primaries", strict, PrimariesFromInt, Primaries.IsUnknown)
}

// ColorRange is full ("PC") or limited ("TV") pixel range.
type ColorRange int

const (
	RangeFull    ColorRange = 0
	RangeLimited ColorRange = 1
)

var rangeNames = map[ColorRange]string{
	RangeFull:    "full",
	RangeLimited: "limited",
}

func (r ColorRange) String() string       { return rangeNames[r] }
func (r ColorRange) PrettyString() string { return prettify(rangeNames[r]) }
func (r ColorRange) PropKey() string      { return "_ColorRange" }
func (r ColorRange) IsLimited() bool      { return r == RangeLimited }
func (r ColorRange) IsFull() bool         { return r == RangeFull }

func (r ColorRange) IsValid() bool {
	_, ok := rangeNames[r]
	return ok
}

// ZimgValue returns the value the resize plugin uses, which inverts the
// host framework's convention.
func (r ColorRange) ZimgValue() int {
	return ^int(r) + 2
}

// ColorRangeFromInt validates a host framework range code.
func ColorRangeFromInt(value int) (ColorRange, error) {
	r := ColorRange(value)
	if r.IsValid() {
		return r, nil
	}
	return 0, UnsupportedValueError{Name: "ColorRange", Value: value}
}

// ColorRangeFromVideo reads the range off a source's properties. There is
// no "unspecified" sentinel for range; an absent prop means limited unless
// strict is set.
func ColorRangeFromVideo(src VideoSource, strict bool) (ColorRange, error) {
	return ColorRangeFromProps(src, strict)
}

// ColorRangeFromProps is ColorRangeFromVideo for bare property maps. The
// limited default needs no resolution, so the lax fallback survives.
func ColorRangeFromProps(props PropsHolder, strict bool) (ColorRange, error) {
	value, err := GetProp[int](props, "_ColorRange")
	if err != nil {
		if strict {
			return 0, UndefinedMetadataError{Field: "_ColorRange", Reason: "prop missing"}
		}
		return RangeLimited, nil
	}
	return ColorRangeFromInt(value)
}

// MatrixCoefficients are linear<->gamma conversion curve coefficients.
type MatrixCoefficients struct {
	K0    float64
	Phi   float64
	Alpha float64
	Gamma float64
}

var (
	CoefficientsSRGB      = MatrixCoefficients{0.04045, 12.92, 0.055, 2.4}
	CoefficientsBT709     = MatrixCoefficients{0.08145, 4.5, 0.0993, 2.22222}
	CoefficientsSMPTE240M = MatrixCoefficients{0.0912, 4.0, 0.1115, 2.22222}
	CoefficientsBT2020    = MatrixCoefficients{0.08145, 4.5, 0.0993, 2.22222}
)

var matrixCoefficientsMap = map[Matrix]MatrixCoefficients{
	MatrixRGB:       CoefficientsSRGB,
	MatrixBT709:     CoefficientsBT709,
	MatrixBT470BG:   CoefficientsBT709,
	MatrixSMPTE240M: CoefficientsSMPTE240M,
	MatrixBT2020C:   CoefficientsBT2020,
	MatrixBT2020NC:  CoefficientsBT2020,
}

var transferCoefficientsMap = map[Transfer]MatrixCoefficients{
	TransferSRGB:      CoefficientsSRGB,
	TransferBT709:     CoefficientsBT709,
	TransferBT601:     CoefficientsBT709,
	TransferST240M:    CoefficientsSMPTE240M,
	TransferBT2020_10: CoefficientsBT2020,
	TransferBT2020_12: CoefficientsBT2020,
}

var primariesCoefficientsMap = map[Primaries]MatrixCoefficients{
	PrimariesBT709:   CoefficientsBT709,
	PrimariesBT470BG: CoefficientsBT709,
	PrimariesST240M:  CoefficientsSMPTE240M,
	PrimariesBT2020:  CoefficientsBT2020,
}

// CoefficientsFromMatrix looks up curve coefficients for a matrix.
func CoefficientsFromMatrix(matrix Matrix) (MatrixCoefficients, error) {
	if c, ok := matrixCoefficientsMap[matrix]; ok {
		return c, nil
	}
	return MatrixCoefficients{}, UnsupportedValueError{Name: "Matrix", Value: int(matrix), Reason: "no curve coefficients"}
}

// CoefficientsFromTransfer looks up curve coefficients for a transfer.
func CoefficientsFromTransfer(transfer Transfer) (MatrixCoefficients, error) {
	if c, ok := transferCoefficientsMap[transfer]; ok {
		return c, nil
	}
	return MatrixCoefficients{}, UnsupportedValueError{Name: "Transfer", Value: int(transfer), Reason: "no curve coefficients"}
}

// CoefficientsFromPrimaries looks up curve coefficients for primaries.
func CoefficientsFromPrimaries(primaries Primaries) (MatrixCoefficients, error) {
	if c, ok := primariesCoefficientsMap[primaries]; ok {
		return c, nil
	}
	return MatrixCoefficients{}, UnsupportedValueError{Name: "Primaries", Value: int(primaries), Reason: "no curve coefficients"}
}

func enumFromVideo[E ~int](
	src VideoSource, key string, strict bool,
	fromInt func(int) (E, error), isUnknown func(E) bool, fromRes func(VideoSource) E,
) (E, error) {
	value, err := GetProp[int](src, key)
	if err == nil {
		e, convErr := fromInt(value)
		if convErr != nil {
			return 0, convErr
		}
		if !isUnknown(e) {
			return e, nil
		}
	}
	if strict {
		return 0, UndefinedMetadataError{Field: key, Reason: "prop missing or unspecified"}
	}
	return fromRes(src), nil
}

func enumFromProps[E ~int](
	props PropsHolder, key string, strict bool,
	fromInt func(int) (E, error), isUnknown func(E) bool,
) (E, error) {
	value, err := GetProp[int](props, key)
	if err == nil {
		e, convErr := fromInt(value)
		if convErr != nil {
			return 0, convErr
		}
		if !isUnknown(e) {
			return e, nil
		}
	}
	reason := "prop missing or unspecified"
	if !strict {
		reason = "cannot be determined from props alone"
	}
	return 0, UndefinedMetadataError{Field: key, Reason: reason}
}

func prettify(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
