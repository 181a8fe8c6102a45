// Package la defines the raw interface between axle matrices and a
// dense linear-algebra engine: opaque object handles, integer codes for
// hints, attributes, statuses and norms, and the Engine entry points.
//
// Values in this package are wire-level codes. The typed enumerations
// callers use live in the matrix package and convert to and from these
// codes.
package la

// Hint is the raw code of a structural or numerical property hint.
// Hints combine as bit flags.
type Hint uint32

// Raw hint codes.
const (
	NoHint                    Hint = 0
	ShapeDiagonal             Hint = 1 << 0
	ShapeLowerTriangular      Hint = 1 << 1
	ShapeUpperTriangular      Hint = 1 << 2
	FeatureSymmetric          Hint = 1 << 3
	FeaturePositiveDefinite   Hint = 1 << 4
	FeatureDiagonallyDominant Hint = 1 << 5
	shapeMask                      = ShapeDiagonal | ShapeLowerTriangular | ShapeUpperTriangular
	featureMask                    = FeatureSymmetric | FeaturePositiveDefinite | FeatureDiagonallyDominant
	allHints                       = shapeMask | featureMask
)

// Has reports whether all bits of flag are set in h.
func (h Hint) Has(flag Hint) bool {
	return flag != 0 && h&flag == flag
}

// Valid reports whether h only uses known hint bits.
func (h Hint) Valid() bool {
	return h&^allHints == 0
}

// Attribute is the raw code of an object attribute bit set.
type Attribute uint32

// Raw attribute codes.
const (
	DefaultAttributes      Attribute = 0
	AttributeEnableLogging Attribute = 1 << 0
)

// Has reports whether all bits of flag are set in a.
func (a Attribute) Has(flag Attribute) bool {
	return flag != 0 && a&flag == flag
}

// Status is the raw result code of an engine object.
// Zero is success, positive values are warnings and negative values are errors.
type Status int32

// Raw status codes.
const (
	Success                  Status = 0
	WarningPoorlyConditioned Status = 1000
	InternalError            Status = -1000
	InvalidParameterError    Status = -1001
	DimensionMismatchError   Status = -1002
	PrecisionMismatchError   Status = -1003
	SingularError            Status = -1004
	SliceOutOfBoundsError    Status = -1005
)

// IsError reports whether s denotes a failed computation.
func (s Status) IsError() bool {
	return s < 0
}

// IsWarning reports whether s denotes a valid result with a warning.
func (s Status) IsWarning() bool {
	return s > 0
}

// Worse returns the more severe of s and other. Errors win over warnings,
// warnings win over success, and the first error is kept.
func (s Status) Worse(other Status) Status {
	switch {
	case s.IsError():
		return s
	case other.IsError():
		return other
	case s.IsWarning():
		return s
	default:
		return other
	}
}

// Norm is the raw code of a vector or matrix norm.
type Norm int32

// Raw norm codes.
const (
	L1Norm   Norm = 1
	L2Norm   Norm = 2
	LInfNorm Norm = 3
)

// ScalarType tags the element precision of an engine object.
type ScalarType uint32

// Raw scalar type codes.
const (
	ScalarFloat  ScalarType = 0
	ScalarDouble ScalarType = 1
)

// String returns the Go name of the scalar type.
func (st ScalarType) String() string {
	switch st {
	case ScalarFloat:
		return "float32"
	case ScalarDouble:
		return "float64"
	default:
		return "unknown"
	}
}

// Size returns the byte size of one element.
func (st ScalarType) Size() int {
	switch st {
	case ScalarFloat:
		return 4
	case ScalarDouble:
		return 8
	default:
		panic("la: unknown scalar type")
	}
}

// Index is a signed row, column or diagonal position.
type Index = int64

// Count is an unsigned extent.
type Count = uint64
