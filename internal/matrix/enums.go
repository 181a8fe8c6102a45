package matrix

import "github.com/born-ml/axle/internal/la"

// Hint is an a-priori structural or numerical property of a matrix. The
// engine uses hints to select faster kernels and never verifies them: a
// wrong hint yields wrong numbers without an error.
type Hint uint8

// Hints.
const (
	HintNone Hint = iota
	HintShapeDiagonal
	HintShapeLowerTriangular
	HintShapeUpperTriangular
	HintFeatureSymmetric
	HintFeaturePositiveDefinite
	HintFeatureDiagonallyDominant
)

var hintCodes = [...]la.Hint{
	HintNone:                      la.NoHint,
	HintShapeDiagonal:             la.ShapeDiagonal,
	HintShapeLowerTriangular:      la.ShapeLowerTriangular,
	HintShapeUpperTriangular:      la.ShapeUpperTriangular,
	HintFeatureSymmetric:          la.FeatureSymmetric,
	HintFeaturePositiveDefinite:   la.FeaturePositiveDefinite,
	HintFeatureDiagonallyDominant: la.FeatureDiagonallyDominant,
}

var hintNames = [...]string{
	HintNone:                      "None",
	HintShapeDiagonal:             "ShapeDiagonal",
	HintShapeLowerTriangular:      "ShapeLowerTriangular",
	HintShapeUpperTriangular:      "ShapeUpperTriangular",
	HintFeatureSymmetric:          "FeatureSymmetric",
	HintFeaturePositiveDefinite:   "FeaturePositiveDefinite",
	HintFeatureDiagonallyDominant: "FeatureDiagonallyDominant",
}

// Raw returns the engine code of h.
func (h Hint) Raw() la.Hint {
	if int(h) >= len(hintCodes) {
		panic("matrix: unknown hint")
	}
	return hintCodes[h]
}

// HintFromRaw decodes an engine hint code. It reports false for codes that
// are not exactly one hint.
func HintFromRaw(raw la.Hint) (Hint, bool) {
	for h, code := range hintCodes {
		if code == raw {
			return Hint(h), true
		}
	}
	return HintNone, false
}

func (h Hint) String() string {
	if int(h) < len(hintNames) {
		return hintNames[h]
	}
	return "Hint(?)"
}

// Attribute controls side-channel diagnostics of a matrix.
type Attribute uint8

// Attributes.
const (
	AttributeNone Attribute = iota
	AttributeEnableLogging
)

// Raw returns the engine code of a.
func (a Attribute) Raw() la.Attribute {
	switch a {
	case AttributeNone:
		return la.DefaultAttributes
	case AttributeEnableLogging:
		return la.AttributeEnableLogging
	default:
		panic("matrix: unknown attribute")
	}
}

// AttributeFromRaw decodes an engine attribute code.
func AttributeFromRaw(raw la.Attribute) (Attribute, bool) {
	switch raw {
	case la.DefaultAttributes:
		return AttributeNone, true
	case la.AttributeEnableLogging:
		return AttributeEnableLogging, true
	default:
		return AttributeNone, false
	}
}

func (a Attribute) String() string {
	switch a {
	case AttributeNone:
		return "None"
	case AttributeEnableLogging:
		return "EnableLogging"
	default:
		return "Attribute(?)"
	}
}

// Norm selects the norm computed by Norm and Normalized.
type Norm uint8

// Norms.
const (
	NormL1 Norm = iota
	NormL2
	NormLInfinity
)

// Raw returns the engine code of n.
func (n Norm) Raw() la.Norm {
	switch n {
	case NormL1:
		return la.L1Norm
	case NormL2:
		return la.L2Norm
	case NormLInfinity:
		return la.LInfNorm
	default:
		panic("matrix: unknown norm")
	}
}

// NormFromRaw decodes an engine norm code.
func NormFromRaw(raw la.Norm) (Norm, bool) {
	switch raw {
	case la.L1Norm:
		return NormL1, true
	case la.L2Norm:
		return NormL2, true
	case la.LInfNorm:
		return NormLInfinity, true
	default:
		return NormL1, false
	}
}

func (n Norm) String() string {
	switch n {
	case NormL1:
		return "L1"
	case NormL2:
		return "L2"
	case NormLInfinity:
		return "LInfinity"
	default:
		return "Norm(?)"
	}
}

// Status is the decoded outcome of materializing a matrix.
type Status uint8

// Statuses. PoorlyConditionedWarning is the only warning; the result it
// accompanies is still valid.
const (
	Success Status = iota
	PoorlyConditionedWarning
	InternalError
	InvalidParameterError
	DimensionMismatchError
	PrecisionMismatchError
	SingularError
	SliceOutOfBoundsError
)

// Raw returns the engine code of s.
func (s Status) Raw() la.Status {
	switch s {
	case Success:
		return la.Success
	case PoorlyConditionedWarning:
		return la.WarningPoorlyConditioned
	case InvalidParameterError:
		return la.InvalidParameterError
	case DimensionMismatchError:
		return la.DimensionMismatchError
	case PrecisionMismatchError:
		return la.PrecisionMismatchError
	case SingularError:
		return la.SingularError
	case SliceOutOfBoundsError:
		return la.SliceOutOfBoundsError
	default:
		return la.InternalError
	}
}

// StatusFromRaw decodes an engine status code. Unknown codes decode to
// InternalError.
func StatusFromRaw(raw la.Status) Status {
	switch raw {
	case la.Success:
		return Success
	case la.WarningPoorlyConditioned:
		return PoorlyConditionedWarning
	case la.InvalidParameterError:
		return InvalidParameterError
	case la.DimensionMismatchError:
		return DimensionMismatchError
	case la.PrecisionMismatchError:
		return PrecisionMismatchError
	case la.SingularError:
		return SingularError
	case la.SliceOutOfBoundsError:
		return SliceOutOfBoundsError
	default:
		return InternalError
	}
}

// IsError reports whether s means the result is unusable.
func (s Status) IsError() bool {
	return s != Success && s != PoorlyConditionedWarning
}

// IsWarning reports whether s is a non-fatal warning.
func (s Status) IsWarning() bool {
	return s == PoorlyConditionedWarning
}

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case PoorlyConditionedWarning:
		return "PoorlyConditionedWarning"
	case InternalError:
		return "InternalError"
	case InvalidParameterError:
		return "InvalidParameterError"
	case DimensionMismatchError:
		return "DimensionMismatchError"
	case PrecisionMismatchError:
		return "PrecisionMismatchError"
	case SingularError:
		return "SingularError"
	case SliceOutOfBoundsError:
		return "SliceOutOfBoundsError"
	default:
		return "Status(?)"
	}
}
