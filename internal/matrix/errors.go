package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors for error statuses. Match them with errors.Is on the
// result of Status.Err.
var (
	// ErrInternal reports an engine failure with no more specific cause.
	ErrInternal = errors.New("matrix: internal engine error")

	// ErrInvalidParameter reports an argument the engine rejected, such as
	// normalizing a matrix that is not a vector.
	ErrInvalidParameter = errors.New("matrix: invalid parameter")

	// ErrDimensionMismatch reports operands whose shapes are incompatible.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrPrecisionMismatch reports operands of different element types.
	ErrPrecisionMismatch = errors.New("matrix: precision mismatch")

	// ErrSingular reports a singular matrix.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrSliceOutOfBounds reports a slice, row, column or diagonal outside
	// the source matrix.
	ErrSliceOutOfBounds = errors.New("matrix: slice out of bounds")
)

// StatusError carries the status that produced a sentinel error.
type StatusError struct {
	Status Status
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v (status %s, code %d)", e.Err, e.Status, e.Status.Raw())
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Err returns nil for Success and the warning, and a *StatusError wrapping
// the matching sentinel otherwise.
func (s Status) Err() error {
	var err error
	switch s {
	case Success, PoorlyConditionedWarning:
		return nil
	case InvalidParameterError:
		err = ErrInvalidParameter
	case DimensionMismatchError:
		err = ErrDimensionMismatch
	case PrecisionMismatchError:
		err = ErrPrecisionMismatch
	case SingularError:
		err = ErrSingular
	case SliceOutOfBoundsError:
		err = ErrSliceOutOfBounds
	default:
		err = ErrInternal
	}
	return &StatusError{Status: s, Err: err}
}
