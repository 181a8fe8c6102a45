package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch      = errors.New("checksum mismatch: file may be corrupted")
	ErrInvalidMagic          = errors.New("invalid magic bytes")
	ErrUnsupportedVersion    = errors.New("unsupported format version")
	ErrScalarTypeMismatch    = errors.New("scalar type mismatch")
	ErrUnknownScalarType     = errors.New("unknown scalar type")
	ErrInvalidShape          = errors.New("invalid matrix shape")
	ErrSizeMismatch          = errors.New("file size does not match header")
	ErrMatrixNotMaterialized = errors.New("matrix failed to materialize")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Path    string // File being validated
	Field   string // Header field that failed (e.g., "magic", "rows")
	Details string // Additional details
	Err     error  // Matching sentinel
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v: %s", e.Path, e.Field, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Err, e.Details)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
