// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/born-ml/axle/internal/la"
	"github.com/born-ml/axle/internal/matrix"
)

// Element is the set of element types a Matrix can hold: float32 and float64.
type Element = matrix.Element

// Matrix is an immutable typed dense matrix.
type Matrix[T Element] = matrix.Matrix[T]

// Engine is the interface of a deferred linear-algebra engine.
type Engine = la.Engine

// Range is a half-open interval of row or column indices.
type Range = matrix.Range

// Option configures matrix construction.
type Option = matrix.Option

// Hint is an unverified structural or numerical property of a matrix.
type Hint = matrix.Hint

// Hints.
const (
	HintNone                      = matrix.HintNone
	HintShapeDiagonal             = matrix.HintShapeDiagonal
	HintShapeLowerTriangular      = matrix.HintShapeLowerTriangular
	HintShapeUpperTriangular      = matrix.HintShapeUpperTriangular
	HintFeatureSymmetric          = matrix.HintFeatureSymmetric
	HintFeaturePositiveDefinite   = matrix.HintFeaturePositiveDefinite
	HintFeatureDiagonallyDominant = matrix.HintFeatureDiagonallyDominant
)

// Attribute controls side-channel diagnostics of a matrix.
type Attribute = matrix.Attribute

// Attributes.
const (
	AttributeNone          = matrix.AttributeNone
	AttributeEnableLogging = matrix.AttributeEnableLogging
)

// Norm selects a vector or matrix norm.
type Norm = matrix.Norm

// Norms.
const (
	NormL1        = matrix.NormL1
	NormL2        = matrix.NormL2
	NormLInfinity = matrix.NormLInfinity
)

// Status is the outcome of materializing a matrix.
type Status = matrix.Status

// Statuses.
const (
	Success                  = matrix.Success
	PoorlyConditionedWarning = matrix.PoorlyConditionedWarning
	InternalError            = matrix.InternalError
	InvalidParameterError    = matrix.InvalidParameterError
	DimensionMismatchError   = matrix.DimensionMismatchError
	PrecisionMismatchError   = matrix.PrecisionMismatchError
	SingularError            = matrix.SingularError
	SliceOutOfBoundsError    = matrix.SliceOutOfBoundsError
)

// StatusError carries the status behind an error returned by Status.Err.
type StatusError = matrix.StatusError

// Sentinel errors matched by errors.Is.
var (
	ErrInternal          = matrix.ErrInternal
	ErrInvalidParameter  = matrix.ErrInvalidParameter
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrPrecisionMismatch = matrix.ErrPrecisionMismatch
	ErrSingular          = matrix.ErrSingular
	ErrSliceOutOfBounds  = matrix.ErrSliceOutOfBounds
)

// WithHint attaches a hint to a constructed matrix.
func WithHint(h Hint) Option {
	return matrix.WithHint(h)
}

// WithAttribute attaches a diagnostic attribute to a constructed matrix.
func WithAttribute(a Attribute) Option {
	return matrix.WithAttribute(a)
}

// WithEngine selects the engine of a constructed matrix.
func WithEngine(e Engine) Option {
	return matrix.WithEngine(e)
}

// New creates a rows×cols matrix from row-major elements.
//
// Example:
//
//	m := matrix.New([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
func New[T Element](elements []T, rows, cols int, opts ...Option) *Matrix[T] {
	return matrix.New(elements, rows, cols, opts...)
}

// FromRows creates a matrix from equal-length row literals.
func FromRows[T Element](rows [][]T, opts ...Option) *Matrix[T] {
	return matrix.FromRows(rows, opts...)
}

// Zeros creates a rows×cols matrix of zeros.
func Zeros[T Element](rows, cols int, opts ...Option) *Matrix[T] {
	return matrix.Zeros[T](rows, cols, opts...)
}

// Identity creates the size×size identity matrix.
func Identity[T Element](size int, opts ...Option) *Matrix[T] {
	return matrix.Identity[T](size, opts...)
}

// Diagonal creates a square matrix with elements on diagonal offset.
func Diagonal[T Element](elements []T, offset int, opts ...Option) *Matrix[T] {
	return matrix.Diagonal(elements, offset, opts...)
}

// Add returns a+b.
func Add[T Element](a, b *Matrix[T]) *Matrix[T] {
	return matrix.Add(a, b)
}

// Sub returns a-b.
func Sub[T Element](a, b *Matrix[T]) *Matrix[T] {
	return matrix.Sub(a, b)
}

// Mul returns s*m.
func Mul[T Element](s T, m *Matrix[T]) *Matrix[T] {
	return matrix.Mul(s, m)
}

// StatusFromRaw decodes an engine status code.
func StatusFromRaw(raw int32) Status {
	return matrix.StatusFromRaw(la.Status(raw))
}
