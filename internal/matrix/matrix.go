// Package matrix implements typed dense matrices over a deferred
// linear-algebra engine.
//
// Constructors, views and algebra only record operations; nothing is
// computed until a matrix is materialized with Elements, Norm, Status,
// String or Equal. Failures of recorded operations are reported as a
// Status by the materializing call.
package matrix

import (
	"fmt"

	"github.com/born-ml/axle/internal/la"
)

// Matrix is an immutable rows×cols matrix of T. Every operation returns a
// new Matrix and leaves its operands untouched. A Matrix is safe for
// concurrent use.
type Matrix[T Element] struct {
	caps *capability[T]
	obj  la.Object
}

// New creates a rows×cols matrix from row-major elements.
//
// Panics if rows or cols is less than 1 or len(elements) != rows*cols.
func New[T Element](elements []T, rows, cols int, opts ...Option) *Matrix[T] {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("matrix: New: invalid shape %d×%d", rows, cols))
	}
	if len(elements) != rows*cols {
		panic(fmt.Sprintf("matrix: New: %d elements for shape %d×%d", len(elements), rows, cols))
	}

	o := gatherOptions(opts)
	caps := capabilityOf[T](o.engine)
	r, c := la.Count(rows), la.Count(cols)
	return &Matrix[T]{
		caps: caps,
		obj:  caps.fromBuffer(elements, r, c, c, o.hint.Raw(), o.attr.Raw()),
	}
}

// FromRows creates a matrix from row literals.
//
// Panics if rows is empty, a row is empty, or rows differ in length.
func FromRows[T Element](rows [][]T, opts ...Option) *Matrix[T] {
	if len(rows) == 0 {
		panic("matrix: FromRows: no rows")
	}
	cols := len(rows[0])
	if cols == 0 {
		panic("matrix: FromRows: empty row")
	}

	elements := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("matrix: FromRows: row %d has %d elements, want %d", i, len(row), cols))
		}
		elements = append(elements, row...)
	}
	return New(elements, len(rows), cols, opts...)
}

// Zeros creates a rows×cols matrix of zeros. Any hint option is ignored.
func Zeros[T Element](rows, cols int, opts ...Option) *Matrix[T] {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("matrix: Zeros: invalid shape %d×%d", rows, cols))
	}

	o := gatherOptions(opts)
	caps := capabilityOf[T](o.engine)
	r, c := la.Count(rows), la.Count(cols)
	return &Matrix[T]{
		caps: caps,
		obj:  caps.fromBuffer(make([]T, rows*cols), r, c, c, la.NoHint, o.attr.Raw()),
	}
}

// Identity creates the size×size identity matrix.
func Identity[T Element](size int, opts ...Option) *Matrix[T] {
	if size < 1 {
		panic(fmt.Sprintf("matrix: Identity: invalid size %d", size))
	}

	o := gatherOptions(opts)
	caps := capabilityOf[T](o.engine)
	return &Matrix[T]{
		caps: caps,
		obj:  o.engine.IdentityMatrix(la.Count(size), caps.scalar, o.attr.Raw()),
	}
}

// Diagonal creates a square matrix of side len(elements)+|offset| with
// elements on diagonal offset: 0 is the main diagonal, positive offsets
// lie above it and negative offsets below.
func Diagonal[T Element](elements []T, offset int, opts ...Option) *Matrix[T] {
	if len(elements) == 0 {
		panic("matrix: Diagonal: no elements")
	}

	o := gatherOptions(opts)
	caps := capabilityOf[T](o.engine)
	n := la.Count(len(elements))
	vector := caps.fromBuffer(elements, n, 1, 1, la.NoHint, o.attr.Raw())
	return &Matrix[T]{
		caps: caps,
		obj:  o.engine.DiagonalMatrixFromVector(vector, la.Index(offset)),
	}
}

// derive wraps an engine result that shares m's element type and engine.
func (m *Matrix[T]) derive(obj la.Object) *Matrix[T] {
	return &Matrix[T]{caps: m.caps, obj: obj}
}

func (m *Matrix[T]) engine() la.Engine {
	return m.caps.engine
}

// Rows returns the row count.
func (m *Matrix[T]) Rows() int {
	return int(m.obj.Rows())
}

// Cols returns the column count.
func (m *Matrix[T]) Cols() int {
	return int(m.obj.Cols())
}

// Shape returns the row and column counts.
func (m *Matrix[T]) Shape() (rows, cols int) {
	return m.Rows(), m.Cols()
}

// IsVector reports whether m has a single row or column.
func (m *Matrix[T]) IsVector() bool {
	return la.IsVector(m.obj)
}

// Object returns the engine handle of m.
func (m *Matrix[T]) Object() la.Object {
	return m.obj
}
