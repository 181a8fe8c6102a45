package matrix

import (
	"fmt"

	"github.com/born-ml/axle/internal/la"
)

// Range is the half-open interval [Start, End) of row or column indices.
type Range struct {
	Start int
	End   int
}

// Len returns End - Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// Transpose returns the cols×rows transpose of m.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	return m.derive(m.engine().Transpose(m.obj))
}

// Normalized returns the vector m scaled to unit norm. Normalizing a
// matrix that is not a vector fails with InvalidParameterError; a zero
// vector stays zero and reports PoorlyConditionedWarning.
func (m *Matrix[T]) Normalized(norm Norm) *Matrix[T] {
	return m.derive(m.engine().NormalizedVector(m.obj, norm.Raw()))
}

// Submatrix returns the rows×cols window of m. Ranges outside m are
// reported as SliceOutOfBoundsError when the result is materialized.
//
// Panics if either range is empty or reversed.
func (m *Matrix[T]) Submatrix(rows, cols Range) *Matrix[T] {
	if rows.Len() < 1 || cols.Len() < 1 {
		panic(fmt.Sprintf("matrix: Submatrix: empty range rows %v cols %v", rows, cols))
	}
	return m.SubmatrixStrided(rows.Start, cols.Start, 1, 1, rows.Len(), cols.Len())
}

// SubmatrixStrided returns the rows×cols matrix whose element (i, j) is
// m(firstRow+i*rowStride, firstCol+j*colStride). Strides may be negative.
//
// Panics if rows or cols is less than 1 or a stride is zero.
func (m *Matrix[T]) SubmatrixStrided(firstRow, firstCol, rowStride, colStride, rows, cols int) *Matrix[T] {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("matrix: SubmatrixStrided: invalid shape %d×%d", rows, cols))
	}
	if rowStride == 0 || colStride == 0 {
		panic("matrix: SubmatrixStrided: zero stride")
	}
	return m.derive(m.engine().MatrixSlice(m.obj,
		la.Index(firstRow), la.Index(firstCol),
		la.Index(rowStride), la.Index(colStride),
		la.Count(rows), la.Count(cols)))
}

// Row returns row i as a 1×cols vector.
func (m *Matrix[T]) Row(i int) *Matrix[T] {
	return m.derive(m.engine().VectorFromMatrixRow(m.obj, la.Index(i)))
}

// Col returns column j as a rows×1 vector.
func (m *Matrix[T]) Col(j int) *Matrix[T] {
	return m.derive(m.engine().VectorFromMatrixCol(m.obj, la.Index(j)))
}

// Diagonal returns diagonal k as a column vector: 0 is the main diagonal,
// positive k lie above it and negative k below.
func (m *Matrix[T]) Diagonal(k int) *Matrix[T] {
	return m.derive(m.engine().VectorFromMatrixDiagonal(m.obj, la.Index(k)))
}
