package matrix

import (
	"math"
	"strconv"
	"strings"
)

// Elements evaluates m and returns its rows*cols elements in row-major
// order. On an error status the elements are zero.
func (m *Matrix[T]) Elements() ([]T, Status) {
	dst := make([]T, m.Rows()*m.Cols())
	status := m.caps.toBuffer(dst, m.obj.Cols(), m.obj)
	return dst, StatusFromRaw(status)
}

// ElementsFunc evaluates m and passes its elements and status to fn.
func (m *Matrix[T]) ElementsFunc(fn func(elements []T, status Status)) {
	fn(m.Elements())
}

// At returns the element at row i, column j. Out-of-range indices report
// SliceOutOfBoundsError.
func (m *Matrix[T]) At(i, j int) (T, Status) {
	elements, status := m.SubmatrixStrided(i, j, 1, 1, 1, 1).Elements()
	return elements[0], status
}

// Index returns the i-th element in row-major order.
func (m *Matrix[T]) Index(i int) (T, Status) {
	cols := m.Cols()
	if i < 0 {
		return 0, SliceOutOfBoundsError
	}
	return m.At(i/cols, i%cols)
}

// Columns evaluates m and returns it as a slice of columns.
func (m *Matrix[T]) Columns() ([][]T, Status) {
	elements, status := m.Elements()
	rows, cols := m.Shape()
	out := make([][]T, cols)
	for j := range out {
		out[j] = make([]T, rows)
		for i := range out[j] {
			out[j][i] = elements[i*cols+j]
		}
	}
	return out, status
}

// Norm evaluates m and returns its norm over all elements. On an error
// status the value is NaN.
func (m *Matrix[T]) Norm(norm Norm) (T, Status) {
	v, status := m.caps.norm(m.obj, norm.Raw())
	if status.IsError() {
		return T(math.NaN()), StatusFromRaw(status)
	}
	return v, StatusFromRaw(status)
}

// Status evaluates m and returns its status.
func (m *Matrix[T]) Status() Status {
	return StatusFromRaw(m.engine().Evaluate(m.obj))
}

// Err evaluates m and returns the error of its status, if any.
func (m *Matrix[T]) Err() error {
	return m.Status().Err()
}

// String evaluates m and renders its rows, with elements separated by ", "
// and rows by "; ".
func (m *Matrix[T]) String() string {
	elements, status := m.Elements()
	if status.IsError() {
		return "<invalid matrix: " + status.String() + ">"
	}

	var sb strings.Builder
	cols := m.Cols()
	for i, v := range elements {
		switch {
		case i == 0:
		case i%cols == 0:
			sb.WriteString("; ")
		default:
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', 13, 64))
	}
	return sb.String()
}
