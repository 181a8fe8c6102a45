package matrix

// Scale returns s*m.
func (m *Matrix[T]) Scale(s T) *Matrix[T] {
	return m.derive(m.caps.scale(m.obj, s))
}

// Sum returns m+other. Shapes must match.
func (m *Matrix[T]) Sum(other *Matrix[T]) *Matrix[T] {
	return m.derive(m.engine().Sum(m.obj, other.obj))
}

// Difference returns m-other. Shapes must match.
func (m *Matrix[T]) Difference(other *Matrix[T]) *Matrix[T] {
	return m.derive(m.engine().Difference(m.obj, other.obj))
}

// ElementwiseProduct returns the Hadamard product of m and other.
func (m *Matrix[T]) ElementwiseProduct(other *Matrix[T]) *Matrix[T] {
	return m.derive(m.engine().ElementwiseProduct(m.obj, other.obj))
}

// InnerProduct returns the dot product of vectors m and other as a 1×1
// matrix.
func (m *Matrix[T]) InnerProduct(other *Matrix[T]) *Matrix[T] {
	return m.derive(m.engine().InnerProduct(m.obj, other.obj))
}

// OuterProduct returns the len(m)×len(other) outer product of vectors m
// and other.
func (m *Matrix[T]) OuterProduct(other *Matrix[T]) *Matrix[T] {
	return m.derive(m.engine().OuterProduct(m.obj, other.obj))
}

// MatrixProduct returns the product of an m×k and a k×n matrix.
func (m *Matrix[T]) MatrixProduct(other *Matrix[T]) *Matrix[T] {
	return m.derive(m.engine().MatrixProduct(m.obj, other.obj))
}

// Equal reports whether m and other have the same shape and exactly equal
// elements. A matrix whose evaluation fails equals nothing.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if m.Rows() != other.Rows() || m.Cols() != other.Cols() {
		return false
	}

	a, status := m.Elements()
	if status.IsError() {
		return false
	}
	b, status := other.Elements()
	if status.IsError() {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Add returns a+b.
func Add[T Element](a, b *Matrix[T]) *Matrix[T] {
	return a.Sum(b)
}

// Sub returns a-b.
func Sub[T Element](a, b *Matrix[T]) *Matrix[T] {
	return a.Difference(b)
}

// Mul returns s*m.
func Mul[T Element](s T, m *Matrix[T]) *Matrix[T] {
	return m.Scale(s)
}
