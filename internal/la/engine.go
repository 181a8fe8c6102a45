package la

// Object is an opaque handle to an engine node. A node may not have been
// computed yet; its shape is known at creation, its status only after the
// engine evaluates it.
type Object interface {
	// Rows returns the row count the node will have once evaluated.
	Rows() Count

	// Cols returns the column count the node will have once evaluated.
	Cols() Count

	// ScalarType returns the element precision of the node.
	ScalarType() ScalarType

	// Attributes returns the attribute bits attached to the node.
	Attributes() Attribute
}

// Engine is the set of entry points a dense linear-algebra engine exposes.
//
// Constructors and view/algebra calls never compute anything: they record
// a node and return it. Export and norm calls force evaluation of the
// node and everything it depends on, and report a Status.
//
// Implementations:
//   - cpu: pure Go graph evaluator over gonum BLAS kernels
type Engine interface {
	// Buffer import: elements are read row-major with the given leading
	// dimension (distance between the first elements of consecutive rows).
	MatrixFromFloat32Buffer(buf []float32, rows, cols, ld Count, hint Hint, attr Attribute) Object
	MatrixFromFloat64Buffer(buf []float64, rows, cols, ld Count, hint Hint, attr Attribute) Object

	// Buffer export: writes the evaluated node row-major into dst.
	MatrixToFloat32Buffer(dst []float32, ld Count, obj Object) Status
	MatrixToFloat64Buffer(dst []float64, ld Count, obj Object) Status

	// Norms of the flattened node.
	NormAsFloat32(obj Object, norm Norm) (float32, Status)
	NormAsFloat64(obj Object, norm Norm) (float64, Status)

	// Scalar multiplication.
	ScaleWithFloat32(obj Object, scalar float32) Object
	ScaleWithFloat64(obj Object, scalar float64) Object

	// Evaluate forces the node and returns its status.
	Evaluate(obj Object) Status

	// Special matrices.
	IdentityMatrix(size Count, st ScalarType, attr Attribute) Object
	DiagonalMatrixFromVector(vector Object, index Index) Object

	// Views.
	Transpose(obj Object) Object
	NormalizedVector(obj Object, norm Norm) Object
	MatrixSlice(obj Object, firstRow, firstCol, rowStride, colStride Index, sliceRows, sliceCols Count) Object
	VectorFromMatrixRow(obj Object, row Index) Object
	VectorFromMatrixCol(obj Object, col Index) Object
	VectorFromMatrixDiagonal(obj Object, index Index) Object

	// Binary algebra.
	Sum(a, b Object) Object
	Difference(a, b Object) Object
	ElementwiseProduct(a, b Object) Object
	InnerProduct(a, b Object) Object
	OuterProduct(a, b Object) Object
	MatrixProduct(a, b Object) Object

	// Name identifies the engine in diagnostics.
	Name() string
}

// IsVector reports whether obj has exactly one row or one column.
func IsVector(obj Object) bool {
	return obj.Rows() == 1 || obj.Cols() == 1
}

// VectorLength returns the element count of a vector-shaped object,
// or zero when obj is not a vector.
func VectorLength(obj Object) Count {
	if !IsVector(obj) {
		return 0
	}
	return obj.Rows() * obj.Cols()
}
