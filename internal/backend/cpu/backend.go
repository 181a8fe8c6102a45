// Package cpu implements the CPU linear-algebra engine.
//
// The engine records every call as a node of a deferred computation graph
// and evaluates a node only when its contents are exported or reduced to a
// norm. Kernels are gonum BLAS routines; loops BLAS has no routine for fan
// out with internal/parallel.
package cpu

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/born-ml/axle/internal/la"
	"github.com/born-ml/axle/internal/parallel"
)

// Verify that Backend implements la.Engine.
var _ la.Engine = (*Backend)(nil)

// Backend is the CPU engine. A Backend holds no per-matrix state and is
// safe for concurrent use.
type Backend struct {
	logger   zerolog.Logger
	parallel parallel.Config
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for nodes carrying the logging attribute.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// WithParallel sets the fan-out policy of elementwise and copy kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(b *Backend) {
		if cfg.NumWorkers < 1 {
			panic("cpu: WithParallel: NumWorkers must be >= 1")
		}
		b.parallel = cfg
	}
}

// New creates a CPU engine.
func New(opts ...Option) *Backend {
	b := &Backend{
		logger:   zerolog.New(os.Stderr).With().Timestamp().Logger(),
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the engine name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// unwrap returns the node behind obj. Handles from other engines and nil
// handles become nodes that fail with InvalidParameterError.
func (cpu *Backend) unwrap(obj la.Object) *node {
	if n, ok := obj.(*node); ok && n != nil {
		return n
	}
	if obj == nil {
		return invalid(la.InvalidParameterError, la.ScalarDouble, la.DefaultAttributes)
	}
	return invalid(la.InvalidParameterError, obj.ScalarType(), obj.Attributes())
}

// MatrixFromFloat32Buffer imports a float32 buffer.
func (cpu *Backend) MatrixFromFloat32Buffer(buf []float32, rows, cols, ld la.Count, hint la.Hint, attr la.Attribute) la.Object {
	return importBuffer(buf, rows, cols, ld, hint, attr, la.ScalarFloat)
}

// MatrixFromFloat64Buffer imports a float64 buffer.
func (cpu *Backend) MatrixFromFloat64Buffer(buf []float64, rows, cols, ld la.Count, hint la.Hint, attr la.Attribute) la.Object {
	return importBuffer(buf, rows, cols, ld, hint, attr, la.ScalarDouble)
}

// importBuffer copies buf so that later writes by the caller cannot reach
// the graph.
func importBuffer[T element](buf []T, rows, cols, ld la.Count, hint la.Hint, attr la.Attribute, st la.ScalarType) *node {
	if rows == 0 || cols == 0 || ld < cols || !hint.Valid() {
		return invalid(la.InvalidParameterError, st, attr)
	}
	if la.Count(len(buf)) < (rows-1)*ld+cols {
		return invalid(la.InvalidParameterError, st, attr)
	}

	r, c, stride := int(rows), int(cols), int(ld)
	data := make([]T, r*c)
	if stride == c {
		copy(data, buf[:r*c])
	} else {
		for i := 0; i < r; i++ {
			copy(data[i*c:(i+1)*c], buf[i*stride:i*stride+c])
		}
	}

	return &node{
		op:     opImport,
		rows:   rows,
		cols:   cols,
		st:     st,
		attr:   attr,
		hint:   hint,
		buffer: data,
	}
}

// IdentityMatrix records a size×size identity.
func (cpu *Backend) IdentityMatrix(size la.Count, st la.ScalarType, attr la.Attribute) la.Object {
	if size == 0 || (st != la.ScalarFloat && st != la.ScalarDouble) {
		return invalid(la.InvalidParameterError, st, attr)
	}
	return &node{
		op:   opIdentity,
		rows: size,
		cols: size,
		st:   st,
		attr: attr,
		hint: la.ShapeDiagonal | la.FeatureSymmetric | la.FeaturePositiveDefinite,
	}
}

// DiagonalMatrixFromVector records a square matrix with vector on diagonal
// index (0 main, positive above, negative below).
func (cpu *Backend) DiagonalMatrixFromVector(vector la.Object, index la.Index) la.Object {
	v := cpu.unwrap(vector)
	size := v.length() + la.Count(abs(index))
	n := derive(opDiagonal, size, size, v)
	n.index[0] = index
	if !v.isVector() {
		n.pre = la.InvalidParameterError
	}
	if index == 0 {
		n.hint = la.ShapeDiagonal
	}
	return n
}

// Transpose records the transpose of obj.
func (cpu *Backend) Transpose(obj la.Object) la.Object {
	v := cpu.unwrap(obj)
	n := derive(opTranspose, v.cols, v.rows, v)
	n.hint = transposeHint(v.hint)
	return n
}

// NormalizedVector records obj scaled to unit norm.
func (cpu *Backend) NormalizedVector(obj la.Object, norm la.Norm) la.Object {
	v := cpu.unwrap(obj)
	n := derive(opNormalize, v.rows, v.cols, v)
	n.norm = norm
	if !v.isVector() || !validNorm(norm) {
		n.pre = la.InvalidParameterError
	}
	return n
}

// MatrixSlice records a strided submatrix. Bounds are checked on evaluation.
func (cpu *Backend) MatrixSlice(obj la.Object, firstRow, firstCol, rowStride, colStride la.Index, sliceRows, sliceCols la.Count) la.Object {
	v := cpu.unwrap(obj)
	n := derive(opSlice, max(sliceRows, 1), max(sliceCols, 1), v)
	n.index = [4]la.Index{firstRow, firstCol, rowStride, colStride}
	if sliceRows == 0 || sliceCols == 0 || rowStride == 0 || colStride == 0 {
		n.pre = la.InvalidParameterError
	}
	return n
}

// VectorFromMatrixRow records row of obj as a 1×cols vector.
func (cpu *Backend) VectorFromMatrixRow(obj la.Object, row la.Index) la.Object {
	v := cpu.unwrap(obj)
	n := derive(opRowVector, 1, v.cols, v)
	n.index[0] = row
	return n
}

// VectorFromMatrixCol records column col of obj as a rows×1 vector.
func (cpu *Backend) VectorFromMatrixCol(obj la.Object, col la.Index) la.Object {
	v := cpu.unwrap(obj)
	n := derive(opColVector, v.rows, 1, v)
	n.index[0] = col
	return n
}

// VectorFromMatrixDiagonal records diagonal index of obj as a column vector.
func (cpu *Backend) VectorFromMatrixDiagonal(obj la.Object, index la.Index) la.Object {
	v := cpu.unwrap(obj)
	length := diagonalLength(v.rows, v.cols, index)
	n := derive(opDiagonalVector, max(length, 1), 1, v)
	n.index[0] = index
	return n
}

// ScaleWithFloat32 records obj multiplied by scalar.
func (cpu *Backend) ScaleWithFloat32(obj la.Object, scalar float32) la.Object {
	return cpu.scale(obj, float64(scalar), la.ScalarFloat)
}

// ScaleWithFloat64 records obj multiplied by scalar.
func (cpu *Backend) ScaleWithFloat64(obj la.Object, scalar float64) la.Object {
	return cpu.scale(obj, scalar, la.ScalarDouble)
}

func (cpu *Backend) scale(obj la.Object, scalar float64, st la.ScalarType) la.Object {
	v := cpu.unwrap(obj)
	n := derive(opScale, v.rows, v.cols, v)
	n.scalar = scalar
	n.hint = v.hint &^ la.FeaturePositiveDefinite
	if v.st != st {
		n.pre = la.PrecisionMismatchError
	}
	return n
}

// Sum records a + b.
func (cpu *Backend) Sum(a, b la.Object) la.Object {
	return cpu.binary(opSum, a, b)
}

// Difference records a - b.
func (cpu *Backend) Difference(a, b la.Object) la.Object {
	return cpu.binary(opDifference, a, b)
}

// ElementwiseProduct records the Hadamard product of a and b.
func (cpu *Backend) ElementwiseProduct(a, b la.Object) la.Object {
	return cpu.binary(opElementwiseProduct, a, b)
}

func (cpu *Backend) binary(op opKind, a, b la.Object) la.Object {
	l, r := cpu.unwrap(a), cpu.unwrap(b)
	return derive(op, l.rows, l.cols, l, r)
}

// InnerProduct records the dot product of two vectors as a 1×1 matrix.
func (cpu *Backend) InnerProduct(a, b la.Object) la.Object {
	l, r := cpu.unwrap(a), cpu.unwrap(b)
	n := derive(opInnerProduct, 1, 1, l, r)
	if !l.isVector() || !r.isVector() {
		n.pre = la.InvalidParameterError
	}
	return n
}

// OuterProduct records a⊗b as a len(a)×len(b) matrix.
func (cpu *Backend) OuterProduct(a, b la.Object) la.Object {
	l, r := cpu.unwrap(a), cpu.unwrap(b)
	n := derive(opOuterProduct, max(la.VectorLength(l), 1), max(la.VectorLength(r), 1), l, r)
	if !l.isVector() || !r.isVector() {
		n.pre = la.InvalidParameterError
	}
	return n
}

// MatrixProduct records a*b.
func (cpu *Backend) MatrixProduct(a, b la.Object) la.Object {
	l, r := cpu.unwrap(a), cpu.unwrap(b)
	return derive(opMatrixProduct, l.rows, r.cols, l, r)
}

// diagonalLength returns the element count of diagonal index in a rows×cols
// matrix, or zero when the diagonal does not exist.
func diagonalLength(rows, cols la.Count, index la.Index) la.Count {
	r, c := la.Index(rows), la.Index(cols)
	switch {
	case index >= 0 && index < c:
		return la.Count(min(r, c-index))
	case index < 0 && -index < r:
		return la.Count(min(r+index, c))
	default:
		return 0
	}
}

func validNorm(norm la.Norm) bool {
	return norm == la.L1Norm || norm == la.L2Norm || norm == la.LInfNorm
}

func abs(x la.Index) la.Index {
	if x < 0 {
		return -x
	}
	return x
}
