package cpu

import (
	"sync"

	"github.com/born-ml/axle/internal/la"
)

// opKind identifies the operation a node records.
type opKind int

const (
	opImport opKind = iota
	opIdentity
	opDiagonal
	opTranspose
	opNormalize
	opSlice
	opRowVector
	opColVector
	opDiagonalVector
	opScale
	opSum
	opDifference
	opElementwiseProduct
	opInnerProduct
	opOuterProduct
	opMatrixProduct
	opInvalid
)

// String returns the operation name used in diagnostics.
func (op opKind) String() string {
	switch op {
	case opImport:
		return "import"
	case opIdentity:
		return "identity"
	case opDiagonal:
		return "diagonal"
	case opTranspose:
		return "transpose"
	case opNormalize:
		return "normalize"
	case opSlice:
		return "slice"
	case opRowVector:
		return "row_vector"
	case opColVector:
		return "col_vector"
	case opDiagonalVector:
		return "diagonal_vector"
	case opScale:
		return "scale"
	case opSum:
		return "sum"
	case opDifference:
		return "difference"
	case opElementwiseProduct:
		return "elementwise_product"
	case opInnerProduct:
		return "inner_product"
	case opOuterProduct:
		return "outer_product"
	case opMatrixProduct:
		return "matrix_product"
	default:
		return "invalid"
	}
}

// node is one vertex of the deferred computation graph. Everything except
// the memoized result is fixed at creation, so nodes can be shared freely
// between goroutines.
type node struct {
	op     opKind
	rows   la.Count
	cols   la.Count
	st     la.ScalarType
	attr   la.Attribute
	hint   la.Hint
	inputs []*node

	// Operation parameters.
	index  [4]la.Index // slice: firstRow, firstCol, rowStride, colStride; others use index[0]
	norm   la.Norm
	scalar float64
	buffer any // []float32 or []float64 owned copy of imported data

	// pre is a status known at creation (bad parameters, foreign handles).
	pre la.Status

	once   sync.Once
	status la.Status
	result any // *dense[float32] or *dense[float64]
}

// Rows returns the node's row count.
func (n *node) Rows() la.Count { return n.rows }

// Cols returns the node's column count.
func (n *node) Cols() la.Count { return n.cols }

// ScalarType returns the node's element precision.
func (n *node) ScalarType() la.ScalarType { return n.st }

// Attributes returns the node's attribute bits.
func (n *node) Attributes() la.Attribute { return n.attr }

func (n *node) isVector() bool {
	return n.rows == 1 || n.cols == 1
}

func (n *node) length() la.Count {
	return n.rows * n.cols
}

// dense is an evaluated node: row-major storage with stride cols.
type dense[T element] struct {
	rows int
	cols int
	data []T
}

func newDense[T element](rows, cols int) *dense[T] {
	return &dense[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

func (d *dense[T]) at(i, j int) T {
	return d.data[i*d.cols+j]
}

func (d *dense[T]) row(i int) []T {
	return d.data[i*d.cols : (i+1)*d.cols]
}

// derive creates a node that depends on inputs. Precision and attributes
// are inherited from the first input; attributes accumulate.
func derive(op opKind, rows, cols la.Count, inputs ...*node) *node {
	n := &node{
		op:     op,
		rows:   rows,
		cols:   cols,
		inputs: inputs,
	}
	if len(inputs) > 0 {
		n.st = inputs[0].st
	}
	for _, in := range inputs {
		n.attr |= in.attr
	}
	return n
}

// invalid creates a node that evaluates to status without inputs.
func invalid(status la.Status, st la.ScalarType, attr la.Attribute) *node {
	return &node{
		op:   opInvalid,
		rows: 1,
		cols: 1,
		st:   st,
		attr: attr,
		pre:  status,
	}
}

// transposeHint swaps triangular shape bits; other bits survive transposition.
func transposeHint(h la.Hint) la.Hint {
	out := h &^ (la.ShapeLowerTriangular | la.ShapeUpperTriangular)
	if h.Has(la.ShapeLowerTriangular) {
		out |= la.ShapeUpperTriangular
	}
	if h.Has(la.ShapeUpperTriangular) {
		out |= la.ShapeLowerTriangular
	}
	return out
}
