package cpu

import (
	"math"

	"gonum.org/v1/gonum/blas"

	"github.com/born-ml/axle/internal/la"
	"github.com/born-ml/axle/internal/parallel"
)

// Evaluate forces obj and returns its status.
func (cpu *Backend) Evaluate(obj la.Object) la.Status {
	return cpu.evaluate(cpu.unwrap(obj))
}

// evaluate computes n once. Concurrent callers block until the first
// evaluation finishes and then share its result.
func (cpu *Backend) evaluate(n *node) la.Status {
	n.once.Do(func() {
		switch n.st {
		case la.ScalarFloat:
			if d, status := evalNode(cpu, n, float32Kernels); d != nil {
				n.result, n.status = d, status
			} else {
				n.status = status
			}
		case la.ScalarDouble:
			if d, status := evalNode(cpu, n, float64Kernels); d != nil {
				n.result, n.status = d, status
			} else {
				n.status = status
			}
		default:
			n.status = la.InvalidParameterError
		}
		cpu.trace(n)
	})
	return n.status
}

// trace logs an evaluated node when it carries the logging attribute.
func (cpu *Backend) trace(n *node) {
	if !n.attr.Has(la.AttributeEnableLogging) {
		return
	}

	ev := cpu.logger.Debug()
	switch {
	case n.status.IsError():
		ev = cpu.logger.Error()
	case n.status.IsWarning():
		ev = cpu.logger.Warn()
	}
	ev.Str("engine", cpu.Name()).
		Str("op", n.op.String()).
		Uint64("rows", n.rows).
		Uint64("cols", n.cols).
		Str("scalar", n.st.String()).
		Int32("status", int32(n.status)).
		Msg("la: evaluated")
}

// evalNode evaluates the inputs of n, then n itself. The first input error
// wins; warnings accumulate.
func evalNode[T element](cpu *Backend, n *node, k *kernels[T]) (*dense[T], la.Status) {
	status := la.Success
	in := make([]*dense[T], len(n.inputs))
	for i, input := range n.inputs {
		s := cpu.evaluate(input)
		if s.IsError() {
			return nil, s
		}
		if input.st != n.st {
			return nil, la.PrecisionMismatchError
		}
		in[i] = input.result.(*dense[T])
		status = status.Worse(s)
	}
	if n.pre.IsError() {
		return nil, n.pre
	}

	out, s := apply(cpu, n, in, k)
	if s.IsError() {
		return nil, s
	}
	return out, status.Worse(s)
}

func apply[T element](cpu *Backend, n *node, in []*dense[T], k *kernels[T]) (*dense[T], la.Status) {
	rows, cols := int(n.rows), int(n.cols)

	switch n.op {
	case opImport:
		data, ok := n.buffer.([]T)
		if !ok {
			return nil, la.PrecisionMismatchError
		}
		return &dense[T]{rows: rows, cols: cols, data: data}, la.Success

	case opIdentity:
		out := newDense[T](rows, cols)
		for i := 0; i < rows; i++ {
			out.data[i*cols+i] = 1
		}
		return out, la.Success

	case opDiagonal:
		return diagonalMatrix(in[0], int(n.index[0])), la.Success

	case opTranspose:
		return transpose(in[0], cpu.parallel), la.Success

	case opNormalize:
		return normalize(in[0], n.norm, k)

	case opSlice:
		return slice(in[0], n, cpu.parallel)

	case opRowVector:
		src, row := in[0], int(n.index[0])
		if n.index[0] < 0 || row >= src.rows {
			return nil, la.SliceOutOfBoundsError
		}
		out := newDense[T](1, src.cols)
		copy(out.data, src.row(row))
		return out, la.Success

	case opColVector:
		src, col := in[0], int(n.index[0])
		if n.index[0] < 0 || col >= src.cols {
			return nil, la.SliceOutOfBoundsError
		}
		out := newDense[T](src.rows, 1)
		for i := range out.data {
			out.data[i] = src.at(i, col)
		}
		return out, la.Success

	case opDiagonalVector:
		return diagonalVector(in[0], n.index[0])

	case opScale:
		out := newDense[T](rows, cols)
		k.copy(len(out.data), in[0].data, out.data)
		k.scal(len(out.data), T(n.scalar), out.data)
		return out, la.Success

	case opSum, opDifference:
		a, b := in[0], in[1]
		if a.rows != b.rows || a.cols != b.cols {
			return nil, la.DimensionMismatchError
		}
		alpha := T(1)
		if n.op == opDifference {
			alpha = -1
		}
		out := newDense[T](a.rows, a.cols)
		k.copy(len(out.data), a.data, out.data)
		k.axpy(len(out.data), alpha, b.data, out.data)
		return out, la.Success

	case opElementwiseProduct:
		a, b := in[0], in[1]
		if a.rows != b.rows || a.cols != b.cols {
			return nil, la.DimensionMismatchError
		}
		out := newDense[T](a.rows, a.cols)
		parallel.ForRange(len(out.data), cpu.parallel, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				out.data[i] = a.data[i] * b.data[i]
			}
		})
		return out, la.Success

	case opInnerProduct:
		a, b := in[0], in[1]
		if len(a.data) != len(b.data) {
			return nil, la.DimensionMismatchError
		}
		out := newDense[T](1, 1)
		out.data[0] = k.dot(len(a.data), a.data, b.data)
		return out, la.Success

	case opOuterProduct:
		a, b := in[0], in[1]
		out := newDense[T](len(a.data), len(b.data))
		k.ger(len(a.data), len(b.data), a.data, b.data, out.data)
		return out, la.Success

	case opMatrixProduct:
		return matrixProduct(in[0], in[1], n.inputs[0].hint, k)

	default:
		return nil, la.InternalError
	}
}

func diagonalMatrix[T element](v *dense[T], index int) *dense[T] {
	size := len(v.data)
	if index < 0 {
		size -= index
	} else {
		size += index
	}
	out := newDense[T](size, size)
	for i, x := range v.data {
		if index >= 0 {
			out.data[i*size+i+index] = x
		} else {
			out.data[(i-index)*size+i] = x
		}
	}
	return out
}

func transpose[T element](src *dense[T], cfg parallel.Config) *dense[T] {
	out := newDense[T](src.cols, src.rows)
	parallel.ForRows(src.rows, src.cols, cfg, func(i int) {
		row := src.row(i)
		for j, x := range row {
			out.data[j*src.rows+i] = x
		}
	})
	return out
}

func normalize[T element](v *dense[T], kind la.Norm, k *kernels[T]) (*dense[T], la.Status) {
	nrm, status := norm(v.data, kind, k)
	if status.IsError() {
		return nil, status
	}

	out := newDense[T](v.rows, v.cols)
	if nrm == 0 || math.IsNaN(float64(nrm)) {
		return out, la.WarningPoorlyConditioned
	}
	k.copy(len(out.data), v.data, out.data)
	k.scal(len(out.data), 1/nrm, out.data)
	return out, la.Success
}

// slice copies a strided window. Strides may be negative; every addressed
// row and column must lie inside src.
func slice[T element](src *dense[T], n *node, cfg parallel.Config) (*dense[T], la.Status) {
	firstRow, firstCol, rowStride, colStride := n.index[0], n.index[1], n.index[2], n.index[3]
	rows, cols := la.Index(n.rows), la.Index(n.cols)

	lastRow := firstRow + (rows-1)*rowStride
	lastCol := firstCol + (cols-1)*colStride
	if !inBounds(firstRow, src.rows) || !inBounds(lastRow, src.rows) ||
		!inBounds(firstCol, src.cols) || !inBounds(lastCol, src.cols) {
		return nil, la.SliceOutOfBoundsError
	}

	out := newDense[T](int(rows), int(cols))
	parallel.ForRows(int(rows), int(cols), cfg, func(i int) {
		srcRow := src.row(int(firstRow + la.Index(i)*rowStride))
		dst := out.row(i)
		if colStride == 1 {
			copy(dst, srcRow[firstCol:firstCol+cols])
			return
		}
		for j := range dst {
			dst[j] = srcRow[firstCol+la.Index(j)*colStride]
		}
	})
	return out, la.Success
}

func inBounds(i la.Index, n int) bool {
	return i >= 0 && i < la.Index(n)
}

func diagonalVector[T element](src *dense[T], index la.Index) (*dense[T], la.Status) {
	length := int(diagonalLength(la.Count(src.rows), la.Count(src.cols), index))
	if length == 0 {
		return nil, la.SliceOutOfBoundsError
	}

	k := int(index)
	out := newDense[T](length, 1)
	for i := range out.data {
		if k >= 0 {
			out.data[i] = src.at(i, i+k)
		} else {
			out.data[i] = src.at(i-k, i)
		}
	}
	return out, la.Success
}

// matrixProduct multiplies a by b, taking a faster kernel when the left
// operand carries a shape or feature hint. Hints are trusted as given.
func matrixProduct[T element](a, b *dense[T], hint la.Hint, k *kernels[T]) (*dense[T], la.Status) {
	if a.cols != b.rows {
		return nil, la.DimensionMismatchError
	}

	m, n := a.rows, b.cols
	out := newDense[T](m, n)
	square := a.rows == a.cols

	switch {
	case square && hint.Has(la.ShapeDiagonal):
		for i := 0; i < m; i++ {
			k.axpy(n, a.at(i, i), b.row(i), out.row(i))
		}
	case square && hint.Has(la.ShapeLowerTriangular):
		k.copy(len(out.data), b.data, out.data)
		k.trmm(blas.Lower, m, n, a.data, out.data)
	case square && hint.Has(la.ShapeUpperTriangular):
		k.copy(len(out.data), b.data, out.data)
		k.trmm(blas.Upper, m, n, a.data, out.data)
	case square && (hint.Has(la.FeatureSymmetric) || hint.Has(la.FeaturePositiveDefinite)):
		k.symm(blas.Upper, m, n, a.data, b.data, out.data)
	default:
		k.gemm(m, n, a.cols, a.data, b.data, out.data)
	}
	return out, la.Success
}

// norm reduces data under kind.
func norm[T element](data []T, kind la.Norm, k *kernels[T]) (T, la.Status) {
	n := len(data)
	switch kind {
	case la.L1Norm:
		return k.asum(n, data), la.Success
	case la.L2Norm:
		return k.nrm2(n, data), la.Success
	case la.LInfNorm:
		i := k.iamax(n, data)
		if i < 0 {
			return 0, la.Success
		}
		v := data[i]
		if v < 0 {
			v = -v
		}
		return v, la.Success
	default:
		return 0, la.InvalidParameterError
	}
}
