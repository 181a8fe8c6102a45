package cpu

import (
	"math"

	"github.com/born-ml/axle/internal/la"
)

// MatrixToFloat32Buffer evaluates obj and writes it row-major into dst.
func (cpu *Backend) MatrixToFloat32Buffer(dst []float32, ld la.Count, obj la.Object) la.Status {
	return exportBuffer(cpu, dst, ld, cpu.unwrap(obj), la.ScalarFloat)
}

// MatrixToFloat64Buffer evaluates obj and writes it row-major into dst.
func (cpu *Backend) MatrixToFloat64Buffer(dst []float64, ld la.Count, obj la.Object) la.Status {
	return exportBuffer(cpu, dst, ld, cpu.unwrap(obj), la.ScalarDouble)
}

// exportBuffer leaves dst untouched unless the node evaluated without error.
func exportBuffer[T element](cpu *Backend, dst []T, ld la.Count, n *node, st la.ScalarType) la.Status {
	status := cpu.evaluate(n)
	if status.IsError() {
		return status
	}
	if n.st != st {
		return la.PrecisionMismatchError
	}
	if ld < n.cols || la.Count(len(dst)) < (n.rows-1)*ld+n.cols {
		return la.InvalidParameterError
	}

	src := n.result.(*dense[T])
	stride := int(ld)
	if stride == src.cols {
		copy(dst, src.data)
		return status
	}
	for i := 0; i < src.rows; i++ {
		copy(dst[i*stride:i*stride+src.cols], src.row(i))
	}
	return status
}

// NormAsFloat32 evaluates obj and reduces it under norm.
func (cpu *Backend) NormAsFloat32(obj la.Object, norm la.Norm) (float32, la.Status) {
	return normOf(cpu, cpu.unwrap(obj), norm, la.ScalarFloat, float32Kernels)
}

// NormAsFloat64 evaluates obj and reduces it under norm.
func (cpu *Backend) NormAsFloat64(obj la.Object, norm la.Norm) (float64, la.Status) {
	return normOf(cpu, cpu.unwrap(obj), norm, la.ScalarDouble, float64Kernels)
}

// normOf returns NaN with any error status.
func normOf[T element](cpu *Backend, n *node, kind la.Norm, st la.ScalarType, k *kernels[T]) (T, la.Status) {
	nan := T(math.NaN())

	status := cpu.evaluate(n)
	if status.IsError() {
		return nan, status
	}
	if n.st != st {
		return nan, la.PrecisionMismatchError
	}

	v, s := norm(n.result.(*dense[T]).data, kind, k)
	if s.IsError() {
		return nan, s
	}
	return v, status.Worse(s)
}
