package cpu

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// element is the set of precisions the engine evaluates.
type element interface {
	float32 | float64
}

// kernels binds one precision to its BLAS routines. All matrices are
// dense row-major with stride equal to their column count.
type kernels[T element] struct {
	copy  func(n int, src, dst []T)
	axpy  func(n int, alpha T, x, y []T)
	scal  func(n int, alpha T, x []T)
	dot   func(n int, x, y []T) T
	nrm2  func(n int, x []T) T
	asum  func(n int, x []T) T
	iamax func(n int, x []T) int

	// gemm computes c = a*b for a (m×k), b (k×n), c (m×n).
	gemm func(m, n, k int, a, b, c []T)
	// ger computes a += x*yᵀ for x (m), y (n), a (m×n).
	ger func(m, n int, x, y, a []T)
	// trmm computes b = A*b for triangular A (m×m), b (m×n).
	trmm func(uplo blas.Uplo, m, n int, a, b []T)
	// symm computes c = A*b for symmetric A (m×m), b, c (m×n).
	symm func(uplo blas.Uplo, m, n int, a, b, c []T)
}

var float64Kernels = &kernels[float64]{
	copy: func(n int, src, dst []float64) {
		blas64.Copy(vec64(n, src), vec64(n, dst))
	},
	axpy: func(n int, alpha float64, x, y []float64) {
		blas64.Axpy(alpha, vec64(n, x), vec64(n, y))
	},
	scal: func(n int, alpha float64, x []float64) {
		blas64.Scal(alpha, vec64(n, x))
	},
	dot: func(n int, x, y []float64) float64 {
		return blas64.Dot(vec64(n, x), vec64(n, y))
	},
	nrm2: func(n int, x []float64) float64 {
		return blas64.Nrm2(vec64(n, x))
	},
	asum: func(n int, x []float64) float64 {
		return blas64.Asum(vec64(n, x))
	},
	iamax: func(n int, x []float64) int {
		return blas64.Iamax(vec64(n, x))
	},
	gemm: func(m, n, k int, a, b, c []float64) {
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			gen64(m, k, a), gen64(k, n, b), 0, gen64(m, n, c))
	},
	ger: func(m, n int, x, y, a []float64) {
		blas64.Ger(1, vec64(m, x), vec64(n, y), gen64(m, n, a))
	},
	trmm: func(uplo blas.Uplo, m, n int, a, b []float64) {
		tri := blas64.Triangular{Uplo: uplo, Diag: blas.NonUnit, N: m, Data: a, Stride: m}
		blas64.Trmm(blas.Left, blas.NoTrans, 1, tri, gen64(m, n, b))
	},
	symm: func(uplo blas.Uplo, m, n int, a, b, c []float64) {
		sym := blas64.Symmetric{Uplo: uplo, N: m, Data: a, Stride: m}
		blas64.Symm(blas.Left, 1, sym, gen64(m, n, b), 0, gen64(m, n, c))
	},
}

var float32Kernels = &kernels[float32]{
	copy: func(n int, src, dst []float32) {
		blas32.Copy(vec32(n, src), vec32(n, dst))
	},
	axpy: func(n int, alpha float32, x, y []float32) {
		blas32.Axpy(alpha, vec32(n, x), vec32(n, y))
	},
	scal: func(n int, alpha float32, x []float32) {
		blas32.Scal(alpha, vec32(n, x))
	},
	dot: func(n int, x, y []float32) float32 {
		return blas32.Dot(vec32(n, x), vec32(n, y))
	},
	nrm2: func(n int, x []float32) float32 {
		return blas32.Nrm2(vec32(n, x))
	},
	asum: func(n int, x []float32) float32 {
		return blas32.Asum(vec32(n, x))
	},
	iamax: func(n int, x []float32) int {
		return blas32.Iamax(vec32(n, x))
	},
	gemm: func(m, n, k int, a, b, c []float32) {
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			gen32(m, k, a), gen32(k, n, b), 0, gen32(m, n, c))
	},
	ger: func(m, n int, x, y, a []float32) {
		blas32.Ger(1, vec32(m, x), vec32(n, y), gen32(m, n, a))
	},
	trmm: func(uplo blas.Uplo, m, n int, a, b []float32) {
		tri := blas32.Triangular{Uplo: uplo, Diag: blas.NonUnit, N: m, Data: a, Stride: m}
		blas32.Trmm(blas.Left, blas.NoTrans, 1, tri, gen32(m, n, b))
	},
	symm: func(uplo blas.Uplo, m, n int, a, b, c []float32) {
		sym := blas32.Symmetric{Uplo: uplo, N: m, Data: a, Stride: m}
		blas32.Symm(blas.Left, 1, sym, gen32(m, n, b), 0, gen32(m, n, c))
	},
}

func vec64(n int, data []float64) blas64.Vector {
	return blas64.Vector{N: n, Data: data, Inc: 1}
}

func gen64(rows, cols int, data []float64) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Data: data, Stride: cols}
}

func vec32(n int, data []float32) blas32.Vector {
	return blas32.Vector{N: n, Data: data, Inc: 1}
}

func gen32(rows, cols int, data []float32) blas32.General {
	return blas32.General{Rows: rows, Cols: cols, Data: data, Stride: cols}
}
