package cpu

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/axle/internal/la"
	"github.com/born-ml/axle/internal/parallel"
)

// Helper to create test backend.
func newTestBackend() *Backend {
	return New(WithParallel(parallel.Sequential()))
}

// Helper to import a row-major float64 matrix.
func import64(b *Backend, rows, cols la.Count, data ...float64) la.Object {
	return b.MatrixFromFloat64Buffer(data, rows, cols, cols, la.NoHint, la.DefaultAttributes)
}

// Helper to export obj as float64.
func export64(t *testing.T, b *Backend, obj la.Object) ([]float64, la.Status) {
	t.Helper()
	dst := make([]float64, obj.Rows()*obj.Cols())
	status := b.MatrixToFloat64Buffer(dst, obj.Cols(), obj)
	return dst, status
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	require.NotNil(t, backend)
	assert.Equal(t, "CPU", backend.Name())
}

func TestCPUBackend_WithParallelRejectsZeroWorkers(t *testing.T) {
	assert.PanicsWithValue(t, "cpu: WithParallel: NumWorkers must be >= 1", func() {
		New(WithParallel(parallel.Config{Enabled: true, NumWorkers: 0}))
	})
}

func TestCPUBackend_ImportExport(t *testing.T) {
	b := newTestBackend()

	t.Run("Float64", func(t *testing.T) {
		obj := import64(b, 2, 3, 1, 2, 3, 4, 5, 6)
		assert.Equal(t, la.Count(2), obj.Rows())
		assert.Equal(t, la.Count(3), obj.Cols())
		assert.Equal(t, la.ScalarDouble, obj.ScalarType())

		got, status := export64(t, b, obj)
		require.Equal(t, la.Success, status)
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got)
	})

	t.Run("Float32", func(t *testing.T) {
		obj := b.MatrixFromFloat32Buffer([]float32{1, 2, 3, 4}, 2, 2, 2, la.NoHint, la.DefaultAttributes)
		dst := make([]float32, 4)
		require.Equal(t, la.Success, b.MatrixToFloat32Buffer(dst, 2, obj))
		assert.Equal(t, []float32{1, 2, 3, 4}, dst)
	})

	t.Run("LeadingDimension", func(t *testing.T) {
		// Rows are 4 apart in the source; only the first 2 columns are used.
		src := []float64{1, 2, -1, -1, 3, 4, -1, -1}
		obj := b.MatrixFromFloat64Buffer(src, 2, 2, 4, la.NoHint, la.DefaultAttributes)

		dst := make([]float64, 6)
		require.Equal(t, la.Success, b.MatrixToFloat64Buffer(dst, 3, obj))
		assert.Equal(t, []float64{1, 2, 0, 3, 4, 0}, dst)
	})

	t.Run("ImportCopiesBuffer", func(t *testing.T) {
		src := []float64{1, 2}
		obj := import64(b, 1, 2, src...)
		src[0] = 100

		got, status := export64(t, b, obj)
		require.Equal(t, la.Success, status)
		assert.Equal(t, []float64{1, 2}, got)
	})
}

func TestCPUBackend_ImportInvalid(t *testing.T) {
	b := newTestBackend()

	tests := []struct {
		name           string
		buf            []float64
		rows, cols, ld la.Count
		hint           la.Hint
	}{
		{"zero rows", []float64{1}, 0, 1, 1, la.NoHint},
		{"zero cols", []float64{1}, 1, 0, 1, la.NoHint},
		{"short ld", []float64{1, 2, 3, 4}, 2, 2, 1, la.NoHint},
		{"short buffer", []float64{1, 2, 3}, 2, 2, 2, la.NoHint},
		{"unknown hint", []float64{1}, 1, 1, 1, la.Hint(1 << 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := b.MatrixFromFloat64Buffer(tt.buf, tt.rows, tt.cols, tt.ld, tt.hint, la.DefaultAttributes)
			assert.Equal(t, la.InvalidParameterError, b.Evaluate(obj))
		})
	}
}

func TestCPUBackend_ExportInvalid(t *testing.T) {
	b := newTestBackend()
	obj := import64(b, 2, 2, 1, 2, 3, 4)

	t.Run("ShortDestination", func(t *testing.T) {
		dst := make([]float64, 3)
		assert.Equal(t, la.InvalidParameterError, b.MatrixToFloat64Buffer(dst, 2, obj))
		assert.Equal(t, []float64{0, 0, 0}, dst)
	})

	t.Run("ShortLeadingDimension", func(t *testing.T) {
		dst := make([]float64, 4)
		assert.Equal(t, la.InvalidParameterError, b.MatrixToFloat64Buffer(dst, 1, obj))
	})

	t.Run("WrongPrecision", func(t *testing.T) {
		dst := make([]float32, 4)
		assert.Equal(t, la.PrecisionMismatchError, b.MatrixToFloat32Buffer(dst, 2, obj))
	})

	t.Run("NilHandle", func(t *testing.T) {
		dst := make([]float64, 1)
		assert.Equal(t, la.InvalidParameterError, b.MatrixToFloat64Buffer(dst, 1, nil))
	})
}

func TestCPUBackend_Identity(t *testing.T) {
	b := newTestBackend()

	obj := b.IdentityMatrix(3, la.ScalarDouble, la.DefaultAttributes)
	got, status := export64(t, b, obj)
	require.Equal(t, la.Success, status)
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, got)

	assert.Equal(t, la.InvalidParameterError, b.Evaluate(b.IdentityMatrix(0, la.ScalarDouble, la.DefaultAttributes)))
}

func TestCPUBackend_DiagonalMatrixFromVector(t *testing.T) {
	b := newTestBackend()
	v := import64(b, 2, 1, 1, 2)

	tests := []struct {
		name     string
		index    la.Index
		size     la.Count
		expected []float64
	}{
		{"main", 0, 2, []float64{1, 0, 0, 2}},
		{"super", 1, 3, []float64{0, 1, 0, 0, 0, 2, 0, 0, 0}},
		{"sub", -1, 3, []float64{0, 0, 0, 1, 0, 0, 0, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := b.DiagonalMatrixFromVector(v, tt.index)
			assert.Equal(t, tt.size, obj.Rows())
			assert.Equal(t, tt.size, obj.Cols())

			got, status := export64(t, b, obj)
			require.Equal(t, la.Success, status)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("NotAVector", func(t *testing.T) {
		m := import64(b, 2, 2, 1, 2, 3, 4)
		assert.Equal(t, la.InvalidParameterError, b.Evaluate(b.DiagonalMatrixFromVector(m, 0)))
	})
}

func TestCPUBackend_Transpose(t *testing.T) {
	b := newTestBackend()
	obj := b.Transpose(import64(b, 2, 3, 1, 2, 3, 4, 5, 6))

	assert.Equal(t, la.Count(3), obj.Rows())
	assert.Equal(t, la.Count(2), obj.Cols())

	got, status := export64(t, b, obj)
	require.Equal(t, la.Success, status)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got)
}

func TestCPUBackend_MatrixSlice(t *testing.T) {
	b := newTestBackend()
	// 3×4
	m := import64(b, 3, 4,
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	)

	t.Run("Contiguous", func(t *testing.T) {
		got, status := export64(t, b, b.MatrixSlice(m, 1, 1, 1, 1, 2, 2))
		require.Equal(t, la.Success, status)
		assert.Equal(t, []float64{6, 7, 10, 11}, got)
	})

	t.Run("Strided", func(t *testing.T) {
		got, status := export64(t, b, b.MatrixSlice(m, 0, 0, 2, 3, 2, 2))
		require.Equal(t, la.Success, status)
		assert.Equal(t, []float64{1, 4, 9, 12}, got)
	})

	t.Run("NegativeStride", func(t *testing.T) {
		got, status := export64(t, b, b.MatrixSlice(m, 2, 3, -1, -1, 2, 2))
		require.Equal(t, la.Success, status)
		assert.Equal(t, []float64{12, 11, 8, 7}, got)
	})

	t.Run("OutOfBoundsIsDeferred", func(t *testing.T) {
		obj := b.MatrixSlice(m, 2, 0, 1, 1, 2, 1)
		assert.Equal(t, la.Count(2), obj.Rows())
		assert.Equal(t, la.SliceOutOfBoundsError, b.Evaluate(obj))
	})

	t.Run("ZeroStride", func(t *testing.T) {
		assert.Equal(t, la.InvalidParameterError, b.Evaluate(b.MatrixSlice(m, 0, 0, 0, 1, 1, 1)))
	})
}

func TestCPUBackend_Vectors(t *testing.T) {
	b := newTestBackend()
	m := import64(b, 2, 3, 1, 2, 3, 4, 5, 6)

	t.Run("Row", func(t *testing.T) {
		obj := b.VectorFromMatrixRow(m, 1)
		got, status := export64(t, b, obj)
		require.Equal(t, la.Success, status)
		assert.Equal(t, la.Count(1), obj.Rows())
		assert.Equal(t, []float64{4, 5, 6}, got)
	})

	t.Run("Col", func(t *testing.T) {
		obj := b.VectorFromMatrixCol(m, 2)
		got, status := export64(t, b, obj)
		require.Equal(t, la.Success, status)
		assert.Equal(t, la.Count(1), obj.Cols())
		assert.Equal(t, []float64{3, 6}, got)
	})

	t.Run("Diagonal", func(t *testing.T) {
		tests := []struct {
			index    la.Index
			expected []float64
		}{
			{0, []float64{1, 5}},
			{1, []float64{2, 6}},
			{2, []float64{3}},
			{-1, []float64{4}},
		}
		for _, tt := range tests {
			got, status := export64(t, b, b.VectorFromMatrixDiagonal(m, tt.index))
			require.Equal(t, la.Success, status, "index %d", tt.index)
			assert.Equal(t, tt.expected, got, "index %d", tt.index)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		assert.Equal(t, la.SliceOutOfBoundsError, b.Evaluate(b.VectorFromMatrixRow(m, 2)))
		assert.Equal(t, la.SliceOutOfBoundsError, b.Evaluate(b.VectorFromMatrixRow(m, -1)))
		assert.Equal(t, la.SliceOutOfBoundsError, b.Evaluate(b.VectorFromMatrixCol(m, 3)))
		assert.Equal(t, la.SliceOutOfBoundsError, b.Evaluate(b.VectorFromMatrixDiagonal(m, 3)))
		assert.Equal(t, la.SliceOutOfBoundsError, b.Evaluate(b.VectorFromMatrixDiagonal(m, -2)))
	})
}

func TestCPUBackend_NormalizedVector(t *testing.T) {
	b := newTestBackend()
	v := import64(b, 1, 2, 3, -4)

	tests := []struct {
		norm     la.Norm
		expected []float64
	}{
		{la.L1Norm, []float64{3.0 / 7, -4.0 / 7}},
		{la.L2Norm, []float64{0.6, -0.8}},
		{la.LInfNorm, []float64{0.75, -1}},
	}
	for _, tt := range tests {
		got, status := export64(t, b, b.NormalizedVector(v, tt.norm))
		require.Equal(t, la.Success, status)
		assert.InDeltaSlice(t, tt.expected, got, 1e-15)
	}

	t.Run("ZeroVector", func(t *testing.T) {
		got, status := export64(t, b, b.NormalizedVector(import64(b, 2, 1, 0, 0), la.L2Norm))
		assert.Equal(t, la.WarningPoorlyConditioned, status)
		assert.Equal(t, []float64{0, 0}, got)
	})

	t.Run("NotAVector", func(t *testing.T) {
		m := import64(b, 2, 2, 1, 2, 3, 4)
		assert.Equal(t, la.InvalidParameterError, b.Evaluate(b.NormalizedVector(m, la.L2Norm)))
	})

	t.Run("UnknownNorm", func(t *testing.T) {
		assert.Equal(t, la.InvalidParameterError, b.Evaluate(b.NormalizedVector(v, la.Norm(9))))
	})
}

func TestCPUBackend_Scale(t *testing.T) {
	b := newTestBackend()

	got, status := export64(t, b, b.ScaleWithFloat64(import64(b, 1, 3, 1, -2, 3), -2))
	require.Equal(t, la.Success, status)
	assert.Equal(t, []float64{-2, 4, -6}, got)

	f32 := b.MatrixFromFloat32Buffer([]float32{1, 2}, 1, 2, 2, la.NoHint, la.DefaultAttributes)
	dst := make([]float32, 2)
	require.Equal(t, la.Success, b.MatrixToFloat32Buffer(dst, 2, b.ScaleWithFloat32(f32, 0.5)))
	assert.Equal(t, []float32{0.5, 1}, dst)

	assert.Equal(t, la.PrecisionMismatchError, b.Evaluate(b.ScaleWithFloat32(import64(b, 1, 1, 1), 2)))
}

func TestCPUBackend_Binary(t *testing.T) {
	b := newTestBackend()
	x := import64(b, 2, 2, 1, 2, 3, 4)
	y := import64(b, 2, 2, 10, 20, 30, 40)

	tests := []struct {
		name     string
		obj      la.Object
		expected []float64
	}{
		{"Sum", b.Sum(x, y), []float64{11, 22, 33, 44}},
		{"Difference", b.Difference(y, x), []float64{9, 18, 27, 36}},
		{"ElementwiseProduct", b.ElementwiseProduct(x, y), []float64{10, 40, 90, 160}},
		{"MatrixProduct", b.MatrixProduct(x, y), []float64{70, 100, 150, 220}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, status := export64(t, b, tt.obj)
			require.Equal(t, la.Success, status)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("DimensionMismatch", func(t *testing.T) {
		z := import64(b, 1, 2, 1, 2)
		assert.Equal(t, la.DimensionMismatchError, b.Evaluate(b.Sum(x, z)))
		assert.Equal(t, la.DimensionMismatchError, b.Evaluate(b.Difference(x, z)))
		assert.Equal(t, la.DimensionMismatchError, b.Evaluate(b.ElementwiseProduct(x, z)))
		assert.Equal(t, la.DimensionMismatchError, b.Evaluate(b.MatrixProduct(x, z)))
	})

	t.Run("PrecisionMismatch", func(t *testing.T) {
		f32 := b.MatrixFromFloat32Buffer([]float32{1, 2, 3, 4}, 2, 2, 2, la.NoHint, la.DefaultAttributes)
		assert.Equal(t, la.PrecisionMismatchError, b.Evaluate(b.Sum(x, f32)))
	})
}

func TestCPUBackend_InnerOuterProduct(t *testing.T) {
	b := newTestBackend()
	row := import64(b, 1, 3, 1, 2, 3)
	col := import64(b, 3, 1, 4, 5, 6)

	got, status := export64(t, b, b.InnerProduct(row, col))
	require.Equal(t, la.Success, status)
	assert.Equal(t, []float64{32}, got)

	outer := b.OuterProduct(col, import64(b, 1, 2, 1, -1))
	assert.Equal(t, la.Count(3), outer.Rows())
	assert.Equal(t, la.Count(2), outer.Cols())
	got, status = export64(t, b, outer)
	require.Equal(t, la.Success, status)
	assert.Equal(t, []float64{4, -4, 5, -5, 6, -6}, got)

	m := import64(b, 2, 2, 1, 2, 3, 4)
	assert.Equal(t, la.InvalidParameterError, b.Evaluate(b.InnerProduct(m, row)))
	assert.Equal(t, la.InvalidParameterError, b.Evaluate(b.OuterProduct(row, m)))
	assert.Equal(t, la.DimensionMismatchError, b.Evaluate(b.InnerProduct(row, import64(b, 2, 1, 1, 2))))
}

func TestCPUBackend_MatrixProductHints(t *testing.T) {
	b := newTestBackend()
	rhs := import64(b, 3, 2, 1, 2, 3, 4, 5, 6)

	tests := []struct {
		name string
		hint la.Hint
		data []float64
	}{
		{"Diagonal", la.ShapeDiagonal, []float64{2, 0, 0, 0, 3, 0, 0, 0, 4}},
		{"Lower", la.ShapeLowerTriangular, []float64{1, 0, 0, 2, 3, 0, 4, 5, 6}},
		{"Upper", la.ShapeUpperTriangular, []float64{1, 2, 3, 0, 4, 5, 0, 0, 6}},
		{"Symmetric", la.FeatureSymmetric, []float64{1, 2, 3, 2, 4, 5, 3, 5, 6}},
		{"PositiveDefinite", la.FeaturePositiveDefinite, []float64{4, 1, 0, 1, 4, 1, 0, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hinted := b.MatrixFromFloat64Buffer(tt.data, 3, 3, 3, tt.hint, la.DefaultAttributes)
			plain := import64(b, 3, 3, tt.data...)

			want, status := export64(t, b, b.MatrixProduct(plain, rhs))
			require.Equal(t, la.Success, status)
			got, status := export64(t, b, b.MatrixProduct(hinted, rhs))
			require.Equal(t, la.Success, status)
			assert.InDeltaSlice(t, want, got, 1e-12)
		})
	}
}

func TestCPUBackend_Norm(t *testing.T) {
	b := newTestBackend()
	m := import64(b, 2, 2, 1, -2, 3, -4)

	tests := []struct {
		norm     la.Norm
		expected float64
	}{
		{la.L1Norm, 10},
		{la.L2Norm, math.Sqrt(30)},
		{la.LInfNorm, 4},
	}
	for _, tt := range tests {
		got, status := b.NormAsFloat64(m, tt.norm)
		require.Equal(t, la.Success, status)
		assert.InDelta(t, tt.expected, got, 1e-13)
	}

	got, status := b.NormAsFloat64(m, la.Norm(0))
	assert.Equal(t, la.InvalidParameterError, status)
	assert.True(t, math.IsNaN(got))

	f32, status := b.NormAsFloat32(b.MatrixFromFloat32Buffer([]float32{3, 4}, 1, 2, 2, la.NoHint, la.DefaultAttributes), la.L2Norm)
	require.Equal(t, la.Success, status)
	assert.InDelta(t, float32(5), f32, 1e-6)

	_, status = b.NormAsFloat32(m, la.L2Norm)
	assert.Equal(t, la.PrecisionMismatchError, status)
}

func TestCPUBackend_ErrorsPropagate(t *testing.T) {
	b := newTestBackend()
	m := import64(b, 2, 2, 1, 2, 3, 4)

	bad := b.VectorFromMatrixRow(m, 5)
	chain := b.ScaleWithFloat64(b.Transpose(b.Sum(bad, bad)), 2)

	assert.Equal(t, la.SliceOutOfBoundsError, b.Evaluate(chain))

	got, status := export64(t, b, chain)
	assert.Equal(t, la.SliceOutOfBoundsError, status)
	assert.Equal(t, []float64{0, 0}, got)
}

func TestCPUBackend_WarningsPropagate(t *testing.T) {
	b := newTestBackend()
	zero := b.NormalizedVector(import64(b, 2, 1, 0, 0), la.L2Norm)
	chain := b.Sum(zero, import64(b, 2, 1, 1, 1))

	got, status := export64(t, b, chain)
	assert.Equal(t, la.WarningPoorlyConditioned, status)
	assert.Equal(t, []float64{1, 1}, got)
}

func TestCPUBackend_AttributesPropagate(t *testing.T) {
	b := newTestBackend()
	logged := b.MatrixFromFloat64Buffer([]float64{1}, 1, 1, 1, la.NoHint, la.AttributeEnableLogging)
	plain := import64(b, 1, 1, 2)

	assert.Equal(t, la.AttributeEnableLogging, b.Sum(plain, logged).Attributes())
	assert.Equal(t, la.DefaultAttributes, b.Sum(plain, plain).Attributes())
}

func TestCPUBackend_Logging(t *testing.T) {
	var buf bytes.Buffer
	b := New(WithLogger(zerolog.New(&buf)), WithParallel(parallel.Sequential()))

	logged := b.MatrixFromFloat64Buffer([]float64{1, 2}, 1, 2, 2, la.NoHint, la.AttributeEnableLogging)
	require.Equal(t, la.Success, b.Evaluate(b.Transpose(logged)))

	out := buf.String()
	assert.Contains(t, out, `"op":"import"`)
	assert.Contains(t, out, `"op":"transpose"`)
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"message":"la: evaluated"`)

	buf.Reset()
	b.Evaluate(b.VectorFromMatrixRow(logged, 3))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"status":-1005`)

	buf.Reset()
	b.Evaluate(import64(b, 1, 1, 1))
	assert.Empty(t, buf.String())
}

func TestCPUBackend_ConcurrentEvaluate(t *testing.T) {
	b := New()
	m := b.MatrixProduct(import64(b, 2, 2, 1, 2, 3, 4), import64(b, 2, 2, 5, 6, 7, 8))

	var wg sync.WaitGroup
	results := make([][]float64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dst := make([]float64, 4)
			if b.MatrixToFloat64Buffer(dst, 2, m) == la.Success {
				results[i] = dst
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []float64{19, 22, 43, 50}, r)
	}
}

func TestCPUBackend_ParallelKernels(t *testing.T) {
	b := New(WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2}))

	const rows, cols = 16, 9
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i)
	}
	m := import64(b, rows, cols, data...)

	got, status := export64(t, b, b.Transpose(b.Transpose(m)))
	require.Equal(t, la.Success, status)
	assert.Equal(t, data, got)

	got, status = export64(t, b, b.ElementwiseProduct(m, m))
	require.Equal(t, la.Success, status)
	for i, v := range got {
		assert.Equal(t, data[i]*data[i], v)
	}
}
