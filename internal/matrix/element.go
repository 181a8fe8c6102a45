package matrix

import "github.com/born-ml/axle/internal/la"

// Element is the set of element types a Matrix can hold. Any other type
// fails to instantiate Matrix at compile time.
type Element interface {
	float32 | float64
}

// capability binds an element type to the engine entry points of its
// precision. It is resolved once when a Matrix is built from raw data and
// shared by every Matrix derived from it.
type capability[T Element] struct {
	engine la.Engine
	scalar la.ScalarType

	fromBuffer func(buf []T, rows, cols, ld la.Count, hint la.Hint, attr la.Attribute) la.Object
	toBuffer   func(dst []T, ld la.Count, obj la.Object) la.Status
	norm       func(obj la.Object, norm la.Norm) (T, la.Status)
	scale      func(obj la.Object, scalar T) la.Object
}

// capabilityOf resolves the entry points of T on engine.
func capabilityOf[T Element](engine la.Engine) *capability[T] {
	var zero T
	switch any(zero).(type) {
	case float32:
		c := &capability[float32]{
			engine:     engine,
			scalar:     la.ScalarFloat,
			fromBuffer: engine.MatrixFromFloat32Buffer,
			toBuffer:   engine.MatrixToFloat32Buffer,
			norm:       engine.NormAsFloat32,
			scale:      engine.ScaleWithFloat32,
		}
		return any(c).(*capability[T])
	case float64:
		c := &capability[float64]{
			engine:     engine,
			scalar:     la.ScalarDouble,
			fromBuffer: engine.MatrixFromFloat64Buffer,
			toBuffer:   engine.MatrixToFloat64Buffer,
			norm:       engine.NormAsFloat64,
			scale:      engine.ScaleWithFloat64,
		}
		return any(c).(*capability[T])
	default:
		panic("matrix: unsupported element type")
	}
}
