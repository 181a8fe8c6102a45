package serialization

import (
	"fmt"

	"github.com/born-ml/axle/internal/la"
	"github.com/born-ml/axle/internal/matrix"
)

// Stat reads and validates the header of a .axm file without decoding
// its data.
func Stat(path string) (Header, error) {
	r, err := NewMmapReader(path)
	if err != nil {
		return Header{}, err
	}
	defer func() { _ = r.Close() }()
	return r.Header(), nil
}

// Read loads a matrix of element type T from a .axm file. The checksum is
// verified before the data is handed to the engine.
func Read[T matrix.Element](path string, opts ...matrix.Option) (*matrix.Matrix[T], error) {
	r, err := NewMmapReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return LoadMatrix[T](r, opts...)
}

// LoadMatrix decodes the matrix of an open reader.
func LoadMatrix[T matrix.Element](r *MmapReader, opts ...matrix.Option) (*matrix.Matrix[T], error) {
	h := r.Header()
	if want := scalarTypeOf[T](); h.ScalarType != want {
		return nil, fmt.Errorf("%w: file holds %s, requested %s", ErrScalarTypeMismatch, h.ScalarType, want)
	}

	if err := r.Verify(); err != nil {
		return nil, err
	}
	data, err := r.Data()
	if err != nil {
		return nil, err
	}

	elements := make([]T, h.Elements())
	decodeElements(elements, data)
	return matrix.New(elements, int(h.Rows), int(h.Cols), opts...), nil //nolint:gosec // G115: shape validated by parseHeader
}

// ScalarTypeOf reports the element type stored in a .axm file.
func ScalarTypeOf(path string) (la.ScalarType, error) {
	h, err := Stat(path)
	if err != nil {
		return 0, err
	}
	return h.ScalarType, nil
}
