package serialization

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/axle/internal/la"
	"github.com/born-ml/axle/internal/matrix"
)

// Format constants.
const (
	MagicBytes     = "AXLM"
	FormatVersion  = 1
	HeaderSize     = 64   // Fixed header size (0x40 bytes)
	ChecksumSize   = 32   // SHA-256 checksum size
	ChecksumOffset = 0x20 // Checksum offset in the header
)

// Header describes the matrix stored in a .axm file.
type Header struct {
	Version    uint16
	ScalarType la.ScalarType
	Rows       uint64
	Cols       uint64
	Flags      uint64
	Checksum   [ChecksumSize]byte
}

// Elements returns the element count.
func (h Header) Elements() uint64 {
	return h.Rows * h.Cols
}

// DataSize returns the byte size of the data section.
func (h Header) DataSize() uint64 {
	return h.Elements() * uint64(h.ScalarType.Size())
}

// marshal writes h into dst[:HeaderSize].
func (h Header) marshal(dst []byte) {
	copy(dst[0:4], MagicBytes)
	binary.LittleEndian.PutUint16(dst[4:6], h.Version)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(h.ScalarType)) //nolint:gosec // G115: two known scalar types
	binary.LittleEndian.PutUint64(dst[8:16], h.Rows)
	binary.LittleEndian.PutUint64(dst[16:24], h.Cols)
	binary.LittleEndian.PutUint64(dst[24:32], h.Flags)
	copy(dst[ChecksumOffset:ChecksumOffset+ChecksumSize], h.Checksum[:])
}

// parseHeader decodes and validates the header of a fileSize-byte file.
func parseHeader(src []byte, fileSize int64) (Header, error) {
	var h Header
	if fileSize < HeaderSize || len(src) < HeaderSize {
		return h, &ValidationError{Field: "size", Err: ErrSizeMismatch,
			Details: fmt.Sprintf("file too small: %d bytes (minimum %d bytes required)", fileSize, HeaderSize)}
	}

	if string(src[0:4]) != MagicBytes {
		return h, &ValidationError{Field: "magic", Err: ErrInvalidMagic, Details: fmt.Sprintf("got %q", src[0:4])}
	}

	h.Version = binary.LittleEndian.Uint16(src[4:6])
	if h.Version != FormatVersion {
		return h, &ValidationError{Field: "version", Err: ErrUnsupportedVersion,
			Details: fmt.Sprintf("got %d, expected %d", h.Version, FormatVersion)}
	}

	h.ScalarType = la.ScalarType(binary.LittleEndian.Uint16(src[6:8]))
	if h.ScalarType != la.ScalarFloat && h.ScalarType != la.ScalarDouble {
		return h, &ValidationError{Field: "scalar_type", Err: ErrUnknownScalarType, Details: fmt.Sprintf("got %d", h.ScalarType)}
	}

	h.Rows = binary.LittleEndian.Uint64(src[8:16])
	h.Cols = binary.LittleEndian.Uint64(src[16:24])
	if h.Rows == 0 || h.Cols == 0 || h.Rows > math.MaxInt32 || h.Cols > math.MaxInt32 {
		return h, &ValidationError{Field: "shape", Err: ErrInvalidShape, Details: fmt.Sprintf("%d×%d", h.Rows, h.Cols)}
	}

	h.Flags = binary.LittleEndian.Uint64(src[24:32])
	copy(h.Checksum[:], src[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if want := HeaderSize + h.DataSize(); uint64(fileSize) != want { //nolint:gosec // G115: fileSize >= HeaderSize
		return h, &ValidationError{Field: "size", Err: ErrSizeMismatch,
			Details: fmt.Sprintf("got %d bytes, expected %d", fileSize, want)}
	}
	return h, nil
}

// scalarTypeOf returns the scalar type tag of T.
func scalarTypeOf[T matrix.Element]() la.ScalarType {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return la.ScalarFloat
	}
	return la.ScalarDouble
}

// encodeElements writes elements little endian into dst.
func encodeElements[T matrix.Element](dst []byte, elements []T) {
	switch src := any(elements).(type) {
	case []float32:
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
		}
	case []float64:
		for i, v := range src {
			binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(v))
		}
	}
}

// decodeElements reads len(dst) little-endian elements from src.
func decodeElements[T matrix.Element](dst []T, src []byte) {
	switch out := any(dst).(type) {
	case []float32:
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
		}
	case []float64:
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
		}
	}
}
