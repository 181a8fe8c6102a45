package serialization

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/born-ml/axle/internal/matrix"
)

// Write materializes m and stores it at path, replacing any existing file.
// A matrix whose evaluation fails is not written.
func Write[T matrix.Element](path string, m *matrix.Matrix[T]) (err error) {
	elements, status := m.Elements()
	if status.IsError() {
		return fmt.Errorf("%w: %w", ErrMatrixNotMaterialized, status.Err())
	}

	h := Header{
		Version:    FormatVersion,
		ScalarType: scalarTypeOf[T](),
		Rows:       uint64(m.Rows()), //nolint:gosec // G115: rows >= 1
		Cols:       uint64(m.Cols()), //nolint:gosec // G115: cols >= 1
	}
	size := HeaderSize + int64(h.DataSize()) //nolint:gosec // G115: bounded by allocated elements

	//nolint:gosec // G304: File path comes from user input, which is expected for matrix saving
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if err := file.Truncate(size); err != nil {
		return fmt.Errorf("failed to size file: %w", err)
	}

	region, err := mmap.Map(file, mmap.RDWR, 0)
	if err != nil {
		return fmt.Errorf("mmap failed: %w", err)
	}
	defer func() {
		if unmapErr := region.Unmap(); unmapErr != nil && err == nil {
			err = fmt.Errorf("failed to unmap file: %w", unmapErr)
		}
	}()

	encodeElements(region[HeaderSize:], elements)
	h.Checksum = ComputeChecksum(region[HeaderSize:])
	h.marshal(region[:HeaderSize])

	if err := region.Flush(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}
	return nil
}
