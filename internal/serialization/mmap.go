package serialization

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MmapReader provides memory-mapped read access to a .axm file.
// The header is parsed and validated on open; the data section is read
// from the OS page cache on demand.
//
// Important: Always call Close() when done to unmap the file (use defer).
type MmapReader struct {
	file   *os.File
	data   mmap.MMap // mapped region (read-only)
	header Header
	closed bool
}

// NewMmapReader creates a memory-mapped reader for a .axm file.
func NewMmapReader(path string) (*MmapReader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for matrix loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() < HeaderSize {
		_ = file.Close()
		return nil, &ValidationError{Path: path, Field: "size", Err: ErrSizeMismatch,
			Details: fmt.Sprintf("file too small: %d bytes (minimum %d bytes required)", stat.Size(), HeaderSize)}
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	r := &MmapReader{file: file, data: data}
	r.header, err = parseHeader(data, stat.Size())
	if err != nil {
		_ = r.Close()
		if verr, ok := err.(*ValidationError); ok {
			verr.Path = path
		}
		return nil, err
	}

	return r, nil
}

// Header returns the file header.
func (r *MmapReader) Header() Header {
	return r.header
}

// Data returns the mapped data section. The slice is valid until Close.
func (r *MmapReader) Data() ([]byte, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}
	return r.data[HeaderSize:], nil
}

// Verify checks the data section against the header checksum.
func (r *MmapReader) Verify() error {
	data, err := r.Data()
	if err != nil {
		return err
	}
	return ValidateChecksum(data, r.header.Checksum)
}

// Close unmaps and closes the file.
func (r *MmapReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.data != nil {
		err = r.data.Unmap()
		r.data = nil
	}

	if closeErr := r.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
