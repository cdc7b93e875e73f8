package mmap

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrClosed is returned when reading a closed mapping.
var ErrClosed = errors.New("mmap: mapping is closed")

// File is a read-only mapping of a whole file. Empty files are not mapped.
type File struct {
	data   []byte
	f      *os.File
	closed bool
}

// Open maps the file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	if size < 0 || int64(int(size)) != size {
		_ = f.Close()
		return nil, fmt.Errorf("mmap: invalid size %d for %s", size, path)
	}

	data, err := mmap(f, int(size))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}
	return &File{data: data, f: f}, nil
}

// Len returns the mapped length.
func (m *File) Len() int { return len(m.data) }

// Bytes returns the mapping. The slice is invalid after Close.
func (m *File) Bytes() []byte { return m.data }

// ReadAt implements io.ReaderAt.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, fmt.Errorf("mmap: negative offset %d", off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the file and closes it. Closing twice is a no-op.
func (m *File) Close() error {
	if m == nil || m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.data != nil {
		err = munmap(m.data)
		m.data = nil
	}
	if cerr := m.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
