package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist. It is os.ErrNotExist so
// that file-system errors match without translation.
var ErrNotFound = os.ErrNotExist

// ErrConcurrentModification is returned by Committer when another writer
// already committed the requested version.
var ErrConcurrentModification = errors.New("blobstore: concurrent modification detected")

// CurrentName is the blob naming the live manifest.
const CurrentName = "CURRENT"

// BlobStore reads and writes named blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create opens a blob for streaming writes. It becomes visible on Close.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes at off, with io.ReaderAt semantics.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the blob length in bytes.
	Size() int64
	// ReadRange streams length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.WriteCloser
	// Sync flushes buffered data to durable storage where supported.
	Sync() error
}

// Mappable is implemented by blobs that expose their bytes without copying.
type Mappable interface {
	// Bytes returns the blob contents, valid until the blob is closed.
	Bytes() ([]byte, error)
}

// Committer is implemented by stores that commit the CURRENT pointer with
// compare-and-swap semantics. version must be exactly one past the last
// committed version, otherwise ErrConcurrentModification is returned.
type Committer interface {
	CommitVersion(ctx context.Context, version uint64, target string) error
}

// ReadAll opens name and returns a copy of its contents.
func ReadAll(ctx context.Context, s BlobStore, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	}

	buf := make([]byte, b.Size())
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		return nil, fmt.Errorf("blobstore: read %s: %w", name, err)
	}
	if n != len(buf) {
		return nil, fmt.Errorf("blobstore: read %s: short read %d of %d", name, n, len(buf))
	}
	return buf, nil
}

// bytesBlob serves a blob from a byte slice.
type bytesBlob struct {
	data []byte
}

func (b *bytesBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, fmt.Errorf("blobstore: negative offset %d", off)
	}
	if off >= int64(len(b.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *bytesBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	return io.NopCloser(io.NewSectionReader(bytesReaderAt(b.data), off, length)), nil
}

func (b *bytesBlob) Size() int64 { return int64(len(b.data)) }

func (b *bytesBlob) Bytes() ([]byte, error) { return b.data, nil }

func (b *bytesBlob) Close() error { return nil }

type bytesReaderAt []byte

func (r bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r)) {
		return 0, io.EOF
	}
	n := copy(p, r[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// NewBytesBlob returns a Blob serving data. Stores use it for small blobs
// materialized in memory.
func NewBytesBlob(data []byte) Blob {
	return &bytesBlob{data: data}
}
