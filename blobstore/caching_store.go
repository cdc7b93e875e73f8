package blobstore

import (
	"context"
	"errors"
	"io"

	"github.com/hupe1980/launcherkit/internal/cache"
	"github.com/hupe1980/launcherkit/resource"
	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the CachingStore block size when none is given.
const DefaultBlockSize = 16 << 10

// maxParallelFetches bounds the backend reads one ReadAt issues.
const maxParallelFetches = 8

type blockKey struct {
	name  string
	block int64
}

// CachingStore puts a block cache in front of a slower store such as S3.
// Writes and deletes pass through and drop the cached blocks of that name.
type CachingStore struct {
	inner     BlobStore
	blocks    *cache.LRU[blockKey, []byte]
	blockSize int64
}

// NewCachingStore wraps inner with a cache of capacity bytes. rc may be nil.
func NewCachingStore(inner BlobStore, capacity, blockSize int64, rc *resource.Controller) *CachingStore {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &CachingStore{
		inner:     inner,
		blocks:    cache.NewBytes[blockKey](capacity, rc),
		blockSize: blockSize,
	}
}

// Stats returns block cache hits and misses.
func (s *CachingStore) Stats() (hits, misses int64) { return s.blocks.Stats() }

// Open implements BlobStore.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachingBlob{inner: b, store: s, name: name}, nil
}

// Create implements BlobStore.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.invalidate(name)
	return s.inner.Create(ctx, name)
}

// Put implements BlobStore.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Delete implements BlobStore.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List implements BlobStore.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// CommitVersion implements Committer when the wrapped store does.
func (s *CachingStore) CommitVersion(ctx context.Context, version uint64, target string) error {
	s.invalidate(CurrentName)
	if c, ok := s.inner.(Committer); ok {
		return c.CommitVersion(ctx, version, target)
	}
	return s.inner.Put(ctx, CurrentName, []byte(target))
}

func (s *CachingStore) invalidate(name string) {
	s.blocks.Invalidate(func(k blockKey) bool { return k.name == name })
}

type cachingBlob struct {
	inner Blob
	store *CachingStore
	name  string
}

func (b *cachingBlob) Close() error { return b.inner.Close() }

func (b *cachingBlob) Size() int64 { return b.inner.Size() }

func (b *cachingBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	return io.NopCloser(io.NewSectionReader(ctxReaderAt{ctx: ctx, b: b}, off, length)), nil
}

func (b *cachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	size := b.Size()
	if off >= size {
		return 0, io.EOF
	}

	bs := b.store.blockSize
	end := min(off+int64(len(p)), size)
	first, last := off/bs, (end-1)/bs

	blocks, err := b.fetch(ctx, first, last)
	if err != nil {
		return 0, err
	}

	n := 0
	for i, data := range blocks {
		blkStart := (first + int64(i)) * bs
		from := max(off, blkStart) - blkStart
		if from >= int64(len(data)) {
			break
		}
		n += copy(p[n:], data[from:])
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// fetch returns blocks [first, last], reading contiguous missing runs from
// the inner blob in parallel.
func (b *cachingBlob) fetch(ctx context.Context, first, last int64) ([][]byte, error) {
	blocks := make([][]byte, last-first+1)

	type run struct{ start, count int64 }
	var missing []run
	for blk := first; blk <= last; blk++ {
		if data, ok := b.store.blocks.Get(blockKey{b.name, blk}); ok {
			blocks[blk-first] = data
			continue
		}
		if n := len(missing); n > 0 && missing[n-1].start+missing[n-1].count == blk {
			missing[n-1].count++
		} else {
			missing = append(missing, run{blk, 1})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	bs, size := b.store.blockSize, b.Size()
	for _, r := range missing {
		g.Go(func() error {
			start := r.start * bs
			buf := make([]byte, min(r.count*bs, size-start))
			n, err := b.inner.ReadAt(gctx, buf, start)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			buf = buf[:n]
			for i := int64(0); i < r.count && i*bs < int64(len(buf)); i++ {
				// Copy so a cached block does not pin the whole run.
				data := append([]byte(nil), buf[i*bs:min((i+1)*bs, int64(len(buf)))]...)
				blocks[r.start-first+i] = data
				b.store.blocks.Set(blockKey{b.name, r.start + i}, data)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

type ctxReaderAt struct {
	ctx context.Context
	b   Blob
}

func (r ctxReaderAt) ReadAt(p []byte, off int64) (int, error) { return r.b.ReadAt(r.ctx, p, off) }
