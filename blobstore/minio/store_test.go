package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory bucket.
type fakeAPI struct {
	mu      sync.Mutex
	objects map[string][]byte
	ranges  []string
}

func newFakeAPI() *fakeAPI { return &fakeAPI{objects: make(map[string][]byte)} }

func noSuchKey() error {
	return minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
}

func (f *fakeAPI) StatObject(_ context.Context, _, key string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return minio.ObjectInfo{}, noSuchKey()
	}
	return minio.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, _, key string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, noSuchKey()
	}
	rng := opts.Header().Get("Range")
	f.ranges = append(f.ranges, rng)

	var start, end int
	if n, _ := fmt.Sscanf(rng, "bytes=%d-%d", &start, &end); n == 2 {
		data = data[start : end+1]
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeAPI) PutObject(_ context.Context, _, key string, r io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return minio.UploadInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeAPI) RemoveObject(_ context.Context, _, key string, _ minio.RemoveObjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return noSuchKey()
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeAPI) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan minio.ObjectInfo, len(f.objects))
	for key, data := range f.objects {
		if strings.HasPrefix(key, opts.Prefix) {
			ch <- minio.ObjectInfo{Key: key, Size: int64(len(data))}
		}
	}
	close(ch)
	return ch
}

func newTestStore(api objectAPI, optFns ...Option) *Store {
	return &Store{api: api, bucket: "icons", opts: applyOptions(optFns)}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := newTestStore(api, WithPrefix("pixel/"))

	_, err := s.Open(ctx, "icons/missing.bin")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, s.Put(ctx, "icons/a.bin", []byte("0123456789")))
	assert.Contains(t, api.objects, "pixel/icons/a.bin")

	b, err := s.Open(ctx, "icons/a.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.Size())

	buf := make([]byte, 6)
	n, err := b.ReadAt(ctx, buf, 6)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "6789", string(buf[:n]))
	assert.Equal(t, "bytes=6-9", api.ranges[len(api.ranges)-1])

	rc, err := b.ReadRange(ctx, 2, 3)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "234", string(got))

	w, err := s.Create(ctx, "icons/b.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Error(t, w.Close())

	all, err := blobstore.ReadAll(ctx, s, "icons/b.bin")
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(all))

	names, err := s.List(ctx, "icons/")
	require.NoError(t, err)
	assert.Equal(t, []string{"icons/a.bin", "icons/b.bin"}, names)

	require.NoError(t, s.Delete(ctx, "icons/a.bin"))
	require.NoError(t, s.Delete(ctx, "icons/a.bin"))
	_, err = s.Open(ctx, "icons/a.bin")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
