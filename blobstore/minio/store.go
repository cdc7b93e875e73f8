package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/hupe1980/launcherkit/resource"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectAPI is the part of *minio.Client the store uses.
type objectAPI interface {
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

type clientAPI struct {
	*minio.Client
}

func (c clientAPI) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucket, key, opts)
}

type options struct {
	prefix string
	creds  *credentials.Credentials
	secure bool
	region string
	rc     *resource.Controller
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithStaticCredentials sets access keys for New.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(o *options) { o.creds = credentials.NewStaticV4(accessKey, secretKey, "") }
}

// WithTLS makes New connect over HTTPS.
func WithTLS() Option {
	return func(o *options) { o.secure = true }
}

// WithRegion sets the bucket region for New.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithResourceController rate-limits uploads with rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func applyOptions(optFns []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Store implements blobstore.BlobStore on a MinIO bucket.
type Store struct {
	api    objectAPI
	bucket string
	opts   options
}

var _ blobstore.BlobStore = (*Store)(nil)

// New connects to endpoint and returns a store for bucket. Without
// WithStaticCredentials the environment's MINIO_/AWS_ keys are used.
func New(endpoint, bucket string, optFns ...Option) (*Store, error) {
	o := applyOptions(optFns)
	creds := o.creds
	if creds == nil {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvMinio{},
			&credentials.EnvAWS{},
		})
	}
	client, err := minio.New(endpoint, &minio.Options{Creds: creds, Secure: o.secure, Region: o.region})
	if err != nil {
		return nil, fmt.Errorf("minio: connect %s: %w", endpoint, err)
	}
	return &Store{api: clientAPI{client}, bucket: bucket, opts: o}, nil
}

// NewStore returns a store using an existing client.
func NewStore(client *minio.Client, bucket string, optFns ...Option) *Store {
	return &Store{api: clientAPI{client}, bucket: bucket, opts: applyOptions(optFns)}
}

func (s *Store) key(name string) string {
	return path.Join(s.opts.prefix, name)
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

// Open implements blobstore.BlobStore.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	info, err := s.api.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("minio: stat %s: %w", name, err)
	}
	return &blob{api: s.api, bucket: s.bucket, key: key, size: info.Size}, nil
}

// Put implements blobstore.BlobStore.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.put(ctx, name, bytes.NewReader(data), int64(len(data)))
}

func (s *Store) put(ctx context.Context, name string, r io.Reader, size int64) error {
	body := resource.NewRateLimitedReader(ctx, r, s.opts.rc)
	if _, err := s.api.PutObject(ctx, s.bucket, s.key(name), body, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	}); err != nil {
		s.opts.logger.Error("minio upload failed", "bucket", s.bucket, "name", name, "error", err)
		return fmt.Errorf("minio: put %s: %w", name, err)
	}
	return nil
}

// Create implements blobstore.BlobStore. The object is uploaded as a stream
// of unknown length and exists once Close returns.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	pr, pw := io.Pipe()
	w := &writableBlob{pw: pw, done: make(chan error, 1)}
	go func() {
		err := s.put(ctx, name, pr, -1)
		_ = pr.CloseWithError(err)
		w.done <- err
	}()
	return w, nil
}

// Delete implements blobstore.BlobStore.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.api.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("minio: remove %s: %w", name, err)
	}
	return nil
}

// List implements blobstore.BlobStore.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	root := strings.TrimSuffix(s.opts.prefix, "/")
	full := prefix
	if root != "" {
		full = root + "/" + prefix
	}

	var names []string
	for obj := range s.api.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: full, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio: list %s: %w", prefix, obj.Err)
		}
		name := obj.Key
		if root != "" {
			name = strings.TrimPrefix(name, root+"/")
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

type blob struct {
	api    objectAPI
	bucket string
	key    string
	size   int64
}

func (b *blob) Size() int64 { return b.size }

func (b *blob) Close() error { return nil }

func (b *blob) get(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	var opts minio.GetObjectOptions
	if err := opts.SetRange(off, min(off+length, b.size)-1); err != nil {
		return nil, err
	}
	return b.api.GetObject(ctx, b.bucket, b.key, opts)
}

func (b *blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off >= b.size {
		return 0, io.EOF
	}
	rc, err := b.get(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()

	want := min(int64(len(p)), b.size-off)
	n, err := io.ReadFull(rc, p[:want])
	if err != nil {
		return n, err
	}
	if want < int64(len(p)) {
		return n, io.EOF
	}
	return n, nil
}

func (b *blob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= b.size || length <= 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return b.get(ctx, off, length)
}

type writableBlob struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (w *writableBlob) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return w.pw.Write(p)
}

func (w *writableBlob) Sync() error { return nil }

func (w *writableBlob) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return errors.New("minio: blob already closed")
	}
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
