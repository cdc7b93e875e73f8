package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/hupe1980/launcherkit/resource"
)

// Store implements blobstore.BlobStore on an S3 bucket.
type Store struct {
	client   Client
	uploader *manager.Uploader
	bucket   string
	opts     options
}

var _ blobstore.BlobStore = (*Store)(nil)

// New loads the default AWS configuration and returns a store for bucket.
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	o := applyOptions(optFns)

	var cfgOpts []func(*config.LoadOptions) error
	if o.region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(o.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = aws.String(o.endpoint)
		}
		so.UsePathStyle = o.pathStyle
	})
	return newStore(client, bucket, o), nil
}

// NewStore returns a store using an existing client.
func NewStore(client Client, bucket string, optFns ...Option) *Store {
	return newStore(client, bucket, applyOptions(optFns))
}

func newStore(client Client, bucket string, o options) *Store {
	return &Store{
		client: client,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = max(o.upload.PartSize, manager.MinUploadPartSize)
			u.Concurrency = max(o.upload.Concurrency, 1)
		}),
		bucket: bucket,
		opts:   o,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.opts.prefix, name)
}

// Open implements blobstore.BlobStore.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &blob{client: s.client, bucket: s.bucket, key: key, size: aws.ToInt64(head.ContentLength)}, nil
}

// Create implements blobstore.BlobStore. The upload streams through a pipe
// and completes on Close.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	pr, pw := io.Pipe()
	w := &writableBlob{pw: pw, done: make(chan error, 1)}

	go func() {
		err := s.upload(ctx, name, pr)
		_ = pr.CloseWithError(err)
		w.done <- err
	}()
	return w, nil
}

// Put implements blobstore.BlobStore.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.upload(ctx, name, bytes.NewReader(data))
}

func (s *Store) upload(ctx context.Context, name string, body io.Reader) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   resource.NewRateLimitedReader(ctx, body, s.opts.rc),
	}
	if s.opts.upload.Checksum {
		in.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		s.opts.logger.Error("s3 upload failed", "bucket", s.bucket, "name", name, "error", err)
		return fmt.Errorf("s3: upload %s: %w", name, err)
	}
	return nil
}

// Delete implements blobstore.BlobStore.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err = translateError(err); errors.Is(err, blobstore.ErrNotFound) {
		return nil
	}
	return err
}

// List implements blobstore.BlobStore.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	root := strings.TrimSuffix(s.opts.prefix, "/")
	full := prefix
	if root != "" {
		full = root + "/" + prefix
	}

	var names []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(full),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3: list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			name := aws.ToString(obj.Key)
			if root != "" {
				name = strings.TrimPrefix(name, root+"/")
			}
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	if errors.As(err, &nf) || errors.As(err, &nsk) {
		return blobstore.ErrNotFound
	}
	return err
}

type blob struct {
	client Client
	bucket string
	key    string
	size   int64
}

func (b *blob) Close() error { return nil }

func (b *blob) Size() int64 { return b.size }

func (b *blob) get(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	end := min(off+length, b.size) - 1
	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return nil, translateError(err)
	}
	return resp.Body, nil
}

func (b *blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off >= b.size {
		return 0, io.EOF
	}
	body, err := b.get(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	want := min(int64(len(p)), b.size-off)
	n, err := io.ReadFull(body, p[:want])
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

// Sync is a no-op. The object exists once Close returns.
func (w *writableBlob) Sync() error { return nil }

func (w *writableBlob) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return io.ErrClosedPipe
	}
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
