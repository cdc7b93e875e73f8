package s3

import (
	"log/slog"

	"github.com/hupe1980/launcherkit/resource"
)

// UploadConfig tunes the multipart uploader.
type UploadConfig struct {
	// PartSize is the multipart part size. Icons rarely exceed one part.
	PartSize int64
	// Concurrency is the number of parts uploaded in parallel.
	Concurrency int
	// Checksum asks S3 to verify a CRC32C of every upload.
	Checksum bool
}

// DefaultUploadConfig returns the settings used when none are given.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    5 << 20,
		Concurrency: 3,
		Checksum:    true,
	}
}

type options struct {
	prefix    string
	region    string
	endpoint  string
	pathStyle bool
	upload    UploadConfig
	rc        *resource.Controller
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion sets the AWS region used by New.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points New at a custom endpoint, such as LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithPathStyle enables path-style addressing in New.
func WithPathStyle() Option {
	return func(o *options) { o.pathStyle = true }
}

// WithUploadConfig overrides DefaultUploadConfig.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(o *options) { o.upload = cfg }
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
	o := options{
		upload: DefaultUploadConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
