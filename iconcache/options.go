package iconcache

import (
	"log/slog"

	"github.com/hupe1980/launcherkit/codec"
	"github.com/hupe1980/launcherkit/internal/compress"
	"github.com/hupe1980/launcherkit/resource"
)

const (
	// DefaultMemoryCapacity is the decoded-icon LRU budget.
	DefaultMemoryCapacity = 32 << 20
	// DefaultRetainManifests is how many committed manifests are kept.
	DefaultRetainManifests = 2
)

type options struct {
	codec           codec.Codec
	compression     compress.Type
	memoryCapacity  int64
	retainManifests int
	hardware        bool
	rc              *resource.Controller
	logger          *slog.Logger
}

// Option configures a Cache.
type Option func(*options)

// WithCodec sets the manifest codec. Both built-in codecs read each
// other's output.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithCompression sets the compression of icon blobs. The default is LZ4.
func WithCompression(t compress.Type) Option {
	return func(o *options) { o.compression = t }
}

// WithMemoryCapacity sets the decoded-icon LRU budget in bytes.
func WithMemoryCapacity(bytes int64) Option {
	return func(o *options) { o.memoryCapacity = bytes }
}

// WithRetainManifests keeps the last n manifests on Commit. n < 1 keeps only
// the live one.
func WithRetainManifests(n int) Option {
	return func(o *options) { o.retainManifests = n }
}

// WithHardwareBitmaps decodes icons to *image.NRGBA.
func WithHardwareBitmaps() Option {
	return func(o *options) { o.hardware = true }
}

// WithResourceController charges LRU memory, fetch concurrency and blob IO
// to rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// WithLogger sets the cache logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:           codec.Default,
		compression:     compress.TypeLZ4,
		memoryCapacity:  DefaultMemoryCapacity,
		retainManifests: DefaultRetainManifests,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	o.retainManifests = max(o.retainManifests, 1)
	return o
}
