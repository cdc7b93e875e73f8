package launcherkit

import (
	"log/slog"

	"github.com/hupe1980/launcherkit/codec"
	"github.com/hupe1980/launcherkit/iconcache"
	"github.com/hupe1980/launcherkit/icons"
	"github.com/hupe1980/launcherkit/resource"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	resources        icons.Resources
	rc               *resource.Controller
	blockCacheBytes  int64
	iconCacheOptions []iconcache.Option
}

// Option configures Open.
type Option func(*options)

// WithCodec sets the codec of the icon cache manifests.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
//	metrics := &launcherkit.BasicMetricsCollector{}
//	kit, _ := launcherkit.Open(ctx, launcherkit.Memory(), launcherkit.WithMetricsCollector(metrics))
//	// ... use kit ...
//	fmt.Println(metrics.GetStats().IconHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel is shorthand for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResources sets the drawables and alpha used by LoadIcon.
// The default is icons.DefaultResources().
func WithResources(res icons.Resources) Option {
	return func(o *options) {
		o.resources = res
	}
}

// WithResourceController shares rc between the icon cache and the block cache.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithMemoryLimit is shorthand for a resource controller with only a memory
// budget.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.rc = resource.NewController(resource.Config{MemoryLimitBytes: bytes})
	}
}

// WithBlockCache keeps up to bytes of a Remote backend's blocks in memory.
// It has no effect on Local and Memory backends.
func WithBlockCache(bytes int64) Option {
	return func(o *options) {
		o.blockCacheBytes = bytes
	}
}

// WithIconCacheOptions passes optFns through to iconcache.Open.
func WithIconCacheOptions(optFns ...iconcache.Option) Option {
	return func(o *options) {
		o.iconCacheOptions = append(o.iconCacheOptions, optFns...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.resources == nil {
		o.resources = icons.DefaultResources()
	}
	return o
}
