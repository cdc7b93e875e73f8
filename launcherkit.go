package launcherkit

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/hupe1980/launcherkit/iconcache"
	"github.com/hupe1980/launcherkit/icons"
	"github.com/hupe1980/launcherkit/search"
)

// Backend selects where icons are persisted.
type Backend struct {
	dir    string
	store  blobstore.BlobStore
	remote bool
}

// Local persists icons below dir.
func Local(dir string) Backend {
	return Backend{dir: dir}
}

// Remote persists icons in store, for example an s3 or minio store.
// WithBlockCache puts an in-memory block cache in front of it.
func Remote(store blobstore.BlobStore) Backend {
	return Backend{store: store, remote: true}
}

// Memory keeps icons in memory only.
func Memory() Backend {
	return Backend{store: blobstore.NewMemoryStore()}
}

func (b Backend) open(o options) blobstore.BlobStore {
	switch {
	case b.dir != "":
		return blobstore.NewLocalStore(b.dir)
	case b.store == nil:
		return blobstore.NewMemoryStore()
	case b.remote && o.blockCacheBytes > 0:
		return blobstore.NewCachingStore(b.store, o.blockCacheBytes, blobstore.DefaultBlockSize, o.rc)
	default:
		return b.store
	}
}

// Kit bundles the search merge processor and the persistent icon cache.
// It is safe for concurrent use.
type Kit struct {
	store     blobstore.BlobStore
	icons     *iconcache.Cache
	resources icons.Resources
	metrics   MetricsCollector
	logger    *Logger
	closed    atomic.Bool
}

// Open opens the icon cache persisted in backend.
func Open(ctx context.Context, backend Backend, optFns ...Option) (*Kit, error) {
	o := applyOptions(optFns)
	store := backend.open(o)

	cacheOpts := append([]iconcache.Option{
		iconcache.WithCodec(o.codec),
		iconcache.WithResourceController(o.rc),
		iconcache.WithLogger(o.logger.Logger),
	}, o.iconCacheOptions...)

	c, err := iconcache.Open(ctx, store, cacheOpts...)
	if err != nil {
		return nil, translateError(err)
	}

	return &Kit{
		store:     store,
		icons:     c,
		resources: o.resources,
		metrics:   o.metricsCollector,
		logger:    o.logger,
	}, nil
}

type observerFunc func(search.MergeStats)

func (f observerFunc) ObserveMerge(stats search.MergeStats) { f(stats) }

// MergeResults splices web into device. See search.Processor.Merge.
func (k *Kit) MergeResults(ctx context.Context, web, device []*search.Target, opts search.MergeOptions) []*search.Target {
	start := time.Now()

	var stats search.MergeStats
	p := search.NewProcessor(
		search.WithLogger(k.logger.Logger),
		search.WithObserver(observerFunc(func(s search.MergeStats) { stats = s })),
	)
	out := p.Merge(web, device, opts)

	d := time.Since(start)
	k.metrics.RecordMerge(stats, d)
	k.logger.LogMerge(ctx, stats, d)
	return out
}

// StoreIcon records info for key. Nil and low-res infos are kept as
// placeholders that load as icons.LowResInfo.
func (k *Kit) StoreIcon(ctx context.Context, key iconcache.ComponentKey, info *icons.BitmapInfo, label string) error {
	if k.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := translateError(k.icons.Put(ctx, key, info, label))
	k.metrics.RecordIconStore(time.Since(start), err)
	k.logger.LogIconStore(ctx, key, err)
	return err
}

// RemoveIcon deletes key from the cache.
func (k *Kit) RemoveIcon(ctx context.Context, key iconcache.ComponentKey) error {
	if k.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := translateError(k.icons.Remove(ctx, key))
	k.metrics.RecordIconStore(time.Since(start), err)
	return err
}

// LoadIconInfo returns the stored bitmap for key.
func (k *Kit) LoadIconInfo(ctx context.Context, key iconcache.ComponentKey) (*icons.BitmapInfo, error) {
	return k.load(ctx, key, false)
}

// LoadLowResIcon returns the preview bitmap for key.
func (k *Kit) LoadLowResIcon(ctx context.Context, key iconcache.ComponentKey) (*icons.BitmapInfo, error) {
	return k.load(ctx, key, true)
}

// LoadIcon returns a drawable for key with the badges flags ask for.
func (k *Kit) LoadIcon(ctx context.Context, key iconcache.ComponentKey, flags icons.CreationFlags) (*icons.FastBitmapDrawable, error) {
	info, err := k.load(ctx, key, false)
	if err != nil {
		return nil, err
	}
	return info.NewIcon(k.resources, flags), nil
}

func (k *Kit) load(ctx context.Context, key iconcache.ComponentKey, lowRes bool) (*icons.BitmapInfo, error) {
	if k.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	before := k.icons.Stats().Loads

	var (
		info *icons.BitmapInfo
		err  error
	)
	if lowRes {
		info, err = k.icons.GetLowRes(ctx, key, k.resources)
	} else {
		info, err = k.icons.Get(ctx, key, k.resources)
	}
	err = translateError(err)

	// Approximate when other loads run concurrently.
	hit := err == nil && k.icons.Stats().Loads == before
	k.metrics.RecordIconLoad(hit, time.Since(start), err)
	k.logger.LogIconLoad(ctx, key, lowRes, err)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// PrefetchIcons loads keys into memory. Unknown keys are skipped.
func (k *Kit) PrefetchIcons(ctx context.Context, keys []iconcache.ComponentKey) error {
	if k.closed.Load() {
		return ErrClosed
	}
	return translateError(k.icons.Prefetch(ctx, keys))
}

// Commit makes all stored icons durable.
func (k *Kit) Commit(ctx context.Context) error {
	if k.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := translateError(k.icons.Commit(ctx))
	version := k.icons.Stats().Version
	k.metrics.RecordCommit(version, time.Since(start), err)
	k.logger.LogCommit(ctx, version, err)
	return err
}

// Stats returns the icon cache statistics.
func (k *Kit) Stats() iconcache.Stats {
	return k.icons.Stats()
}

// Icons returns the underlying icon cache.
func (k *Kit) Icons() *iconcache.Cache {
	return k.icons
}
