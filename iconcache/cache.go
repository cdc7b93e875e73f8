package iconcache

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/hupe1980/launcherkit/codec"
	"github.com/hupe1980/launcherkit/icons"
	"github.com/hupe1980/launcherkit/internal/cache"
	"github.com/hupe1980/launcherkit/internal/compress"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Stats is a point-in-time view of a Cache.
type Stats struct {
	Version       uint64
	Entries       int
	LowResEntries uint64
	Dirty         bool
	MemoryBytes   int64
	Hits          int64
	Misses        int64
	Loads         int64
	LoadErrors    int64
	Stores        int64
}

// Cache is a persistent icon cache. It is safe for concurrent use.
type Cache struct {
	store blobstore.BlobStore
	opts  options

	mu        sync.RWMutex
	m         *manifest
	changes   uint64
	committed uint64
	closed    bool

	commitMu sync.Mutex

	decoded *cache.LRU[string, *icons.BitmapInfo]
	loads   singleflight.Group

	hits, misses, fetches, fetchErrors, stores atomic.Int64
}

// Open loads the manifest CURRENT points at. A store without CURRENT gives
// an empty cache.
func Open(ctx context.Context, store blobstore.BlobStore, optFns ...Option) (*Cache, error) {
	o := applyOptions(optFns)
	c := &Cache{
		store:   store,
		opts:    o,
		decoded: cache.New[string](o.memoryCapacity, infoSize, o.rc),
	}

	m, err := c.loadCurrent(ctx)
	if err != nil {
		return nil, err
	}
	c.m = m
	o.logger.Debug("icon cache opened", "version", m.Version, "entries", len(m.Entries))
	return c, nil
}

func (c *Cache) loadCurrent(ctx context.Context) (*manifest, error) {
	cur, err := blobstore.ReadAll(ctx, c.store, blobstore.CurrentName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return newManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("iconcache: read %s: %w", blobstore.CurrentName, err)
	}

	name := strings.TrimSpace(string(cur))
	data, err := blobstore.ReadAll(ctx, c.store, name)
	if err != nil {
		return nil, fmt.Errorf("iconcache: read manifest %s: %w", name, err)
	}
	m, err := decodeManifest(c.opts.codec, data)
	if err != nil {
		return nil, &CorruptError{Name: name, Err: err}
	}
	if _, ok := codec.ByName(m.Codec); !ok {
		c.opts.logger.Warn("manifest written by unknown codec", "manifest", name, "codec", m.Codec)
	}
	return m, nil
}

func (c *Cache) entry(key ComponentKey) (*Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, false, ErrClosed
	}
	e, ok := c.m.Entries[key.String()]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return e, c.m.isLowRes(e), nil
}

// Put stores info for key. Nil and low-res infos are recorded as
// placeholder entries without blobs.
func (c *Cache) Put(ctx context.Context, key ComponentKey, info *icons.BitmapInfo, label string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	data, err := info.Encode()
	if err != nil {
		return err
	}

	e := &Entry{
		Package:     key.Package,
		Class:       key.Class,
		User:        key.User,
		Label:       label,
		Compression: c.opts.compression,
		UpdatedAt:   time.Now().UTC(),
	}
	if info != nil {
		e.Color, e.Flags = info.Color, info.Flags
	}

	if data != nil {
		framed, err := compress.Encode(data, c.opts.compression)
		if err != nil {
			return err
		}
		e.Size = int64(len(framed))
		if err := c.putLowRes(ctx, key, info); err != nil {
			return err
		}
		if err := c.write(ctx, iconBlobName(key), framed); err != nil {
			// The preview blob no longer matches the previous entry.
			if ok, _ := c.drop(key); ok {
				c.opts.logger.Warn("icon entry dropped after failed write", "key", key.String(), "error", err)
			}
			return err
		}
	} else {
		c.deleteBlobs(ctx, key)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if old, ok := c.m.Entries[key.String()]; ok {
		e.Slot = old.Slot
	} else {
		e.Slot = c.m.NextSlot
		c.m.NextSlot++
	}
	if data == nil {
		c.m.lowRes.Add(e.Slot)
	} else {
		c.m.lowRes.Remove(e.Slot)
	}
	c.m.Entries[key.String()] = e
	c.changes++
	c.mu.Unlock()

	c.decoded.Remove(iconBlobName(key))
	c.decoded.Remove(lowResBlobName(key))
	c.stores.Add(1)
	c.opts.logger.Debug("icon stored", "key", key.String(), "bytes", e.Size, "low_res_only", data == nil)
	return nil
}

func (c *Cache) putLowRes(ctx context.Context, key ComponentKey, info *icons.BitmapInfo) error {
	low := icons.CreateLowResIcon(info, 0)
	data, err := low.Encode()
	if err != nil || data == nil {
		return err
	}
	framed, err := compress.Encode(data, c.opts.compression)
	if err != nil {
		return err
	}
	return c.write(ctx, lowResBlobName(key), framed)
}

func (c *Cache) write(ctx context.Context, name string, data []byte) error {
	if err := c.opts.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := c.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("iconcache: write %s: %w", name, err)
	}
	return nil
}

func (c *Cache) deleteBlobs(ctx context.Context, key ComponentKey) {
	for _, name := range []string{iconBlobName(key), lowResBlobName(key)} {
		if err := c.store.Delete(ctx, name); err != nil {
			c.opts.logger.Warn("icon blob delete failed", "name", name, "error", err)
		}
	}
}

// Get returns the full icon for key. Entries stored without a full icon
// give a copy of icons.LowResInfo carrying the entry's flags. Every call
// returns a value the caller owns.
func (c *Cache) Get(ctx context.Context, key ComponentKey, res icons.Resources) (*icons.BitmapInfo, error) {
	e, lowOnly, err := c.entry(key)
	if err != nil {
		return nil, err
	}
	if lowOnly {
		return lowResInfo(e), nil
	}
	return c.load(ctx, iconBlobName(key), e, res)
}

// GetLowRes returns the preview icon for key. Entries without a stored
// preview fall back to downscaling the full icon.
func (c *Cache) GetLowRes(ctx context.Context, key ComponentKey, res icons.Resources) (*icons.BitmapInfo, error) {
	e, lowOnly, err := c.entry(key)
	if err != nil {
		return nil, err
	}
	if lowOnly {
		return lowResInfo(e), nil
	}

	info, err := c.load(ctx, lowResBlobName(key), e, res)
	if !errors.Is(err, blobstore.ErrNotFound) {
		return info, err
	}
	full, err := c.load(ctx, iconBlobName(key), e, res)
	if err != nil {
		return nil, err
	}
	return icons.CreateLowResIcon(full, 0), nil
}

func lowResInfo(e *Entry) *icons.BitmapInfo {
	info := icons.LowResInfo.Clone()
	info.Flags = e.Flags
	return info
}

// load returns a private copy of the decoded blob name of e, through the
// LRU and a singleflight group. The shared fetch is detached from ctx so
// that one cancelled caller does not fail the others.
func (c *Cache) load(ctx context.Context, name string, e *Entry, res icons.Resources) (*icons.BitmapInfo, error) {
	if info, ok := c.decoded.Get(name); ok {
		c.hits.Add(1)
		return info.Clone(), nil
	}
	c.misses.Add(1)

	ch := c.loads.DoChan(name, func() (any, error) {
		c.fetches.Add(1)
		info, err := c.fetch(context.WithoutCancel(ctx), name, e, res)
		if err != nil {
			c.fetchErrors.Add(1)
			return nil, err
		}
		if c.current(e) {
			c.decoded.Set(name, info)
		}
		return info, nil
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*icons.BitmapInfo).Clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) fetch(ctx context.Context, name string, e *Entry, res icons.Resources) (*icons.BitmapInfo, error) {
	if err := c.opts.rc.AcquireIO(ctx, int(e.Size)); err != nil {
		return nil, err
	}
	framed, err := blobstore.ReadAll(ctx, c.store, name)
	if err != nil {
		return nil, err
	}
	data, err := compress.Decode(framed)
	if err != nil {
		return nil, &CorruptError{Name: name, Err: err}
	}

	var decodeOpts []icons.DecodeOption
	if c.opts.hardware {
		decodeOpts = append(decodeOpts, icons.WithHardwareBitmaps())
	}
	info, err := icons.FromByteArray(data, e.Color, res, decodeOpts...)
	if err != nil {
		return nil, &CorruptError{Name: name, Err: err}
	}
	info.Flags = e.Flags
	return info, nil
}

// current reports whether e is still the live entry for its key.
func (c *Cache) current(e *Entry) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.m.Entries[e.Key().String()] == e
}

// Remove deletes key and its blobs.
func (c *Cache) Remove(ctx context.Context, key ComponentKey) error {
	ok, err := c.drop(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	c.deleteBlobs(ctx, key)
	return nil
}

// drop removes key from the manifest and the decoded cache. It reports
// whether an entry existed.
func (c *Cache) drop(key ComponentKey) (bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, ErrClosed
	}
	e, ok := c.m.Entries[key.String()]
	if ok {
		delete(c.m.Entries, key.String())
		c.m.lowRes.Remove(e.Slot)
		c.changes++
	}
	c.mu.Unlock()

	c.decoded.Remove(iconBlobName(key))
	c.decoded.Remove(lowResBlobName(key))
	return ok, nil
}

// Prefetch loads keys into memory, a bounded number at a time. Unknown keys
// are skipped.
func (c *Cache) Prefetch(ctx context.Context, keys []ComponentKey) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(c.opts.rc.Config().MaxFetchWorkers))

	for _, key := range keys {
		g.Go(func() error {
			if err := c.opts.rc.AcquireFetch(gctx); err != nil {
				return err
			}
			defer c.opts.rc.ReleaseFetch()

			_, err := c.Get(gctx, key, nil)
			if errors.Is(err, ErrNotFound) {
				c.opts.logger.Debug("prefetch skipped unknown key", "key", key.String())
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

// Keys returns the cached components in String order.
func (c *Cache) Keys() []ComponentKey {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]ComponentKey, 0, len(c.m.Entries))
	for _, e := range c.m.Entries {
		keys = append(keys, e.Key())
	}
	slices.SortFunc(keys, func(a, b ComponentKey) int { return strings.Compare(a.String(), b.String()) })
	return keys
}

// Entry returns the manifest record for key.
func (c *Cache) Entry(key ComponentKey) (Entry, error) {
	e, _, err := c.entry(key)
	if err != nil {
		return Entry{}, err
	}
	return *e, nil
}

// Commit publishes the current state as the next manifest version. It is a
// no-op when nothing changed since the last commit.
func (c *Cache) Commit(ctx context.Context) error {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrClosed
	}
	if c.changes == c.committed {
		c.mu.RUnlock()
		return nil
	}
	changes := c.changes
	version := c.m.Version + 1
	data, err := c.m.encode(c.opts.codec, version)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("iconcache: encode manifest: %w", err)
	}

	name := manifestName(version)
	if err := c.write(ctx, name, data); err != nil {
		return err
	}
	if err := c.publish(ctx, version, name); err != nil {
		if errors.Is(err, blobstore.ErrConcurrentModification) {
			_ = c.store.Delete(ctx, name)
		}
		return fmt.Errorf("iconcache: commit version %d: %w", version, err)
	}

	c.mu.Lock()
	c.m.Version = version
	c.committed = changes
	c.mu.Unlock()

	c.opts.logger.Info("icon cache committed", "version", version, "manifest", name)
	c.pruneManifests(ctx, version)
	return nil
}

func (c *Cache) publish(ctx context.Context, version uint64, name string) error {
	if cm, ok := c.store.(blobstore.Committer); ok {
		return cm.CommitVersion(ctx, version, name)
	}
	return c.store.Put(ctx, blobstore.CurrentName, []byte(name))
}

func (c *Cache) pruneManifests(ctx context.Context, version uint64) {
	names, err := c.store.List(ctx, manifestPrefix)
	if err != nil {
		c.opts.logger.Warn("manifest listing failed", "error", err)
		return
	}
	for _, name := range names {
		v, ok := manifestVersion(name)
		if !ok || v+uint64(c.opts.retainManifests) > version {
			continue
		}
		if err := c.store.Delete(ctx, name); err != nil {
			c.opts.logger.Warn("manifest delete failed", "name", name, "error", err)
		}
	}
}

// Stats returns counters and sizes.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	s := Stats{
		Version:       c.m.Version,
		Entries:       len(c.m.Entries),
		LowResEntries: c.m.lowRes.GetCardinality(),
		Dirty:         c.changes != c.committed,
	}
	c.mu.RUnlock()

	s.MemoryBytes = c.decoded.Size()
	s.Hits = c.hits.Load()
	s.Misses = c.misses.Load()
	s.Loads = c.fetches.Load()
	s.LoadErrors = c.fetchErrors.Load()
	s.Stores = c.stores.Load()
	return s
}

func (c *Cache) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// Close drops the in-memory icons. Uncommitted changes are lost.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	dirty := c.changes != c.committed
	c.mu.Unlock()

	if dirty {
		c.opts.logger.Warn("icon cache closed with uncommitted changes")
	}
	c.decoded.Purge()
	return nil
}

func infoSize(b *icons.BitmapInfo) int64 {
	n := pixelBytes(b.Icon)
	if b.Theme != nil {
		n += pixelBytes(b.Theme.Mono)
	}
	return n
}

func pixelBytes(img image.Image) int64 {
	if img == nil {
		return 0
	}
	r := img.Bounds()
	return int64(r.Dx()) * int64(r.Dy()) * 4
}
