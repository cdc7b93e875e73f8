package iconcache_test

import (
	"context"
	"testing"

	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/hupe1980/launcherkit/iconcache"
	"github.com/hupe1980/launcherkit/internal/compress"
	"github.com/hupe1980/launcherkit/testutil"
	"github.com/stretchr/testify/require"
)

func BenchmarkGet(b *testing.B) {
	for _, tc := range []struct {
		name        string
		compression compress.Type
		capacity    int64
	}{
		{"lz4-cached", compress.TypeLZ4, iconcache.DefaultMemoryCapacity},
		{"zstd-cached", compress.TypeZSTD, iconcache.DefaultMemoryCapacity},
		{"lz4-uncached", compress.TypeLZ4, 0},
	} {
		b.Run(tc.name, func(b *testing.B) {
			ctx := context.Background()
			rng := testutil.NewRNG(4711)
			c, err := iconcache.Open(ctx, blobstore.NewMemoryStore(),
				iconcache.WithCompression(tc.compression),
				iconcache.WithMemoryCapacity(tc.capacity))
			require.NoError(b, err)
			defer c.Close()

			keys := rng.ComponentKeys(200)
			for _, k := range keys {
				require.NoError(b, c.Put(ctx, k, rng.BitmapInfo(96), ""))
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.Get(ctx, keys[rng.Zipf(len(keys), 1.1)], nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPut(b *testing.B) {
	ctx := context.Background()
	rng := testutil.NewRNG(1)
	c, err := iconcache.Open(ctx, blobstore.NewMemoryStore())
	require.NoError(b, err)
	defer c.Close()

	keys := rng.ComponentKeys(64)
	info := rng.BitmapInfo(192)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Put(ctx, keys[i%len(keys)], info, ""); err != nil {
			b.Fatal(err)
		}
	}
}
