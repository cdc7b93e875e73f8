package testutil

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/launcherkit/iconcache"
	"github.com/hupe1980/launcherkit/icons"
)

// RNG wraps a seeded random source. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Icon returns a size x size opaque image made of a few flat color bands,
// so it compresses like a real icon.
func (r *RNG) Icon(size int) *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	bands := 1 + r.rand.Intn(4)
	palette := make([]color.NRGBA, bands)
	for i := range palette {
		palette[i] = color.NRGBA{
			R: uint8(r.rand.Intn(256)),
			G: uint8(r.rand.Intn(256)),
			B: uint8(r.rand.Intn(256)),
			A: 0xff,
		}
	}
	for y := 0; y < size; y++ {
		c := palette[y*bands/size]
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// BitmapInfo returns an icon with the color of its first pixel as the
// dominant color.
func (r *RNG) BitmapInfo(size int) *icons.BitmapInfo {
	img := r.Icon(size)
	c := img.NRGBAAt(0, 0)
	return icons.New(img, 0xff000000|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
}

// ComponentKeys returns n distinct keys spread over a few users.
func (r *RNG) ComponentKeys(n int) []iconcache.ComponentKey {
	keys := make([]iconcache.ComponentKey, n)
	for i := range keys {
		keys[i] = iconcache.ComponentKey{
			Package: fmt.Sprintf("com.example.app%d", i),
			Class:   fmt.Sprintf(".Main%d", r.Intn(3)),
			User:    icons.UserHandle(i % 2 * 10),
		}
	}
	return keys
}

// Zipf returns an index in [0,n) following a Zipf distribution with exponent s.
func (r *RNG) Zipf(n int, s float64) int {
	if n <= 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var norm float64
	for i := 1; i <= n; i++ {
		norm += 1 / math.Pow(float64(i), s)
	}
	u := r.rand.Float64() * norm
	var acc float64
	for i := 1; i <= n; i++ {
		acc += 1 / math.Pow(float64(i), s)
		if u <= acc {
			return i - 1
		}
	}
	return n - 1
}
