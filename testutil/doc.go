// Package testutil provides testing utilities for launcherkit.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	img := rng.Icon(48)                 // random opaque NRGBA icon
//	info := rng.BitmapInfo(48)          // icons.BitmapInfo with a dominant color
//	keys := rng.ComponentKeys(100)      // distinct cache keys
//	idx := rng.Zipf(len(keys), 1.1)     // skewed access pattern
package testutil
