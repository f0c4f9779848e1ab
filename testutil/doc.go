// Package testutil provides testing utilities for posterize.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and helpers for generating pixel
// sequences and images.
//
// # Random Pixels
//
//	rng := testutil.NewRNG(seed)
//	px := rng.Pixels(1024)                      // uniform ARGB
//	px = rng.ClusteredPixels(1024, centers, 8)  // noise around centers
//	img := rng.Image(64, 48)                    // *image.NRGBA
package testutil
