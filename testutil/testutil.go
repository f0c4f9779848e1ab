package testutil

import (
	"image"
	"math/rand"
	"sync"

	"github.com/hupe1980/posterize/pixel"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
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

// Pixel returns a uniformly random packed pixel.
func (r *RNG) Pixel() pixel.Pixel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pixel.Pixel(r.rand.Uint32())
}

// Pixels returns num uniformly random packed pixels.
func (r *RNG) Pixels(num int) []pixel.Pixel {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pixel.Pixel, num)
	for i := range out {
		out[i] = pixel.Pixel(r.rand.Uint32())
	}
	return out
}

// PalettePixels returns num pixels drawn uniformly from colors.
func (r *RNG) PalettePixels(num int, colors []pixel.Pixel) []pixel.Pixel {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pixel.Pixel, num)
	for i := range out {
		out[i] = colors[r.rand.Intn(len(colors))]
	}
	return out
}

// ClusteredPixels returns num pixels scattered around centers. Pixel i
// belongs to centers[i%len(centers)]; every channel is offset by a uniform
// value in [-spread, spread] and clamped to [0, 255].
func (r *RNG) ClusteredPixels(num int, centers []pixel.Pixel, spread int) []pixel.Pixel {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pixel.Pixel, num)
	for i := range out {
		a, red, g, b := centers[i%len(centers)].Channels()
		out[i] = pixel.New(
			r.jitterLocked(a, spread),
			r.jitterLocked(red, spread),
			r.jitterLocked(g, spread),
			r.jitterLocked(b, spread),
		)
	}
	return out
}

// jitterLocked is the internal implementation (caller must hold lock).
func (r *RNG) jitterLocked(v uint8, spread int) uint8 {
	if spread <= 0 {
		return v
	}
	n := int(v) + r.rand.Intn(2*spread+1) - spread
	return uint8(max(0, min(255, n)))
}

// Image returns a w x h image with uniformly random opaque pixels.
func (r *RNG) Image(w, h int) *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(r.rand.Intn(256))
		img.Pix[i+1] = uint8(r.rand.Intn(256))
		img.Pix[i+2] = uint8(r.rand.Intn(256))
		img.Pix[i+3] = 0xFF
	}
	return img
}

// Shuffle randomly permutes px in place.
func (r *RNG) Shuffle(px []pixel.Pixel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(px), func(i, j int) { px[i], px[j] = px[j], px[i] })
}
