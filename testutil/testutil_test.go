package testutil

import (
	"testing"

	"github.com/hupe1980/posterize/pixel"
	"github.com/stretchr/testify/assert"
)

func TestPixels(t *testing.T) {
	rng := NewRNG(4711)

	px := rng.Pixels(64)

	assert.Len(t, px, 64)
	assert.NotEqual(t, px[0], px[1])
}

func TestPalettePixels(t *testing.T) {
	rng := NewRNG(4711)
	colors := []pixel.Pixel{0xFF000000, 0xFFFFFFFF}

	px := rng.PalettePixels(100, colors)

	assert.Len(t, px, 100)
	for _, p := range px {
		assert.Contains(t, colors, p)
	}
}

func TestClusteredPixels(t *testing.T) {
	rng := NewRNG(4711)
	centers := []pixel.Pixel{0xFF101010, 0xFFF0F0F0}

	px := rng.ClusteredPixels(100, centers, 8)

	assert.Len(t, px, 100)
	for i, p := range px {
		c := centers[i%len(centers)]
		assert.LessOrEqual(t, pixel.SquaredDistance(p, c), 4*8*8)
	}
}

func TestClusteredPixels_Clamps(t *testing.T) {
	rng := NewRNG(4711)

	px := rng.ClusteredPixels(50, []pixel.Pixel{0x00FF00FF}, 20)

	for _, p := range px {
		assert.LessOrEqual(t, p.A(), uint8(20))
		assert.GreaterOrEqual(t, p.R(), uint8(235))
	}
}

func TestImage(t *testing.T) {
	rng := NewRNG(4711)

	img := rng.Image(7, 5)

	assert.Equal(t, 7, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
	for i := 3; i < len(img.Pix); i += 4 {
		assert.Equal(t, uint8(0xFF), img.Pix[i])
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Pixels(10)

	rng.Reset()
	v2 := rng.Pixels(10)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}
