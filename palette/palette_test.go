package palette

import (
	"slices"
	"testing"

	"github.com/hupe1980/posterize/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	p := Of([]pixel.Pixel{0xFF0000FF, 0xFF000000, 0xFF0000FF, 0, 0xFF000000})

	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Contains(0))
	assert.True(t, p.Contains(0xFF0000FF))
	assert.False(t, p.Contains(0xFF00FF00))
	assert.Equal(t, []pixel.Pixel{0, 0xFF000000, 0xFF0000FF}, p.Colors())
}

func TestAdd(t *testing.T) {
	p := New()
	assert.True(t, p.Add(0x01020304))
	assert.False(t, p.Add(0x01020304))
	assert.Equal(t, 1, p.Len())

	assert.True(t, p.Remove(0x01020304))
	assert.False(t, p.Remove(0x01020304))
	assert.Equal(t, 0, p.Len())
}

func TestNth(t *testing.T) {
	p := Of([]pixel.Pixel{30, 10, 20})

	for i, want := range []pixel.Pixel{10, 20, 30} {
		got, ok := p.Nth(i)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := p.Nth(3)
	assert.False(t, ok)
	_, ok = p.Nth(-1)
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	p := Of([]pixel.Pixel{0xFFFFFFFF, 1, 2})
	assert.Equal(t, []pixel.Pixel{1, 2, 0xFFFFFFFF}, slices.Collect(p.All()))

	// Early termination.
	var first []pixel.Pixel
	for px := range p.All() {
		first = append(first, px)
		break
	}
	assert.Equal(t, []pixel.Pixel{1}, first)
}

func TestDifference(t *testing.T) {
	a := Of([]pixel.Pixel{1, 2, 3})
	b := Of([]pixel.Pixel{2})
	assert.Equal(t, []pixel.Pixel{1, 3}, a.Difference(b).Colors())
	assert.Equal(t, 3, a.Len())
}
