// Package palette tracks sets of distinct packed colours.
package palette

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/posterize/pixel"
)

// Palette is a set of distinct pixels backed by a 32-bit Roaring Bitmap.
// A packed pixel is its own bitmap key, so iteration is in ascending
// packed-value order.
//
// Palette is not safe for concurrent mutation.
type Palette struct {
	rb *roaring.Bitmap
}

// New creates an empty palette.
func New() *Palette {
	return &Palette{rb: roaring.New()}
}

// Of returns the set of distinct colours in pixels.
func Of(pixels []pixel.Pixel) *Palette {
	p := New()
	for _, px := range pixels {
		p.rb.Add(uint32(px))
	}
	return p
}

// Add inserts px and reports whether it was not already present.
func (p *Palette) Add(px pixel.Pixel) bool {
	return p.rb.CheckedAdd(uint32(px))
}

// Remove deletes px and reports whether it was present.
func (p *Palette) Remove(px pixel.Pixel) bool {
	return p.rb.CheckedRemove(uint32(px))
}

// Contains reports whether px is in the palette.
func (p *Palette) Contains(px pixel.Pixel) bool {
	return p.rb.Contains(uint32(px))
}

// Len returns the number of distinct colours.
func (p *Palette) Len() int {
	return int(p.rb.GetCardinality())
}

// Nth returns the i-th smallest colour. It reports false when i is out of
// range.
func (p *Palette) Nth(i int) (pixel.Pixel, bool) {
	if i < 0 || i >= p.Len() {
		return 0, false
	}
	v, err := p.rb.Select(uint32(i))
	if err != nil {
		return 0, false
	}
	return pixel.Pixel(v), true
}

// Colors returns the colours in ascending packed order.
func (p *Palette) Colors() []pixel.Pixel {
	values := p.rb.ToArray()
	out := make([]pixel.Pixel, len(values))
	for i, v := range values {
		out[i] = pixel.Pixel(v)
	}
	return out
}

// All iterates over the colours in ascending packed order.
func (p *Palette) All() iter.Seq[pixel.Pixel] {
	return func(yield func(pixel.Pixel) bool) {
		it := p.rb.Iterator()
		for it.HasNext() {
			if !yield(pixel.Pixel(it.Next())) {
				return
			}
		}
	}
}

// Difference returns the colours of p that are not in other.
func (p *Palette) Difference(other *Palette) *Palette {
	return &Palette{rb: roaring.AndNot(p.rb, other.rb)}
}
