package imageio

import (
	"errors"
	"fmt"
	"image"

	"github.com/hupe1980/posterize/pixel"
	xdraw "golang.org/x/image/draw"
)

// ErrPixelCount is returned when a pixel sequence does not fill the target
// bounds.
var ErrPixelCount = errors.New("imageio: pixel count does not match bounds")

// ScanOrder is the order in which a 2D image is flattened.
type ScanOrder int

const (
	// ColumnMajor visits x in the outer loop and y in the inner loop.
	ColumnMajor ScanOrder = iota
	// RowMajor visits y in the outer loop and x in the inner loop.
	RowMajor
)

func (o ScanOrder) String() string {
	switch o {
	case ColumnMajor:
		return "column"
	case RowMajor:
		return "row"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// ParseScanOrder parses "column" or "row".
func ParseScanOrder(s string) (ScanOrder, error) {
	switch s {
	case "column", "column-major":
		return ColumnMajor, nil
	case "row", "row-major":
		return RowMajor, nil
	default:
		return 0, fmt.Errorf("imageio: unknown scan order %q", s)
	}
}

// index returns the position of (x, y) in a flattened w x h image whose
// origin is at (0, 0).
func (o ScanOrder) index(x, y, w, h int) int {
	if o == RowMajor {
		return y*w + x
	}
	return x*h + y
}

// NRGBA returns img as *image.NRGBA, converting only when necessary.
func NRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	xdraw.Draw(dst, b, img, b.Min, xdraw.Src)
	return dst
}

// ToPixels flattens img into packed pixels in the given order.
// Channels are straight (non-premultiplied) alpha.
func ToPixels(img image.Image, order ScanOrder) []pixel.Pixel {
	m := NRGBA(img)
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	px := make([]pixel.Pixel, w*h)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+4*w]
		for x := 0; x < w; x++ {
			c := row[4*x : 4*x+4]
			px[order.index(x, y, w, h)] = pixel.New(c[3], c[0], c[1], c[2])
		}
	}
	return px
}

// FromPixels builds an image with bounds b from pixels flattened in the
// given order.
func FromPixels(px []pixel.Pixel, b image.Rectangle, order ScanOrder) (*image.NRGBA, error) {
	w, h := b.Dx(), b.Dy()
	if len(px) != w*h {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrPixelCount, len(px), w, h)
	}

	m := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+4*w]
		for x := 0; x < w; x++ {
			a, r, g, bl := px[order.index(x, y, w, h)].Channels()
			c := row[4*x : 4*x+4]
			c[0], c[1], c[2], c[3] = r, g, bl, a
		}
	}
	return m, nil
}
