package pixel

import (
	"fmt"
	"image/color"
	"math"
)

// Pixel is a packed 32-bit ARGB colour value.
type Pixel uint32

const (
	alphaShift = 24
	redShift   = 16
	greenShift = 8
	blueShift  = 0

	channelMask = 0xFF
)

// New packs the four channels into a Pixel.
func New(a, r, g, b uint8) Pixel {
	return Pixel(uint32(a)<<alphaShift |
		uint32(r)<<redShift |
		uint32(g)<<greenShift |
		uint32(b)<<blueShift)
}

// FromNRGBA packs a non-premultiplied colour.
func FromNRGBA(c color.NRGBA) Pixel {
	return New(c.A, c.R, c.G, c.B)
}

// FromColor converts any colour to straight alpha and packs it.
func FromColor(c color.Color) Pixel {
	return FromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// A returns the alpha channel.
func (p Pixel) A() uint8 { return uint8(p >> alphaShift & channelMask) }

// R returns the red channel.
func (p Pixel) R() uint8 { return uint8(p >> redShift & channelMask) }

// G returns the green channel.
func (p Pixel) G() uint8 { return uint8(p >> greenShift & channelMask) }

// B returns the blue channel.
func (p Pixel) B() uint8 { return uint8(p >> blueShift & channelMask) }

// Channels returns alpha, red, green and blue.
func (p Pixel) Channels() (a, r, g, b uint8) {
	return p.A(), p.R(), p.G(), p.B()
}

// NRGBA unpacks the pixel into a color.NRGBA.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R(), G: p.G(), B: p.B(), A: p.A()}
}

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return p.NRGBA().RGBA()
}

// String formats the pixel as #AARRGGBB.
func (p Pixel) String() string {
	return fmt.Sprintf("#%08X", uint32(p))
}

// SquaredDistance returns the squared Euclidean distance between two pixels
// in (alpha, red, green, blue) space. It orders pixel pairs exactly like
// Distance and never overflows (max 4*255^2).
func SquaredDistance(a, b Pixel) int {
	da := int(a.A()) - int(b.A())
	dr := int(a.R()) - int(b.R())
	dg := int(a.G()) - int(b.G())
	db := int(a.B()) - int(b.B())
	return da*da + dr*dr + dg*dg + db*db
}

// Distance returns the Euclidean distance between two pixels in
// (alpha, red, green, blue) space. No channel weighting is applied.
func Distance(a, b Pixel) float64 {
	return math.Sqrt(float64(SquaredDistance(a, b)))
}

// Mean returns the channel-wise arithmetic mean of n pixels whose channel
// sums are sa, sr, sg and sb. Each channel is truncated toward zero and
// masked to 8 bits. n must be positive.
func Mean(sa, sr, sg, sb, n uint64) Pixel {
	return Pixel(uint32(sa/n&channelMask)<<alphaShift |
		uint32(sr/n&channelMask)<<redShift |
		uint32(sg/n&channelMask)<<greenShift |
		uint32(sb/n&channelMask)<<blueShift)
}

// Accumulator sums channels of a set of pixels.
// The zero value is an empty accumulator.
type Accumulator struct {
	A, R, G, B uint64
	N          uint64
}

// Add folds p into the running sums.
func (acc *Accumulator) Add(p Pixel) {
	acc.A += uint64(p.A())
	acc.R += uint64(p.R())
	acc.G += uint64(p.G())
	acc.B += uint64(p.B())
	acc.N++
}

// Reset clears the accumulator.
func (acc *Accumulator) Reset() {
	*acc = Accumulator{}
}

// Empty reports whether no pixel has been added.
func (acc *Accumulator) Empty() bool {
	return acc.N == 0
}

// Mean returns the truncated channel-wise mean. It reports false when the
// accumulator is empty.
func (acc *Accumulator) Mean() (Pixel, bool) {
	if acc.N == 0 {
		return 0, false
	}
	return Mean(acc.A, acc.R, acc.G, acc.B, acc.N), true
}
