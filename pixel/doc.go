// Package pixel provides the packed ARGB pixel type and the integer
// arithmetic used for colour clustering.
//
// A Pixel stores four 8-bit channels in one uint32:
//
//	bits 24-31  alpha
//	bits 16-23  red
//	bits  8-15  green
//	bits  0-7   blue
//
// The channels are straight (non-premultiplied) alpha, the same layout as
// color.NRGBA.
//
// # Usage
//
//	p := pixel.New(0xFF, 0x10, 0x20, 0x30)
//	d := pixel.Distance(p, pixel.Pixel(0xFF000000))
package pixel
