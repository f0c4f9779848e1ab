package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/hupe1980/posterize/internal/rawpix"
	"github.com/hupe1980/posterize/palette"
	"github.com/hupe1980/posterize/pixel"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

func init() {
	image.RegisterFormat("argb", rawpix.Magic, decodeARGB, decodeARGBConfig)
}

// Compression selects the block compression of the argb format.
type Compression = rawpix.Compression

const (
	CompressionNone = rawpix.CompressionNone
	CompressionLZ4  = rawpix.CompressionLZ4
	CompressionZSTD = rawpix.CompressionZSTD
)

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	return rawpix.ParseCompression(s)
}

// EncodeOptions tunes encoders. The zero value is usable.
type EncodeOptions struct {
	// JPEGQuality ranges 1..100; zero selects jpeg.DefaultQuality.
	JPEGQuality int
	// Order is the scan order stored in argb output.
	Order ScanOrder
	// Compression applies to argb output.
	Compression Compression
}

// Decode reads an image in the given format.
func Decode(r io.Reader, f Format) (image.Image, error) {
	switch f {
	case PNG:
		return png.Decode(r)
	case JPEG:
		return jpeg.Decode(r)
	case GIF:
		return gif.Decode(r)
	case BMP:
		return bmp.Decode(r)
	case TIFF:
		return tiff.Decode(r)
	case WebP:
		return webp.Decode(r)
	case ARGB:
		return decodeARGB(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// DecodeConfig reads only the colour model and dimensions of an image.
func DecodeConfig(r io.Reader, f Format) (image.Config, error) {
	switch f {
	case PNG:
		return png.DecodeConfig(r)
	case JPEG:
		return jpeg.DecodeConfig(r)
	case GIF:
		return gif.DecodeConfig(r)
	case BMP:
		return bmp.DecodeConfig(r)
	case TIFF:
		return tiff.DecodeConfig(r)
	case WebP:
		return webp.DecodeConfig(r)
	case ARGB:
		return decodeARGBConfig(r)
	default:
		return image.Config{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		q := opts.JPEGQuality
		if q == 0 {
			q = jpeg.DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case GIF:
		return encodeGIF(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ARGB:
		return encodeARGB(w, img, opts)
	default:
		return fmt.Errorf("%w: cannot encode %v", ErrUnknownFormat, f)
	}
}

// encodeGIF writes img with an exact palette when it has at most 256
// colours, which is the common case for quantized output.
func encodeGIF(w io.Writer, img image.Image) error {
	px := ToPixels(img, RowMajor)
	colors := palette.Of(px)
	if colors.Len() > 256 {
		return gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: xdraw.FloydSteinberg})
	}

	pal := make(color.Palette, 0, colors.Len())
	for c := range colors.All() {
		pal = append(pal, c)
	}
	b := img.Bounds()
	dst := image.NewPaletted(b, pal)
	xdraw.Draw(dst, b, img, b.Min, xdraw.Src)
	return gif.Encode(w, dst, nil)
}

func scanToRaw(o ScanOrder) rawpix.Order {
	if o == RowMajor {
		return rawpix.RowMajor
	}
	return rawpix.ColumnMajor
}

func rawToScan(o rawpix.Order) ScanOrder {
	if o == rawpix.RowMajor {
		return RowMajor
	}
	return ColumnMajor
}

func encodeARGB(w io.Writer, img image.Image, opts EncodeOptions) error {
	b := img.Bounds()
	h := rawpix.Header{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Order:       scanToRaw(opts.Order),
		Compression: opts.Compression,
	}
	return rawpix.Encode(w, h, ToPixels(img, opts.Order))
}

func decodeARGB(r io.Reader) (image.Image, error) {
	h, px, err := rawpix.Decode(r)
	if err != nil {
		return nil, err
	}
	img, err := FromPixels(px, image.Rect(0, 0, h.Width, h.Height), rawToScan(h.Order))
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodeARGBConfig(r io.Reader) (image.Config, error) {
	h, err := rawpix.DecodeHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// DecodePixels decodes an image and flattens it in the given order.
func DecodePixels(r io.Reader, f Format, order ScanOrder) ([]pixel.Pixel, image.Rectangle, error) {
	img, err := Decode(r, f)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return ToPixels(img, order), img.Bounds(), nil
}
