package imageio

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrUnknownFormat is returned for unsupported file extensions or formats.
var ErrUnknownFormat = errors.New("imageio: unknown image format")

// Format identifies an image file format.
type Format int

const (
	PNG Format = iota
	JPEG
	GIF
	BMP
	TIFF
	WebP
	ARGB
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	case WebP:
		return "webp"
	case ARGB:
		return "argb"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// CanEncode reports whether images can be written in this format.
func (f Format) CanEncode() bool {
	return f != WebP && f >= PNG && f <= ARGB
}

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
	".argb": ARGB,
}

// FormatFromName returns the format implied by a file or object name's
// extension. Matching is case-insensitive.
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(path.Ext(name))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// IsImageName reports whether name has a decodable image extension.
func IsImageName(name string) bool {
	_, err := FormatFromName(name)
	return err == nil
}
