package rawpix

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/posterize/internal/conv"
	"github.com/hupe1980/posterize/pixel"
)

var (
	// ErrBadMagic is returned when the stream does not start with "ARGB".
	ErrBadMagic = errors.New("rawpix: bad magic value")

	// ErrCorrupt is returned for inconsistent headers or blocks.
	ErrCorrupt = errors.New("rawpix: corrupt data")

	// ErrChecksum is returned when the pixel block fails its CRC32C check.
	ErrChecksum = errors.New("rawpix: checksum mismatch")
)

// Magic identifies an argb stream.
const Magic = "ARGB"

var magicBytes = [4]byte{'A', 'R', 'G', 'B'}

// Order is the scan order of the stored pixels.
type Order uint8

const (
	// ColumnMajor stores x-outer, y-inner.
	ColumnMajor Order = 0
	// RowMajor stores y-outer, x-inner.
	RowMajor Order = 1
)

// Header describes an argb stream.
type Header struct {
	Width, Height int
	Order         Order
	Compression   Compression
}

type desc struct {
	Magic         [4]byte
	Width, Height uint32
	Order         uint8
	Compression   uint8
}

// Encode writes px with the given geometry.
func Encode(w io.Writer, h Header, px []pixel.Pixel) error {
	n, err := conv.MulInt(h.Width, h.Height)
	if err != nil {
		return err
	}
	if n != len(px) {
		return fmt.Errorf("rawpix: %d pixels do not fill %dx%d", len(px), h.Width, h.Height)
	}
	if h.Order > RowMajor {
		return fmt.Errorf("rawpix: unknown scan order %d", h.Order)
	}

	width, err := conv.IntToUint32(h.Width)
	if err != nil {
		return err
	}
	height, err := conv.IntToUint32(h.Height)
	if err != nil {
		return err
	}

	d := desc{
		Magic:       magicBytes,
		Width:       width,
		Height:      height,
		Order:       uint8(h.Order),
		Compression: uint8(h.Compression),
	}
	if err := binary.Write(w, binary.LittleEndian, d); err != nil {
		return err
	}

	data := make([]byte, 4*len(px))
	for i, p := range px {
		binary.LittleEndian.PutUint32(data[4*i:], uint32(p))
	}

	block, err := compressBlock(data, h.Compression)
	if err != nil {
		return err
	}
	_, err = w.Write(block)
	return err
}

// DecodeHeader reads only the header.
func DecodeHeader(r io.Reader) (Header, error) {
	var d desc
	if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
		return Header{}, err
	}
	if d.Magic != magicBytes {
		return Header{}, ErrBadMagic
	}
	if Order(d.Order) > RowMajor || Compression(d.Compression) > CompressionZSTD {
		return Header{}, ErrCorrupt
	}

	width, err := conv.Uint32ToInt(d.Width)
	if err != nil {
		return Header{}, err
	}
	height, err := conv.Uint32ToInt(d.Height)
	if err != nil {
		return Header{}, err
	}

	return Header{
		Width:       width,
		Height:      height,
		Order:       Order(d.Order),
		Compression: Compression(d.Compression),
	}, nil
}

// Decode reads an argb stream.
func Decode(r io.Reader) (Header, []pixel.Pixel, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return Header{}, nil, err
	}

	n, err := conv.MulInt(h.Width, h.Height)
	if err != nil {
		return Header{}, nil, err
	}
	size, err := conv.MulInt(n, 4)
	if err != nil {
		return Header{}, nil, err
	}

	data, err := readBlock(r, h.Compression, size)
	if err != nil {
		return Header{}, nil, err
	}

	px := make([]pixel.Pixel, n)
	for i := range px {
		px[i] = pixel.Pixel(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return h, px, nil
}
