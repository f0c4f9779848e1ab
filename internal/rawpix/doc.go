// Package rawpix reads and writes the "argb" container: a flat sequence of
// packed ARGB pixels with its image geometry.
//
// Layout (little endian):
//
//	magic        [4]byte  "ARGB"
//	width        uint32
//	height       uint32
//	order        uint8    scan order, 0 = column-major, 1 = row-major
//	compression  uint8    0 = none, 1 = LZ4, 2 = Zstandard
//	block:
//	  uncompressed uint32
//	  compressed   uint32  0 means the data is stored as-is
//	  checksum     uint32  CRC32C of the uncompressed data
//	  data         []byte  width*height little-endian uint32 pixels
package rawpix
