// Package imageio converts between images and flat packed-pixel sequences
// and reads and writes the supported image formats.
//
// Supported formats:
//
//	format  decode  encode
//	png     yes     yes
//	jpeg    yes     yes
//	gif     yes     yes
//	bmp     yes     yes   (golang.org/x/image/bmp)
//	tiff    yes     yes   (golang.org/x/image/tiff)
//	webp    yes     no    (golang.org/x/image/webp)
//	argb    yes     yes   raw packed pixels, optionally LZ4/Zstandard compressed
package imageio
