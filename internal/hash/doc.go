// Package hash provides checksums for data integrity.
//
// All checksums use CRC32-Castagnoli (CRC32C), which Go's crc32 package
// computes with hardware instructions where available (SSE4.2, ARM CRC).
//
//	checksum := hash.CRC32C(data)
package hash
