// Package mmap provides read-only memory-mapped file access.
//
//	m, err := mmap.Open("photo.argb")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses CreateFileMapping/MapViewOfFile (madvise is a no-op)
//
// Callers must not use the slice returned by Bytes after Close.
package mmap
