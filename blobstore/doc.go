// Package blobstore provides storage abstraction for source and quantized
// images.
//
// Store is the interface for reading and writing named blobs. Names use
// forward slashes regardless of the backend. Implementations must be safe
// for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with atomic writes
//   - MemoryStore: In-memory store for tests and pipelines
//   - s3.Store: Amazon S3 with managed uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// Package resolver maps URIs such as s3://bucket/key to a Store and a name.
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)            // Open for reading
//	    Put(ctx, name, data) error               // Atomic write
//	    List(ctx, prefix) ([]string, error)      // Sorted names
//	}
package blobstore
