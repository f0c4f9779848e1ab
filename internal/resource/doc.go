// Package resource limits what a batch of quantize jobs may consume at once.
//
// The Controller manages two resource types:
//
//   - Memory: Bound the pixel buffers in flight (blocking, context-aware)
//   - Store IO: Rate-limit blob store calls and bytes moved (token bucket)
//
// # Memory Management
//
// Every job reserves the bytes of its decoded pixel buffers before it
// decodes, and releases them once the result is stored:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(ctx, n); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(n)
//
// A single request larger than the limit fails with ErrMemoryLimitExceeded
// instead of waiting forever.
//
// # Store Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    OpsPerSec:          20,
//	    IOLimitBytesPerSec: 50 * 1024 * 1024,
//	})
//
//	if err := rc.AcquireOp(ctx); err != nil {
//	    return err
//	}
//	if err := rc.AcquireIO(ctx, len(data)); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
package resource
