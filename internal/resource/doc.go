// Package resource bounds the work a checkpoint does at once.
//
// A Controller limits three things:
//
//   - Memory: bytes of encoded payloads held in flight (blocking acquire)
//   - Workers: payloads encoded and written in parallel
//   - IO: bytes per second handed to the blob store (token bucket)
//
// A nil *Controller imposes no limits, so callers can pass one through
// unconditionally.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   256 << 20,
//	    MaxWorkers:         4,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
package resource
