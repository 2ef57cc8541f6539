// Package lazy provides a memoized, lazily-computed value cell with a
// selectable thread-safety contract.
//
// A Value defers its initializer until the first call to Value(), caches the
// result, and serves every later call from the cache. How concurrent first
// accesses are resolved is chosen at construction time:
//
//   - Synchronized: the initializer runs exactly once; racing callers block
//     until the winning run finishes. This is the default.
//   - Publication: racing callers may each run the initializer, but only the
//     first result is published; everyone converges on it.
//   - None: no synchronization at all, for cells that are provably confined
//     to a single goroutine.
//
// # Why not sync.Once?
//
// sync.Once latches even when the wrapped function fails, which permanently
// wedges a cell whose initializer returned an error. A Value only latches on
// success: a failed initializer leaves the cell uninitialized, and the next
// call retries. That retry semantic is the reason the slow path is built on
// an atomic flag plus a mutex (double-checked locking) rather than on
// sync.Once.
//
// # Memory model
//
// Whatever the mode, any goroutine that observes IsInitialized() == true is
// guaranteed to observe the fully-constructed cached value: the flag is
// stored only after the slot is populated, and both sides go through
// sync/atomic.
//
// Example:
//
//	conn := lazy.New(func() (*grpc.ClientConn, error) {
//	    return grpc.NewClient(target)
//	})
//	// ... nothing has been dialed yet ...
//	c, err := conn.Value() // first caller dials, everyone else reuses
package lazy
