package lazy

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ThreadSafetyMode selects how a Value resolves concurrent first accesses.
// It is fixed at construction and never changes afterwards.
type ThreadSafetyMode int

const (
	// Synchronized runs the initializer exactly once, under the cell's lock.
	// Callers that lose the race block until the winning run completes.
	Synchronized ThreadSafetyMode = iota

	// Publication runs the initializer outside the lock, so racing callers
	// may compute redundantly. Only the first result is published; the rest
	// are discarded and every caller converges on the published one.
	// Meant for cheap, idempotent initializers.
	Publication

	// None performs no synchronization whatsoever. Strictly for cells
	// confined to a single goroutine; concurrent access is a data race.
	None
)

// ErrInitializationFailure wraps every error returned by an initializer.
var ErrInitializationFailure = errors.New("lazy initialization failed")

// Initializer produces the value of a cell. Under Synchronized and
// Publication a failed run leaves the cell uninitialized, so the next
// Value() call invokes it again.
type Initializer[T any] func() (T, error)

// Value is a lazily-computed, memoized cell. The zero Value is not usable;
// construct with New.
type Value[T any] struct {
	initializer Initializer[T]
	mode        ThreadSafetyMode

	mu        sync.Mutex
	published bool
	value     T
	span      TimeSpan

	hasValue atomic.Bool
}

// New returns a cell that computes its value on first access via initializer.
// The optional mode defaults to Synchronized. Constructing never invokes the
// initializer.
func New[T any](initializer Initializer[T], mode ...ThreadSafetyMode) *Value[T] {
	if initializer == nil {
		panic("lazy: nil initializer")
	}
	m := Synchronized
	if len(mode) > 0 {
		m = mode[0]
	}
	return &Value[T]{
		initializer: initializer,
		mode:        m,
	}
}

// Value returns the cached value, computing it on first access according to
// the cell's ThreadSafetyMode. Once it has returned successfully, every later
// call returns the same value without re-invoking the initializer.
func (v *Value[T]) Value() (T, error) {
	switch v.mode {
	case Publication:
		return v.publish()
	case None:
		return v.unsynchronized()
	default:
		return v.synchronized()
	}
}

// MustValue is the panic-on-failure variant of Value.
func (v *Value[T]) MustValue() T {
	val, err := v.Value()
	if err != nil {
		panic(err)
	}
	return val
}

// IsInitialized reports whether the value has been computed, without locking.
// It is inherently racy against concurrent Value() calls: treat a false
// return as "not yet, as of some recent point", never as a synchronization
// primitive. A true return does guarantee that Value() will serve the cache.
func (v *Value[T]) IsInitialized() bool {
	return v.hasValue.Load()
}

func (v *Value[T]) synchronized() (T, error) {
	if v.hasValue.Load() {
		return v.value, nil
	}

	v.mu.Lock()
	// Released on every exit path, including an initializer panic. Otherwise
	// a failing initializer would deadlock every waiting caller.
	defer v.mu.Unlock()

	if v.hasValue.Load() {
		// another goroutine finished initializing while we waited for the lock
		return v.value, nil
	}

	start := time.Now()
	result, err := v.initializer()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrInitializationFailure, err)
	}
	v.value = result
	v.span = NewTimeSpan(start, time.Now())
	v.hasValue.Store(true)
	return v.value, nil
}

func (v *Value[T]) publish() (T, error) {
	if v.hasValue.Load() {
		return v.value, nil
	}

	// Computed outside the lock: racing goroutines may all get here and each
	// run the initializer redundantly.
	start := time.Now()
	result, err := v.initializer()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrInitializationFailure, err)
	}
	end := time.Now()

	v.mu.Lock()
	if !v.published {
		v.value = result
		v.span = NewTimeSpan(start, end)
		v.published = true
	}
	// First publisher wins; a loser drops its own result and takes the
	// published one. Ordinary scope exit releases whatever the loser built.
	result = v.value
	v.mu.Unlock()

	v.hasValue.Store(true)
	return result, nil
}

func (v *Value[T]) unsynchronized() (T, error) {
	if v.hasValue.Load() {
		return v.value, nil
	}

	start := time.Now()
	result, err := v.initializer()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrInitializationFailure, err)
	}
	v.value = result
	v.span = NewTimeSpan(start, time.Now())
	v.hasValue.Store(true)
	return v.value, nil
}
