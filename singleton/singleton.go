// Package singleton holds process-wide shared state behind Synchronized lazy
// cells instead of raw mutable globals: each value is built once, on first
// use, with a happens-before edge to every later reader.
package singleton

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/on-the-ground/lazy_ive_go/lazy"
	"go.uber.org/zap"
)

var logger = lazy.New(func() (*zap.Logger, error) {
	return zap.NewProduction()
})

// Logger returns the process-wide zap logger, building it on first use.
// Every caller gets the same instance.
func Logger() *zap.Logger {
	return logger.MustValue()
}

var processID = lazy.New(uuid.NewRandom)

// ProcessID returns a stable random identity for this process, generated on
// first use.
func ProcessID() uuid.UUID {
	return processID.MustValue()
}

var sharedRand = lazy.New(func() (*rand.Rand, error) {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), nil
})

// Rand returns the shared pseudo-random engine, seeded once on first use.
// The engine itself is not goroutine-safe: callers that share it across
// goroutines must synchronize their own access.
func Rand() *rand.Rand {
	return sharedRand.MustValue()
}
