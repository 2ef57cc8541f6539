// Package memo memoizes fallible functions through a group of lazy cells.
//
// Unlike a plain result table, memoization here inherits the lazy contract:
// each distinct input is computed at most once under Synchronized, and a
// failed computation is retried on the next call instead of caching the
// error.
//
// WARNING: only memoize pure functions. A function that depends on time,
// I/O or mutable state will serve stale results forever.
package memo

import (
	"fmt"
	"strings"

	"github.com/on-the-ground/lazy_ive_go/group"
	"github.com/on-the-ground/lazy_ive_go/lazy"
)

// ComparableOrStringer is a memoizable argument: either usable as a map key
// directly or rendered through fmt.Stringer.
type ComparableOrStringer any

// I1O1 memoizes a single-argument fallible function. numShards bounds lock
// contention across distinct inputs; mode defaults to Synchronized.
func I1O1[I1 ComparableOrStringer, O1 any](
	fn func(I1) (O1, error),
	numShards int,
	mode ...lazy.ThreadSafetyMode,
) func(I1) (O1, error) {
	memoized := memoize(
		func(args ...ComparableOrStringer) (O1, error) {
			return fn(args[0].(I1))
		},
		numShards,
		mode...,
	)
	return func(i1 I1) (O1, error) {
		return memoized(i1)
	}
}

// I2O1 memoizes a two-argument fallible function.
func I2O1[I1, I2 ComparableOrStringer, O1 any](
	fn func(I1, I2) (O1, error),
	numShards int,
	mode ...lazy.ThreadSafetyMode,
) func(I1, I2) (O1, error) {
	memoized := memoize(
		func(args ...ComparableOrStringer) (O1, error) {
			return fn(args[0].(I1), args[1].(I2))
		},
		numShards,
		mode...,
	)
	return func(i1 I1, i2 I2) (O1, error) {
		return memoized(i1, i2)
	}
}

// I3O1 memoizes a three-argument fallible function.
func I3O1[I1, I2, I3 ComparableOrStringer, O1 any](
	fn func(I1, I2, I3) (O1, error),
	numShards int,
	mode ...lazy.ThreadSafetyMode,
) func(I1, I2, I3) (O1, error) {
	memoized := memoize(
		func(args ...ComparableOrStringer) (O1, error) {
			return fn(args[0].(I1), args[1].(I2), args[2].(I3))
		},
		numShards,
		mode...,
	)
	return func(i1 I1, i2 I2, i3 I3) (O1, error) {
		return memoized(i1, i2, i3)
	}
}

func memoize[O any](
	fn func(...ComparableOrStringer) (O, error),
	numShards int,
	mode ...lazy.ThreadSafetyMode,
) func(...ComparableOrStringer) (O, error) {
	cells := group.New[O](numShards, mode...)
	return func(args ...ComparableOrStringer) (O, error) {
		return cells.Value(memoKey(args...), func() (O, error) {
			return fn(args...)
		})
	}
}

// memoKey renders the argument tuple as the cell key. Stringer arguments use
// their own rendering; everything else goes through %#v so that values of
// different types cannot collide on the same text.
func memoKey(args ...ComparableOrStringer) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(0x1f) // unit separator, keeps "a","bc" apart from "ab","c"
		}
		if stringer, ok := arg.(fmt.Stringer); ok {
			sb.WriteString(stringer.String())
			continue
		}
		fmt.Fprintf(&sb, "%#v", arg)
	}
	return sb.String()
}
