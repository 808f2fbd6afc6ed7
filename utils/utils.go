// Package utils implements generic helpers shared across the library.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Alias1D returns true if x and y share the same base array.
// Taken from http://golang.org/src/pkg/math/big/nat.go#L340 .
func Alias1D[V any](x, y []V) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

// AllDistinct returns true if all elements in s are distinct.
func AllDistinct[V comparable](s []V) bool {
	m := make(map[V]struct{}, len(s))
	for _, si := range s {
		if _, exists := m[si]; exists {
			return false
		}
		m[si] = struct{}{}
	}
	return true
}

// MaxSlice returns the maximum value in the slice.
func MaxSlice[T constraints.Ordered](slice []T) (max T) {
	for _, v := range slice {
		if v > max {
			max = v
		}
	}
	return
}

// MinSlice returns the minimum value in the slice.
func MinSlice[T constraints.Ordered](slice []T) (min T) {
	if len(slice) == 0 {
		return
	}
	min = slice[0]
	for _, v := range slice[1:] {
		if v < min {
			min = v
		}
	}
	return
}

// RotateSliceNew returns a copy of s rotated by k positions to the left.
func RotateSliceNew[V any](s []V, k int) (r []V) {
	r = make([]V, len(s))
	if len(s) == 0 {
		return
	}
	k %= len(s)
	if k < 0 {
		k += len(s)
	}
	copy(r[:len(s)-k], s[k:])
	copy(r[len(s)-k:], s[:k])
	return
}
