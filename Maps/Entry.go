package Maps

import (
	"cmp"

	"github.com/emirpasic/gods/utils"
)

// Entry is a key value pair living inside a map. SetValue writes through to the map.
type Entry[K, V any] interface {
	Key() K
	Value() V
	SetValue(V) V
}

// ComparingByKey orders entries by the natural order of their keys.
func ComparingByKey[K cmp.Ordered, V any]() func(a, b Entry[K, V]) int {
	return func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Key(), b.Key())
	}
}

// ComparingByKeyFunc orders entries by their keys using c.
func ComparingByKeyFunc[K, V any](c func(a, b K) int) func(a, b Entry[K, V]) int {
	return func(a, b Entry[K, V]) int {
		return c(a.Key(), b.Key())
	}
}

// ComparingByValue orders entries by the natural order of their values.
func ComparingByValue[K any, V cmp.Ordered]() func(a, b Entry[K, V]) int {
	return func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Value(), b.Value())
	}
}

// ComparingByValueFunc orders entries by their values using c.
func ComparingByValueFunc[K, V any](c func(a, b V) int) func(a, b Entry[K, V]) int {
	return func(a, b Entry[K, V]) int {
		return c(a.Value(), b.Value())
	}
}

// OrderFromGods turns a gods comparator into a typed ordering usable as a tie-break in tree buckets.
func OrderFromGods[K any](c utils.Comparator) func(a, b K) int {
	return func(a, b K) int {
		return c(a, b)
	}
}
