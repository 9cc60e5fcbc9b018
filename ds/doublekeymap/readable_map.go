package doublekeymap

import (
	"fmt"

	"github.com/yorma/commons/ds/orderedmap"
	"github.com/yorma/commons/ds/shrinkingmap"
)

// ReadableMap is the read-only view on a map that is owned by a DoubleKeyMap (i.e. the sub-map of a primary key).
// Modifications have to go through the methods of the DoubleKeyMap.
type ReadableMap[K comparable, V any] interface {
	// Get returns the value mapped to the given key and a flag that indicates if it exists.
	Get(key K) (value V, exists bool)

	// Has returns true if the given key exists.
	Has(key K) bool

	// ForEach calls the consumer for every entry. Returning false from the consumer aborts the iteration.
	ForEach(consumer func(key K, value V) bool) bool

	// Keys returns all keys.
	Keys() []K

	// Values returns all values.
	Values() []V

	// Size returns the amount of entries.
	Size() int

	// IsEmpty returns true if the map has no entries.
	IsEmpty() bool
}

// writeableMap is the store that backs both levels of a DoubleKeyMap.
type writeableMap[K comparable, V any] interface {
	ReadableMap[K, V]

	Set(key K, value V) (previousValue V, previousValueExisted bool)
	Delete(key K) (deletedValue V, deleted bool)
	Clear()
}

// newStore creates an insertion-ordered store if ordered is set and a hash based one otherwise.
func newStore[K comparable, V any](ordered bool, capacity int) writeableMap[K, V] {
	if ordered {
		return orderedmap.New[K, V](capacity)
	}

	return shrinkingmap.New[K, V](shrinkingmap.WithInitialCapacity(capacity))
}

// cloneStore returns a copy of the store that keeps its ordering and options.
func cloneStore[K comparable, V any](store writeableMap[K, V]) writeableMap[K, V] {
	switch typedStore := store.(type) {
	case *orderedmap.OrderedMap[K, V]:
		return typedStore.Clone()
	case *shrinkingmap.ShrinkingMap[K, V]:
		return typedStore.Clone()
	default:
		panic(fmt.Sprintf("unsupported store type %T", store))
	}
}

// code contract (make sure the types implement all required methods).
var (
	_ writeableMap[int, int] = new(orderedmap.OrderedMap[int, int])
	_ writeableMap[int, int] = new(shrinkingmap.ShrinkingMap[int, int])
)
