// Package doublekeymap provides a map that is addressed by a pair of keys and groups its values by the first of them.
//
// A DoubleKeyMap is not safe for concurrent use.
package doublekeymap

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/yorma/commons/collection"
)

var (
	// ErrNilKey is the cause of the panic raised when a nil key is used to store or look up a value.
	ErrNilKey = ierrors.New("key must not be nil")

	// ErrNilComparator is the cause of the panic raised when sorting is requested without a comparator.
	ErrNilComparator = ierrors.New("comparator must not be nil")
)

// region DoubleKeyMap /////////////////////////////////////////////////////////////////////////////////////////////////

// DoubleKeyMap maps a pair of a primary and a secondary key to a value. Internally it keeps a sub-map from secondary
// keys to values for every primary key.
//
// If the map is ordered, both the primary keys and the secondary keys of every sub-map are iterated in insertion order.
// Otherwise the iteration order is unspecified. The zero value is an empty unordered map.
type DoubleKeyMap[K1, K2, V comparable] struct {
	primary writeableMap[K1, writeableMap[K2, V]]
	ordered bool
}

// New returns an unordered DoubleKeyMap. The optional capacity is a size hint for the amount of primary keys.
func New[K1, K2, V comparable](optCapacity ...int) *DoubleKeyMap[K1, K2, V] {
	return NewWithMode[K1, K2, V](false, optCapacity...)
}

// NewOrdered returns a DoubleKeyMap that keeps the insertion order of primary and secondary keys.
func NewOrdered[K1, K2, V comparable](optCapacity ...int) *DoubleKeyMap[K1, K2, V] {
	return NewWithMode[K1, K2, V](true, optCapacity...)
}

// NewWithMode returns a DoubleKeyMap with the given ordering mode.
func NewWithMode[K1, K2, V comparable](ordered bool, optCapacity ...int) *DoubleKeyMap[K1, K2, V] {
	capacity := 0
	if len(optCapacity) > 0 {
		capacity = optCapacity[0]
	}

	return &DoubleKeyMap[K1, K2, V]{
		primary: newStore[K1, writeableMap[K2, V]](ordered, capacity),
		ordered: ordered,
	}
}

// IsOrdered returns true if the map keeps the insertion order of its keys.
func (m *DoubleKeyMap[K1, K2, V]) IsOrdered() bool {
	return m.ordered
}

// Put maps the pair of keys to the value and returns true if a previous value was replaced.
func (m *DoubleKeyMap[K1, K2, V]) Put(primaryKey K1, secondaryKey K2, value V) (replaced bool) {
	assertKey(primaryKey, "primary key")
	assertKey(secondaryKey, "secondary key")

	return lo.Return2(m.subMapOrCreate(primaryKey).Set(secondaryKey, value))
}

// PutIfAbsent maps the pair of keys to the value if the pair is not mapped yet and returns true if it was inserted.
func (m *DoubleKeyMap[K1, K2, V]) PutIfAbsent(primaryKey K1, secondaryKey K2, value V) (inserted bool) {
	assertKey(primaryKey, "primary key")
	assertKey(secondaryKey, "secondary key")

	if subMap, exists := m.store().Get(primaryKey); exists && subMap.Has(secondaryKey) {
		return false
	}

	m.subMapOrCreate(primaryKey).Set(secondaryKey, value)

	return true
}

// PutAll copies all entries of the given map into the sub-map of the primary key. Entries of subMap replace existing
// ones. The primary key is registered even if subMap is empty.
func (m *DoubleKeyMap[K1, K2, V]) PutAll(primaryKey K1, subMap ReadableMap[K2, V]) {
	assertKey(primaryKey, "primary key")

	if subMap == nil {
		m.subMapOrCreate(primaryKey)

		return
	}

	// validate everything before the first write
	subMap.ForEach(func(secondaryKey K2, _ V) bool {
		assertKey(secondaryKey, "secondary key")

		return true
	})

	target := m.subMapOrCreate(primaryKey)
	subMap.ForEach(func(secondaryKey K2, value V) bool {
		target.Set(secondaryKey, value)

		return true
	})
}

// Merge copies all pairs of other into the map, replacing existing values.
func (m *DoubleKeyMap[K1, K2, V]) Merge(other *DoubleKeyMap[K1, K2, V]) {
	if other == nil || other == m {
		return
	}

	other.ForEach(func(primaryKey K1, secondaryKey K2, value V) bool {
		m.subMapOrCreate(primaryKey).Set(secondaryKey, value)

		return true
	})
}

// MergeIfAbsent copies the pairs of other that are not mapped yet into the map.
func (m *DoubleKeyMap[K1, K2, V]) MergeIfAbsent(other *DoubleKeyMap[K1, K2, V]) {
	if other == nil || other == m {
		return
	}

	other.ForEach(func(primaryKey K1, secondaryKey K2, value V) bool {
		if subMap := m.subMapOrCreate(primaryKey); !subMap.Has(secondaryKey) {
			subMap.Set(secondaryKey, value)
		}

		return true
	})
}

// Get returns the value mapped to the pair of keys and a flag that indicates if it exists.
func (m *DoubleKeyMap[K1, K2, V]) Get(primaryKey K1, secondaryKey K2) (value V, exists bool) {
	assertKey(primaryKey, "primary key")
	assertKey(secondaryKey, "secondary key")

	subMap, exists := m.store().Get(primaryKey)
	if !exists {
		return value, false
	}

	return subMap.Get(secondaryKey)
}

// GetAll returns the sub-map of the primary key. The returned map is a live view and must not be modified.
func (m *DoubleKeyMap[K1, K2, V]) GetAll(primaryKey K1) (subMap ReadableMap[K2, V], exists bool) {
	assertKey(primaryKey, "primary key")

	if subMap, exists = m.store().Get(primaryKey); !exists {
		return nil, false
	}

	return subMap, true
}

// Delete removes the pair of keys and returns the value that was mapped to it. The sub-map of the primary key stays
// registered even if it becomes empty.
func (m *DoubleKeyMap[K1, K2, V]) Delete(primaryKey K1, secondaryKey K2) (deletedValue V, deleted bool) {
	subMap, exists := m.store().Get(primaryKey)
	if !exists {
		return deletedValue, false
	}

	return subMap.Delete(secondaryKey)
}

// DeleteAll removes the primary key and returns its sub-map.
func (m *DoubleKeyMap[K1, K2, V]) DeleteAll(primaryKey K1) (subMap ReadableMap[K2, V], deleted bool) {
	deletedSubMap, deleted := m.store().Delete(primaryKey)
	if !deleted {
		return nil, false
	}

	return deletedSubMap, true
}

// Has returns true if the pair of keys is mapped.
func (m *DoubleKeyMap[K1, K2, V]) Has(primaryKey K1, secondaryKey K2) bool {
	assertKey(primaryKey, "primary key")
	assertKey(secondaryKey, "secondary key")

	subMap, exists := m.store().Get(primaryKey)

	return exists && subMap.Has(secondaryKey)
}

// HasPrimaryKey returns true if the primary key is registered.
func (m *DoubleKeyMap[K1, K2, V]) HasPrimaryKey(primaryKey K1) bool {
	assertKey(primaryKey, "primary key")

	return m.store().Has(primaryKey)
}

// HasSecondaryKey returns true if any sub-map contains the secondary key.
func (m *DoubleKeyMap[K1, K2, V]) HasSecondaryKey(secondaryKey K2) bool {
	return !m.store().ForEach(func(_ K1, subMap writeableMap[K2, V]) bool {
		return !subMap.Has(secondaryKey)
	})
}

// HasValue returns true if the value is mapped to any pair of keys.
func (m *DoubleKeyMap[K1, K2, V]) HasValue(value V) bool {
	return !m.ForEach(func(_ K1, _ K2, existingValue V) bool {
		return existingValue != value
	})
}

// Size returns the amount of mapped pairs of keys.
func (m *DoubleKeyMap[K1, K2, V]) Size() (size int) {
	m.store().ForEach(func(_ K1, subMap writeableMap[K2, V]) bool {
		size += subMap.Size()

		return true
	})

	return size
}

// PrimarySize returns the amount of registered primary keys.
func (m *DoubleKeyMap[K1, K2, V]) PrimarySize() int {
	return m.store().Size()
}

// IsEmpty returns true if no pair of keys is mapped.
func (m *DoubleKeyMap[K1, K2, V]) IsEmpty() bool {
	return m.Size() == 0
}

// Keys returns the secondary keys of every primary key. The result follows the ordering mode of the map.
func (m *DoubleKeyMap[K1, K2, V]) Keys() ReadableMap[K1, []K2] {
	keys := newStore[K1, []K2](m.ordered, m.store().Size())
	m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		keys.Set(primaryKey, subMap.Keys())

		return true
	})

	return keys
}

// PrimaryKeys returns the registered primary keys.
func (m *DoubleKeyMap[K1, K2, V]) PrimaryKeys() []K1 {
	return m.store().Keys()
}

// Values returns the values of all sub-maps.
func (m *DoubleKeyMap[K1, K2, V]) Values() []V {
	values := make([]V, 0, m.Size())
	m.ForEach(func(_ K1, _ K2, value V) bool {
		values = append(values, value)

		return true
	})

	return values
}

// SortedValues returns the values of all sub-maps sorted by the comparator.
func (m *DoubleKeyMap[K1, K2, V]) SortedValues(comparator func(a, b V) int) []V {
	assertComparator(comparator)

	return sortValues(m.Values(), comparator)
}

// ValuesOf returns the values of the sub-map of the primary key. It returns an empty slice if the primary key is
// unknown.
func (m *DoubleKeyMap[K1, K2, V]) ValuesOf(primaryKey K1) []V {
	subMap, exists := m.store().Get(primaryKey)
	if !exists {
		return make([]V, 0)
	}

	return subMap.Values()
}

// SortedValuesOf returns the values of the sub-map of the primary key sorted by the comparator.
func (m *DoubleKeyMap[K1, K2, V]) SortedValuesOf(primaryKey K1, comparator func(a, b V) int) []V {
	assertComparator(comparator)

	return sortValues(m.ValuesOf(primaryKey), comparator)
}

// ForEach calls the consumer once for every mapped pair of keys. Returning false from the consumer aborts the
// iteration.
func (m *DoubleKeyMap[K1, K2, V]) ForEach(consumer func(primaryKey K1, secondaryKey K2, value V) bool) bool {
	return m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		return subMap.ForEach(func(secondaryKey K2, value V) bool {
			return consumer(primaryKey, secondaryKey, value)
		})
	})
}

// ForEachSubMap calls the consumer once for every primary key. Returning false from the consumer aborts the iteration.
func (m *DoubleKeyMap[K1, K2, V]) ForEachSubMap(consumer func(primaryKey K1, subMap ReadableMap[K2, V]) bool) bool {
	return m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		return consumer(primaryKey, subMap)
	})
}

// All returns a sequence over the primary keys and their sub-maps. Every call returns a new sequence.
func (m *DoubleKeyMap[K1, K2, V]) All() iter.Seq2[K1, ReadableMap[K2, V]] {
	return func(yield func(K1, ReadableMap[K2, V]) bool) {
		m.ForEachSubMap(yield)
	}
}

// Equals returns true if both maps contain the same pairs of keys mapped to the same values. The ordering mode and the
// insertion order are ignored.
func (m *DoubleKeyMap[K1, K2, V]) Equals(other *DoubleKeyMap[K1, K2, V]) bool {
	if m == other {
		return true
	}

	if other == nil || m.store().Size() != other.store().Size() {
		return false
	}

	return m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		otherSubMap, exists := other.store().Get(primaryKey)
		if !exists || subMap.Size() != otherSubMap.Size() {
			return false
		}

		return subMap.ForEach(func(secondaryKey K2, value V) bool {
			otherValue, exists := otherSubMap.Get(secondaryKey)

			return exists && otherValue == value
		})
	})
}

// Clear removes all primary keys.
func (m *DoubleKeyMap[K1, K2, V]) Clear() {
	m.store().Clear()
}

// Clone returns a copy of the map with the same ordering mode. Values are copied shallowly.
func (m *DoubleKeyMap[K1, K2, V]) Clone() *DoubleKeyMap[K1, K2, V] {
	cloned := &DoubleKeyMap[K1, K2, V]{
		primary: cloneStore(m.store()),
		ordered: m.ordered,
	}

	// replacing the values of existing keys keeps their position
	cloned.primary.ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		cloned.primary.Set(primaryKey, cloneStore(subMap))

		return true
	})

	return cloned
}

// ToMap returns the content of the map as nested Go maps.
func (m *DoubleKeyMap[K1, K2, V]) ToMap() map[K1]map[K2]V {
	result := make(map[K1]map[K2]V, m.store().Size())
	m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		entries := make(map[K2]V, subMap.Size())
		subMap.ForEach(func(secondaryKey K2, value V) bool {
			entries[secondaryKey] = value

			return true
		})
		result[primaryKey] = entries

		return true
	})

	return result
}

// Batches splits the pairs of the map (in iteration order) into maps of at most size pairs each.
func (m *DoubleKeyMap[K1, K2, V]) Batches(size int) ([]*DoubleKeyMap[K1, K2, V], error) {
	pairs := make([]*pair[K1, K2, V], 0, m.Size())
	m.ForEach(func(primaryKey K1, secondaryKey K2, value V) bool {
		pairs = append(pairs, &pair[K1, K2, V]{primaryKey, secondaryKey, value})

		return true
	})

	groups, err := collection.Split(pairs, size)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to split DoubleKeyMap into batches")
	}

	return lo.Map(groups, func(group []*pair[K1, K2, V]) *DoubleKeyMap[K1, K2, V] {
		batch := NewWithMode[K1, K2, V](m.ordered)
		for _, p := range group {
			batch.subMapOrCreate(p.primaryKey).Set(p.secondaryKey, p.value)
		}

		return batch
	}), nil
}

// String returns a human-readable version of the map.
func (m *DoubleKeyMap[K1, K2, V]) String() string {
	groups := make([]string, 0, m.store().Size())
	m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		entries := make([]string, 0, subMap.Size())
		subMap.ForEach(func(secondaryKey K2, value V) bool {
			entries = append(entries, fmt.Sprintf("%v: %v", secondaryKey, value))

			return true
		})
		groups = append(groups, fmt.Sprintf("%v: {%s}", primaryKey, strings.Join(entries, ", ")))

		return true
	})

	return stringify.Struct("DoubleKeyMap",
		stringify.NewStructField("ordered", m.ordered),
		stringify.NewStructField("size", m.Size()),
		stringify.NewStructField("entries", groups),
	)
}

// store returns the primary store and creates it if the map is a zero value.
func (m *DoubleKeyMap[K1, K2, V]) store() writeableMap[K1, writeableMap[K2, V]] {
	if m.primary == nil {
		m.primary = newStore[K1, writeableMap[K2, V]](m.ordered, 0)
	}

	return m.primary
}

// subMapOrCreate returns the sub-map of the primary key and registers an empty one if it does not exist yet.
func (m *DoubleKeyMap[K1, K2, V]) subMapOrCreate(primaryKey K1) writeableMap[K2, V] {
	if subMap, exists := m.store().Get(primaryKey); exists {
		return subMap
	}

	subMap := newStore[K2, V](m.ordered, 0)
	m.store().Set(primaryKey, subMap)

	return subMap
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

// pair is a single mapping of a DoubleKeyMap.
type pair[K1, K2, V any] struct {
	primaryKey   K1
	secondaryKey K2
	value        V
}

func assertComparator[V any](comparator func(a, b V) int) {
	if comparator == nil {
		panic(ierrors.Wrap(ErrNilComparator, "failed to sort values"))
	}
}

// sortValues sorts the values in place using the comparator. Equal values keep their order.
func sortValues[V any](values []V, comparator func(a, b V) int) []V {
	slices.SortStableFunc(values, comparator)

	return values
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
