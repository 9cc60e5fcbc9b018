package doublekeymap_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"

	"github.com/yorma/commons/collection"
	"github.com/yorma/commons/ds/doublekeymap"
	"github.com/yorma/commons/ds/orderedmap"
)

func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()

	defer func() {
		err, isError := recover().(error)
		require.True(t, isError, "expected a panic with an error")
		require.True(t, ierrors.Is(err, target), "expected %v, got %v", target, err)
	}()

	f()
}

func TestDoubleKeyMap_Scenario(t *testing.T) {
	m := doublekeymap.New[string, string, int]()
	require.False(t, m.Put("A", "x", 1))
	require.False(t, m.Put("A", "y", 2))
	require.False(t, m.Put("B", "x", 3))

	require.Equal(t, 3, m.Size())
	require.Equal(t, 2, m.PrimarySize())

	subMap, exists := m.GetAll("A")
	require.True(t, exists)
	require.Equal(t, 2, subMap.Size())

	require.ElementsMatch(t, []int{1, 2}, m.ValuesOf("A"))
	require.True(t, m.HasSecondaryKey("x"))
	require.False(t, m.HasSecondaryKey("z"))

	removed, deleted := m.DeleteAll("A")
	require.True(t, deleted)
	require.Equal(t, 2, removed.Size())
	require.Equal(t, 1, m.Size())
	require.False(t, m.HasPrimaryKey("A"))
}

func TestDoubleKeyMap_SizeIsSumOfSubMaps(t *testing.T) {
	for _, ordered := range []bool{false, true} {
		m := doublekeymap.NewWithMode[int, int, int](ordered, 8)
		for i := 0; i < 10; i++ {
			for j := 0; j <= i; j++ {
				m.Put(i, j, i*j)
			}
		}
		m.Delete(9, 0)
		m.DeleteAll(3)
		m.Delete(42, 1)

		sum := 0
		m.ForEachSubMap(func(_ int, subMap doublekeymap.ReadableMap[int, int]) bool {
			sum += subMap.Size()

			return true
		})

		require.Equal(t, sum, m.Size())
		require.Equal(t, 50, m.Size())
		require.Equal(t, ordered, m.IsOrdered())
	}
}

func TestDoubleKeyMap_PutGetDelete(t *testing.T) {
	m := doublekeymap.New[string, string, int]()
	require.True(t, m.IsEmpty())

	require.False(t, m.Put("a", "b", 1))
	value, exists := m.Get("a", "b")
	require.True(t, exists)
	require.Equal(t, 1, value)

	// repeating the put replaces the value but does not grow the map
	require.True(t, m.Put("a", "b", 1))
	require.Equal(t, 1, m.Size())
	require.True(t, m.Has("a", "b"))

	require.True(t, m.Put("a", "b", 2))
	value, _ = m.Get("a", "b")
	require.Equal(t, 2, value)

	deletedValue, deleted := m.Delete("a", "b")
	require.True(t, deleted)
	require.Equal(t, 2, deletedValue)

	_, exists = m.Get("a", "b")
	require.False(t, exists)
	require.False(t, m.Has("a", "b"))

	// the emptied sub-map stays registered
	require.True(t, m.HasPrimaryKey("a"))
	require.Equal(t, 0, m.Size())
	require.True(t, m.IsEmpty())
	require.Equal(t, 1, m.PrimarySize())

	_, deleted = m.Delete("a", "b")
	require.False(t, deleted)
}

func TestDoubleKeyMap_AbsentKeys(t *testing.T) {
	m := doublekeymap.New[string, string, int]()
	m.Put("present", "k2", 1)

	value, exists := m.Get("missing", "k2")
	require.False(t, exists)
	require.Zero(t, value)

	subMap, exists := m.GetAll("missing")
	require.False(t, exists)
	require.Nil(t, subMap)

	_, deleted := m.Delete("missing", "k2")
	require.False(t, deleted)

	_, deleted = m.DeleteAll("missing")
	require.False(t, deleted)

	require.False(t, m.Has("missing", "k2"))
	require.NotNil(t, m.ValuesOf("missing"))
	require.Empty(t, m.ValuesOf("missing"))
	require.Empty(t, m.SortedValuesOf("missing", lo.Comparator[int]))
	require.Equal(t, 1, m.Size())
}

func TestDoubleKeyMap_PutIfAbsent(t *testing.T) {
	m := doublekeymap.NewOrdered[string, int, string]()

	require.True(t, m.PutIfAbsent("a", 1, "first"))
	require.False(t, m.PutIfAbsent("a", 1, "second"))
	require.True(t, m.PutIfAbsent("a", 2, "third"))

	value, _ := m.Get("a", 1)
	require.Equal(t, "first", value)
	require.Equal(t, []string{"first", "third"}, m.ValuesOf("a"))
}

func TestDoubleKeyMap_PutAll(t *testing.T) {
	source := doublekeymap.NewOrdered[string, string, int]()
	source.Put("src", "b", 20)
	source.Put("src", "c", 30)
	subMap, _ := source.GetAll("src")

	m := doublekeymap.NewOrdered[string, string, int]()
	m.Put("a", "a", 1)
	m.Put("a", "b", 2)

	m.PutAll("a", subMap)
	require.Equal(t, map[string]int{"a": 1, "b": 20, "c": 30}, m.ToMap()["a"])
	require.Equal(t, []int{1, 20, 30}, m.ValuesOf("a"))

	// installing into an absent primary key copies the entries
	m.PutAll("new", subMap)
	require.Equal(t, map[string]int{"b": 20, "c": 30}, m.ToMap()["new"])

	m.Put("new", "d", 40)
	require.False(t, source.Has("src", "d"))

	m.PutAll("empty", nil)
	require.True(t, m.HasPrimaryKey("empty"))
	require.Equal(t, 6, m.Size())
}

func TestDoubleKeyMap_Merge(t *testing.T) {
	newA := func() *doublekeymap.DoubleKeyMap[int, int, string] {
		a := doublekeymap.New[int, int, string]()
		a.Put(1, 1, "a")
		a.Put(2, 1, "b")

		return a
	}

	b := doublekeymap.New[int, int, string]()
	b.Put(1, 1, "x")
	b.Put(3, 1, "c")

	merged := newA()
	merged.Merge(b)
	require.Equal(t, map[int]map[int]string{
		1: {1: "x"},
		2: {1: "b"},
		3: {1: "c"},
	}, merged.ToMap())

	mergedIfAbsent := newA()
	mergedIfAbsent.MergeIfAbsent(b)
	require.Equal(t, map[int]map[int]string{
		1: {1: "a"},
		2: {1: "b"},
		3: {1: "c"},
	}, mergedIfAbsent.ToMap())

	// merging copies the pairs, the source stays independent
	merged.Put(3, 2, "d")
	require.False(t, b.Has(3, 2))

	merged.Merge(nil)
	merged.Merge(merged)
	require.Equal(t, 4, merged.Size())
}

func TestDoubleKeyMap_MergeKeepsOrder(t *testing.T) {
	m := doublekeymap.NewOrdered[int, string, int]()
	m.Put(5, "e", 1)

	other := doublekeymap.NewOrdered[int, string, int]()
	other.Put(2, "b", 2)
	other.Put(5, "a", 3)
	other.Put(1, "c", 4)

	m.Merge(other)
	require.Equal(t, []int{5, 2, 1}, m.PrimaryKeys())

	keys, exists := m.Keys().Get(5)
	require.True(t, exists)
	require.Equal(t, []string{"e", "a"}, keys)
}

func TestDoubleKeyMap_Ordering(t *testing.T) {
	m := doublekeymap.NewOrdered[int, string, string]()
	m.Put(3, "z", "c")
	m.Put(1, "y", "a")
	m.Put(2, "x", "b")
	m.Put(3, "a", "d")

	require.Equal(t, []int{3, 1, 2}, m.PrimaryKeys())
	require.Equal(t, []string{"c", "d", "a", "b"}, m.Values())

	primaryKeys := make([]int, 0)
	for primaryKey := range m.All() {
		primaryKeys = append(primaryKeys, primaryKey)
	}
	require.Equal(t, []int{3, 1, 2}, primaryKeys)

	keys := m.Keys()
	require.Equal(t, []int{3, 1, 2}, keys.Keys())
	require.Equal(t, [][]string{{"z", "a"}, {"y"}, {"x"}}, keys.Values())

	// replacing keeps the position
	m.Put(1, "y", "A")
	require.Equal(t, []string{"c", "d", "A", "b"}, m.Values())

	type triple struct {
		primaryKey   int
		secondaryKey string
		value        string
	}
	triples := make([]triple, 0)
	m.ForEach(func(primaryKey int, secondaryKey string, value string) bool {
		triples = append(triples, triple{primaryKey, secondaryKey, value})

		return true
	})
	require.Equal(t, []triple{{3, "z", "c"}, {3, "a", "d"}, {1, "y", "A"}, {2, "x", "b"}}, triples)
}

func TestDoubleKeyMap_Iteration(t *testing.T) {
	m := doublekeymap.New[int, int, int]()
	for i := 0; i < 5; i++ {
		m.Put(i, i, i)
	}

	visited := 0
	require.False(t, m.ForEach(func(int, int, int) bool {
		visited++

		return visited < 2
	}))
	require.Equal(t, 2, visited)

	visited = 0
	require.False(t, m.ForEachSubMap(func(int, doublekeymap.ReadableMap[int, int]) bool {
		visited++

		return false
	}))
	require.Equal(t, 1, visited)

	// every call of All returns a new sequence
	sequence := m.All()
	for range 2 {
		count := 0
		for _, subMap := range sequence {
			count += subMap.Size()
		}
		require.Equal(t, 5, count)
	}

	for range m.All() {
		break
	}

	require.True(t, doublekeymap.New[int, int, int]().ForEach(func(int, int, int) bool {
		require.FailNow(t, "empty map must not call the consumer")

		return true
	}))
}

func TestDoubleKeyMap_HasValue(t *testing.T) {
	m := doublekeymap.New[string, string, string]()
	m.Put("a", "b", "c")
	m.Put("d", "e", "f")

	require.True(t, m.HasValue("c"))
	require.True(t, m.HasValue("f"))
	require.False(t, m.HasValue("b"))
	require.False(t, doublekeymap.New[string, string, string]().HasValue(""))
}

func TestDoubleKeyMap_SortedValues(t *testing.T) {
	m := doublekeymap.New[string, int, int]()
	m.Put("a", 1, 30)
	m.Put("a", 2, 10)
	m.Put("b", 1, 20)
	m.Put("b", 2, 5)

	require.Equal(t, []int{5, 10, 20, 30}, m.SortedValues(lo.Comparator[int]))
	require.Equal(t, []int{30, 10}, m.SortedValuesOf("a", func(a, b int) int {
		return lo.Comparator(b, a)
	}))
	require.ElementsMatch(t, []int{5, 10, 20, 30}, m.Values())

	ordered := doublekeymap.NewOrdered[string, int, int]()
	ordered.Put("a", 1, 3)
	ordered.Put("a", 2, 1)
	ordered.Put("b", 1, 2)

	// equal values keep their iteration order
	require.Equal(t, []int{3, 1, 2}, ordered.SortedValues(func(int, int) int { return 0 }))

	requirePanicsWith(t, doublekeymap.ErrNilComparator, func() {
		m.SortedValues(nil)
	})

	requirePanicsWith(t, doublekeymap.ErrNilComparator, func() {
		m.SortedValuesOf("a", nil)
	})
}

func TestDoubleKeyMap_SortedValuesWithNilValues(t *testing.T) {
	one, two := 1, 2

	m := doublekeymap.NewOrdered[string, string, *int]()
	m.Put("a", "a", &two)
	m.Put("a", "b", nil)
	m.Put("a", "c", &one)

	sorted := m.SortedValues(func(a, b *int) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		case b == nil:
			return 1
		default:
			return lo.Comparator(*a, *b)
		}
	})

	require.Equal(t, []*int{nil, &one, &two}, sorted)
}

func TestDoubleKeyMap_Equals(t *testing.T) {
	ordered := doublekeymap.NewOrdered[int, int, string]()
	ordered.Put(1, 1, "a")
	ordered.Put(1, 2, "b")
	ordered.Put(2, 1, "c")

	unordered := doublekeymap.New[int, int, string]()
	unordered.Put(2, 1, "c")
	unordered.Put(1, 2, "b")
	unordered.Put(1, 1, "a")

	require.True(t, ordered.Equals(unordered))
	require.True(t, unordered.Equals(ordered))
	require.True(t, ordered.Equals(ordered))
	require.False(t, ordered.Equals(nil))

	unordered.Put(1, 1, "x")
	require.False(t, ordered.Equals(unordered))
	unordered.Put(1, 1, "a")

	unordered.Put(3, 1, "d")
	require.False(t, ordered.Equals(unordered))
	unordered.DeleteAll(3)
	require.True(t, ordered.Equals(unordered))

	// an empty sub-map is still a primary key
	unordered.PutAll(4, nil)
	require.False(t, ordered.Equals(unordered))
	unordered.DeleteAll(4)

	unordered.Delete(1, 2)
	unordered.Put(1, 3, "b")
	require.False(t, ordered.Equals(unordered))
}

func TestDoubleKeyMap_CloneAndClear(t *testing.T) {
	m := doublekeymap.NewOrdered[string, string, int]()
	m.Put("b", "x", 1)
	m.Put("a", "y", 2)
	m.Put("b", "w", 4)

	cloned := m.Clone()
	require.True(t, cloned.IsOrdered())
	require.True(t, m.Equals(cloned))
	require.Equal(t, m.PrimaryKeys(), cloned.PrimaryKeys())
	require.Equal(t, m.Values(), cloned.Values())

	m.Delete("b", "w")
	require.True(t, cloned.Has("b", "w"))

	cloned.Put("b", "z", 3)
	require.False(t, m.Has("b", "z"))

	m.Clear()
	require.True(t, m.IsEmpty())
	require.Equal(t, 0, m.PrimarySize())
	require.Equal(t, 4, cloned.Size())

	m.Put("c", "c", 3)
	require.Equal(t, []string{"c"}, m.PrimaryKeys())

	unordered := doublekeymap.New[int, int, int]()
	unordered.Put(1, 1, 1)

	clonedUnordered := unordered.Clone()
	require.False(t, clonedUnordered.IsOrdered())
	clonedUnordered.Delete(1, 1)
	clonedUnordered.Put(2, 2, 2)
	require.True(t, unordered.Has(1, 1))
	require.False(t, unordered.HasPrimaryKey(2))
}

func TestDoubleKeyMap_ZeroValue(t *testing.T) {
	var m doublekeymap.DoubleKeyMap[string, string, int]
	require.False(t, m.IsOrdered())
	require.True(t, m.IsEmpty())
	require.False(t, m.Has("a", "b"))
	require.Empty(t, m.Values())
	require.True(t, m.Equals(doublekeymap.New[string, string, int]()))

	container := struct {
		Groups doublekeymap.DoubleKeyMap[string, string, int] `json:"groups"`
	}{}
	encoded, err := json.Marshal(&container)
	require.NoError(t, err)
	require.JSONEq(t, `{"groups":[]}`, string(encoded))

	require.False(t, m.Put("a", "b", 1))
	require.Equal(t, 1, m.Size())
	require.True(t, m.Clone().Equals(&m))
}

func TestDoubleKeyMap_ToMap(t *testing.T) {
	m := doublekeymap.New[string, int, bool]()
	m.Put("a", 1, true)
	m.Put("a", 2, false)
	m.PutAll("b", nil)

	asMap := m.ToMap()
	require.Equal(t, map[string]map[int]bool{
		"a": {1: true, 2: false},
		"b": {},
	}, asMap)

	asMap["a"][3] = true
	require.False(t, m.Has("a", 3))
}

func TestDoubleKeyMap_Batches(t *testing.T) {
	m := doublekeymap.NewOrdered[int, int, int]()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Put(i, j, i*10+j)
		}
	}

	batches, err := m.Batches(4)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	require.Equal(t, []int{4, 4, 1}, lo.Map(batches, func(batch *doublekeymap.DoubleKeyMap[int, int, int]) int {
		return batch.Size()
	}))
	require.Equal(t, []int{1, 2}, batches[1].PrimaryKeys())
	require.Equal(t, []int{11, 12, 20, 21}, batches[1].Values())

	merged := doublekeymap.New[int, int, int]()
	for _, batch := range batches {
		require.True(t, batch.IsOrdered())
		merged.Merge(batch)
	}
	require.True(t, m.Equals(merged))

	_, err = m.Batches(0)
	require.True(t, ierrors.Is(err, collection.ErrInvalidSize))

	batches, err = doublekeymap.New[int, int, int]().Batches(2)
	require.NoError(t, err)
	require.Empty(t, batches)

	batches, err = m.Batches(math.MaxInt)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.True(t, m.Equals(batches[0]))
}

func TestDoubleKeyMap_NilKeys(t *testing.T) {
	m := doublekeymap.New[*string, any, int]()
	key := "key"

	require.Panics(t, func() { m.Put(nil, "k2", 1) })
	require.Panics(t, func() { m.Put(&key, nil, 1) })
	require.Panics(t, func() { m.Put(&key, []string(nil), 1) })
	require.Panics(t, func() { m.PutIfAbsent(nil, "k2", 1) })
	require.Panics(t, func() { m.Get(nil, "k2") })
	require.Panics(t, func() { m.GetAll(nil) })
	require.Panics(t, func() { m.Has(&key, nil) })
	require.Panics(t, func() { m.HasPrimaryKey(nil) })

	// the failed puts must not have registered the primary key
	require.Equal(t, 0, m.PrimarySize())

	source := doublekeymap.New[string, any, int]()
	source.Put("src", 1, 1)
	source.Put("src", 2, 2)
	subMap, _ := source.GetAll("src")

	require.NotPanics(t, func() { m.PutAll(&key, subMap) })
	require.Equal(t, 2, m.Size())

	requirePanicsWith(t, doublekeymap.ErrNilKey, func() { m.Put(nil, 1, 1) })
}

func TestDoubleKeyMap_NilKeysLeaveMapUntouched(t *testing.T) {
	one, two := 1, 2

	subMap := orderedmap.New[*int, int]()
	subMap.Set(&one, 1)
	subMap.Set(nil, 0)
	subMap.Set(&two, 2)

	m := doublekeymap.NewOrdered[string, *int, int]()
	requirePanicsWith(t, doublekeymap.ErrNilKey, func() { m.PutAll("a", subMap) })
	require.False(t, m.HasPrimaryKey("a"))

	m.Put("b", &one, 1)
	requirePanicsWith(t, doublekeymap.ErrNilKey, func() { m.PutAll("b", subMap) })
	require.Equal(t, 1, m.Size())
	require.False(t, m.Has("b", &two))
}

func TestDoubleKeyMap_DeleteNilKeyIsMiss(t *testing.T) {
	m := doublekeymap.New[*int, *int, int]()

	_, deleted := m.Delete(nil, nil)
	require.False(t, deleted)

	_, deleted = m.DeleteAll(nil)
	require.False(t, deleted)
}

func TestDoubleKeyMap_String(t *testing.T) {
	m := doublekeymap.NewOrdered[string, string, int]()
	m.Put("A", "x", 1)
	m.Put("A", "y", 2)
	m.Put("B", "x", 3)

	stringified := m.String()
	require.True(t, strings.HasPrefix(stringified, "DoubleKeyMap"))
	require.Contains(t, stringified, "A: {x: 1, y: 2}")
	require.Contains(t, stringified, "B: {x: 3}")
}
