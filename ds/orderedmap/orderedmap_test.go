package orderedmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yorma/commons/ds/orderedmap"
)

func TestOrderedMap_Size(t *testing.T) {
	orderedMap := orderedmap.New[int, int]()

	require.Equal(t, 0, orderedMap.Size())
	require.True(t, orderedMap.IsEmpty())

	orderedMap.Set(1, 1)

	require.Equal(t, 1, orderedMap.Size())

	orderedMap.Set(3, 1)
	orderedMap.Set(2, 1)

	require.Equal(t, 3, orderedMap.Size())
	require.False(t, orderedMap.IsEmpty())

	orderedMap.Set(2, 2)

	require.Equal(t, 3, orderedMap.Size())

	orderedMap.Delete(2)

	require.Equal(t, 2, orderedMap.Size())

	clone := orderedMap.Clone()
	require.Equal(t, orderedMap.Keys(), clone.Keys())
	require.Equal(t, orderedMap.Values(), clone.Values())

	clone.Clear()
	require.True(t, clone.IsEmpty())
	require.False(t, orderedMap.IsEmpty())
}

func TestNew(t *testing.T) {
	orderedMap := orderedmap.New[int, int]()
	require.NotNil(t, orderedMap)

	require.Equal(t, 0, orderedMap.Size())
	require.Empty(t, orderedMap.Keys())

	withCapacity := orderedmap.New[int, int](64)
	require.True(t, withCapacity.IsEmpty())
}

func TestSetGetDelete(t *testing.T) {
	orderedMap := orderedmap.New[string, string]()
	require.NotNil(t, orderedMap)

	// when adding the first new key,value pair, we must return false
	_, previousValueExisted := orderedMap.Set("key", "value")
	require.False(t, previousValueExisted)

	// we should be able to retrieve the just added element
	value, ok := orderedMap.Get("key")
	require.Equal(t, "value", value)
	require.True(t, ok)

	require.Equal(t, []string{"key"}, orderedMap.Keys())
	require.Equal(t, 1, orderedMap.Size())

	// when overwriting an existing key we must get the previous value
	previousValue, previousValueExisted := orderedMap.Set("key", "value2")
	require.True(t, previousValueExisted)
	require.Equal(t, "value", previousValue)
	require.Equal(t, 1, orderedMap.Size())

	// when retrieving something that does not exist we
	// should get the zero value, false
	value, ok = orderedMap.Get("keyNotStored")
	require.Empty(t, value)
	require.False(t, ok)

	// when deleting an existing element, we must get its value,
	// the element must be removed, and size decremented.
	deletedValue, deleted := orderedMap.Delete("key")
	require.True(t, deleted)
	require.Equal(t, "value2", deletedValue)
	value, ok = orderedMap.Get("key")
	require.Empty(t, value)
	require.False(t, ok)
	require.Equal(t, 0, orderedMap.Size())

	// if we delete the only element, nothing is left to iterate
	require.True(t, orderedMap.ForEach(func(string, string) bool {
		return false
	}))

	// when deleting a NON existing element, we must get false
	_, deleted = orderedMap.Delete("key")
	require.False(t, deleted)
}

func TestInsertionOrder(t *testing.T) {
	orderedMap := orderedmap.New[int, string]()

	orderedMap.Set(3, "c")
	orderedMap.Set(1, "a")
	orderedMap.Set(2, "b")

	require.Equal(t, []int{3, 1, 2}, orderedMap.Keys())
	require.Equal(t, []string{"c", "a", "b"}, orderedMap.Values())

	// overwriting keeps the position
	orderedMap.Set(1, "A")
	require.Equal(t, []int{3, 1, 2}, orderedMap.Keys())
	require.Equal(t, []string{"c", "A", "b"}, orderedMap.Values())

	// deleting from the middle relinks the neighbours
	orderedMap.Delete(1)
	require.Equal(t, []int{3, 2}, orderedMap.Keys())

	// re-adding appends at the end
	orderedMap.Set(1, "a")
	require.Equal(t, []int{3, 2, 1}, orderedMap.Keys())

	// deleting the ends relinks head and tail
	orderedMap.Delete(3)
	orderedMap.Delete(1)
	orderedMap.Set(4, "d")
	require.Equal(t, []int{2, 4}, orderedMap.Keys())
	require.Equal(t, []string{"b", "d"}, orderedMap.Values())
}

func TestDeleteWhileIterating(t *testing.T) {
	orderedMap := orderedmap.New[int, int]()
	for i := 0; i < 5; i++ {
		orderedMap.Set(i, i)
	}

	visited := make([]int, 0)
	orderedMap.ForEach(func(key int, _ int) bool {
		visited = append(visited, key)
		orderedMap.Delete(key)

		return true
	})

	require.Equal(t, []int{0, 1, 2, 3, 4}, visited)
	require.True(t, orderedMap.IsEmpty())
}

func TestForEach(t *testing.T) {
	orderedMap := orderedmap.New[string, int]()
	require.NotNil(t, orderedMap)

	keys := []string{"one", "two", "three"}
	values := []int{1, 2, 3}

	for i := 0; i < len(keys); i++ {
		orderedMap.Set(keys[i], values[i])
	}

	// test that all elements are positive via ForEach
	testPositive := orderedMap.ForEach(func(key string, value int) bool {
		return value > 0
	})
	require.True(t, testPositive)

	testNegative := orderedMap.ForEach(func(key string, value int) bool {
		return value < 0
	})
	require.False(t, testNegative)
}
