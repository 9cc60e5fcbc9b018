// Package collection contains helpers that operate on plain slices and maps.
package collection

import (
	"slices"

	"github.com/iotaledger/hive.go/constraints"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
)

// ErrInvalidSize is returned if a collection is split into groups of less than one element.
var ErrInvalidSize = ierrors.New("group size must be at least 1")

// Split splits the elements into consecutive groups of at most size elements. Only the last group can be shorter.
func Split[T any](elements []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, ierrors.Wrapf(ErrInvalidSize, "failed to split %d elements into groups of %d", len(elements), size)
	}

	groups := make([][]T, 0, groupCount(len(elements), size))
	for start := 0; start < len(elements); start += size {
		end := start + min(size, len(elements)-start)
		groups = append(groups, elements[start:end:end])

		if end == len(elements) {
			break
		}
	}

	return groups, nil
}

// SplitMap splits the entries of the map into maps of at most size entries. Which entry ends up in which group is
// unspecified.
func SplitMap[K comparable, V any](m map[K]V, size int) ([]map[K]V, error) {
	if size < 1 {
		return nil, ierrors.Wrapf(ErrInvalidSize, "failed to split %d entries into groups of %d", len(m), size)
	}

	groups := make([]map[K]V, 0, groupCount(len(m), size))

	var currentGroup map[K]V
	for key, value := range m {
		if len(currentGroup) == 0 || len(currentGroup) == size {
			currentGroup = make(map[K]V, min(size, len(m)))
			groups = append(groups, currentGroup)
		}

		currentGroup[key] = value
	}

	return groups, nil
}

// groupCount returns the amount of groups of at most size elements that are needed for count elements.
func groupCount(count int, size int) int {
	groups := count / size
	if count%size != 0 {
		groups++
	}

	return groups
}

// Sorted returns a copy of the elements in ascending order.
func Sorted[T constraints.Ordered](elements []T) []T {
	sorted := slices.Clone(elements)
	slices.SortFunc(sorted, lo.Comparator[T])

	return sorted
}
