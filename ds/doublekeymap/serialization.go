package doublekeymap

import (
	"context"
	"encoding/json"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/serix"
)

// region binary ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Encode returns a serialized byte slice of the map. Primary keys and their entries are written in iteration order.
func (m *DoubleKeyMap[K1, K2, V]) Encode(api *serix.API) ([]byte, error) {
	seri := serializer.NewSerializer()

	seri.WriteNum(uint32(m.store().Size()), func(err error) error {
		return ierrors.Wrap(err, "failed to write DoubleKeyMap primary size to serializer")
	})

	m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		primaryKeyBytes, err := api.Encode(context.Background(), primaryKey)
		if err != nil {
			seri.AbortIf(func(_ error) error {
				return ierrors.Wrap(err, "failed to encode DoubleKeyMap primary key")
			})

			return false
		}
		seri.WriteBytes(primaryKeyBytes, func(err error) error {
			return ierrors.Wrap(err, "failed to write DoubleKeyMap primary key to serializer")
		})

		seri.WriteNum(uint32(subMap.Size()), func(err error) error {
			return ierrors.Wrap(err, "failed to write DoubleKeyMap sub-map size to serializer")
		})

		return subMap.ForEach(func(secondaryKey K2, value V) bool {
			secondaryKeyBytes, err := api.Encode(context.Background(), secondaryKey)
			if err != nil {
				seri.AbortIf(func(_ error) error {
					return ierrors.Wrap(err, "failed to encode DoubleKeyMap secondary key")
				})

				return false
			}
			seri.WriteBytes(secondaryKeyBytes, func(err error) error {
				return ierrors.Wrap(err, "failed to write DoubleKeyMap secondary key to serializer")
			})

			valueBytes, err := api.Encode(context.Background(), value)
			if err != nil {
				seri.AbortIf(func(_ error) error {
					return ierrors.Wrap(err, "failed to encode DoubleKeyMap value")
				})

				return false
			}
			seri.WriteBytes(valueBytes, func(err error) error {
				return ierrors.Wrap(err, "failed to write DoubleKeyMap value to serializer")
			})

			return true
		})
	})

	return seri.Serialize()
}

// Decode deserializes the bytes into the map and replaces its content. The map stays untouched if an error occurs.
func (m *DoubleKeyMap[K1, K2, V]) Decode(api *serix.API, b []byte) (bytesRead int, err error) {
	decoded := NewWithMode[K1, K2, V](m.ordered)

	var primarySize uint32
	bytesReadSize, err := api.Decode(context.Background(), b[bytesRead:], &primarySize)
	if err != nil {
		return 0, ierrors.Wrap(err, "failed to decode DoubleKeyMap primary size")
	}
	bytesRead += bytesReadSize

	for range primarySize {
		var primaryKey K1
		bytesReadPrimaryKey, err := api.Decode(context.Background(), b[bytesRead:], &primaryKey)
		if err != nil {
			return 0, ierrors.Wrap(err, "failed to decode DoubleKeyMap primary key")
		}
		bytesRead += bytesReadPrimaryKey

		if isNil(primaryKey) {
			return 0, ierrors.Wrap(ErrNilKey, "failed to decode DoubleKeyMap primary key")
		}

		var subMapSize uint32
		bytesReadSubMapSize, err := api.Decode(context.Background(), b[bytesRead:], &subMapSize)
		if err != nil {
			return 0, ierrors.Wrap(err, "failed to decode DoubleKeyMap sub-map size")
		}
		bytesRead += bytesReadSubMapSize

		subMap := decoded.subMapOrCreate(primaryKey)
		for range subMapSize {
			var secondaryKey K2
			bytesReadSecondaryKey, err := api.Decode(context.Background(), b[bytesRead:], &secondaryKey)
			if err != nil {
				return 0, ierrors.Wrap(err, "failed to decode DoubleKeyMap secondary key")
			}
			bytesRead += bytesReadSecondaryKey

			if isNil(secondaryKey) {
				return 0, ierrors.Wrap(ErrNilKey, "failed to decode DoubleKeyMap secondary key")
			}

			var value V
			bytesReadValue, err := api.Decode(context.Background(), b[bytesRead:], &value)
			if err != nil {
				return 0, ierrors.Wrap(err, "failed to decode DoubleKeyMap value")
			}
			bytesRead += bytesReadValue

			subMap.Set(secondaryKey, value)
		}
	}

	m.primary = decoded.primary

	return bytesRead, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region JSON /////////////////////////////////////////////////////////////////////////////////////////////////////////

// jsonSubMap is the JSON representation of a primary key and its entries.
type jsonSubMap[K1, K2, V any] struct {
	Key     K1                 `json:"key"`
	Entries []jsonEntry[K2, V] `json:"entries"`
}

type jsonEntry[K2, V any] struct {
	Key   K2 `json:"key"`
	Value V  `json:"value"`
}

// MarshalJSON encodes the map as a list of primary keys with their entries, in iteration order.
func (m *DoubleKeyMap[K1, K2, V]) MarshalJSON() ([]byte, error) {
	subMaps := make([]jsonSubMap[K1, K2, V], 0, m.store().Size())
	m.store().ForEach(func(primaryKey K1, subMap writeableMap[K2, V]) bool {
		entries := make([]jsonEntry[K2, V], 0, subMap.Size())
		subMap.ForEach(func(secondaryKey K2, value V) bool {
			entries = append(entries, jsonEntry[K2, V]{Key: secondaryKey, Value: value})

			return true
		})
		subMaps = append(subMaps, jsonSubMap[K1, K2, V]{Key: primaryKey, Entries: entries})

		return true
	})

	return json.Marshal(subMaps)
}

// UnmarshalJSON replaces the content of the map with the decoded one. A zero value map is initialized as unordered.
func (m *DoubleKeyMap[K1, K2, V]) UnmarshalJSON(bytes []byte) error {
	var subMaps []jsonSubMap[K1, K2, V]
	if err := json.Unmarshal(bytes, &subMaps); err != nil {
		return ierrors.Wrap(err, "failed to unmarshal DoubleKeyMap")
	}

	decoded := NewWithMode[K1, K2, V](m.ordered, len(subMaps))
	for _, subMap := range subMaps {
		if isNil(subMap.Key) {
			return ierrors.Wrap(ErrNilKey, "failed to unmarshal DoubleKeyMap primary key")
		}

		target := decoded.subMapOrCreate(subMap.Key)
		for _, entry := range subMap.Entries {
			if isNil(entry.Key) {
				return ierrors.Wrap(ErrNilKey, "failed to unmarshal DoubleKeyMap secondary key")
			}

			target.Set(entry.Key, entry.Value)
		}
	}

	m.primary = decoded.primary

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
