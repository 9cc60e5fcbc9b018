package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mr-tron/base58"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/serix"

	"github.com/yorma/commons/collection"
	"github.com/yorma/commons/ds/doublekeymap"
)

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatBase58 = "base58"
)

// ErrUnknownOutputFormat is returned if the requested output format is not supported.
var ErrUnknownOutputFormat = ierrors.New("unknown output format")

type groupedRecords = doublekeymap.DoubleKeyMap[string, string, string]

// newSerixAPI returns the API that is used to encode the grouped records.
func newSerixAPI() *serix.API {
	api := serix.NewAPI()
	if err := api.RegisterTypeSettings("", serix.TypeSettings{}.WithLengthPrefixType(serix.LengthPrefixTypeAsUint16)); err != nil {
		panic(err)
	}

	return api
}

// writeBatch writes the grouped records in the given format.
func writeBatch(writer io.Writer, format string, batch *groupedRecords) error {
	switch format {
	case FormatText:
		return writeText(writer, batch)
	case FormatJSON:
		bytes, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return ierrors.Wrap(err, "unable to marshal grouped records")
		}

		_, err = fmt.Fprintln(writer, string(bytes))

		return err
	case FormatBase58:
		bytes, err := batch.Encode(newSerixAPI())
		if err != nil {
			return ierrors.Wrap(err, "unable to encode grouped records")
		}

		_, err = fmt.Fprintln(writer, base58.Encode(bytes))

		return err
	default:
		return ierrors.Wrapf(ErrUnknownOutputFormat, "format %q", format)
	}
}

// writeText writes one block per primary key. Unordered keys are printed in ascending order.
func writeText(writer io.Writer, batch *groupedRecords) (err error) {
	primaryKeys := batch.PrimaryKeys()
	if !batch.IsOrdered() {
		primaryKeys = collection.Sorted(primaryKeys)
	}

	for _, primaryKey := range primaryKeys {
		subMap, _ := batch.GetAll(primaryKey)

		secondaryKeys := subMap.Keys()
		if !batch.IsOrdered() {
			secondaryKeys = collection.Sorted(secondaryKeys)
		}

		if _, err = fmt.Fprintf(writer, "%s (%d)\n", primaryKey, subMap.Size()); err != nil {
			return err
		}

		for _, secondaryKey := range secondaryKeys {
			value, _ := subMap.Get(secondaryKey)
			if _, err = fmt.Fprintf(writer, "  %s: %s\n", secondaryKey, value); err != nil {
				return err
			}
		}
	}

	return nil
}
