// Package grouping groups flat records by two of their fields.
package grouping

import (
	"github.com/spf13/cast"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/yorma/commons/ds/doublekeymap"
)

// ErrMissingField is returned if a record does not contain one of the fields it is grouped by.
var ErrMissingField = ierrors.New("record is missing a field")

// Options define how records are grouped.
type Options struct {
	// PrimaryField is the field whose value becomes the primary key.
	PrimaryField string
	// SecondaryField is the field whose value becomes the secondary key.
	SecondaryField string
	// ValueField is the field whose value is stored.
	ValueField string
	// Ordered keeps the order in which keys first appear in the records.
	Ordered bool
	// SkipIncomplete ignores records that miss one of the fields instead of failing.
	SkipIncomplete bool
	// KeepFirst keeps the first value of duplicate key pairs instead of the last one.
	KeepFirst bool
}

// Group puts the value of every record into a DoubleKeyMap addressed by its primary and secondary field.
func Group(records []Record, opts Options) (*doublekeymap.DoubleKeyMap[string, string, string], error) {
	grouped := doublekeymap.NewWithMode[string, string, string](opts.Ordered)

	for i, record := range records {
		fields, err := record.fields(opts.PrimaryField, opts.SecondaryField, opts.ValueField)
		if err != nil {
			if opts.SkipIncomplete && ierrors.Is(err, ErrMissingField) {
				continue
			}

			return nil, ierrors.Wrapf(err, "unable to group record %d", i)
		}

		if opts.KeepFirst {
			grouped.PutIfAbsent(fields[0], fields[1], fields[2])
		} else {
			grouped.Put(fields[0], fields[1], fields[2])
		}
	}

	return grouped, nil
}

// fields returns the string representation of the given fields.
func (r Record) fields(names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		rawValue, exists := r[name]
		if !exists || rawValue == nil {
			return nil, ierrors.Wrapf(ErrMissingField, "field %q", name)
		}

		value, err := cast.ToStringE(rawValue)
		if err != nil {
			return nil, ierrors.Wrapf(err, "field %q can not be used as a key or value", name)
		}

		values[i] = value
	}

	return values, nil
}
