package grouping

import (
	"os"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/yorma/commons/configuration"
)

// ErrUnknownFormat is returned if the format of a record file is unknown.
var ErrUnknownFormat = ierrors.New("unknown record file format")

// Record is a single row of input data.
type Record map[string]any

// LoadRecords reads the records of a JSON (array of objects) or YAML (sequence of mappings) file.
func LoadRecords(filePath string) ([]Record, error) {
	format, err := configuration.FileFormatOf(filePath)
	if err != nil {
		return nil, ierrors.Wrapf(ErrUnknownFormat, "unable to load records from %s: %s", filePath, err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, ierrors.Wrapf(err, "unable to read records from %s", filePath)
	}

	var rawRecords []map[string]interface{}
	if err := format.Unmarshal(content, &rawRecords); err != nil {
		return nil, ierrors.Wrapf(err, "unable to parse records from %s", filePath)
	}

	records := make([]Record, len(rawRecords))
	for i, rawRecord := range rawRecords {
		records[i] = configuration.NormalizeMap(rawRecord)
	}

	return records, nil
}
