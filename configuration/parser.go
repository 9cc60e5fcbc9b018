package configuration

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/iotaledger/hive.go/ierrors"
)

// FileFormat is the encoding of a file that contains parameters or records.
type FileFormat string

const (
	FileFormatJSON FileFormat = "json"
	FileFormatYAML FileFormat = "yaml"
)

// FileFormatOf determines the format of the file by its extension.
func FileFormatOf(filePath string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return FileFormatJSON, nil
	case ".yaml", ".yml":
		return FileFormatYAML, nil
	default:
		return "", ierrors.Wrapf(ErrUnknownConfigFormat, "unsupported file extension of %s", filePath)
	}
}

// Unmarshal decodes the content into out. Nested YAML mappings keep their map[interface{}]interface{} type, use
// NormalizeMap to turn them into string keyed maps.
func (f FileFormat) Unmarshal(content []byte, out interface{}) error {
	switch f {
	case FileFormatJSON:
		return json.Unmarshal(content, out)
	case FileFormatYAML:
		return yaml.Unmarshal(content, out)
	default:
		return ierrors.Wrapf(ErrUnknownConfigFormat, "unable to unmarshal %s", f)
	}
}

// Parser returns a koanf parser for the format that lower cases all keys.
func (f FileFormat) Parser() koanf.Parser {
	return &lowerParser{format: f}
}

// NormalizeMap returns a copy of the map in which all nested maps (including those in lists) are string keyed.
func NormalizeMap(m map[string]interface{}) map[string]interface{} {
	return normalizeMap(m, func(key string) string { return key })
}

func normalizeMap(m map[string]interface{}, keyFunc func(string) string) map[string]interface{} {
	normalized := make(map[string]interface{}, len(m))
	for key, val := range m {
		normalized[keyFunc(key)] = normalizeValue(val, keyFunc)
	}

	return normalized
}

func normalizeValue(val interface{}, keyFunc func(string) string) interface{} {
	switch typedVal := val.(type) {
	case map[string]interface{}:
		return normalizeMap(typedVal, keyFunc)
	case map[interface{}]interface{}:
		return normalizeMap(cast.ToStringMap(typedVal), keyFunc)
	case []interface{}:
		elements := make([]interface{}, len(typedVal))
		for i, element := range typedVal {
			elements[i] = normalizeValue(element, keyFunc)
		}

		return elements
	default:
		return val
	}
}

// lowerParser implements a koanf parser for JSON and YAML.
// all config keys are lower cased.
type lowerParser struct {
	format FileFormat
}

// Unmarshal parses the given bytes.
func (p *lowerParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := p.format.Unmarshal(b, &out); err != nil {
		return nil, err
	}

	return normalizeMap(out, strings.ToLower), nil
}

// Marshal marshals the given config map to bytes.
func (p *lowerParser) Marshal(o map[string]interface{}) ([]byte, error) {
	switch p.format {
	case FileFormatJSON:
		return json.MarshalIndent(o, "", "  ")
	case FileFormatYAML:
		return yaml.Marshal(o)
	default:
		return nil, ierrors.Wrapf(ErrUnknownConfigFormat, "unable to marshal %s", p.format)
	}
}
