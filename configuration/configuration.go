// Package configuration merges parameters from files, environment variables and command line flags.
package configuration

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/ierrors"
)

// ErrUnknownConfigFormat is returned if the format of the config file is unknown.
var ErrUnknownConfigFormat = ierrors.New("unknown config file format")

// Configuration holds config parameters from several sources (file, env vars, flags).
type Configuration struct {
	config *koanf.Koanf
	// boundParameters keeps track of all parameters that were bound using the BindParameters function.
	boundParameters map[string]*BoundParameter
}

// New returns a new configuration.
func New() *Configuration {
	return &Configuration{
		config:          koanf.New("."),
		boundParameters: make(map[string]*BoundParameter),
	}
}

// LoadFile loads parameters from a JSON or YAML file and merges them into the loaded config.
// Existing keys will be overwritten.
func (c *Configuration) LoadFile(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}

		return ierrors.Wrapf(err, "unable to access config file %s", filePath)
	}

	format, err := FileFormatOf(filePath)
	if err != nil {
		return ierrors.Wrapf(err, "unable to load config file %s", filePath)
	}

	if err := c.config.Load(file.Provider(filePath), format.Parser()); err != nil {
		return ierrors.Wrapf(err, "unable to load config file %s", filePath)
	}

	return nil
}

// LoadFlagSet loads parameters from a FlagSet (spf13/pflag lib) including
// default values and merges them into the loaded config.
// Existing keys will only be overwritten, if they were set via command line.
// If not given via command line, default values will only be used if they did not exist beforehand.
func (c *Configuration) LoadFlagSet(flagSet *flag.FlagSet) error {
	return c.config.Load(lowerPosflagProvider(flagSet, ".", c.config), nil)
}

// LoadEnvironmentVars loads parameters from env vars and merges them into the loaded config.
// The prefix is used to filter the env vars.
// Only existing keys will be overwritten, all other keys are ignored.
func (c *Configuration) LoadEnvironmentVars(prefix string) error {
	if prefix != "" {
		prefix += "_"
	}

	return c.config.Load(env.Provider(prefix, ".", func(s string) string {
		mapKey := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", ".")
		if !c.config.Exists(mapKey) {
			// only accept values from env vars that already exist in the config
			return ""
		}

		return mapKey
	}), nil)
}

// Koanf returns the underlying Koanf instance.
func (c *Configuration) Koanf() *koanf.Koanf {
	return c.config
}

// All returns all parameters as a flat map.
func (c *Configuration) All() map[string]interface{} {
	return c.config.All()
}

// Exists returns true if the parameter is set.
func (c *Configuration) Exists(path string) bool {
	return c.config.Exists(strings.ToLower(path))
}

// String returns the string value of the parameter.
func (c *Configuration) String(path string) string {
	return c.config.String(strings.ToLower(path))
}

// Bool returns the bool value of the parameter.
func (c *Configuration) Bool(path string) bool {
	return c.config.Bool(strings.ToLower(path))
}

// Int returns the int value of the parameter.
func (c *Configuration) Int(path string) int {
	return c.config.Int(strings.ToLower(path))
}

// Int64 returns the int64 value of the parameter.
func (c *Configuration) Int64(path string) int64 {
	return c.config.Int64(strings.ToLower(path))
}

// Strings returns the []string value of the parameter.
func (c *Configuration) Strings(path string) []string {
	return c.config.Strings(strings.ToLower(path))
}

// BoundParameter stores the pointer to a value that was bound using the BindParameters function.
type BoundParameter struct {
	boundPointer interface{}
}

// BindParameters defines a flag in the FlagSet for every field of the given struct and remembers the fields, so that
// UpdateBoundParameters can write the merged configuration back into them.
//
// The parameter names are determined by the names of the fields in the struct but they can be overridden by providing a
// name tag. The default value is determined by the value of the field in the struct but it can be overridden by
// providing a default tag. The usage information is determined by the usage tag of the field.
//
// Nested structs are translated to parameter names in the following way:
// --namespace.level1.level2.parameterName
func (c *Configuration) BindParameters(flagSet *flag.FlagSet, namespace string, pointerToStruct interface{}) {
	val := reflect.ValueOf(pointerToStruct).Elem()
	for i := 0; i < val.NumField(); i++ {
		valueField := val.Field(i)
		typeField := val.Type().Field(i)

		name := namespace + "."
		if tagName, exists := typeField.Tag.Lookup("name"); exists {
			name += tagName
		} else {
			name += lowerCamelCase(typeField.Name)
		}

		shortHand, _ := typeField.Tag.Lookup("shorthand")
		usage, _ := typeField.Tag.Lookup("usage")
		tagDefaultValue, hasTagDefaultValue := typeField.Tag.Lookup("default")

		switch defaultValue := valueField.Interface().(type) {
		case bool:
			if hasTagDefaultValue {
				if _, err := fmt.Sscan(tagDefaultValue, &defaultValue); err != nil {
					panic(err)
				}
			}

			flagSet.BoolVarP(valueField.Addr().Interface().(*bool), name, shortHand, defaultValue, usage)
		case int:
			if hasTagDefaultValue {
				if _, err := fmt.Sscan(tagDefaultValue, &defaultValue); err != nil {
					panic(err)
				}
			}

			flagSet.IntVarP(valueField.Addr().Interface().(*int), name, shortHand, defaultValue, usage)
		case int64:
			if hasTagDefaultValue {
				if _, err := fmt.Sscan(tagDefaultValue, &defaultValue); err != nil {
					panic(err)
				}
			}

			flagSet.Int64VarP(valueField.Addr().Interface().(*int64), name, shortHand, defaultValue, usage)
		case string:
			if hasTagDefaultValue {
				defaultValue = tagDefaultValue
			}

			flagSet.StringVarP(valueField.Addr().Interface().(*string), name, shortHand, defaultValue, usage)
		case []string:
			if hasTagDefaultValue {
				defaultValue = strings.Split(tagDefaultValue, ",")
			}

			flagSet.StringSliceVarP(valueField.Addr().Interface().(*[]string), name, shortHand, defaultValue, usage)
		default:
			if valueField.Kind() != reflect.Struct {
				panic(fmt.Sprintf("unsupported parameter type %s of %s", valueField.Type(), name))
			}

			c.BindParameters(flagSet, name, valueField.Addr().Interface())

			continue
		}

		c.boundParameters[name] = &BoundParameter{
			boundPointer: valueField.Addr().Interface(),
		}
	}
}

// UpdateBoundParameters updates parameters that were bound using the BindParameters method with the current values in
// the configuration.
func (c *Configuration) UpdateBoundParameters() {
	for parameterName, boundParameter := range c.boundParameters {
		if !c.Exists(parameterName) {
			continue
		}

		switch boundPointer := boundParameter.boundPointer.(type) {
		case *bool:
			*boundPointer = c.Bool(parameterName)
		case *int:
			*boundPointer = c.Int(parameterName)
		case *int64:
			*boundPointer = c.Int64(parameterName)
		case *string:
			*boundPointer = c.String(parameterName)
		case *[]string:
			*boundPointer = c.Strings(parameterName)
		}
	}
}
