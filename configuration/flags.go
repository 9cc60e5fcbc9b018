package configuration

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/maps"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/ierrors"
)

// NewUnsortedFlagSet returns a FlagSet that prints its flags in the order they were defined, so that parameters bound
// from the same struct stay grouped in the usage output.
func NewUnsortedFlagSet(name string, errorHandling pflag.ErrorHandling) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, errorHandling)
	flagSet.SortFlags = false

	return flagSet
}

// lowerPosflag implements a pflag command line provider.
type lowerPosflag struct {
	delim   string
	flagset *pflag.FlagSet
	ko      *koanf.Koanf
}

// lowerPosflagProvider returns a provider that reads the flags of the FlagSet into a nested map with lower-cased keys
// that are split at delim ("parent.child.key" => {parent: {child: {key: value}}}).
//
// Flags that were not changed on the command line only contribute their default value if ko does not contain the key
// yet (i.e. a config file that was loaded before wins over flag defaults).
func lowerPosflagProvider(f *pflag.FlagSet, delim string, ko *koanf.Koanf) *lowerPosflag {
	return &lowerPosflag{
		flagset: f,
		delim:   delim,
		ko:      ko,
	}
}

// Read reads the flag variables and returns a nested conf map.
func (p *lowerPosflag) Read() (map[string]interface{}, error) {
	mp := make(map[string]interface{})
	p.flagset.VisitAll(func(f *pflag.Flag) {
		key := strings.ToLower(f.Name)
		if !f.Changed && (p.ko == nil || p.ko.Exists(key)) {
			return
		}

		mp[key] = p.flagValue(f)
	})

	return maps.Unflatten(mp, p.delim), nil
}

// flagValue returns the typed value of the flag. Types that koanf can not convert from a string are read directly.
func (p *lowerPosflag) flagValue(f *pflag.Flag) interface{} {
	switch f.Value.Type() {
	case "int", "int8", "int16", "int32", "int64":
		value, err := cast.ToInt64E(f.Value.String())
		if err != nil {
			return f.Value.String()
		}

		return value
	case "bool":
		value, _ := p.flagset.GetBool(f.Name)

		return value
	case "stringSlice":
		value, _ := p.flagset.GetStringSlice(f.Name)

		return value
	case "intSlice":
		value, _ := p.flagset.GetIntSlice(f.Name)

		return value
	default:
		return f.Value.String()
	}
}

// ReadBytes is not supported by the pflag provider.
func (p *lowerPosflag) ReadBytes() ([]byte, error) {
	return nil, ierrors.New("pflag provider does not support this method")
}

// Watch is not supported.
func (p *lowerPosflag) Watch(_ func(event interface{}, err error)) error {
	return ierrors.New("pflag provider does not support this method")
}
