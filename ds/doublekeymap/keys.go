package doublekeymap

import (
	"reflect"

	"github.com/iotaledger/hive.go/ierrors"
)

// assertKey panics if the key is nil.
func assertKey[K comparable](key K, keyName string) {
	if isNil(key) {
		panic(ierrors.Wrapf(ErrNilKey, "%s must not be nil", keyName))
	}
}

// isNil returns true for untyped nil values and for nil values of nillable kinds.
func isNil(value any) bool {
	if value == nil {
		return true
	}

	switch reflected := reflect.ValueOf(value); reflected.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return reflected.IsNil()
	default:
		return false
	}
}
