// Package anynil handles typed nils and pointers in values passed for adaptation.
package anynil

import "reflect"

// Is returns true if value is any type of nil. e.g. nil, (*string)(nil) or []byte(nil).
func Is(value any) bool {
	if value == nil {
		return true
	}

	refVal := reflect.ValueOf(value)
	switch refVal.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return refVal.IsNil()
	default:
		return false
	}
}

// Deref follows pointers until it reaches a non-pointer value. It returns nil if value is any type of nil or a
// pointer chain ends in nil. Pointers to structs are returned unchanged so that methods with pointer receivers
// remain reachable.
func Deref(value any) any {
	if Is(value) {
		return nil
	}

	refVal := reflect.ValueOf(value)
	if refVal.Kind() != reflect.Ptr {
		return value
	}
	for refVal.Kind() == reflect.Ptr {
		if refVal.IsNil() {
			return nil
		}
		if refVal.Elem().Kind() == reflect.Struct {
			return refVal.Interface()
		}
		refVal = refVal.Elem()
	}
	return refVal.Interface()
}
