// Package optional carries request fields that distinguish "absent" from
// "present", so partial updates never depend on zero-value checks.
package optional

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

type Field[T any] struct {
	value   T
	present bool
	null    bool
}

func Of[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

func (f Field[T]) IsPresent() bool { return f.present }

func (f Field[T]) IsNull() bool { return f.present && f.null }

func (f Field[T]) Value() T { return f.value }

// IsBlank reports whitespace-only strings, empty slices or maps and zero structs.
func (f Field[T]) IsBlank() bool {
	rv := reflect.ValueOf(any(f.value))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Struct:
		return rv.IsZero()
	}
	return false
}

// Sparse yields the value only when it is present, non-null and non-blank.
func (f Field[T]) Sparse() (T, bool) {
	if !f.present || f.null || f.IsBlank() {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Presence yields the value whenever the caller sent it, blanks included.
func (f Field[T]) Presence() (T, bool) {
	if !f.present || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// UnmarshalJSON accepts T directly or T serialized inside a JSON string,
// which is how multipart forms deliver structured values.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		f.null = true
		return nil
	}

	var v T
	err := json.Unmarshal(trimmed, &v)
	if err == nil {
		f.value = v
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return err
	}

	var inner string
	if json.Unmarshal(trimmed, &inner) != nil {
		return err
	}
	if strings.TrimSpace(inner) == "" {
		f.null = true
		return nil
	}
	if innerErr := json.Unmarshal([]byte(inner), &v); innerErr != nil {
		return innerErr
	}
	f.value = v
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
