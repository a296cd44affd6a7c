// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides the reflection helpers used to fill
// config structs from `default:` struct field tags.
package reflectx

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// NonPointerValue returns a non-pointer version of the given value.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// SetFromDefaultTags sets the zero-valued fields of the given struct
// pointer from their `default:` field tags, recursing into struct
// fields that have no tag. Fields that already hold a value are kept.
// Slice and map defaults use YAML flow syntax, as in `default:"[a, b]"`.
func SetFromDefaultTags(obj any) error {
	if obj == nil {
		return nil
	}
	ov := reflect.ValueOf(obj)
	if ov.Kind() != reflect.Pointer || ov.IsNil() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: need a non-nil pointer, not %T", obj)
	}
	val := NonPointerValue(ov)
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: %T is not a struct pointer", obj)
	}
	return setFromDefaultTags(val)
}

func setFromDefaultTags(val reflect.Value) error {
	typ := val.Type()
	var errs []error
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		def, ok := f.Tag.Lookup("default")
		if f.Type.Kind() == reflect.Struct && !ok {
			if err := setFromDefaultTags(fv); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if !ok || !fv.IsZero() {
			continue
		}
		if err := SetString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("field %s.%s: %w", typ.Name(), f.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("reflectx.SetFromDefaultTags: %v", errs)
	}
	return nil
}

// SetString sets the given settable value from its string form.
// Scalars are parsed with strconv; everything else is decoded as YAML.
func SetString(v reflect.Value, s string) error {
	if !v.CanSet() {
		return fmt.Errorf("value of type %v is not settable", v.Type())
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		pv := reflect.New(v.Type())
		if err := yaml.Unmarshal([]byte(s), pv.Interface()); err != nil {
			return err
		}
		v.Set(pv.Elem())
	}
	return nil
}
