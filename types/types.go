// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types provides a type registry for creating values
// of registered types by their fully qualified name.
package types

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	// Types records all types (i.e., a type registry)
	// key is long type name: package_url.Type, e.g., cogentcore.org/instanced/xyz.Group
	Types = map[string]*Type{}

	// TypeIDCounter is an atomically incremented uint64 used
	// for assigning new [Type.ID] numbers
	TypeIDCounter uint64

	typesMu sync.RWMutex
)

// TypeByName returns a Type by name (package_url.Type, e.g., cogentcore.org/instanced/xyz.Group),
// or nil if it is not registered.
func TypeByName(nm string) *Type {
	typesMu.RLock()
	defer typesMu.RUnlock()
	return Types[nm]
}

// TypeByNameTry returns a Type by name (package_url.Type, e.g., cogentcore.org/instanced/xyz.Group),
// or error if not found
func TypeByNameTry(nm string) (*Type, error) {
	tp := TypeByName(nm)
	if tp == nil {
		return nil, fmt.Errorf("type %q not found", nm)
	}
	return tp, nil
}

// TypeByValue returns the [Type] of the given value
func TypeByValue(v any) *Type {
	return TypeByName(TypeNameValue(v))
}

// TypeByValueTry returns the [Type] of the given value,
// or an error if it is not found
func TypeByValueTry(v any) (*Type, error) {
	return TypeByNameTry(TypeNameValue(v))
}

// AddType adds a constructed [Type] to the registry
// and returns it. This sets the ID.
func AddType(typ *Type) *Type {
	typesMu.Lock()
	defer typesMu.Unlock()
	if _, has := Types[typ.Name]; has {
		slog.Debug("types.AddType: Type already exists", "Type.Name", typ.Name)
		return typ
	}
	typ.ID = atomic.AddUint64(&TypeIDCounter, 1)
	Types[typ.Name] = typ
	return typ
}

// TypeName returns the long, full package-path qualified type name.
// This is guaranteed to be unique and used for the Types registry.
func TypeName(typ reflect.Type) string {
	return typ.PkgPath() + "." + typ.Name()
}

// TypeNameValue returns the long, full package-path qualified type name
// of the given Go value. Automatically finds the non-pointer base type.
// This is guaranteed to be unique and used for the Types registry.
func TypeNameValue(v any) string {
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return TypeName(typ)
}
