// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"
	"strings"
)

// Type is a registered type that can be looked up by name and
// instantiated, as when objects are read back from a stream.
type Type struct {

	// Name is the package path qualified name,
	// as in cogentcore.org/instanced/xyz.InstancedNode.
	Name string

	// IDName is the kebab-case name without the package,
	// as in instanced-node, used to name new nodes.
	IDName string

	// Doc is the documentation of the type.
	Doc string

	// Instance is a non-nil pointer to a value of the type.
	Instance any

	// ID is assigned by [AddType] in registration order, starting at 1.
	ID uint64
}

func (tp *Type) String() string {
	return tp.Name
}

// ShortName returns the name qualified by the
// package name only, as in xyz.InstancedNode.
func (tp *Type) ShortName() string {
	return tp.Name[strings.LastIndex(tp.Name, "/")+1:]
}

// ReflectType returns the non-pointer [reflect.Type] of [Type.Instance],
// or nil if there is no instance.
func (tp *Type) ReflectType() reflect.Type {
	if tp.Instance == nil {
		return nil
	}
	return reflect.TypeOf(tp.Instance).Elem()
}

// New returns a pointer to a new zero value of the type,
// or nil if there is no instance.
func (tp *Type) New() any {
	if rt := tp.ReflectType(); rt != nil {
		return reflect.New(rt).Interface()
	}
	return nil
}
