// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/pflag"

	"cogentcore.org/instanced/base/strcase"
)

// AddFlags adds a flag to fs for every exported leaf field of the
// given config struct pointer, bound directly to the field. Nested
// struct fields are named by their dotted kebab-case path, as in
// --grid.rows. A `flag:"w,watch"` tag gives a one-letter shorthand
// and a replacement name.
func AddFlags(fs *pflag.FlagSet, cfg any) {
	val := reflect.ValueOf(cfg)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		slog.Error("cli.AddFlags: config must be a struct pointer", "type", val.Type())
		return
	}
	addFlags(fs, val.Elem(), "")
}

func addFlags(fs *pflag.FlagSet, val reflect.Value, path string) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strcase.ToKebab(f.Name)
		if path != "" {
			name = path + "." + name
		}
		fv := val.Field(i)
		if f.Type.Kind() == reflect.Struct {
			addFlags(fs, fv, name)
			continue
		}
		short := ""
		if tag, ok := f.Tag.Lookup("flag"); ok {
			for _, nm := range strings.Split(tag, ",") {
				if len(nm) == 1 {
					short = nm
				} else if nm != "" {
					name = nm
				}
			}
		}
		desc := f.Tag.Get("desc")
		switch p := fv.Addr().Interface().(type) {
		case *string:
			fs.StringVarP(p, name, short, *p, desc)
		case *bool:
			fs.BoolVarP(p, name, short, *p, desc)
		case *int:
			fs.IntVarP(p, name, short, *p, desc)
		case *float32:
			fs.Float32VarP(p, name, short, *p, desc)
		case *float64:
			fs.Float64VarP(p, name, short, *p, desc)
		case *[]string:
			fs.StringSliceVarP(p, name, short, *p, desc)
		default:
			slog.Debug("cli.AddFlags: no flag for field type", "field", name, "type", f.Type)
		}
	}
}
