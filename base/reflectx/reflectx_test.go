// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Rate  float32 `default:"0.5"`
	Count uint16  `default:"12"`
}

type outer struct {
	Name    string   `default:"cycle"`
	Stages  int      `default:"3"`
	Verbose bool     `default:"true"`
	Names   []string `default:"[app, cull, draw]"`
	Inner   inner
	NoTag   int
	hidden  int `default:"4"`
}

func TestSetFromDefaultTags(t *testing.T) {
	o := &outer{Stages: 7}
	require.NoError(t, SetFromDefaultTags(o))
	assert.Equal(t, "cycle", o.Name)
	assert.Equal(t, 7, o.Stages)
	assert.True(t, o.Verbose)
	assert.Equal(t, []string{"app", "cull", "draw"}, o.Names)
	assert.Equal(t, float32(0.5), o.Inner.Rate)
	assert.Equal(t, uint16(12), o.Inner.Count)
	assert.Zero(t, o.NoTag)
	assert.Zero(t, o.hidden)
}

func TestSetFromDefaultTagsErrors(t *testing.T) {
	assert.Error(t, SetFromDefaultTags(outer{}))
	var o *outer
	assert.Error(t, SetFromDefaultTags(o))
	n := 3
	assert.Error(t, SetFromDefaultTags(&n))

	type bad struct {
		N int `default:"many"`
	}
	assert.Error(t, SetFromDefaultTags(&bad{}))
}

func TestSetString(t *testing.T) {
	var u uint8
	assert.Error(t, SetString(reflect.ValueOf(&u).Elem(), "300"))
	assert.NoError(t, SetString(reflect.ValueOf(&u).Elem(), "0x20"))
	assert.Equal(t, uint8(32), u)
	assert.Error(t, SetString(reflect.ValueOf(u), "1"))

	m := map[string]int{}
	assert.NoError(t, SetString(reflect.ValueOf(&m).Elem(), "{a: 1, b: 2}"))
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, m)
}
