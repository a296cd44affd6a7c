// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWidget struct {
	Label string
}

var testWidgetType = AddType(&Type{Name: "cogentcore.org/instanced/types.testWidget", IDName: "test-widget", Instance: &testWidget{}})

func TestTypeRegistry(t *testing.T) {
	assert.NotZero(t, testWidgetType.ID)
	assert.Equal(t, "types.testWidget", testWidgetType.ShortName())
	assert.Same(t, testWidgetType, TypeByName("cogentcore.org/instanced/types.testWidget"))
	assert.Same(t, testWidgetType, TypeByValue(&testWidget{}))
	assert.Same(t, testWidgetType, TypeByValue(testWidget{}))

	_, err := TypeByNameTry("cogentcore.org/instanced/types.missing")
	assert.Error(t, err)

	again := AddType(&Type{Name: testWidgetType.Name, Instance: &testWidget{}})
	assert.Zero(t, again.ID)
	assert.Same(t, testWidgetType, TypeByName(testWidgetType.Name))
}

func TestTypeNew(t *testing.T) {
	v := testWidgetType.New()
	require.IsType(t, &testWidget{}, v)
	assert.Equal(t, "", v.(*testWidget).Label)

	assert.Nil(t, (&Type{Name: "none"}).New())
}
