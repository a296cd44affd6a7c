// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = New("test error")

func returnsTwo(fail bool) (int, error) {
	if fail {
		return 0, errTest
	}
	return 2, nil
}

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := Log(fmt.Errorf("wrapped: %w", errTest))
	assert.True(t, Is(err, errTest))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 2, Log1(returnsTwo(false)))
	assert.Equal(t, 0, Log1(returnsTwo(true)))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(errTest) })
	assert.Panics(t, func() { Must1(returnsTwo(true)) })
	assert.Equal(t, 2, Must1(returnsTwo(false)))
}
