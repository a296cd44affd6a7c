// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesOnPaths(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "configs")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.toml"), []byte("x = 1"), 0o644))

	res := FindFilesOnPaths([]string{dir, sub}, "a.toml", "missing.toml")
	require.Len(t, res, 1)
	assert.Equal(t, "a.toml", filepath.Base(res[0]))

	ok, err := FileExists(sub)
	assert.NoError(t, err)
	assert.False(t, ok, "directories are not files")
}
