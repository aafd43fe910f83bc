// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package files

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	dir := t.TempDir()

	t.Run("read_write_roundtrip", func(t *testing.T) {
		path := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, m.WriteFile(ctx, path, []byte("new")))

		got, err := m.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("keeps_permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permission bits")
		}
		path := filepath.Join(dir, "script.js")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0755))

		require.NoError(t, m.WriteFile(ctx, path, []byte("new")))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})

	t.Run("no_extra_files", func(t *testing.T) {
		sub := t.TempDir()
		path := filepath.Join(sub, "only.md")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		require.NoError(t, m.WriteFile(ctx, path, []byte("y")))

		entries, err := os.ReadDir(sub)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp or backup file should remain")
	})

	t.Run("read_missing", func(t *testing.T) {
		_, err := m.ReadFile(ctx, filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading file")
	})

	t.Run("write_missing", func(t *testing.T) {
		path := filepath.Join(dir, "never.txt")
		err := m.WriteFile(ctx, path, []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checking file")
		assert.NoFileExists(t, path, "write must not create new files")
	})
}
