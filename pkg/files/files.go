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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager reads and rewrites files in place
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte) error
}

// 🔧 Manager implements FileManager on the local filesystem
type Manager struct{}

// 🏭 NewManager creates a new file manager
func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFile overwrites an existing file, keeping its permission bits. No
// temp file or backup is left behind.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("checking file: %w", err)
	}

	if err := os.WriteFile(path, content, info.Mode().Perm()); err != nil {
		return errors.Errorf("writing file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("size", len(content)).
		Msg("file rewritten")

	return nil
}
