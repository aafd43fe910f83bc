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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "src/index.js",
					Replacements: 2,
				})
			},
			wantLogs: []string{
				"✓ [2x] src/index.js",
			},
		},
		{
			name: "log_failed_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path: "src/locked.md",
					Err:  errors.New("permission denied"),
				})
			},
			wantLogs: []string{
				"✗ src/locked.md: permission denied",
			},
		},
		{
			name: "start_root",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRoot(context.Background(), "./src")
			},
			wantLogs: []string{
				"◆ scanning ./src",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("find & replace")
			},
			wantLogs: []string{
				"replacerc • find & replace",
			},
		},
		{
			name: "field_and_divider",
			op: func(t *testing.T, logger *Logger) {
				logger.Field("roots", "./src, ./public")
				logger.Divider()
			},
			wantLogs: []string{
				"roots: ./src, ./public",
				strings.Repeat("=", 60),
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerStructured(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	zbuf := &bytes.Buffer{}
	logger := New(io.Discard, zerolog.New(zbuf))

	logger.LogFileOperation(context.Background(), FileOperation{Path: "a.md", Replacements: 4})

	assert.Contains(t, zbuf.String(), `"file":"a.md"`)
	assert.Contains(t, zbuf.String(), `"replacements":4`)
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.Nop())

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}
