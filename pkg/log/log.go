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
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 3  // spaces to indent file entries
	ruleWidth  = 60 // width of the section divider
)

// 🎯 FileOperation is one processed file, as shown to the user
type FileOperation struct {
	Path         string // File path
	Replacements int    // Number of replacements made
	Err          error  // Set when the file could not be read or written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger writing user-facing lines to console and
// structured events to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	indent := strings.Repeat(" ", fileIndent)
	if op.Err != nil {
		return fmt.Sprintf("%s%s %s: %s",
			indent,
			color.New(color.FgRed).Sprint("✗"),
			op.Path,
			color.New(color.Faint).Sprint(op.Err.Error()))
	}
	return fmt.Sprintf("%s%s %s %s",
		indent,
		color.New(color.FgGreen).Sprint("✓"),
		color.New(color.FgCyan).Sprintf("[%dx]", op.Replacements),
		op.Path)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	if op.Err != nil {
		l.zlog.Error().
			Err(op.Err).
			Str("file", op.Path).
			Msg("file operation failed")
		return
	}

	l.zlog.Info().
		Str("file", op.Path).
		Int("replacements", op.Replacements).
		Msg("file modified")
}

// 📝 StartRoot announces a root directory being scanned
func (l *Logger) StartRoot(ctx context.Context, root string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint("scanning "+root))

	l.zlog.Info().Str("root", root).Msg("scanning root")
}

// 📝 Divider prints a horizontal rule
func (l *Logger) Divider() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, color.New(color.Faint).Sprint(strings.Repeat("=", ruleWidth)))
}

// 📝 Field prints a "label: value" line, used for the scan parameters
func (l *Logger) Field(label, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", color.New(color.Faint).Sprint(label+":"), value)
	l.zlog.Debug().Str(label, value).Msg("parameter")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("replacerc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
