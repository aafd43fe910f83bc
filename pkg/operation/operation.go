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

package operation

import (
	"bytes"
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/replacerc/pkg/config"
	"github.com/walteh/replacerc/pkg/files"
	"github.com/walteh/replacerc/pkg/log"
	"github.com/walteh/replacerc/pkg/text"
	"github.com/walteh/replacerc/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ErrMissingRoot is recorded when a configured root does not exist.
var ErrMissingRoot = errors.Base("root directory not found")

// 🔧 Options contains configuration for the replacer
type Options struct {
	// Config is the replacerc configuration
	Config *config.Config
	// Logger receives user-facing progress lines
	Logger *log.Logger
	// Files reads and rewrites files; defaults to the local filesystem
	Files files.FileManager
	// Replacer applies rules to content; defaults to text.NewRegexpReplacer
	Replacer text.TextReplacer
}

// 🎮 Replacer rewrites every matching file under the configured roots
type Replacer struct {
	config   *config.Config
	logger   *log.Logger
	files    files.FileManager
	replacer text.TextReplacer
	walker   *walk.Walker
	rules    []text.Rule
}

// 🏭 New creates a replacer with the given options
func New(opts Options) (*Replacer, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Files == nil {
		opts.Files = files.NewManager()
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewRegexpReplacer()
	}

	rules, err := text.CompileRules(opts.Config.Rules)
	if err != nil {
		return nil, errors.Errorf("compiling rules: %w", err)
	}

	return &Replacer{
		config:   opts.Config,
		logger:   opts.Logger,
		files:    opts.Files,
		replacer: opts.Replacer,
		walker:   walk.New(opts.Config.Skip, opts.Config.Extensions, opts.Config.IgnorePatterns),
		rules:    rules,
	}, nil
}

// 🏃 Run scans every root and rewrites changed files. Per-file and per-root
// errors are logged and recorded in the summary; they never stop the run.
func (r *Replacer) Run(ctx context.Context) (*RunSummary, error) {
	zlog := zerolog.Ctx(ctx)
	summary := newRunSummary()
	start := time.Now()

	r.logParameters()

	for _, root := range r.config.Roots {
		if err := checkRoot(root); err != nil {
			summary.MissingRoots = append(summary.MissingRoots, root)
			summary.fail(FailureMissingRoot, root, err)
			if errors.Is(err, ErrMissingRoot) {
				r.logger.Warningf("folder not found: %s", root)
			} else {
				r.logger.Errorf("cannot open folder %s: %v", root, err)
			}
			continue
		}

		r.logger.StartRoot(ctx, root)
		r.scanRoot(ctx, root, summary)
	}

	summary.Duration = time.Since(start)
	summary.Phase = PhaseDone

	r.logger.LogNewline()
	if summary.FilesModified > 0 {
		r.logger.Successf("updated %d of %d scanned file(s)", summary.FilesModified, summary.FilesScanned)
	} else {
		r.logger.Infof("no files changed (%d scanned)", summary.FilesScanned)
	}

	zlog.Debug().
		Int("files_scanned", summary.FilesScanned).
		Int("files_modified", summary.FilesModified).
		Int("replacements", summary.TotalReplacements).
		Int("failures", len(summary.Failures)).
		Dur("duration", summary.Duration).
		Msg("run complete")

	return summary, nil
}

func (r *Replacer) logParameters() {
	r.logger.Header("find & replace")
	r.logger.Info(r.config.String())
	r.logger.Field("roots", strings.Join(r.config.Roots, ", "))
	r.logger.Field("extensions", strings.Join(r.config.Extensions, ", "))
	r.logger.Field("skip", strings.Join(r.config.Skip, ", "))
	if len(r.config.IgnorePatterns) > 0 {
		r.logger.Field("ignore", strings.Join(r.config.IgnorePatterns, ", "))
	}
	r.logger.Field("rules", strings.Join(ruleNames(r.config.Rules), ", "))
	r.logger.LogNewline()
	r.logger.Divider()
	r.logger.LogNewline()
}

func (r *Replacer) scanRoot(ctx context.Context, root string, summary *RunSummary) {
	for path, err := range r.walker.Files(root) {
		if err != nil {
			f := summary.fail(FailureWalk, path, err)
			r.logger.LogFileOperation(ctx, log.FileOperation{Path: f.Path, Err: err})
			continue
		}

		summary.FilesScanned++
		r.processFile(ctx, path, summary)
	}
}

// 📄 processFile reads, rewrites and records a single file
func (r *Replacer) processFile(ctx context.Context, path string, summary *RunSummary) {
	content, err := r.files.ReadFile(ctx, path)
	if err != nil {
		r.failFile(ctx, summary, FailureFileRead, path, err)
		return
	}

	result, err := r.replacer.ReplaceText(ctx, bytes.NewReader(content), r.rules)
	if err != nil {
		r.failFile(ctx, summary, FailureFileRead, path, errors.Errorf("decoding file: %w", err))
		return
	}

	if !result.WasModified {
		zerolog.Ctx(ctx).Trace().Str("file", path).Msg("unchanged")
		return
	}

	if err := r.files.WriteFile(ctx, path, result.ModifiedContent); err != nil {
		r.failFile(ctx, summary, FailureFileWrite, path, err)
		return
	}

	summary.record(FileOutcome{Path: path, Replacements: result.ReplacementCount})
	r.logger.LogFileOperation(ctx, log.FileOperation{
		Path:         path,
		Replacements: result.ReplacementCount,
	})
}

func (r *Replacer) failFile(ctx context.Context, summary *RunSummary, kind FailureKind, path string, err error) {
	summary.fail(kind, path, err)
	r.logger.LogFileOperation(ctx, log.FileOperation{Path: path, Err: err})
}

// checkRoot returns ErrMissingRoot when root is absent or not a directory.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.WithStack(ErrMissingRoot)
		}
		return errors.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrMissingRoot, root)
	}
	return nil
}

func ruleNames(rules []config.RuleArgs) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Pattern
	}
	return names
}
