// Package walk enumerates the files a run should consider.
//
// The policy is a pre-visit filter: an entry whose full path contains any
// skip token, or whose root-relative path matches an ignore pattern, is
// dropped before it is visited, so skipped directories are never listed.
// Surviving regular files are yielded when their path ends in an allowed
// extension.
package walk

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// Walker holds the traversal policy.
type Walker struct {
	skip       []string
	extensions []string
	ignore     []string
}

// New creates a Walker. Extensions are case-sensitive suffixes including the
// leading dot; skip tokens match anywhere in the joined path; ignore patterns
// are doublestar globs matched against the slash path relative to the root.
func New(skip, extensions, ignore []string) *Walker {
	return &Walker{
		skip:       skip,
		extensions: extensions,
		ignore:     ignore,
	}
}

// Skipped reports whether path contains any skip token.
func (w *Walker) Skipped(path string) bool {
	for _, tok := range w.skip {
		if strings.Contains(path, tok) {
			return true
		}
	}
	return false
}

// Ignored reports whether rel, a path relative to a root, matches an ignore pattern.
func (w *Walker) Ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Allowed reports whether path ends in one of the allowed extensions.
func (w *Walker) Allowed(path string) bool {
	for _, ext := range w.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Files lazily yields candidate files under root in directory-listing order
// (os.ReadDir sorts by name). A directory or entry that cannot be read is
// yielded as (path, err) and the walk moves on. The root itself is not
// checked against the skip tokens.
func (w *Walker) Files(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		w.walk(root, root, yield)
	}
}

func (w *Walker) walk(root, dir string, yield func(string, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield(dir, errors.Errorf("reading directory: %w", err))
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if w.Skipped(path) {
			continue
		}

		if rel, err := filepath.Rel(root, path); err == nil && w.Ignored(rel) {
			continue
		}

		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			// links to files count, links to directories are not followed
			info, err := os.Stat(path)
			if err != nil {
				if !yield(path, errors.Errorf("resolving symlink: %w", err)) {
					return false
				}
				continue
			}
			if info.IsDir() {
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if !w.walk(root, path, yield) {
				return false
			}
		case mode.IsRegular():
			if w.Allowed(path) && !yield(path, nil) {
				return false
			}
		}
	}

	return true
}
