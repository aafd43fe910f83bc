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

package config

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 RuleArgs is one pattern -> replacement rule as written in config
type RuleArgs struct {
	Pattern     string `json:"pattern" yaml:"pattern"`                     // Case-insensitive pattern (RE2 syntax unless Literal)
	Replacement string `json:"replacement" yaml:"replacement"`             // Inserted as-is, no $1 expansion
	Literal     bool   `json:"literal,omitempty" yaml:"literal,omitempty"` // Match Pattern as plain text
}

// Expression returns the regular expression source the rule compiles to.
// In patterns, \s and \S also cover \v, Unicode separators (NBSP, em space,
// line and paragraph separators) and U+FEFF.
func (r RuleArgs) Expression() string {
	if r.Literal {
		return "(?i)" + regexp.QuoteMeta(r.Pattern)
	}
	return "(?i)" + expandWhitespace(r.Pattern)
}

// whitespace is the set \s stands for inside a rule pattern.
const whitespace = `\s\v\p{Z}\x{FEFF}`

// expandWhitespace rewrites \s and \S into the wider whitespace set.
// Inside a character class \s is expanded in place and \S is kept as-is.
func expandWhitespace(pattern string) string {
	var b strings.Builder
	inClass := false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			i++
			switch next := pattern[i]; {
			case next == 's' && inClass:
				b.WriteString(whitespace)
			case next == 's':
				b.WriteString("[" + whitespace + "]")
			case next == 'S' && !inClass:
				b.WriteString("[^" + whitespace + "]")
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			// a leading ']' (after an optional '^') is a literal member
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		case c == '[' && inClass && strings.HasPrefix(pattern[i:], "[:"):
			// ASCII class such as [:space:]
			end := strings.Index(pattern[i:], ":]")
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString(pattern[i : i+end+2])
			i += end + 1
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// 📚 Config represents the complete configuration
type Config struct {
	Roots          []string   `json:"roots,omitempty" yaml:"roots,omitempty"`                     // Directories to traverse
	Extensions     []string   `json:"extensions,omitempty" yaml:"extensions,omitempty"`           // Allowed path suffixes, e.g. ".js"
	Skip           []string   `json:"skip,omitempty" yaml:"skip,omitempty"`                       // Substrings that exclude a path and its subtree
	IgnorePatterns []string   `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"` // Doublestar globs relative to a root
	Rules          []RuleArgs `json:"rules,omitempty" yaml:"rules,omitempty"`                     // Applied in order
}

// 🏭 Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		Roots: []string{"./src", "./public"},
		Extensions: []string{
			".js", ".jsx", ".ts", ".tsx", ".json", ".html",
			".css", ".scss", ".txt", ".md", ".env.example",
		},
		Skip: []string{
			"node_modules",
			".git",
			"build",
			"dist",
			".env",
			"package-lock.json",
			"yarn.lock",
			".replacerc", // our own config file
		},
		Rules: DefaultRules(),
	}
}

// DefaultRules returns the school name variants, most specific first.
func DefaultRules() []RuleArgs {
	return []RuleArgs{
		// full name with "Cililin"
		{Pattern: `SMP Muslimin Cililin`, Replacement: "SMPN 2 Cililin"},
		{Pattern: `SMPM Muslimin Cililin`, Replacement: "SMPN 2 Cililin"},
		{Pattern: `SMP\s+Muslimin\s+Cililin`, Replacement: "SMPN 2 Cililin"},

		// without "Cililin"
		{Pattern: `SMP Muslimin`, Replacement: "SMPN 2 Cililin"},
		{Pattern: `SMPM Muslimin`, Replacement: "SMPN 2 Cililin"},
		{Pattern: `SMPMuslimin`, Replacement: "SMPN2Cililin"},
		{Pattern: `smpmuslimin`, Replacement: "smpn2cililin"},

		// abbreviations
		{Pattern: `SMPM Cililin`, Replacement: "SMPN 2 Cililin"},
		{Pattern: `SMPM`, Replacement: "SMPN 2"},

		// identifiers and file names
		{Pattern: `SMPMusliminCililin`, Replacement: "SMPN2Cililin"},
		{Pattern: `smpmuslimincililin`, Replacement: "smpn2cililin"},
		{Pattern: `Smp_Muslimin`, Replacement: "SMPN_2_Cililin"},
		{Pattern: `smp_muslimin`, Replacement: "smpn_2_cililin"},

		// dashed
		{Pattern: `smp-muslimin-cililin`, Replacement: "smpn-2-cililin"},
		{Pattern: `smp-muslimin`, Replacement: "smpn-2-cililin"},
	}
}

// applyDefaults fills every field the file left unset. An explicitly empty
// list (e.g. `skip: []`) is kept as-is.
func (cfg *Config) applyDefaults() {
	def := Default()
	if cfg.Roots == nil {
		cfg.Roots = def.Roots
	}
	if cfg.Extensions == nil {
		cfg.Extensions = def.Extensions
	}
	if cfg.Skip == nil {
		cfg.Skip = def.Skip
	}
	if cfg.Rules == nil {
		cfg.Rules = def.Rules
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Roots) == 0 {
		return errors.Errorf("at least one root is required")
	}
	if len(cfg.Extensions) == 0 {
		return errors.Errorf("at least one extension is required")
	}

	for i, root := range cfg.Roots {
		if strings.TrimSpace(root) == "" {
			return errors.Errorf("roots[%d]: path is empty", i)
		}
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Errorf("extensions[%d]: %q must start with '.'", i, ext)
		}
	}

	for i, tok := range cfg.Skip {
		if tok == "" {
			return errors.Errorf("skip[%d]: token is empty", i)
		}
	}

	for i, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore_patterns[%d]: invalid pattern %q", i, pattern)
		}
	}

	for i, r := range cfg.Rules {
		if r.Pattern == "" {
			return errors.Errorf("rules[%d]: pattern is required", i)
		}
		if _, err := regexp.Compile(r.Expression()); err != nil {
			return errors.Errorf("rules[%d]: compiling pattern %q: %w", i, r.Pattern, err)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	roots := make([]string, len(cfg.Roots))
	for i, r := range cfg.Roots {
		roots[i] = filepath.Clean(r)
	}
	return fmt.Sprintf("%s [%s] (%d rules, %d skip tokens)",
		strings.Join(roots, ", "),
		strings.Join(cfg.Extensions, " "),
		len(cfg.Rules),
		len(cfg.Skip))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
