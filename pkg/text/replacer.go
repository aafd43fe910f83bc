package text

import (
	"context"
	"io"
	"regexp"

	"github.com/walteh/replacerc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrNotText is returned when content is not valid UTF-8.
var ErrNotText = errors.Base("content is not valid UTF-8 text")

// Rule is a compiled pattern -> replacement pair
type Rule struct {
	// Pattern matches case-insensitively over the whole content
	Pattern *regexp.Regexp

	// Replacement is inserted literally
	Replacement string
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates the final content differs from the original
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies rules in order to the content. Each rule sees the
	// output of the rules before it.
	ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*ReplacementResult, error)
}

// CompileRules compiles config rules, keeping their order.
func CompileRules(args []config.RuleArgs) ([]Rule, error) {
	rules := make([]Rule, 0, len(args))
	for i, a := range args {
		if a.Pattern == "" {
			return nil, errors.Errorf("rule %d: pattern is required", i)
		}
		re, err := regexp.Compile(a.Expression())
		if err != nil {
			return nil, errors.Errorf("rule %d: compiling %q: %w", i, a.Pattern, err)
		}
		rules = append(rules, Rule{Pattern: re, Replacement: a.Replacement})
	}
	return rules, nil
}

// MustCompileRules is like CompileRules but panics on error.
func MustCompileRules(args ...config.RuleArgs) []Rule {
	rules, err := CompileRules(args)
	if err != nil {
		panic(err)
	}
	return rules
}
