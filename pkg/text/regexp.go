package text

import (
	"bytes"
	"context"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexpReplacer implements TextReplacer using compiled regular expressions
type RegexpReplacer struct{}

// NewRegexpReplacer creates a new RegexpReplacer
func NewRegexpReplacer() *RegexpReplacer {
	return &RegexpReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *RegexpReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if !utf8.Valid(originalContent) {
		return nil, errors.WithStack(ErrNotText)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := originalContent
	for _, rule := range rules {
		// counted on the current content so earlier rules shadow later ones
		matches := len(rule.Pattern.FindAllIndex(current, -1))
		if matches == 0 {
			continue
		}

		current = rule.Pattern.ReplaceAllLiteral(current, []byte(rule.Replacement))
		result.ReplacementCount += matches

		zerolog.Ctx(ctx).Trace().
			Str("pattern", rule.Pattern.String()).
			Int("matches", matches).
			Msg("rule applied")
	}

	result.ModifiedContent = current
	result.WasModified = !bytes.Equal(originalContent, current)
	return result, nil
}
