// Package report renders a RunSummary for people (text) or programs (JSON, YAML).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/walteh/replacerc/pkg/operation"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Write renders summary to w in the given format.
func Write(w io.Writer, format Format, summary *operation.RunSummary) error {
	switch format {
	case FormatJSON:
		return JSON(w, summary)
	case FormatYAML:
		return YAML(w, summary)
	default:
		return Text(w, summary)
	}
}

// Text writes the human-readable summary block.
func Text(w io.Writer, s *operation.RunSummary) error {
	var b strings.Builder

	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	b.WriteString(pterm.DefaultSection.Sprint("Results"))
	fmt.Fprintf(&b, "✅ Files modified:     %s\n", color.New(color.Bold).Sprint(s.FilesModified))
	fmt.Fprintf(&b, "🔄 Total replacements: %s\n", color.New(color.Bold).Sprint(s.TotalReplacements))
	fmt.Fprintf(&b, "⏱️  Duration:           %.2fs\n", s.Seconds())

	if len(s.Outcomes) > 0 {
		b.WriteString("\n📝 Modified files:\n")
		for i, o := range s.Outcomes {
			fmt.Fprintf(&b, "   %d. %s %s\n", i+1, o.Path, color.New(color.FgCyan).Sprintf("(%dx)", o.Replacements))
		}
	}

	if len(s.Failures) > 0 {
		b.WriteString("\n")
		b.WriteString(pterm.Warning.Sprintfln("%d path(s) could not be processed:", len(s.Failures)))
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "   - [%s] %s: %s\n", f.Kind, f.Path, f.Message)
		}
	}

	fmt.Fprintf(&b, "\n✨ Done! %d replacement(s) in %d file(s).\n", s.TotalReplacements, s.FilesModified)

	if s.TotalReplacements == 0 {
		b.WriteString("\n")
		b.WriteString(pterm.Info.Sprintln("No matches found."))
		b.WriteString("   The target strings may already be replaced, or are spelled differently.\n")
		b.WriteString("💡 Tip: search the project by hand to confirm before editing the rules.\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}

// JSON writes the summary as indented JSON.
func JSON(w io.Writer, s *operation.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// YAML writes the summary as YAML.
func YAML(w io.Writer, s *operation.RunSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return errors.Errorf("encoding YAML: %w", err)
	}
	return nil
}
