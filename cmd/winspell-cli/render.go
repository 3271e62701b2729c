package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Alfex4936/winspell/winspell"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	errorStyle = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#EF4444"))
	fixStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// renderPretty prints the text with flagged spans highlighted, then one
// line per error.
func renderPretty(res *winspell.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %d error(s)", res.Locale, res.ErrorCount)))
	b.WriteString("\n\n")
	b.WriteString(highlight(res.Original, res.Errors))
	b.WriteString("\n\n")

	for _, it := range res.Errors {
		pos := mutedStyle.Render(fmt.Sprintf("%4d:%-3d", it.Start, it.Length))
		fmt.Fprintf(&b, "%s %s %s\n", pos, errorStyle.Render(it.Origin), describe(it.Correction))
	}
	if res.ErrorCount > 0 {
		b.WriteString("\n")
		b.WriteString(fixStyle.Render(res.Corrected))
		b.WriteString("\n")
	}
	return b.String()
}

func highlight(text string, items []winspell.Item) string {
	runes := []rune(text)
	var b strings.Builder
	pos := 0
	for _, it := range items {
		if it.Start < pos {
			continue
		}
		b.WriteString(string(runes[pos:it.Start]))
		b.WriteString(errorStyle.Render(string(runes[it.Start:it.End()])))
		pos = it.End()
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

func describe(c winspell.Correction) string {
	switch c.Kind {
	case winspell.KindDelete:
		return mutedStyle.Render("→ delete")
	case winspell.KindReplacement:
		return "→ " + fixStyle.Render(c.Replacement)
	case winspell.KindSuggestions:
		if len(c.Suggestions) == 0 {
			return mutedStyle.Render("→ no suggestions")
		}
		return "→ " + fixStyle.Render(strings.Join(c.Suggestions, ", "))
	default:
		return mutedStyle.Render("→ no correction")
	}
}
