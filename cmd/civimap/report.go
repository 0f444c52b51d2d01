package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/karaleary/civimap/internal/engine"
	"github.com/karaleary/civimap/internal/resolver"
)

// buildReport renders an analysis as markdown for terminal display.
func buildReport(analysis engine.PriorityAnalysis) string {
	var b strings.Builder

	b.WriteString("# Priority Analysis\n\n")
	for i, p := range analysis.Priorities {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, p.Original)
		fmt.Fprintf(&b, "- **Term:** %s (`%s`)\n", p.StandardTerm, p.TermID)
		fmt.Fprintf(&b, "- **Category:** %s\n", p.Category)
		fmt.Fprintf(&b, "- **Confidence:** %.2f (%s)\n", p.Confidence, resolver.Strength(p.Confidence))
		if p.NeedsClarification {
			b.WriteString("- **Needs clarification**\n")
			for _, c := range p.Candidates {
				fmt.Fprintf(&b, "  - %s (%.2f)\n", c.StandardTerm, c.Confidence)
			}
			for _, topic := range p.TopicSuggestions {
				fmt.Fprintf(&b, "  - Suggested topic: %s\n", topic)
			}
		}
		fmt.Fprintf(&b, "\n%s\n\n", p.Reasoning)
	}

	if len(analysis.Conflicts) > 0 {
		b.WriteString("# Conflicts\n\n")
		for _, c := range analysis.Conflicts {
			fmt.Fprintf(&b, "- **%s/%s:** %s vs %s — %s\n",
				c.Severity, c.Type, c.Priorities[0], c.Priorities[1], c.Reason)
			for _, compromise := range c.PossibleCompromises {
				fmt.Fprintf(&b, "  - Possible compromise: %s\n", compromise)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Overall confidence: %.2f\n", analysis.OverallConfidence)
	return b.String()
}

// renderMarkdown renders markdown text for terminal display, falling
// back to the raw text when the renderer is unavailable.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
