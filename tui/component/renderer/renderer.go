// Package renderer turns answer bundles into styled terminal output.
package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"clinassist/client"
)

// AnswerRenderer renders answers, evidence and graph results for the
// answer pane.
type AnswerRenderer struct {
	markdown *glamour.TermRenderer
	styles   *Theme
	width    int
}

// NewAnswerRenderer creates a renderer with the given theme, or the
// default theme when nil.
func NewAnswerRenderer(styles *Theme) *AnswerRenderer {
	if styles == nil {
		styles = DefaultTheme()
	}

	markdown, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dracula"),
		glamour.WithWordWrap(0),
	)
	return &AnswerRenderer{
		markdown: markdown,
		styles:   styles,
	}
}

// SetWidth sets the wrap width for subsequent renders.
func (r *AnswerRenderer) SetWidth(width int) {
	r.width = width
}

// Welcome renders the initial pane content.
func (r *AnswerRenderer) Welcome() string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Clinical AI Assistant"))
	b.WriteString("\n")
	b.WriteString(r.styles.Notice.Render("Evidence-based medical research at your fingertips"))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Meta.Render("Type a clinical question and press Enter."))
	return b.String()
}

// Error renders a query-lane error message.
func (r *AnswerRenderer) Error(msg string) string {
	return r.styles.Error.Render("✗ " + msg)
}

// Notice renders a transient informational line.
func (r *AnswerRenderer) Notice(msg string) string {
	return r.styles.Notice.Render(msg)
}

// Answer renders a full answer bundle: confidence badge, answer text, the
// evidence window, and the remainder note when sources were truncated.
func (r *AnswerRenderer) Answer(bundle *client.AnswerBundle) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("AI Response"))
	b.WriteString("  ")
	b.WriteString(r.confidenceBadge(bundle.ConfidenceLevel()))
	b.WriteString("\n\n")

	b.WriteString(r.renderMarkdown(bundle.Response))
	b.WriteString("\n")

	top := bundle.TopSources()
	if len(top) > 0 {
		b.WriteString(r.styles.Title.Render(fmt.Sprintf("Evidence Sources (Top %d)", len(top))))
		b.WriteString("\n\n")
		for i, src := range top {
			b.WriteString(r.evidenceCard(i+1, src))
			b.WriteString("\n")
		}
	}

	if extra := bundle.ExtraSourceCount(); extra > 0 {
		b.WriteString(r.styles.MoreNote.Render(fmt.Sprintf("+ %d additional sources referenced", extra)))
		b.WriteString("\n")
	}

	return b.String()
}

// Graph renders the visualization section under an answer.
func (r *AnswerRenderer) Graph(kind client.VizKind, location, errMsg string, generating bool) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Data Visualization"))
	b.WriteString("  ")
	b.WriteString(r.styles.Meta.Render(kind.DisplayName()))
	b.WriteString("\n")

	switch {
	case generating:
		b.WriteString(r.styles.Notice.Render("Generating..."))
	case errMsg != "":
		b.WriteString(r.styles.Error.Render("✗ " + errMsg))
	case location != "":
		b.WriteString(r.styles.Meta.Render("Saved to " + location))
	}
	return b.String()
}

func (r *AnswerRenderer) confidenceBadge(level client.Confidence) string {
	switch level {
	case client.ConfidenceHigh:
		return r.styles.ConfidenceHigh.Render("HIGH CONFIDENCE")
	case client.ConfidenceMedium:
		return r.styles.ConfidenceMedium.Render("MEDIUM CONFIDENCE")
	case client.ConfidenceLow:
		return r.styles.ConfidenceLow.Render("LOW CONFIDENCE")
	case client.ConfidenceUnknown:
		return r.styles.ConfidenceUnknown.Render("CONFIDENCE N/A")
	}
	return r.styles.ConfidenceUnknown.Render("CONFIDENCE N/A")
}

func (r *AnswerRenderer) evidenceCard(rank int, src client.Source) string {
	var b strings.Builder

	b.WriteString(r.styles.Rank.Render(fmt.Sprintf("#%d", rank)))
	b.WriteString(" ")
	b.WriteString(r.styles.Source.Render(src.Source))
	b.WriteString("  ")
	b.WriteString(r.styles.Match.Render(fmt.Sprintf("%.1f%% MATCH", src.Similarity*100)))
	b.WriteString("\n")
	b.WriteString(r.styles.Meta.Render(fmt.Sprintf("  Page %d · %s", src.Page, src.ChunkType)))
	b.WriteString("\n")

	if src.Text != "" {
		b.WriteString(r.styles.Excerpt.Render("“" + src.Text + "”"))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *AnswerRenderer) renderMarkdown(text string) string {
	if r.markdown == nil {
		return r.styles.Answer.Render(text)
	}
	out, err := r.markdown.Render(text)
	if err != nil {
		return r.styles.Answer.Render(text)
	}
	return strings.TrimRight(out, "\n") + "\n"
}
