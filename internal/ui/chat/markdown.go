// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders completed assistant responses with syntax
// highlighting. Streaming partials stay plain text; a half-open code
// fence would render as garbage.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// newMarkdownRenderer creates a renderer for the given wrap width.
// A nil inner renderer means glamour failed to initialize; Render then
// falls back to plain text.
func newMarkdownRenderer(width int) *markdownRenderer {
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}

	return &markdownRenderer{renderer: r, width: width}
}

// Render renders content as markdown, returning the raw text on any
// failure so a bad document never blanks the transcript.
func (m *markdownRenderer) Render(content string) string {
	if m == nil || m.renderer == nil {
		return content
	}

	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}

	// Glamour pads with blank lines; the transcript adds its own spacing.
	return strings.Trim(out, "\n")
}
