// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/TheCrazy8/Lunaa/internal/model"
	"github.com/TheCrazy8/Lunaa/internal/ui/styles"
)

// =============================================================================
// MESSAGE VIEW - renders a single transcript entry
// =============================================================================

// MessageView renders one conversation turn in the transcript.
type MessageView struct {
	Role          model.Role
	Content       string
	Timestamp     time.Time
	Width         int
	ShowTimestamp bool
	Streaming     bool
	PreRendered   bool // content already carries ANSI styling; skip wrapping
	theme         *styles.Theme
}

// NewMessageView creates a MessageView for a committed turn.
func NewMessageView(turn model.Turn, theme *styles.Theme) *MessageView {
	return &MessageView{
		Role:      turn.Role,
		Content:   turn.Content,
		Timestamp: turn.Timestamp,
		Width:     80,
		theme:     theme,
	}
}

// NewStreamingView creates a MessageView for an assistant response still
// arriving. The content grows as tokens land; a cursor marks the tail.
func NewStreamingView(content string, theme *styles.Theme) *MessageView {
	return &MessageView{
		Role:      model.RoleAssistant,
		Content:   content,
		Width:     80,
		Streaming: true,
		theme:     theme,
	}
}

// SetWidth sets the render width.
func (v *MessageView) SetWidth(width int) {
	v.Width = width
}

// View renders the entry.
func (v *MessageView) View() string {
	switch v.Role {
	case model.RoleUser:
		return v.render(v.theme.UserLabel, v.theme.UserText)
	case model.RoleAssistant:
		return v.render(v.theme.AssistantLabel, v.theme.AssistantText)
	default:
		return v.renderSystem()
	}
}

func (v *MessageView) render(label, body lipgloss.Style) string {
	content := v.Content
	if v.Streaming {
		content += streamingCursor()
	}
	if content == "" {
		content = "..."
	}

	wrapped := content
	if !v.PreRendered {
		maxContentWidth := v.Width - 4
		if maxContentWidth < 20 {
			maxContentWidth = 20
		}
		wrapped = wordWrap(content, maxContentWidth)
	}

	header := label.Render(v.Role.DisplayName())
	if v.ShowTimestamp && !v.Timestamp.IsZero() {
		header += " " + v.theme.Timestamp.Render(formatTimestamp(v.Timestamp))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body.Render(wrapped))
}

func (v *MessageView) renderSystem() string {
	content := v.Content
	if content == "" {
		return ""
	}

	maxContentWidth := v.Width - 4
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	return v.theme.SystemNotice.Render(wordWrap(content, maxContentWidth))
}

// streamingCursor marks the growing tail of an in-flight response.
func streamingCursor() string {
	return lipgloss.NewStyle().
		Foreground(styles.Purple).
		Blink(true).
		Render("_")
}

// formatTimestamp formats a turn timestamp for transcript display.
// Same-day turns show only the clock time.
func formatTimestamp(ts time.Time) string {
	now := time.Now()
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		return ts.Format("3:04 PM")
	}
	return ts.Format("Jan 2, 3:04 PM")
}

// =============================================================================
// TRANSCRIPT - renders the full message list
// =============================================================================

// Transcript renders the conversation history for the viewport.
type Transcript struct {
	Width          int
	ShowTimestamps bool

	// AssistantRenderer, when set, post-processes committed assistant
	// content (markdown to ANSI). Its output is used verbatim.
	AssistantRenderer func(string) string

	theme *styles.Theme
}

// NewTranscript creates a Transcript renderer.
func NewTranscript(theme *styles.Theme) *Transcript {
	return &Transcript{
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the render width.
func (tr *Transcript) SetWidth(width int) {
	tr.Width = width
}

// View renders all turns, skipping the leading system prompt.
func (tr *Transcript) View(turns []model.Turn) string {
	var entries []string
	for _, turn := range turns {
		if turn.Role == model.RoleSystem {
			continue
		}
		mv := NewMessageView(turn, tr.theme)
		mv.SetWidth(tr.Width)
		mv.ShowTimestamp = tr.ShowTimestamps
		if turn.Role == model.RoleAssistant && tr.AssistantRenderer != nil {
			mv.Content = tr.AssistantRenderer(turn.Content)
			mv.PreRendered = true
		}
		entries = append(entries, mv.View())
	}

	if len(entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(tr.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return emptyStyle.Render("No messages yet. Say something!")
	}

	return strings.Join(entries, "\n\n")
}

// =============================================================================
// TEXT UTILITIES
// =============================================================================

// wordWrap wraps text to fit within the specified display width.
// Widths are measured in terminal cells so CJK text wraps correctly.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]

		for _, word := range words[1:] {
			if runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}

		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}
