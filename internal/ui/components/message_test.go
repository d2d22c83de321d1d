// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/TheCrazy8/Lunaa/internal/model"
	"github.com/TheCrazy8/Lunaa/internal/ui/styles"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"empty", "", 10, ""},
		{"fits", "hello world", 20, "hello world"},
		{"wraps", "hello world again", 11, "hello world\nagain"},
		{"zero width passthrough", "hello world", 0, "hello world"},
		{"preserves newlines", "one\ntwo three", 9, "one\ntwo three"},
		{"long word alone on line", "hi extraordinary", 5, "hi\nextraordinary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWordWrapWideRunes(t *testing.T) {
	// CJK characters occupy two cells each; four of them exceed width 7.
	wrapped := wordWrap("你好 世界风", 7)
	for _, line := range strings.Split(wrapped, "\n") {
		if w := maxLineWidth(line); w > 7 {
			t.Errorf("line %q has display width %d, want <= 7", line, w)
		}
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := maxLineWidth("ab\nabcd\nabc"); got != 4 {
		t.Errorf("maxLineWidth = %d, want 4", got)
	}
	if got := maxLineWidth("你好"); got != 4 {
		t.Errorf("maxLineWidth CJK = %d, want 4", got)
	}
}

func TestMessageViewRendersContent(t *testing.T) {
	theme := styles.NewTheme()

	turn := model.NewUserTurn("what is the moon made of")
	mv := NewMessageView(turn, theme)
	mv.SetWidth(80)

	out := mv.View()
	if !strings.Contains(out, "what is the moon made of") {
		t.Errorf("rendered view missing content: %q", out)
	}
	if !strings.Contains(out, "You") {
		t.Errorf("rendered view missing role label: %q", out)
	}
}

func TestStreamingViewShowsPartial(t *testing.T) {
	theme := styles.NewTheme()

	mv := NewStreamingView("The moon is", theme)
	mv.SetWidth(80)

	out := mv.View()
	if !strings.Contains(out, "The moon is") {
		t.Errorf("streaming view missing partial content: %q", out)
	}
}

func TestTranscriptSkipsSystemTurn(t *testing.T) {
	theme := styles.NewTheme()
	tr := NewTranscript(theme)
	tr.SetWidth(80)

	turns := []model.Turn{
		model.NewSystemTurn("be helpful"),
		model.NewUserTurn("hi"),
		model.NewAssistantTurn("hello there"),
	}

	out := tr.View(turns)
	if strings.Contains(out, "be helpful") {
		t.Errorf("transcript should not render the system prompt: %q", out)
	}
	if !strings.Contains(out, "hi") || !strings.Contains(out, "hello there") {
		t.Errorf("transcript missing turns: %q", out)
	}
}

func TestTranscriptEmptyState(t *testing.T) {
	theme := styles.NewTheme()
	tr := NewTranscript(theme)
	tr.SetWidth(80)

	out := tr.View([]model.Turn{model.NewSystemTurn("be helpful")})
	if !strings.Contains(out, "No messages yet") {
		t.Errorf("expected empty state, got %q", out)
	}
}
