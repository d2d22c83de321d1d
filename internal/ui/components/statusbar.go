// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/TheCrazy8/Lunaa/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusStreaming
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusStreaming:
		return "Streaming..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusStreaming:
		return "~"
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar.
type StatusBar struct {
	ModelName     string
	DaemonOnline  bool
	Status        Status
	TurnCount     int           // committed user/assistant pairs
	LastTokens    int           // completion tokens of the last response
	Elapsed       time.Duration // age of the in-flight request, zero when idle
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetDaemon updates the daemon reachability indicator.
func (s *StatusBar) SetDaemon(online bool) {
	s.DaemonOnline = online
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	gap := s.Width - runewidth.StringWidth(stripANSI(left)) - runewidth.StringWidth(stripANSI(right)) - 2
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.Width(s.Width).Render(line)
}

func (s *StatusBar) renderLeft() string {
	var statusStyle lipgloss.Style
	switch s.Status {
	case StatusStreaming:
		statusStyle = s.theme.StatusBusy
	case StatusError:
		statusStyle = s.theme.StatusOffline
	default:
		statusStyle = s.theme.StatusOnline
	}

	statusText := s.Status.String()
	if s.Status == StatusStreaming && s.Elapsed > 0 {
		statusText = fmt.Sprintf("%s %ds", statusText, int(s.Elapsed.Seconds()))
	}
	parts := []string{
		statusStyle.Render(s.Status.Icon() + " " + statusText),
	}

	if s.ModelName != "" {
		parts = append(parts, s.theme.ShortcutDesc.Render("model:")+" "+s.theme.ShortcutKey.Render(s.ModelName))
	}

	daemon := s.theme.StatusOffline.Render("daemon offline")
	if s.DaemonOnline {
		daemon = s.theme.StatusOnline.Render("daemon up")
	}
	parts = append(parts, daemon)

	if s.TurnCount > 0 {
		parts = append(parts, s.theme.ShortcutDesc.Render(fmt.Sprintf("%d turns", s.TurnCount)))
	}
	if s.LastTokens > 0 {
		parts = append(parts, s.theme.ShortcutDesc.Render(fmt.Sprintf("%d tok", s.LastTokens)))
	}

	return strings.Join(parts, "  ")
}

func (s *StatusBar) renderRight() string {
	if !s.ShowShortcuts || s.Width < 60 {
		return ""
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"enter", "send"},
		{"ctrl+l", "clear"},
		{"ctrl+c", "quit"},
	}

	var parts []string
	for _, sc := range shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.key)+" "+s.theme.ShortcutDesc.Render(sc.desc))
	}
	return strings.Join(parts, "  ")
}

// stripANSI removes escape sequences so width math uses visible cells only.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
