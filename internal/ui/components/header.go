// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TheCrazy8/Lunaa/internal/ui/styles"
	"github.com/TheCrazy8/Lunaa/internal/util"
)

// =============================================================================
// HEADER COMPONENT - top banner
// =============================================================================

// Header is the top banner showing the app name and active model.
type Header struct {
	Title    string
	Subtitle string
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a Header component.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "Lunaa",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header line.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render(h.Title)
	if h.Subtitle != "" {
		subtitle := util.TruncateWidth(h.Subtitle, h.Width/2)
		title += " " + h.theme.HeaderSubtitle.Render(subtitle)
	}

	return lipgloss.NewStyle().
		Width(h.Width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		Render(title)
}
