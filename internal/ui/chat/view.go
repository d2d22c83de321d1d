// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"
)

// View renders the full chat screen.
func (m *Model) View() string {
	if !m.ready {
		return "Starting Lunaa..."
	}

	var b strings.Builder

	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInputArea())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}

// renderInputArea renders the prompt line, or the thinking indicator
// while a response is in flight.
func (m *Model) renderInputArea() string {
	container := m.theme.InputContainer.Width(m.width - 2)

	if m.state == stateStreaming {
		label := "Thinking..."
		if secs := int(time.Since(m.startTime).Seconds()); secs > 0 {
			label = fmt.Sprintf("Thinking... %ds", secs)
		}
		line := m.spin.View() + " " + m.theme.ThinkingText.Render(label)
		return container.Render(line)
	}

	return container.Render(m.input.View())
}
