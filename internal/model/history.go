// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/TheCrazy8/Lunaa/internal/ollama"

// =============================================================================
// HISTORY TYPE
// =============================================================================

// History is the ordered list of turns forming the full context sent to
// the model on every request. Insertion order is significant.
//
// History is not safe for concurrent use on its own; the owning Session
// serializes access.
type History struct {
	turns []Turn
}

// NewHistory creates a history, seeded with a leading system turn when
// systemPrompt is non-empty. The system turn, once present, is never
// removed by any operation.
func NewHistory(systemPrompt string) *History {
	h := &History{}
	if systemPrompt != "" {
		h.turns = append(h.turns, NewSystemTurn(systemPrompt))
	}
	return h
}

// Append adds a turn to the end of the history.
func (h *History) Append(t Turn) {
	h.turns = append(h.turns, t)
}

// RollbackLastUser removes the most recent turn if and only if it is a
// user turn. Returns true when a turn was removed. The leading system
// turn can never be the most recent user turn, so it is never touched.
func (h *History) RollbackLastUser() bool {
	if len(h.turns) == 0 {
		return false
	}
	if h.turns[len(h.turns)-1].Role != RoleUser {
		return false
	}
	h.turns = h.turns[:len(h.turns)-1]
	return true
}

// Reset removes every turn except the leading system turn.
func (h *History) Reset() {
	if len(h.turns) > 0 && h.turns[0].Role == RoleSystem {
		h.turns = h.turns[:1]
		return
	}
	h.turns = nil
}

// Len returns the number of turns.
func (h *History) Len() int {
	return len(h.turns)
}

// HasSystemTurn reports whether the history starts with a system turn.
func (h *History) HasSystemTurn() bool {
	return len(h.turns) > 0 && h.turns[0].Role == RoleSystem
}

// Turns returns a copy of the turns for rendering. Callers get a
// discrete snapshot, never live storage.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Last returns the most recent turn and true, or a zero turn and false
// when the history is empty.
func (h *History) Last() (Turn, bool) {
	if len(h.turns) == 0 {
		return Turn{}, false
	}
	return h.turns[len(h.turns)-1], true
}

// ToWire converts the history to the daemon's message format.
func (h *History) ToWire() []ollama.Message {
	messages := make([]ollama.Message, 0, len(h.turns))
	for _, t := range h.turns {
		messages = append(messages, ollama.Message{
			Role:    t.Role.String(),
			Content: t.Content,
		})
	}
	return messages
}
