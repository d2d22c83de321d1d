// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/TheCrazy8/Lunaa/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies the speaker of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one message in the conversation. Turns are values and are
// immutable once appended to a history.
type Turn struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewTurn creates a turn with a generated ID.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewSystemTurn creates a system turn.
func NewSystemTurn(content string) Turn {
	return NewTurn(RoleSystem, content)
}

// NewUserTurn creates a user turn.
func NewUserTurn(content string) Turn {
	return NewTurn(RoleUser, content)
}

// NewAssistantTurn creates an assistant turn.
func NewAssistantTurn(content string) Turn {
	return NewTurn(RoleAssistant, content)
}

// Preview returns a rune-safe truncated preview of the first line of
// the turn content.
func (t Turn) Preview(maxRunes int) string {
	return util.TruncateRunes(util.FirstLine(t.Content), maxRunes)
}
