// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

// =============================================================================
// TURN TESTS
// =============================================================================

func TestNewTurn(t *testing.T) {
	turn := NewUserTurn("hello")

	if turn.Role != RoleUser {
		t.Errorf("Role = %v, want user", turn.Role)
	}
	if turn.Content != "hello" {
		t.Errorf("Content = %q", turn.Content)
	}
	if turn.ID == "" {
		t.Error("ID should be generated")
	}
	if turn.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("tool"), "tool"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%v) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestTurn_Preview(t *testing.T) {
	turn := NewUserTurn("a fairly long message body")
	if got := turn.Preview(10); got != "a fairl..." {
		t.Errorf("Preview = %q", got)
	}
	if got := turn.Preview(100); got != "a fairly long message body" {
		t.Errorf("Preview = %q, want unchanged", got)
	}
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestNewHistory_WithSystemPrompt(t *testing.T) {
	h := NewHistory("be brief")

	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	if !h.HasSystemTurn() {
		t.Error("HasSystemTurn = false, want true")
	}
}

func TestNewHistory_Empty(t *testing.T) {
	h := NewHistory("")

	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
	if h.HasSystemTurn() {
		t.Error("HasSystemTurn = true, want false")
	}
}

func TestHistory_RollbackLastUser(t *testing.T) {
	h := NewHistory("sys")
	h.Append(NewUserTurn("question"))

	if !h.RollbackLastUser() {
		t.Fatal("RollbackLastUser = false, want true")
	}
	if h.Len() != 1 {
		t.Errorf("Len after rollback = %d, want 1", h.Len())
	}
}

func TestHistory_RollbackRefusesNonUserTail(t *testing.T) {
	h := NewHistory("sys")
	h.Append(NewUserTurn("question"))
	h.Append(NewAssistantTurn("answer"))

	if h.RollbackLastUser() {
		t.Error("RollbackLastUser removed an assistant turn")
	}
	if h.Len() != 3 {
		t.Errorf("Len = %d, want 3", h.Len())
	}
}

func TestHistory_RollbackNeverRemovesSystemTurn(t *testing.T) {
	h := NewHistory("sys")

	if h.RollbackLastUser() {
		t.Error("RollbackLastUser removed the system turn")
	}
	if !h.HasSystemTurn() {
		t.Error("system turn missing after rollback attempt")
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory("sys")
	h.Append(NewUserTurn("q"))
	h.Append(NewAssistantTurn("a"))

	h.Reset()

	if h.Len() != 1 || !h.HasSystemTurn() {
		t.Errorf("after Reset: Len = %d, HasSystemTurn = %v", h.Len(), h.HasSystemTurn())
	}
}

func TestHistory_ResetWithoutSystemTurn(t *testing.T) {
	h := NewHistory("")
	h.Append(NewUserTurn("q"))

	h.Reset()

	if h.Len() != 0 {
		t.Errorf("after Reset: Len = %d, want 0", h.Len())
	}
}

func TestHistory_TurnsReturnsCopy(t *testing.T) {
	h := NewHistory("sys")
	snapshot := h.Turns()
	h.Append(NewUserTurn("added after snapshot"))

	if len(snapshot) != 1 {
		t.Errorf("snapshot length = %d, want 1 (must not observe later appends)", len(snapshot))
	}
}

func TestHistory_ToWire(t *testing.T) {
	h := NewHistory("be brief")
	h.Append(NewUserTurn("2+2?"))
	h.Append(NewAssistantTurn("4"))

	wire := h.ToWire()
	if len(wire) != 3 {
		t.Fatalf("wire length = %d, want 3", len(wire))
	}
	wantRoles := []string{"system", "user", "assistant"}
	for i, role := range wantRoles {
		if wire[i].Role != role {
			t.Errorf("wire[%d].Role = %q, want %q", i, wire[i].Role, role)
		}
	}
	if wire[1].Content != "2+2?" {
		t.Errorf("wire[1].Content = %q", wire[1].Content)
	}
}
