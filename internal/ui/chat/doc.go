// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the Lunaa TUI.
//
// The package is organized as a standard Bubble Tea model:
//
//   - messages.go defines the tea.Msg types flowing through Update
//   - relay.go forwards streamed tokens from the session worker onto
//     the UI loop via Program.Send, preserving arrival order
//   - model.go holds the state machine (ready / streaming) and the
//     slash command handling
//   - view.go renders the transcript, input area, and status bar
//
// Exactly one response can be in flight at a time. While streaming,
// the input is blurred and submissions are ignored; the conversation
// history commits or rolls back inside the session, never here.
package chat
