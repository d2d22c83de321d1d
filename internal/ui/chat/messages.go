// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/TheCrazy8/Lunaa/internal/ollama"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamStartMsg signals that a response stream has begun.
type StreamStartMsg struct {
	StartTime time.Time
}

// StreamTokenMsg delivers one content chunk from the stream.
type StreamTokenMsg struct {
	Token string
}

// StreamErrorMsg carries the rendered error text for a failed request.
// The session has already rolled the pending user turn back when this
// message arrives.
type StreamErrorMsg struct {
	Text string
}

// StreamCompleteMsg signals that the stream closed. For a successful
// request the assistant turn is already committed to history.
type StreamCompleteMsg struct {
	Failed bool
}

// =============================================================================
// DAEMON MESSAGES
// =============================================================================

// DaemonStatusMsg reports Ollama daemon reachability.
type DaemonStatusMsg struct {
	Running bool
	Error   error
}

// ModelsListMsg delivers the installed model list.
type ModelsListMsg struct {
	Models []ollama.ModelInfo
	Error  error
}

// ModelSwitchedMsg confirms a model switch request.
type ModelSwitchedMsg struct {
	Model string
	Error error
}
