// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TheCrazy8/Lunaa/internal/model"
	"github.com/TheCrazy8/Lunaa/internal/ollama"
)

// =============================================================================
// STREAM RELAY
// =============================================================================

// Sender delivers messages onto the Bubble Tea event loop. *tea.Program
// satisfies it; tests substitute a recording fake.
type Sender interface {
	Send(msg tea.Msg)
}

// StreamRelay bridges the session's background stream worker and the UI
// loop. Each request gets one forwarding goroutine that drains the
// session channel and republishes every chunk through Sender.Send, so
// tokens reach Update in arrival order regardless of render timing.
type StreamRelay struct {
	mu      sync.Mutex
	sender  Sender
	session *model.Session
}

// NewStreamRelay creates a relay for the session. The sender is attached
// later, once the tea.Program exists.
func NewStreamRelay(session *model.Session) *StreamRelay {
	return &StreamRelay{session: session}
}

// SetSender attaches the event loop sender. Must be called before Start.
func (r *StreamRelay) SetSender(s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sender = s
}

// Start begins a request for userText. It returns model.ErrBusy when a
// response is already in flight; the caller keeps the input disabled in
// that window so this is a guard, not a queue.
//
// On success the forwarding goroutine emits, in order: StreamStartMsg,
// zero or more StreamTokenMsg, at most one StreamErrorMsg, and a final
// StreamCompleteMsg once the session has committed or rolled back.
func (r *StreamRelay) Start(userText string) error {
	r.mu.Lock()
	sender := r.sender
	r.mu.Unlock()

	ch, err := r.session.AskStream(context.Background(), userText)
	if err != nil {
		return err
	}

	go func() {
		sender.Send(StreamStartMsg{StartTime: time.Now()})

		failed := false
		for chunk := range ch {
			if chunk.Err != nil {
				failed = true
				sender.Send(StreamErrorMsg{Text: chunk.Content})
				continue
			}
			sender.Send(StreamTokenMsg{Token: chunk.Content})
		}

		sender.Send(StreamCompleteMsg{Failed: failed})
	}()

	return nil
}

// =============================================================================
// DAEMON COMMANDS
// =============================================================================

// CheckDaemonCmd creates a command that probes the Ollama daemon.
func CheckDaemonCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.CheckRunning(ctx)
		return DaemonStatusMsg{
			Running: err == nil,
			Error:   err,
		}
	}
}

// ListModelsCmd creates a command that lists installed models.
func ListModelsCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		models, err := client.ListModels(ctx)
		return ModelsListMsg{
			Models: models,
			Error:  err,
		}
	}
}

// SwitchModelCmd creates a command that verifies a model is installed
// before the session switches to it.
func SwitchModelCmd(client *ollama.Client, modelName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		exists, err := client.ModelExists(ctx, modelName)
		if err != nil {
			return ModelSwitchedMsg{Model: modelName, Error: err}
		}
		if !exists {
			return ModelSwitchedMsg{Model: modelName, Error: ollama.ErrModelNotFound}
		}
		return ModelSwitchedMsg{Model: modelName}
	}
}
