// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/TheCrazy8/Lunaa/internal/ollama"
)

// ErrBusy is returned by AskStream while another request is in flight.
// The UI prevents this by disabling input, but the session enforces it
// rather than relying on the affordance.
var ErrBusy = errors.New("a request is already in flight")

// Streamer is the daemon-facing chat operation the session depends on.
// *ollama.Client satisfies it.
type Streamer interface {
	ChatStream(ctx context.Context, model string, messages []ollama.Message, callback ollama.StreamCallback) error
}

// Chunk is one increment of a streaming answer. On transport failure the
// final chunk carries a rendered, human-readable message in Content and
// the underlying error in Err.
type Chunk struct {
	Content string
	Err     error
}

// Options configures a session. Values come from config/env at startup;
// the session itself never reads ambient state.
type Options struct {
	Model        string
	SystemPrompt string
}

// =============================================================================
// SESSION
// =============================================================================

// Session owns the conversation history and the streaming ask operation.
// Exactly one request may be in flight at a time.
type Session struct {
	mu       sync.Mutex
	client   Streamer
	model    string
	history  *History
	inFlight bool
}

// NewSession creates a session over the given daemon client.
func NewSession(client Streamer, opts Options) *Session {
	return &Session{
		client:  client,
		model:   opts.Model,
		history: NewHistory(opts.SystemPrompt),
	}
}

// Model returns the current model identifier.
func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// SetModel switches the model used for subsequent requests. The existing
// history is kept; it becomes context for the new model.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
}

// History returns a snapshot copy of the conversation turns.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Turns()
}

// HistoryLen returns the number of turns in the history.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// InFlight reports whether a request is currently streaming.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Reset drops the conversation, keeping only the system turn.
// No-op while a request is in flight.
func (s *Session) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.history.Reset()
	return true
}

// =============================================================================
// STREAMING ASK
// =============================================================================

// AskStream starts a streaming request for userText and returns a
// channel of answer chunks. The caller is expected to have trimmed and
// validated the input; blank input is the caller's no-op, not ours.
//
// The user turn is appended to history before AskStream returns. The
// channel is single-pass and finite: the producer closes it when the
// daemon signals completion or after the one error chunk.
//
// On success the concatenated answer is committed as an assistant turn.
// On failure the channel yields exactly one final chunk whose Content
// is a rendered error message (underlying error text plus a remediation
// hint), the provisional user turn is rolled back, and no assistant
// turn is appended. There is no retry and no cancellation beyond ctx.
//
// A second call while a request is in flight returns ErrBusy.
func (s *Session) AskStream(ctx context.Context, userText string) (<-chan Chunk, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.inFlight = true
	s.history.Append(NewUserTurn(userText))
	wire := s.history.ToWire()
	model := s.model
	s.mu.Unlock()

	ch := make(chan Chunk)
	go s.stream(ctx, model, wire, ch)
	return ch, nil
}

// stream drives the daemon call and reconciles history when it ends.
// Runs on its own goroutine; it is the only writer to ch and closes it.
func (s *Session) stream(ctx context.Context, model string, wire []ollama.Message, ch chan<- Chunk) {
	defer close(ch)

	var answer strings.Builder
	err := s.client.ChatStream(ctx, model, wire, func(chunk ollama.StreamChunk) {
		if chunk.Error != nil || chunk.Content == "" {
			return
		}
		answer.WriteString(chunk.Content)
		ch <- Chunk{Content: chunk.Content}
	})

	if err != nil {
		// Partial fragments already shown to the user are intentionally
		// not retained: a truncated answer must not become model context.
		s.mu.Lock()
		s.history.RollbackLastUser()
		s.inFlight = false
		s.mu.Unlock()
		ch <- Chunk{Content: renderError(err, model), Err: err}
		return
	}

	s.mu.Lock()
	s.history.Append(NewAssistantTurn(answer.String()))
	s.inFlight = false
	s.mu.Unlock()
}

// renderError builds the transcript message for a failed request.
func renderError(err error, model string) string {
	var b strings.Builder
	b.WriteString("[Error] ")
	b.WriteString(err.Error())
	b.WriteString("\nMake sure the Ollama daemon is running and the model '")
	b.WriteString(model)
	b.WriteString("' is pulled.")
	return b.String()
}
