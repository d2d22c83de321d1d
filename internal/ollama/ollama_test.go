// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Role != "user" {
		t.Errorf("Role = %q, want 'user'", msg.Role)
	}
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want 'Hello'", msg.Content)
	}
}

func TestNewSystemMessage(t *testing.T) {
	msg := NewSystemMessage("You are a helpful assistant")

	if msg.Role != "system" {
		t.Errorf("Role = %q, want 'system'", msg.Role)
	}
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage("Response")

	if msg.Role != "assistant" {
		t.Errorf("Role = %q, want 'assistant'", msg.Role)
	}
}

// =============================================================================
// CLIENT CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})

	if client.BaseURL() != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %q", client.BaseURL())
	}
}

func TestNewClientWithConfig_Nil(t *testing.T) {
	client := NewClientWithConfig(nil)
	if client == nil {
		t.Fatal("NewClientWithConfig(nil) returned nil")
	}
}

// =============================================================================
// HEALTH CHECK TESTS
// =============================================================================

func TestCheckRunning_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Ollama is running"))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	if err := client.CheckRunning(context.Background()); err != nil {
		t.Errorf("CheckRunning = %v, want nil", err)
	}
}

func TestCheckRunning_Down(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	err := client.CheckRunning(context.Background())
	if !IsNotRunning(err) {
		t.Errorf("CheckRunning = %v, want not-running error", err)
	}
}

// =============================================================================
// MODEL LIST TESTS
// =============================================================================

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.1","size":4661224676},{"name":"mistral","size":4109865159}]}`))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2", len(models))
	}
	if models[0].Name != "llama3.1" {
		t.Errorf("first model = %q", models[0].Name)
	}
}

func TestModelExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"llama3.1"}]}`))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	ok, err := client.ModelExists(context.Background(), "llama3.1")
	if err != nil || !ok {
		t.Errorf("ModelExists(llama3.1) = %v, %v, want true, nil", ok, err)
	}

	ok, err = client.ModelExists(context.Background(), "nope")
	if err != nil || ok {
		t.Errorf("ModelExists(nope) = %v, %v, want false, nil", ok, err)
	}
}

// =============================================================================
// STREAMING TESTS
// =============================================================================

func TestChatStream_DeliversChunksInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		w.Write([]byte(`{"message":{"role":"assistant","content":"Hel"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":"lo"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":""},"done":true,"eval_count":2,"total_duration":1500000000}` + "\n"))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	var contents []string
	var finalChunk StreamChunk
	err := client.ChatStream(context.Background(), "llama3.1", []Message{NewUserMessage("hi")}, func(chunk StreamChunk) {
		if chunk.Content != "" {
			contents = append(contents, chunk.Content)
		}
		if chunk.Done {
			finalChunk = chunk
		}
	})
	if err != nil {
		t.Fatalf("ChatStream error: %v", err)
	}

	if strings.Join(contents, "") != "Hello" {
		t.Errorf("accumulated = %q, want 'Hello'", strings.Join(contents, ""))
	}
	if len(contents) != 2 || contents[0] != "Hel" || contents[1] != "lo" {
		t.Errorf("chunk order = %v, want [Hel lo]", contents)
	}
	if !finalChunk.Done {
		t.Error("final chunk not marked done")
	}
	if finalChunk.CompletionTokens != 2 {
		t.Errorf("CompletionTokens = %d, want 2", finalChunk.CompletionTokens)
	}
	if finalChunk.TotalDuration != 1500*time.Millisecond {
		t.Errorf("TotalDuration = %v", finalChunk.TotalDuration)
	}
}

func TestChatStream_ModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model 'ghost' not found, try pulling it first"}`))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	err := client.ChatStream(context.Background(), "ghost", nil, func(StreamChunk) {})

	if !IsModelNotFound(err) {
		t.Errorf("err = %v, want model-not-found", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error %q should carry the daemon's message", err.Error())
	}
}

func TestChatStream_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	err := client.ChatStream(context.Background(), "llama3.1", nil, func(StreamChunk) {})

	if !IsNotRunning(err) {
		t.Errorf("err = %v, want not-running", err)
	}
}

func TestChatStream_DaemonError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"something broke"}`))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	err := client.ChatStream(context.Background(), "llama3.1", nil, func(StreamChunk) {})

	if err == nil || !strings.Contains(err.Error(), "something broke") {
		t.Errorf("err = %v, want daemon message surfaced", err)
	}
}

// =============================================================================
// STREAM READER TESTS
// =============================================================================

func TestStreamReader_SkipsMalformedLines(t *testing.T) {
	body := `{"message":{"content":"A"},"done":false}
not json at all
{"message":{"content":"B"},"done":true}
`
	reader := NewStreamReader(strings.NewReader(body))

	var got []string
	err := reader.Process(context.Background(), func(chunk StreamChunk) {
		got = append(got, chunk.Content)
	})
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("chunks = %v, want [A B]", got)
	}
}

func TestStreamReader_LastLineWithoutNewline(t *testing.T) {
	body := `{"message":{"content":"only"},"done":true}`
	reader := NewStreamReader(strings.NewReader(body))

	var got []string
	err := reader.Process(context.Background(), func(chunk StreamChunk) {
		got = append(got, chunk.Content)
	})
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(got) != 1 || got[0] != "only" {
		t.Errorf("chunks = %v, want [only]", got)
	}
}

func TestStreamReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewStreamReader(strings.NewReader(`{"message":{"content":"x"},"done":false}` + "\n"))
	err := reader.Process(ctx, func(StreamChunk) {})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// =============================================================================
// MODEL INFO TESTS
// =============================================================================

func TestModelInfo_FormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{4661224676, "4.3 GB"},
		{5242880, "5.0 MB"},
		{2048, "2.0 KB"},
		{512, "512.0 B"},
	}

	for _, tc := range tests {
		m := ModelInfo{Size: tc.size}
		if got := m.FormatSize(); got != tc.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
