// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - one-shot question mode: stream the answer to stdout and exit.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/TheCrazy8/Lunaa/internal/config"
	"github.com/TheCrazy8/Lunaa/internal/model"
	"github.com/TheCrazy8/Lunaa/internal/ollama"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer re-renders the complete answer once streaming ends.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk streams one answer for args.Query and exits.
func HandleAsk(args Args) int {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: lunaa ask \"question\"")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if args.Model != "" {
		cfg.Model = args.Model
	}

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL: cfg.OllamaURL,
	})
	session := model.NewSession(client, model.Options{
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
	})

	ch, err := session.AskStream(context.Background(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Stream tokens as they arrive so the answer is visible immediately.
	var answer strings.Builder
	failed := false
	for chunk := range ch {
		if chunk.Err != nil {
			failed = true
			fmt.Fprintln(os.Stderr, "\n"+chunk.Content)
			continue
		}
		answer.WriteString(chunk.Content)
		fmt.Print(chunk.Content)
	}
	fmt.Println()

	if failed {
		return 1
	}

	// Replace the raw stream with the styled rendering when the answer
	// actually contains markdown structure.
	if text := answer.String(); strings.Contains(text, "```") || strings.Contains(text, "# ") {
		fmt.Println()
		fmt.Println(renderMarkdown(text))
	}

	return 0
}
