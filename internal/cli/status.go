// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - daemon health and installed model report.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/TheCrazy8/Lunaa/internal/config"
	"github.com/TheCrazy8/Lunaa/internal/ollama"
	"github.com/TheCrazy8/Lunaa/internal/ui/styles"
)

// HandleStatus prints daemon reachability and the installed models.
func HandleStatus(args Args) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL: cfg.OllamaURL,
		Timeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("Lunaa status")
	fmt.Println("  daemon:", cfg.OllamaURL)

	if err := client.CheckRunning(ctx); err != nil {
		fmt.Println("  " + styles.RenderError("Ollama daemon is not reachable"))
		fmt.Println("  Start it with: ollama serve")
		return 1
	}
	fmt.Println("  " + styles.RenderSuccess("Ollama daemon is running"))

	models, err := client.ListModels(ctx)
	if err != nil {
		fmt.Println("  " + styles.RenderWarning("Could not list models: "+err.Error()))
		return 1
	}

	if len(models) == 0 {
		fmt.Println("  " + styles.RenderWarning("No models installed"))
		fmt.Println("  Pull one with: ollama pull " + cfg.Model)
		return 1
	}

	fmt.Printf("  models (%d):\n", len(models))
	configured := false
	for i := range models {
		marker := "   "
		if models[i].Name == cfg.Model {
			marker = " * "
			configured = true
		}
		fmt.Printf("  %s%-30s %s\n", marker, models[i].Name, models[i].FormatSize())
	}

	if !configured {
		fmt.Println("  " + styles.RenderWarning("Configured model '"+cfg.Model+"' is not installed"))
	}

	return 0
}
