// Lunaa - a terminal chat client for local Ollama models.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TheCrazy8/Lunaa/internal/cli"
	"github.com/TheCrazy8/Lunaa/internal/config"
	"github.com/TheCrazy8/Lunaa/internal/model"
	"github.com/TheCrazy8/Lunaa/internal/ollama"
	"github.com/TheCrazy8/Lunaa/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI(args))
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(args))
	case cli.CmdVersion:
		fmt.Println(cli.FormatVersion())
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
	}
}

// runTUI wires the session, relay, and chat model together and runs
// the Bubble Tea program.
func runTUI(args cli.Args) int {
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

	relay := chat.NewStreamRelay(session)

	m := chat.New(session, client, relay, chat.Options{
		ShowTimestamps: cfg.UI.ShowTimestamps,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// The relay needs the program to marshal stream chunks onto the
	// event loop; attach it before Run starts accepting input.
	relay.SetSender(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
