// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and usage text for the lunaa binary.
package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Model string // --model / -m override
	Query string // question text for ask
	Raw   []string
}

const usageText = `lunaa - a local chat client for Ollama

Usage:
  lunaa                      Start the chat TUI (default)
  lunaa ask "question"       Ask a single question and exit
  lunaa status               Check the daemon and list models
  lunaa version              Print version
  lunaa help                 Show this help

Flags:
  -m, --model <name>         Use a specific model for this run

Environment:
  OLLAMA_MODEL               Default model (overrides config file)
  SYSTEM_PROMPT              System prompt (empty disables it)
  LUNAA_OLLAMA_URL           Daemon URL (default http://127.0.0.1:11434)

Configuration file: ~/.lunaa/config.toml
`

// Usage returns the top-level usage text.
func Usage() string {
	return usageText
}

// Parse interprets os.Args[1:] into a command and its arguments.
func Parse(argv []string) (Command, Args) {
	args := Args{}

	// Pull out global flags first.
	var rest []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-m" || arg == "--model":
			if i+1 < len(argv) {
				i++
				args.Model = argv[i]
			}
		case strings.HasPrefix(arg, "--model="):
			args.Model = strings.TrimPrefix(arg, "--model=")
		default:
			rest = append(rest, arg)
		}
	}
	args.Raw = rest

	if len(rest) == 0 {
		return CmdTUI, args
	}

	switch rest[0] {
	case "ask":
		args.Query = strings.Join(rest[1:], " ")
		return CmdAsk, args
	case "status", "s":
		return CmdStatus, args
	case "version", "-v", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	default:
		// Unrecognized word: treat the whole line as a question.
		args.Query = strings.Join(rest, " ")
		return CmdAsk, args
	}
}

// FormatVersion returns the version line for `lunaa version`.
func FormatVersion() string {
	return fmt.Sprintf("lunaa %s (%s, built %s)", Version, GitCommit, BuildDate)
}
