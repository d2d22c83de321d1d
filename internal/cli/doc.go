// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of the lunaa
// binary: argument parsing plus the ask and status subcommands. The
// default command starts the TUI, which lives in internal/ui.
package cli
