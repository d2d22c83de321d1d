// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Lunaa TUI:
// the transcript message renderer, the header, and the bottom status bar.
// Components are pure view helpers; they hold display state only and render
// strings for the chat model to compose.
package components
