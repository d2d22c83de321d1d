// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Lunaa TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette adjusts
// automatically between light and dark terminal backgrounds. The Theme
// struct bundles every styled component the chat view needs; build one
// with NewTheme at startup and pass it down.
package styles
