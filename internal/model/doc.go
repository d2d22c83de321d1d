// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model holds the conversation state: turns, history, and the
// session that streams requests to the daemon.
//
// The one invariant that matters lives here: history never contains a
// user turn without a matching assistant response. A user turn is
// appended optimistically when a request starts; on success the
// assistant turn joins it, and on any transport failure the user turn
// is rolled back so the next request does not replay an orphaned
// prompt as model context.
package model
