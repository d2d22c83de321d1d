// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for the local Ollama daemon.
//
// The daemon exposes a REST API on localhost (default 127.0.0.1:11434).
// This package covers the three operations the application needs:
//
//   - CheckRunning: health probe against the daemon root
//   - ListModels: enumerate locally pulled models (/api/tags)
//   - ChatStream: stream a chat completion (/api/chat with stream=true),
//     delivering NDJSON chunks to a callback in arrival order
//
// Failures are reported as *ClientError values with a typed category so
// callers can distinguish "daemon not running" from "model not pulled"
// when building user-facing messages.
package ollama
