// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"time"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader parses the daemon's NDJSON streaming response line by line.
type StreamReader struct {
	reader *bufio.Reader
}

// NewStreamReader creates a stream reader over the response body.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: bufio.NewReader(r),
	}
}

// Process reads the stream and calls the callback for each chunk.
// Blocks until the stream completes, errors, or the context is cancelled.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			chunk, err := s.readChunk()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return &ClientError{Type: ErrTypeConnection, Message: "stream interrupted", Cause: err}
			}

			if chunk != nil {
				callback(*chunk)
				if chunk.Done {
					return nil
				}
			}
		}
	}
}

// readChunk reads and parses a single line from the stream.
// Returns (nil, nil) for blank or malformed lines, which are skipped.
func (s *StreamReader) readChunk() (*StreamChunk, error) {
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		if len(line) == 0 {
			return nil, err
		}
		// The final line may arrive without a trailing newline.
	}

	if len(line) == 0 {
		return nil, nil
	}

	var response ChatResponse
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, nil
	}

	chunk := &StreamChunk{
		Content:    response.Message.Content,
		Done:       response.Done,
		DoneReason: response.DoneReason,
	}

	if response.Done {
		chunk.TotalDuration = time.Duration(response.TotalDuration)
		chunk.PromptTokens = response.PromptEvalCount
		chunk.CompletionTokens = response.EvalCount
	}

	return chunk, nil
}
