// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package callbacks provides the diagnostic sinks passed to Hamiltonians
// and integrators.
package callbacks

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/KaiKogure/stan/internal/callbacks"
)

// Writer is an append-only sink for diagnostic messages.
type Writer = callbacks.Writer

// NoopWriter discards every message.
type NoopWriter = callbacks.NoopWriter

// StreamWriter writes one prefixed line per message.
type StreamWriter = callbacks.StreamWriter

// LogWriter forwards messages to a zerolog logger.
type LogWriter = callbacks.LogWriter

// BufferWriter keeps every message in memory.
type BufferWriter = callbacks.BufferWriter

// NewStreamWriter creates a StreamWriter.
func NewStreamWriter(w io.Writer, prefix string) *StreamWriter {
	return callbacks.NewStreamWriter(w, prefix)
}

// NewLogWriter creates a LogWriter at a fixed level.
func NewLogWriter(logger zerolog.Logger, level zerolog.Level) *LogWriter {
	return callbacks.NewLogWriter(logger, level)
}
