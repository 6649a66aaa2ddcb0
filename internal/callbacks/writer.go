// Package callbacks provides the text sinks threaded through Hamiltonian
// gradient and metric computations for non-fatal diagnostics.
package callbacks

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Writer is an append-only sink for diagnostic messages.
type Writer interface {
	Write(msg string)
}

// NoopWriter discards every message.
type NoopWriter struct{}

// Write implements Writer.
func (NoopWriter) Write(string) {}

// StreamWriter writes one line per message to an io.Writer, each line
// starting with a fixed prefix. Write errors are dropped.
type StreamWriter struct {
	w      io.Writer
	prefix string
}

// NewStreamWriter creates a StreamWriter.
func NewStreamWriter(w io.Writer, prefix string) *StreamWriter {
	return &StreamWriter{w: w, prefix: prefix}
}

// Write implements Writer.
func (s *StreamWriter) Write(msg string) {
	_, _ = fmt.Fprintf(s.w, "%s%s\n", s.prefix, msg)
}

// LogWriter forwards messages to a zerolog logger at a fixed level.
type LogWriter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewLogWriter creates a LogWriter.
func NewLogWriter(logger zerolog.Logger, level zerolog.Level) *LogWriter {
	return &LogWriter{logger: logger, level: level}
}

// Write implements Writer.
func (l *LogWriter) Write(msg string) {
	l.logger.WithLevel(l.level).Str("sink", l.level.String()).Msg(msg)
}

// BufferWriter keeps every message in memory.
type BufferWriter struct {
	msgs []string
}

// Write implements Writer.
func (b *BufferWriter) Write(msg string) {
	b.msgs = append(b.msgs, msg)
}

// Messages returns the messages written so far.
func (b *BufferWriter) Messages() []string {
	return b.msgs
}

// Reset drops every stored message.
func (b *BufferWriter) Reset() {
	b.msgs = b.msgs[:0]
}
