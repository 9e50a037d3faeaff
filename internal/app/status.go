package app

import (
	"fmt"
	"io"
	"sync"
)

// StatusReporter shows short, non-fatal messages to the user, the way an
// editor status line does.
type StatusReporter interface {
	Report(msg string)
}

// StatusFunc adapts a function to StatusReporter.
type StatusFunc func(msg string)

// Report implements StatusReporter.
func (f StatusFunc) Report(msg string) { f(msg) }

// WriterStatus writes each message on its own line.
type WriterStatus struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterStatus creates a reporter printing to out.
func NewWriterStatus(out io.Writer) *WriterStatus {
	return &WriterStatus{out: out}
}

// Report implements StatusReporter.
func (s *WriterStatus) Report(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, msg)
}

// LogStatus reports messages through a logger at warn level.
type LogStatus struct {
	Logger *Logger
}

// Report implements StatusReporter.
func (s LogStatus) Report(msg string) {
	s.Logger.Warn("%s", msg)
}
