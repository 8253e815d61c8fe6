// Package ui provides terminal feedback for slow CLI steps such as loading a
// dataset from Google Storage.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Spinner provides a simple command-line spinner for long-running operations
type Spinner struct {
	w        io.Writer
	chars    []string
	message  string
	active   bool
	spinning bool
	mu       sync.Mutex
	done     chan struct{}
	finished chan struct{}
}

// NewSpinner creates a new spinner writing to w
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		chars:    []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message:  message,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start begins spinning. Off a terminal, or with NO_COLOR set, it prints the
// message once instead.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true

	if !IsTerminal(s.w) || os.Getenv("NO_COLOR") != "" {
		fmt.Fprintf(s.w, "%s...\n", s.message)
		return
	}

	s.spinning = true
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprintf(s.w, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", s.chars[i], s.message)
				s.mu.Unlock()
				i = (i + 1) % len(s.chars)
			}
		}
	}()
}

// Stop stops the spinner and optionally shows a final message
func (s *Spinner) Stop(finalMessage string) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	spinning := s.spinning
	s.mu.Unlock()

	if spinning {
		close(s.done)
		<-s.finished
	}

	if finalMessage != "" {
		fmt.Fprintf(s.w, "%s\n", finalMessage)
	}
}

// IsTerminal reports whether w is a character device
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShowSpinner runs fn while a spinner is shown on w and returns its error
func ShowSpinner(w io.Writer, message string, fn func() error) error {
	spinner := NewSpinner(w, message)
	spinner.Start()
	err := fn()
	if err != nil {
		// The caller reports err itself.
		spinner.Stop("✗ Failed")
	} else {
		spinner.Stop("✓ Done")
	}
	return err
}
