// Package clipboard writes picked identifiers to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the desktop clipboard through the platform helper
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
type System struct{}

// WriteAll implements Writer.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no supported clipboard utility found")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Memory records writes in process. Used when no system clipboard is wanted
// and by tests.
type Memory struct {
	mu     sync.Mutex
	writes []string
	Err    error
}

// WriteAll implements Writer.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.writes = append(m.writes, text)
	return nil
}

// Last returns the most recent write.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return "", false
	}
	return m.writes[len(m.writes)-1], true
}

// Writes returns every recorded write in order.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}
