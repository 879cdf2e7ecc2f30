// Package slot provides the single-key storage slots the project document is
// persisted to. A slot holds one opaque value and is rewritten wholesale on
// every save.
package slot

import (
	"errors"
	"sync"
)

// ErrNotFound indicates nothing has been written to the slot yet.
var ErrNotFound = errors.New("slot is empty")

// Slot stores one serialized document.
type Slot interface {
	// Read returns the stored value, or ErrNotFound if the slot was never written.
	Read() ([]byte, error)
	// Write replaces the stored value.
	Write(data []byte) error
	Close() error
}

// Memory is a Slot that lives only as long as the process.
type Memory struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemory creates an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, ErrNotFound
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *Memory) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.set = true
	return nil
}

func (m *Memory) Close() error { return nil }
