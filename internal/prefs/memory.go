package prefs

import "sync"

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	putErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) GetString(key, def string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *Memory) PutString(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }

// Test helpers

// SetPutError makes subsequent PutString calls fail with err.
func (m *Memory) SetPutError(err error) {
	m.mu.Lock()
	m.putErr = err
	m.mu.Unlock()
}

// Delete removes key from the store.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
}

var _ Store = (*Memory)(nil)
