// Package kv provides the durable key-value storage the host shell persists
// into. The Store interface is deliberately narrow so the shell can run
// against SQLite in production and an in-memory map in tests.
package kv

import "sync"

// Store is a string key-value store.
type Store interface {
	// Get returns the value stored under key. A missing key is reported as
	// ok == false with a nil error.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// Memory is an in-memory Store. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]string
	writes int
}

// NewMemory returns an empty in-memory store, optionally pre-seeded.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{data: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.data[k] = v
	}
	return m
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	m.writes++
	return nil
}

// Writes returns how many times Set has been called.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
