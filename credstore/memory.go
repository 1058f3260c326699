package credstore

import (
	"context"
	"sync"
)

// Memory is an in-process [Storage] plus [Notifier]. It backs tests and
// single-process deployments; subscriber delivery is the in-process
// equivalent of a BroadcastChannel.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	subs map[int]chan Change
	next int
}

// NewMemory creates an empty in-process storage.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
		subs: make(map[int]chan Change),
	}
}

// Get implements [Storage].
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements [Storage].
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = stored
	return nil
}

// Delete implements [Storage]. Deleting absent keys is a no-op.
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Publish implements [Notifier]. Delivery is non-blocking: a subscriber
// that stopped draining loses events rather than stalling the writer.
func (m *Memory) Publish(_ context.Context, change Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range m.subs {
		select {
		case ch <- change:
		default:
		}
	}
	return nil
}

// Subscribe implements [Notifier].
func (m *Memory) Subscribe(_ context.Context) (<-chan Change, func(), error) {
	ch := make(chan Change, 16)

	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = ch
	m.mu.Unlock()

	stop := func() {
		m.mu.Lock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
		m.mu.Unlock()
	}

	return ch, stop, nil
}
