package storage

import (
	"context"
	"sync"
)

// Memory is the in-memory KV backend used for tests and local runs. It also
// implements Notifier by fanning written keys out to subscribers in-process.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte

	subMu sync.Mutex
	subs  map[int]chan string
	nextS int
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
		subs:   make(map[int]chan string),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.values[key] = stored
	m.mu.Unlock()

	m.notify(key)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()

	m.notify(key)
	return nil
}

func (m *Memory) Subscribe(ctx context.Context) (<-chan string, func(), error) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextS
	m.nextS++
	ch := make(chan string, 16)
	m.subs[id] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel, nil
}

// notify never blocks a writer; slow subscribers drop signals, which is fine
// for a reload hint.
func (m *Memory) notify(key string) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- key:
		default:
		}
	}
}
