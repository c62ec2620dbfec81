package database

import "sync"

// Memory keeps snapshots in process memory. It is used when the database
// file cannot be opened and in tests.
type Memory struct {
	mutex sync.RWMutex
	table map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{table: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if v, ok := m.table[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Put(key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.table[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(keys ...string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, key := range keys {
		delete(m.table, key)
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
