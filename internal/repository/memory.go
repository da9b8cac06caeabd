package repository

import "sync"

// MemoryStore keeps records in a map. Used by tests and by callers that do not want persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]string
	// FailWrites makes every Set fail with this error when non-nil.
	FailWrites error
}

var _ KeyValueStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.records[key] = value
	return nil
}
