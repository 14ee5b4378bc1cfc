package strength

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

type memoryHistory struct {
	mu      sync.Mutex
	records []Record
}

// MemoryStore keeps histories in process. Each key has its own lock,
// the map lock is only held to find or create a key's history.
type MemoryStore struct {
	mu        sync.RWMutex
	histories map[Key]*memoryHistory
	userKeys  map[string][]Key
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		histories: make(map[Key]*memoryHistory),
		userKeys:  make(map[string][]Key),
	}
}

func (s *MemoryStore) history(key Key, create bool) *memoryHistory {
	s.mu.RLock()
	h, ok := s.histories[key]
	s.mu.RUnlock()
	if ok || !create {
		return h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.histories[key]; ok {
		return h
	}
	h = &memoryHistory{}
	s.histories[key] = h
	s.userKeys[key.UserID] = append(s.userKeys[key.UserID], key)
	return h
}

func (s *MemoryStore) Append(_ context.Context, key Key, build BuildFunc) (Record, error) {
	h := s.history(key, true)

	h.mu.Lock()
	defer h.mu.Unlock()

	// full slice expression: build cannot append into our backing array
	current := h.records[:len(h.records):len(h.records)]
	rec, err := build(current)
	if err != nil {
		return Record{}, err
	}
	h.records = append(h.records, rec)
	return rec, nil
}

func (s *MemoryStore) History(_ context.Context, key Key) ([]Record, error) {
	h := s.history(key, false)
	if h == nil {
		return []Record{}, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Record{}, h.records...), nil
}

func (s *MemoryStore) UserRecords(ctx context.Context, userID string) ([]Record, error) {
	s.mu.RLock()
	keys := append([]Key(nil), s.userKeys[userID]...)
	s.mu.RUnlock()

	records := make([]Record, 0)
	for _, key := range keys {
		history, err := s.History(ctx, key)
		if err != nil {
			return nil, err
		}
		records = append(records, history...)
	}
	return records, nil
}
