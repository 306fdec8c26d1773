package publisher

import (
	"context"
	"sync"
)

// MemoryStore is the in-process store used by tests and Redis-less runs.
type MemoryStore struct {
	mu        sync.Mutex
	events    []map[string]any
	processed map[string]struct{}
	chats     map[int64]bool
}

// NewMemoryStore creates an empty in-memory publisher store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		processed: map[string]struct{}{},
		chats:     map[int64]bool{},
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) MarkProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.processed[key]; seen {
		return false, nil
	}
	s.processed[key] = struct{}{}
	return true, nil
}

func (s *MemoryStore) AddEvent(ctx context.Context, event map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) RecentEvents(ctx context.Context, chatID int64, count int) ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []map[string]any
	for i := len(s.events) - 1; i >= 0 && len(events) < count; i-- {
		if id, ok := s.events[i]["chat_id"].(int64); ok && id == chatID {
			events = append(events, s.events[i])
		}
	}
	return events, nil
}

func (s *MemoryStore) ProcessedCount(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.processed)), nil
}

func (s *MemoryStore) ChatEnabled(ctx context.Context, chatID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enabled, recorded := s.chats[chatID]
	if !recorded {
		return true, nil
	}
	return enabled, nil
}

func (s *MemoryStore) SetChatEnabled(ctx context.Context, chatID int64, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chatID] = enabled
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Events returns a snapshot of everything published, oldest first.
func (s *MemoryStore) Events() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.events))
	copy(out, s.events)
	return out
}
