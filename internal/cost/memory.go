package cost

import (
	"context"
	"sync"
	"time"
)

// maxMemoryRecords bounds the in-memory store; older records are dropped
// first once the cap is hit.
const maxMemoryRecords = 10000

// MemoryStore keeps usage records in process memory. It backs tests and is
// the degradation target when the durable store is unreachable.
type MemoryStore struct {
	mu      sync.Mutex
	records []UsageRecord
}

// NewMemoryStore creates an in-memory usage store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

// Record appends the record, evicting the oldest when at capacity.
func (s *MemoryStore) Record(ctx context.Context, rec UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) >= maxMemoryRecords {
		s.records = s.records[1:]
	}
	s.records = append(s.records, rec)
	return nil
}

// DayStats aggregates the records falling on the given day key.
func (s *MemoryStore) DayStats(ctx context.Context, day string) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{Period: day, Models: map[string]ModelStats{}}
	for _, rec := range s.records {
		if DayKey(time.Unix(rec.Timestamp, 0).UTC()) != day {
			continue
		}
		stats.TotalCost = round6(stats.TotalCost + rec.CostUSD)
		stats.TotalCalls++
		stats.TotalInputTokens += rec.InputTokens
		stats.TotalOutputTokens += rec.OutputTokens

		ms := stats.Models[rec.Model]
		ms.Calls++
		ms.Cost = round6(ms.Cost + rec.CostUSD)
		stats.Models[rec.Model] = ms
	}
	return stats, nil
}
