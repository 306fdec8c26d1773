package cost

import "context"

// Store persists usage records and serves per-day aggregates. Implementations
// must make Record atomic with respect to concurrent callers sharing the same
// day bucket: summary counters are incremented in the store, never
// read-modify-written by the ledger.
type Store interface {
	Record(ctx context.Context, rec UsageRecord) error
	DayStats(ctx context.Context, day string) (Stats, error)
}
