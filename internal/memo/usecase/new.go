package usecase

import (
	"memokeeper/internal/cost"
	"memokeeper/internal/filter"
	"memokeeper/internal/memo"
	pkgLog "memokeeper/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	filter    *filter.Filter
	extractor memo.Extractor
	pub       memo.Publisher
	ledger    *cost.Ledger
	threshold float64          // per-item publish threshold
	groupIDs  map[int64]bool   // operator allow-list; empty = all chats
}

var _ memo.UseCase = (*implUseCase)(nil)

// New creates a new memo UseCase instance.
func New(
	l pkgLog.Logger,
	f *filter.Filter,
	ext memo.Extractor,
	pub memo.Publisher,
	ledger *cost.Ledger,
	threshold float64,
	groupIDs []int64,
) *implUseCase {
	groups := make(map[int64]bool, len(groupIDs))
	for _, id := range groupIDs {
		groups[id] = true
	}

	return &implUseCase{
		l:         l,
		filter:    f,
		extractor: ext,
		pub:       pub,
		ledger:    ledger,
		threshold: threshold,
		groupIDs:  groups,
	}
}
