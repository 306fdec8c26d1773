package classifier

import (
	"context"

	"memokeeper/internal/extractor"
)

// DisabledBackend is the no-op backend used when no remote classifier is
// configured.
type DisabledBackend struct{}

var _ Backend = DisabledBackend{}

// NewDisabledBackend returns the no-op backend.
func NewDisabledBackend() DisabledBackend {
	return DisabledBackend{}
}

func (DisabledBackend) Classify(ctx context.Context, text string) (*extractor.Item, error) {
	return nil, nil
}

func (DisabledBackend) Enabled() bool {
	return false
}
