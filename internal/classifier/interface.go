package classifier

import (
	"context"

	"memokeeper/internal/extractor"
)

// Backend is the optional remote classification capability. A nil item with
// a nil error means the backend found nothing actionable. Selecting Disabled
// at construction time keeps "is AI enabled" conditionals out of the
// pipeline.
type Backend interface {
	Classify(ctx context.Context, text string) (*extractor.Item, error)
	Enabled() bool
}
