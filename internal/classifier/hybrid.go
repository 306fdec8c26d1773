package classifier

import (
	"context"
	"time"

	"memokeeper/internal/extractor"
	pkgLog "memokeeper/pkg/log"
)

// Hybrid composes the rule-based extractor with the optional remote backend.
// Rules always run first; the remote call is only made when they are not
// confident, and its failure always degrades to rule-based-only output.
type Hybrid struct {
	l         pkgLog.Logger
	rules     *extractor.Extractor
	backend   Backend
	threshold float64
	timeout   time.Duration
}

// NewHybrid creates the hybrid classifier. threshold <= 0 falls back to
// DefaultThreshold.
func NewHybrid(l pkgLog.Logger, rules *extractor.Extractor, backend Backend, threshold float64) *Hybrid {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Hybrid{
		l:         l,
		rules:     rules,
		backend:   backend,
		threshold: threshold,
		timeout:   10 * time.Second,
	}
}

// Extract returns extraction items for the text. Never returns an error:
// remote degradations fall back to the rule-based result.
func (h *Hybrid) Extract(ctx context.Context, text string) []extractor.Item {
	items := h.rules.Extract(text)

	// Confident rule-based result: the metered path is never invoked.
	for _, item := range items {
		if item.Confidence >= shortCircuitConf {
			return items
		}
	}

	if !h.backend.Enabled() {
		return items
	}

	callCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	remote, err := h.backend.Classify(callCtx, text)
	if err != nil {
		h.l.Warnf(ctx, "hybrid classifier: remote backend degraded to rules: %v", err)
		return items
	}
	if remote == nil || remote.Confidence < h.threshold {
		return items
	}

	// Kind-level dedupe against the rule-based result.
	for _, item := range items {
		if item.Type == remote.Type {
			return items
		}
	}

	return append(items, *remote)
}
