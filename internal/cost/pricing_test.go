package cost_test

import (
	"math"
	"testing"

	"memokeeper/internal/cost"
)

func TestCalculateCost(t *testing.T) {
	t.Run("Known Model", func(t *testing.T) {
		got := cost.CalculateCost("gpt-4o-mini", 1000, 500)
		if math.Abs(got-0.00045) > 1e-9 {
			t.Errorf("expected 0.00045, got %v", got)
		}
	})

	t.Run("Unknown Model Falls Back To Default", func(t *testing.T) {
		known := cost.CalculateCost(cost.DefaultModel, 1000, 500)
		unknown := cost.CalculateCost("gpt-99-experimental", 1000, 500)
		if unknown != known {
			t.Errorf("expected fallback pricing %v, got %v", known, unknown)
		}
	})

	t.Run("Zero Tokens Zero Cost", func(t *testing.T) {
		if got := cost.CalculateCost("gpt-4o", 0, 0); got != 0 {
			t.Errorf("expected zero cost, got %v", got)
		}
	})

	t.Run("Rounded To Six Decimals", func(t *testing.T) {
		got := cost.CalculateCost("gpt-4o-mini", 1, 1)
		// 0.00000015 + 0.0000006 rounds to 0.000001
		if math.Abs(got-0.000001) > 1e-12 {
			t.Errorf("expected 0.000001, got %v", got)
		}
	})
}
