package cost

import "math"

// Pricing is USD per 1K tokens.
type Pricing struct {
	Input  float64
	Output float64
}

// DefaultModel is the pricing fallback for unknown models.
const DefaultModel = "gpt-4o-mini"

// Pricing per 1K tokens (as of Dec 2024).
var modelPricing = map[string]Pricing{
	"gpt-4o": {
		Input:  0.0025, // $2.50 per 1M input tokens
		Output: 0.010,  // $10.00 per 1M output tokens
	},
	"gpt-4o-mini": {
		Input:  0.00015, // $0.15 per 1M input tokens
		Output: 0.00060, // $0.60 per 1M output tokens
	},
	"gpt-4-turbo": {
		Input:  0.010,
		Output: 0.030,
	},
	"gpt-3.5-turbo": {
		Input:  0.0005,
		Output: 0.0015,
	},
}

// CalculateCost returns the USD cost for token usage, rounded to 6 decimal
// places. Unknown models use the default model's pricing.
func CalculateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := modelPricing[model]
	if !ok {
		pricing = modelPricing[DefaultModel]
	}

	inputCost := float64(inputTokens) / 1000 * pricing.Input
	outputCost := float64(outputTokens) / 1000 * pricing.Output

	return round6(inputCost + outputCost)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
