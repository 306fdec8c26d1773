package cost

// UsageRecord is a single metered-call observation. Immutable once created.
type UsageRecord struct {
	Timestamp    int64   `json:"timestamp"` // unix seconds
	Model        string  `json:"model"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	Endpoint     string  `json:"endpoint"` // e.g. "classify"
}

// ModelStats is the per-model aggregate breakdown.
type ModelStats struct {
	Calls int     `json:"calls"`
	Cost  float64 `json:"cost"`
}

// Stats is the usage aggregate for one time bucket.
type Stats struct {
	Period            string                `json:"period"`
	TotalCost         float64               `json:"total_cost"`
	TotalCalls        int                   `json:"total_calls"`
	TotalInputTokens  int                   `json:"total_input_tokens"`
	TotalOutputTokens int                   `json:"total_output_tokens"`
	Models            map[string]ModelStats `json:"models"`
}

// Budgets holds the configured spend ceilings in USD. Zero means unset.
type Budgets struct {
	Daily   float64
	Weekly  float64
	Monthly float64
}

// BudgetStatus is the derived budget snapshot for one period.
type BudgetStatus struct {
	Budget  float64 `json:"budget"`
	Spent   float64 `json:"spent"`
	Percent float64 `json:"percent"`
	Alert   bool    `json:"alert"`
}

// PeriodStats bundles the current day/week/month aggregates with budget state.
type PeriodStats struct {
	Today     Stats                   `json:"today"`
	ThisWeek  Stats                   `json:"this_week"`
	ThisMonth Stats                   `json:"this_month"`
	Budgets   map[string]BudgetStatus `json:"budget_status"`
}
