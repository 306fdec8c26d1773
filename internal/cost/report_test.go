package cost_test

import (
	"strings"
	"testing"

	"memokeeper/internal/cost"
)

func TestFormatReport(t *testing.T) {
	t.Run("Periods Rendered", func(t *testing.T) {
		report := cost.FormatReport(cost.PeriodStats{
			Today:     cost.Stats{TotalCost: 0.0045, TotalCalls: 12},
			ThisWeek:  cost.Stats{TotalCost: 0.0210, TotalCalls: 48},
			ThisMonth: cost.Stats{TotalCost: 0.1100, TotalCalls: 203},
		})

		for _, want := range []string{"Today: $0.0045 (12 calls)", "This Week: $0.0210 (48 calls)", "This Month: $0.1100 (203 calls)"} {
			if !strings.Contains(report, want) {
				t.Errorf("report missing %q:\n%s", want, report)
			}
		}
		if strings.Contains(report, "Budget Status") {
			t.Error("budget section should be absent without budgets")
		}
	})

	t.Run("Budget Alert Marked", func(t *testing.T) {
		report := cost.FormatReport(cost.PeriodStats{
			Budgets: map[string]cost.BudgetStatus{
				"daily":  {Budget: 1.0, Spent: 0.9, Percent: 90, Alert: true},
				"weekly": {Budget: 5.0, Spent: 0.5, Percent: 10, Alert: false},
			},
		})

		if !strings.Contains(report, "🚨 Daily: 90% ($0.90 / $1.00)") {
			t.Errorf("expected alert line, got:\n%s", report)
		}
		if !strings.Contains(report, "✅ Weekly: 10% ($0.50 / $5.00)") {
			t.Errorf("expected ok line, got:\n%s", report)
		}
	})
}
