package cost

import (
	"fmt"
	"sort"
	"strings"
)

// FormatReport renders the period stats as the /cost command reply.
func FormatReport(stats PeriodStats) string {
	lines := []string{
		"📊 OpenAI API Usage Report",
		strings.Repeat("=", 40),
		fmt.Sprintf("📅 Today: $%.4f (%d calls)", stats.Today.TotalCost, stats.Today.TotalCalls),
		fmt.Sprintf("📆 This Week: $%.4f (%d calls)", stats.ThisWeek.TotalCost, stats.ThisWeek.TotalCalls),
		fmt.Sprintf("🗓  This Month: $%.4f (%d calls)", stats.ThisMonth.TotalCost, stats.ThisMonth.TotalCalls),
	}

	if len(stats.Budgets) > 0 {
		lines = append(lines, "", "💰 Budget Status:")

		periods := make([]string, 0, len(stats.Budgets))
		for period := range stats.Budgets {
			periods = append(periods, period)
		}
		sort.Strings(periods)

		for _, period := range periods {
			status := stats.Budgets[period]
			emoji := "✅"
			if status.Alert {
				emoji = "🚨"
			}
			lines = append(lines, fmt.Sprintf("  %s %s: %.0f%% ($%.2f / $%.2f)",
				emoji, capitalize(period), status.Percent, status.Spent, status.Budget))
		}
	}

	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
