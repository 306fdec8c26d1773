package cost

import (
	"context"
	"math"
	"time"

	pkgLog "memokeeper/pkg/log"
)

// Budget alert threshold: percent of budget spent.
const alertPercent = 80

// Ledger records metered-call usage and serves aggregates and budget
// snapshots. It is shared by every classifier instance; the backing store
// provides the atomicity, the ledger never read-modify-writes counters.
type Ledger struct {
	l        pkgLog.Logger
	store    Store
	fallback *MemoryStore
	budgets  Budgets
	now      func() time.Time
}

// New creates a cost ledger over the given store.
func New(l pkgLog.Logger, store Store, budgets Budgets) *Ledger {
	return &Ledger{
		l:        l,
		store:    store,
		fallback: NewMemoryStore(),
		budgets:  budgets,
		now:      time.Now,
	}
}

// RecordUsage prices a metered call, persists the usage record and returns
// the cost. Store failures degrade to the bounded in-memory fallback rather
// than failing the caller.
func (lg *Ledger) RecordUsage(ctx context.Context, model string, inputTokens, outputTokens int, endpoint string) float64 {
	costUSD := CalculateCost(model, inputTokens, outputTokens)

	rec := UsageRecord{
		Timestamp:    lg.now().Unix(),
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		CostUSD:      costUSD,
		Endpoint:     endpoint,
	}

	if err := lg.store.Record(ctx, rec); err != nil {
		lg.l.Warnf(ctx, "cost ledger: store unavailable, keeping record in memory: %v", err)
		_ = lg.fallback.Record(ctx, rec)
	}

	return costUSD
}

// DailyStats returns the aggregate for one day key ("" = today). Records that
// landed in the in-memory fallback are merged in so degraded periods still
// report.
func (lg *Ledger) DailyStats(ctx context.Context, day string) Stats {
	if day == "" {
		day = DayKey(lg.now().UTC())
	}

	stats, err := lg.store.DayStats(ctx, day)
	if err != nil {
		lg.l.Warnf(ctx, "cost ledger: day stats unavailable from store: %v", err)
		stats = Stats{Period: day, Models: map[string]ModelStats{}}
	}

	local, _ := lg.fallback.DayStats(ctx, day)
	return mergeStats(stats, local)
}

// WeeklyStats sums the seven daily aggregates of the ISO week, so weekly
// figures are consistent with daily ones by construction.
func (lg *Ledger) WeeklyStats(ctx context.Context, year, week int) Stats {
	return lg.sumDays(ctx, WeekDays(year, week), WeekKey(isoWeekStart(year, week)))
}

// MonthlyStats sums the daily aggregates of the calendar month.
func (lg *Ledger) MonthlyStats(ctx context.Context, year int, month time.Month) Stats {
	period := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	return lg.sumDays(ctx, MonthDays(year, month), period)
}

// CurrentStats returns today/this-week/this-month aggregates plus budget
// state. Read-only snapshot; never blocks or vetoes anything.
func (lg *Ledger) CurrentStats(ctx context.Context) PeriodStats {
	now := lg.now().UTC()
	year, week := now.ISOWeek()

	return PeriodStats{
		Today:     lg.DailyStats(ctx, ""),
		ThisWeek:  lg.WeeklyStats(ctx, year, week),
		ThisMonth: lg.MonthlyStats(ctx, now.Year(), now.Month()),
		Budgets:   lg.BudgetStatus(ctx),
	}
}

// BudgetStatus evaluates every configured budget. Absent budgets produce no
// entry. Alert fires above 80% spend.
func (lg *Ledger) BudgetStatus(ctx context.Context) map[string]BudgetStatus {
	now := lg.now().UTC()
	year, week := now.ISOWeek()
	status := map[string]BudgetStatus{}

	if lg.budgets.Daily > 0 {
		status["daily"] = budgetFor(lg.budgets.Daily, lg.DailyStats(ctx, "").TotalCost)
	}
	if lg.budgets.Weekly > 0 {
		status["weekly"] = budgetFor(lg.budgets.Weekly, lg.WeeklyStats(ctx, year, week).TotalCost)
	}
	if lg.budgets.Monthly > 0 {
		status["monthly"] = budgetFor(lg.budgets.Monthly, lg.MonthlyStats(ctx, now.Year(), now.Month()).TotalCost)
	}
	return status
}

func budgetFor(budget, spent float64) BudgetStatus {
	percent := spent / budget * 100
	return BudgetStatus{
		Budget:  budget,
		Spent:   spent,
		Percent: round1(percent),
		Alert:   percent > alertPercent,
	}
}

func (lg *Ledger) sumDays(ctx context.Context, days []string, period string) Stats {
	total := Stats{Period: period, Models: map[string]ModelStats{}}
	for _, day := range days {
		total = mergeStats(total, lg.DailyStats(ctx, day))
	}
	total.Period = period
	return total
}

func mergeStats(a, b Stats) Stats {
	if a.Models == nil {
		a.Models = map[string]ModelStats{}
	}
	a.TotalCost = round6(a.TotalCost + b.TotalCost)
	a.TotalCalls += b.TotalCalls
	a.TotalInputTokens += b.TotalInputTokens
	a.TotalOutputTokens += b.TotalOutputTokens
	for model, ms := range b.Models {
		cur := a.Models[model]
		cur.Calls += ms.Calls
		cur.Cost = round6(cur.Cost + ms.Cost)
		a.Models[model] = cur
	}
	return a
}

func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(week-1)*7)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
