package cost

import (
	"errors"

	"github.com/shopspring/decimal"

	"migration-cost/decision/costmodel"
	"migration-cost/pkg/api"
	"migration-cost/pkg/units"
)

// ErrEmptyPortfolio is returned when aggregation is requested over zero
// servers. It is the only hard failure of the cost plane; callers must
// supply at least one server.
var ErrEmptyPortfolio = errors.New("cost: portfolio contains no servers")

// Aggregator reduces per-server breakdowns into portfolio totals and
// ROI timing.
type Aggregator struct {
	calculator *Calculator
}

// NewAggregator creates an aggregator backed by the given rate card.
func NewAggregator(rates costmodel.Rates) *Aggregator {
	return &Aggregator{calculator: NewCalculator(rates)}
}

// Aggregate runs the calculator per server and folds the results into a
// PortfolioCostSummary. Breakdowns are keyed by serverId; duplicate IDs
// overwrite earlier entries.
func (a *Aggregator) Aggregate(servers []api.ServerAnalysis) (*api.PortfolioCostSummary, error) {
	if len(servers) == 0 {
		return nil, ErrEmptyPortfolio
	}

	summary := &api.PortfolioCostSummary{
		TotalMigrationCost: decimal.Zero,
		MonthlyCloudCost:   decimal.Zero,
		CurrentCosts:       decimal.Zero,
		ServerBreakdowns:   make(map[string]api.CostBreakdown, len(servers)),
	}

	for _, server := range servers {
		breakdown := a.calculator.Calculate(server)
		summary.TotalMigrationCost = summary.TotalMigrationCost.Add(breakdown.MigrationCost)
		summary.MonthlyCloudCost = summary.MonthlyCloudCost.Add(breakdown.ProjectedMonthlyCost)
		summary.CurrentCosts = summary.CurrentCosts.Add(breakdown.CurrentMonthlyCost)
		summary.ServerBreakdowns[server.ServerData.ServerID] = breakdown
	}

	summary.MonthlySavings = summary.CurrentCosts.Sub(summary.MonthlyCloudCost)

	// Break-even is undefined when savings are non-positive; 0 is the
	// documented sentinel for that case.
	if summary.MonthlySavings.IsPositive() {
		summary.ROIMonths = summary.TotalMigrationCost.Div(summary.MonthlySavings).Ceil().IntPart()
	}

	summary.AnnualSavings = summary.MonthlySavings.Mul(decimal.NewFromInt(units.MonthsPerYear))
	summary.ThreeYearSavings = summary.MonthlySavings.Mul(decimal.NewFromInt(units.MonthsPerThreeYears)).
		Sub(summary.TotalMigrationCost)
	summary.CostReductionPercent = costReductionPercent(summary.CurrentCosts, summary.MonthlyCloudCost)

	return summary, nil
}

// costReductionPercent guards the division so a zero-cost portfolio
// yields 0 instead of propagating an undefined value.
func costReductionPercent(current, cloud decimal.Decimal) decimal.Decimal {
	if current.IsZero() {
		return decimal.Zero
	}
	return current.Sub(cloud).Div(current).Mul(decimal.NewFromInt(100))
}
