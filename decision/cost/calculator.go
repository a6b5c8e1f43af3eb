// Package cost provides the per-server cost calculator and the
// portfolio-level aggregator. Both are pure: every call works only on
// its inputs, so concurrent analyses never interfere.
package cost

import (
	"migration-cost/decision/costmodel"
	"migration-cost/pkg/api"
)

// Calculator derives a CostBreakdown for one analyzed server.
type Calculator struct {
	rates costmodel.Rates
}

// NewCalculator creates a calculator with the given rate card.
func NewCalculator(rates costmodel.Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Calculate produces the cost breakdown for one server. There are no
// error conditions: invalid metrics clamp to zero inside the cost model,
// and negative savings are a valid outcome when cloud is projected more
// expensive than on-premises.
func (c *Calculator) Calculate(server api.ServerAnalysis) api.CostBreakdown {
	metrics := server.ServerData.Metrics

	projected := c.rates.ComputeCost(metrics).
		Add(c.rates.StorageCost(metrics)).
		Add(c.rates.NetworkCost(metrics.Network))

	current := projected.Mul(c.rates.OnPremiseMarkup)

	migration := costmodel.BaselineMigrationCost(server.MigrationStrategy.Strategy).
		Mul(costmodel.ComplexityMultiplier(server.Complexity.Level))

	return api.CostBreakdown{
		ProjectedMonthlyCost: projected,
		CurrentMonthlyCost:   current,
		MigrationCost:        migration,
		Savings:              current.Sub(projected),
	}
}
