// Package costmodel provides the rate tables and formulas that convert
// server metrics and migration strategy labels into currency amounts.
// All functions are pure; rates are plain values so concurrent callers
// can share one Rates without coordination.
package costmodel

import (
	"math"

	"github.com/shopspring/decimal"

	"migration-cost/pkg/api"
	"migration-cost/pkg/units"
)

// Rates holds the deployment-tunable pricing constants.
type Rates struct {
	CostPerCore        decimal.Decimal `json:"costPerCore"`        // monthly, per utilized core
	CostPerGB          decimal.Decimal `json:"costPerGB"`          // monthly, per GB provisioned storage
	CostPerGBBandwidth decimal.Decimal `json:"costPerGBBandwidth"` // monthly, per GB transferred
	OnPremiseMarkup    decimal.Decimal `json:"onPremiseMarkup"`    // on-prem cost relative to cloud
}

// DefaultRates returns the standard rate card.
func DefaultRates() Rates {
	return Rates{
		CostPerCore:        decimal.NewFromInt(3000),
		CostPerGB:          decimal.NewFromInt(100),
		CostPerGBBandwidth: decimal.NewFromInt(50),
		OnPremiseMarkup:    decimal.NewFromFloat(1.4),
	}
}

var baselineMigrationCosts = map[api.StrategyType]decimal.Decimal{
	api.StrategyRehost:     decimal.NewFromInt(500_000),
	api.StrategyReplatform: decimal.NewFromInt(1_000_000),
	api.StrategyRefactor:   decimal.NewFromInt(2_000_000),
}

var complexityMultipliers = map[api.ComplexityLevel]decimal.Decimal{
	api.ComplexityHigh:   decimal.NewFromFloat(1.5),
	api.ComplexityMedium: decimal.NewFromFloat(1.2),
	api.ComplexityLow:    decimal.NewFromFloat(1.0),
}

// BaselineMigrationCost returns the fixed migration cost for a strategy.
// Unknown strategies fall back to the Rehost baseline; upstream sources
// occasionally emit labels outside the 3R set and the engine treats them
// as lift-and-shift rather than failing.
func BaselineMigrationCost(strategy api.StrategyType) decimal.Decimal {
	if cost, ok := baselineMigrationCosts[strategy]; ok {
		return cost
	}
	return baselineMigrationCosts[api.StrategyRehost]
}

// ComplexityMultiplier returns the cost multiplier for a complexity
// level. Unknown levels fall back to 1.0.
func ComplexityMultiplier(level api.ComplexityLevel) decimal.Decimal {
	if m, ok := complexityMultipliers[level]; ok {
		return m
	}
	return complexityMultipliers[api.ComplexityLow]
}

// ComputeCost prices the utilized CPU capacity:
// cores × costPerCore × utilization/100. Zero cores or zero utilization
// legitimately yields zero.
func (r Rates) ComputeCost(m api.ServerMetrics) decimal.Decimal {
	cores := clamp(m.CPU.Cores)
	utilization := clamp(m.CPU.Utilization)
	return r.CostPerCore.Mul(decimal.NewFromFloat(clamp(cores * utilization / 100)))
}

// StorageCost prices total provisioned storage, converted from KB to GB.
func (r Rates) StorageCost(m api.ServerMetrics) decimal.Decimal {
	gb := units.KBToGB(clamp(m.Storage.Total))
	return r.CostPerGB.Mul(decimal.NewFromFloat(gb))
}

// NetworkCost prices expected transfer:
// bandwidth × averageUsage/100 × costPerGBBandwidth.
func (r Rates) NetworkCost(n api.NetworkUtilization) decimal.Decimal {
	bandwidth := clamp(n.Bandwidth)
	usage := clamp(n.AverageUsage)
	return r.CostPerGBBandwidth.Mul(decimal.NewFromFloat(clamp(bandwidth * usage / 100)))
}

// clamp maps invalid metric values (negative, NaN, Inf) to zero so a
// partially malformed inventory still produces a deterministic result.
// Products of clamped inputs are clamped again before entering decimal
// math: two finite factors can still overflow float64.
func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
