package cost

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"migration-cost/decision/costmodel"
	"migration-cost/pkg/api"
)

// referenceServer yields a breakdown with easily checked round numbers:
// compute 6000 + storage 100 + network 2500 = 8600 projected monthly.
func referenceServer() api.ServerAnalysis {
	return api.ServerAnalysis{
		ServerData: api.ServerRecord{
			ServerID:   "srv-001",
			ServerName: "app-server-01",
			Metrics: api.ServerMetrics{
				CPU:     api.CPUMetrics{Cores: 4, Utilization: 50},
				Storage: api.SizeMetrics{Total: 1024 * 1024, Used: 512 * 1024},
				Network: api.NetworkUtilization{Bandwidth: 100, AverageUsage: 50},
			},
		},
		MigrationStrategy: api.MigrationStrategy{Strategy: api.StrategyReplatform},
		Complexity:        api.ComplexityAssessment{Level: api.ComplexityMedium},
	}
}

func TestCalculateReferenceServer(t *testing.T) {
	calc := NewCalculator(costmodel.DefaultRates())
	b := calc.Calculate(referenceServer())

	assert.True(t, b.ProjectedMonthlyCost.Equal(decimal.NewFromInt(8600)),
		"projected: got %s", b.ProjectedMonthlyCost)
	// Current on-prem cost is the 1.4 markup of the projection.
	assert.True(t, b.CurrentMonthlyCost.Equal(decimal.NewFromInt(12040)),
		"current: got %s", b.CurrentMonthlyCost)
	// Replatform baseline 1,000,000 at the Medium 1.2 multiplier.
	assert.True(t, b.MigrationCost.Equal(decimal.NewFromInt(1_200_000)),
		"migration: got %s", b.MigrationCost)
	assert.True(t, b.Savings.Equal(decimal.NewFromInt(3440)),
		"savings: got %s", b.Savings)
}

func TestCalculateMarkupIsExact(t *testing.T) {
	calc := NewCalculator(costmodel.DefaultRates())
	b := calc.Calculate(referenceServer())

	want := b.ProjectedMonthlyCost.Mul(decimal.NewFromFloat(1.4))
	assert.True(t, b.CurrentMonthlyCost.Equal(want))
	assert.True(t, b.Savings.Equal(b.CurrentMonthlyCost.Sub(b.ProjectedMonthlyCost)))
}

func TestCalculateStrategyComplexityGrid(t *testing.T) {
	calc := NewCalculator(costmodel.DefaultRates())

	tests := []struct {
		strategy api.StrategyType
		level    api.ComplexityLevel
		want     int64
	}{
		{api.StrategyRehost, api.ComplexityLow, 500_000},
		{api.StrategyRehost, api.ComplexityHigh, 750_000},
		{api.StrategyReplatform, api.ComplexityMedium, 1_200_000},
		{api.StrategyRefactor, api.ComplexityHigh, 3_000_000},
		{"Retain", api.ComplexityLow, 500_000}, // unknown strategy plans as Rehost
	}

	for _, tt := range tests {
		server := referenceServer()
		server.MigrationStrategy.Strategy = tt.strategy
		server.Complexity.Level = tt.level

		b := calc.Calculate(server)
		assert.True(t, b.MigrationCost.Equal(decimal.NewFromInt(tt.want)),
			"%s/%s: got %s, want %d", tt.strategy, tt.level, b.MigrationCost, tt.want)
	}
}

func TestCalculateEmptyMetrics(t *testing.T) {
	calc := NewCalculator(costmodel.DefaultRates())

	server := api.ServerAnalysis{
		ServerData:        api.ServerRecord{ServerID: "srv-empty"},
		MigrationStrategy: api.MigrationStrategy{Strategy: api.StrategyRehost},
		Complexity:        api.ComplexityAssessment{Level: api.ComplexityLow},
	}

	b := calc.Calculate(server)
	assert.True(t, b.ProjectedMonthlyCost.IsZero())
	assert.True(t, b.CurrentMonthlyCost.IsZero())
	assert.True(t, b.Savings.IsZero())
	// Migration cost is metric-independent.
	assert.True(t, b.MigrationCost.Equal(decimal.NewFromInt(500_000)))
}

func TestCalculateMonotonicInCores(t *testing.T) {
	calc := NewCalculator(costmodel.DefaultRates())

	small := referenceServer()
	large := referenceServer()
	large.ServerData.Metrics.CPU.Cores = 16

	assert.True(t, calc.Calculate(large).ProjectedMonthlyCost.
		GreaterThan(calc.Calculate(small).ProjectedMonthlyCost))
}
