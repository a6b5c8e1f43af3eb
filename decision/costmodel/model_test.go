package costmodel

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"migration-cost/pkg/api"
)

func TestBaselineMigrationCost(t *testing.T) {
	tests := []struct {
		strategy api.StrategyType
		want     int64
	}{
		{api.StrategyRehost, 500_000},
		{api.StrategyReplatform, 1_000_000},
		{api.StrategyRefactor, 2_000_000},
		{"Retire", 500_000},      // unknown falls back to Rehost
		{"", 500_000},            // empty falls back to Rehost
		{"rehost", 500_000},      // labels are case-sensitive
	}

	for _, tt := range tests {
		got := BaselineMigrationCost(tt.strategy)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
			"strategy %q: got %s, want %d", tt.strategy, got, tt.want)
	}
}

func TestComplexityMultiplier(t *testing.T) {
	tests := []struct {
		level api.ComplexityLevel
		want  string
	}{
		{api.ComplexityHigh, "1.5"},
		{api.ComplexityMedium, "1.2"},
		{api.ComplexityLow, "1"},
		{"Unknown", "1"},
		{"", "1"},
	}

	for _, tt := range tests {
		got := ComplexityMultiplier(tt.level)
		want, _ := decimal.NewFromString(tt.want)
		assert.True(t, got.Equal(want), "level %q: got %s, want %s", tt.level, got, tt.want)
	}
}

func TestComputeCost(t *testing.T) {
	rates := DefaultRates()

	m := api.ServerMetrics{CPU: api.CPUMetrics{Cores: 4, Utilization: 50}}
	// 3000 * 4 * 0.5 = 6000
	assert.True(t, rates.ComputeCost(m).Equal(decimal.NewFromInt(6000)))

	// Zero cores or zero utilization prices to zero.
	assert.True(t, rates.ComputeCost(api.ServerMetrics{CPU: api.CPUMetrics{Cores: 0, Utilization: 80}}).IsZero())
	assert.True(t, rates.ComputeCost(api.ServerMetrics{CPU: api.CPUMetrics{Cores: 8, Utilization: 0}}).IsZero())
}

func TestStorageCost(t *testing.T) {
	rates := DefaultRates()

	// 25 GB expressed in KB.
	m := api.ServerMetrics{Storage: api.SizeMetrics{Total: 25 * 1024 * 1024}}
	assert.True(t, rates.StorageCost(m).Equal(decimal.NewFromInt(2500)))

	// Used capacity is irrelevant; provisioned total drives the price.
	m.Storage.Used = 24 * 1024 * 1024
	assert.True(t, rates.StorageCost(m).Equal(decimal.NewFromInt(2500)))
}

func TestNetworkCost(t *testing.T) {
	rates := DefaultRates()

	n := api.NetworkUtilization{Bandwidth: 4, AverageUsage: 50}
	// 50 * 4 * 0.5 = 100
	assert.True(t, rates.NetworkCost(n).Equal(decimal.NewFromInt(100)))
}

func TestInvalidMetricsClampToZero(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name string
		m    api.ServerMetrics
	}{
		{"negative cores", api.ServerMetrics{CPU: api.CPUMetrics{Cores: -4, Utilization: 50}}},
		{"NaN utilization", api.ServerMetrics{CPU: api.CPUMetrics{Cores: 4, Utilization: math.NaN()}}},
		{"Inf utilization", api.ServerMetrics{CPU: api.CPUMetrics{Cores: 4, Utilization: math.Inf(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, rates.ComputeCost(tt.m).IsZero())
		})
	}

	assert.True(t, rates.StorageCost(api.ServerMetrics{Storage: api.SizeMetrics{Total: -100}}).IsZero())
	assert.True(t, rates.NetworkCost(api.NetworkUtilization{Bandwidth: math.Inf(-1), AverageUsage: 50}).IsZero())
	assert.True(t, rates.NetworkCost(api.NetworkUtilization{Bandwidth: 10, AverageUsage: math.NaN()}).IsZero())
}

func TestOverflowingProductsClampToZero(t *testing.T) {
	rates := DefaultRates()

	// Finite factors whose product overflows float64 must price to zero,
	// not abort the analysis.
	m := api.ServerMetrics{CPU: api.CPUMetrics{Cores: math.MaxFloat64, Utilization: 100}}
	assert.NotPanics(t, func() {
		assert.True(t, rates.ComputeCost(m).IsZero())
	})

	n := api.NetworkUtilization{Bandwidth: math.MaxFloat64, AverageUsage: 100}
	assert.NotPanics(t, func() {
		assert.True(t, rates.NetworkCost(n).IsZero())
	})
}

func TestDefaultRates(t *testing.T) {
	rates := DefaultRates()
	assert.True(t, rates.CostPerCore.Equal(decimal.NewFromInt(3000)))
	assert.True(t, rates.CostPerGB.Equal(decimal.NewFromInt(100)))
	assert.True(t, rates.CostPerGBBandwidth.Equal(decimal.NewFromInt(50)))
	assert.True(t, rates.OnPremiseMarkup.Equal(decimal.NewFromFloat(1.4)))
}
