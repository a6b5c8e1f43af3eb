package api

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The result payloads are pure data: serializing and re-ingesting them
// must yield identical values, decimals included.
func TestPortfolioSummaryRoundTrip(t *testing.T) {
	summary := PortfolioCostSummary{
		TotalMigrationCost:   decimal.NewFromInt(1_200_000),
		MonthlyCloudCost:     decimal.NewFromInt(8600),
		CurrentCosts:         decimal.NewFromInt(12040),
		MonthlySavings:       decimal.NewFromInt(3440),
		ROIMonths:            349,
		AnnualSavings:        decimal.NewFromInt(41280),
		ThreeYearSavings:     decimal.NewFromInt(-1_076_160),
		CostReductionPercent: decimal.RequireFromString("28.5714285714285714"),
		ServerBreakdowns: map[string]CostBreakdown{
			"srv-1": {
				ProjectedMonthlyCost: decimal.NewFromInt(8600),
				CurrentMonthlyCost:   decimal.NewFromInt(12040),
				MigrationCost:        decimal.NewFromInt(1_200_000),
				Savings:              decimal.NewFromInt(3440),
			},
		},
	}

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded PortfolioCostSummary
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, decoded.TotalMigrationCost.Equal(summary.TotalMigrationCost))
	assert.True(t, decoded.CostReductionPercent.Equal(summary.CostReductionPercent))
	assert.Equal(t, summary.ROIMonths, decoded.ROIMonths)
	assert.True(t, decoded.ServerBreakdowns["srv-1"].Savings.Equal(decimal.NewFromInt(3440)))
}

func TestRoadmapResultRoundTrip(t *testing.T) {
	result := RoadmapResult{
		Available: true,
		ProjectSummary: ProjectSummary{
			StartDate:         "2026-01-05",
			EndDate:           "2026-03-02",
			Duration:          "56 days",
			TotalEffort:       608,
			TotalServers:      2,
			StrategyBreakdown: map[StrategyType]int{StrategyRehost: 1, StrategyReplatform: 1},
			RiskProfile:       RiskProfile{Medium: 1, Low: 1},
			CriticalServers:   []string{"db-01"},
		},
		Timeline: []RoadmapPhase{
			{
				Name:         "Planning & Assessment",
				ServerID:     "srv-1",
				ServerName:   "db-01",
				StartDate:    "2026-01-05",
				EndDate:      "2026-01-12",
				Duration:     "7 days",
				CriticalPath: true,
				Complexity:   ComplexityMedium,
				Strategy:     "Replatform",
				Tasks:        []string{"Dependency mapping"},
				Deliverables: []string{"Migration plan approved by stakeholders"},
				Risks:        []string{"Underestimated complexity"},
				Terminal:     true,
			},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded RoadmapResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)
}
