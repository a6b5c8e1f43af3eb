// Package discovery assesses migration complexity and recommends a
// strategy for each inventoried server. It produces the ServerAnalysis
// records the cost and roadmap planes consume.
package discovery

import (
	"math"

	"migration-cost/pkg/api"
)

// maxComplexityScore is the ceiling of the six-factor score: each factor
// contributes at most 3 points.
const maxComplexityScore = 18

// Assess scores how hard a server is to migrate. Six factors contribute
// up to 3 points each: CPU, memory and storage utilization tiers, the
// dependency and application counts, and network usage. The percentage
// of the maximum score maps to a Low/Medium/High level.
func Assess(server api.ServerRecord) api.ComplexityAssessment {
	m := server.Metrics

	factors := api.ComplexityFactors{
		CPU:          m.CPU.Utilization,
		Memory:       utilizationPercent(m.Memory.Used, m.Memory.Total),
		Storage:      utilizationPercent(m.Storage.Used, m.Storage.Total),
		Dependencies: float64(len(server.Dependencies)),
		Applications: float64(len(server.Applications)),
		Network:      m.Network.AverageUsage,
	}

	score := utilizationTier(factors.CPU) +
		utilizationTier(factors.Memory) +
		utilizationTier(factors.Storage) +
		countTier(len(server.Dependencies)) +
		countTier(len(server.Applications)) +
		utilizationTier(factors.Network)

	percentage := score / maxComplexityScore * 100

	return api.ComplexityAssessment{
		Level:      levelFor(percentage),
		Score:      score,
		Percentage: percentage,
		Factors:    factors,
	}
}

// utilizationPercent computes used/total as a percentage, guarding the
// zero-capacity case.
func utilizationPercent(used, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsNaN(used) {
		return 0
	}
	return used / total * 100
}

// utilizationTier maps a percentage to 1-3 points.
func utilizationTier(percent float64) float64 {
	switch {
	case percent > 80:
		return 3
	case percent > 60:
		return 2
	default:
		return 1
	}
}

// countTier maps a dependency or application count to 0-3 points.
func countTier(n int) float64 {
	tier := n / 2
	if tier > 3 {
		tier = 3
	}
	return float64(tier)
}

func levelFor(percentage float64) api.ComplexityLevel {
	switch {
	case percentage > 70:
		return api.ComplexityHigh
	case percentage > 40:
		return api.ComplexityMedium
	default:
		return api.ComplexityLow
	}
}
