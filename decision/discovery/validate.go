package discovery

import (
	"math"

	"migration-cost/pkg/api"
	"migration-cost/pkg/errors"
)

// ValidateInventory reports data quality issues across an inventory.
// Nothing here blocks the analysis; the cost model clamps what it must
// and the issues tell the operator what was clamped.
func ValidateInventory(servers []api.ServerAnalysis) []*errors.Issue {
	var issues []*errors.Issue
	seen := make(map[string]bool, len(servers))

	for _, s := range servers {
		record := s.ServerData

		if record.ServerID == "" {
			issues = append(issues, errors.NewMissingServerIDIssue(record.ServerName))
		} else if seen[record.ServerID] {
			issues = append(issues, errors.NewDuplicateServerIssue(record.ServerID))
		}
		seen[record.ServerID] = true

		issues = append(issues, metricIssues(record)...)
	}

	return issues
}

func metricIssues(record api.ServerRecord) []*errors.Issue {
	var issues []*errors.Issue
	m := record.Metrics

	checks := []struct {
		name  string
		value float64
	}{
		{"cpu.cores", m.CPU.Cores},
		{"cpu.utilization", m.CPU.Utilization},
		{"memory.total", m.Memory.Total},
		{"storage.total", m.Storage.Total},
		{"networkUtilization.bandwidth", m.Network.Bandwidth},
		{"networkUtilization.averageUsage", m.Network.AverageUsage},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			issues = append(issues, errors.NewInvalidMetricIssue(record.ServerID, c.name))
		}
	}

	if m.Memory.Total > 0 && m.Memory.Used > m.Memory.Total {
		issues = append(issues, errors.NewCapacityExceededIssue(record.ServerID, "memory"))
	}
	if m.Storage.Total > 0 && m.Storage.Used > m.Storage.Total {
		issues = append(issues, errors.NewCapacityExceededIssue(record.ServerID, "storage"))
	}

	if missingMetrics(record) == 4 {
		issues = append(issues, errors.NewMissingMetricsIssue(record.ServerID))
	}

	return issues
}
