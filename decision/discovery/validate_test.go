package discovery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"migration-cost/pkg/api"
	"migration-cost/pkg/errors"
)

func analyzed(record api.ServerRecord) api.ServerAnalysis {
	return api.ServerAnalysis{ServerData: record}
}

func TestValidateInventoryCleanData(t *testing.T) {
	issues := ValidateInventory([]api.ServerAnalysis{analyzed(api.ServerRecord{
		ServerID: "srv-1",
		Metrics: api.ServerMetrics{
			CPU:     api.CPUMetrics{Cores: 4, Utilization: 50},
			Memory:  api.SizeMetrics{Total: 1000, Used: 500},
			Storage: api.SizeMetrics{Total: 1000, Used: 500},
			Network: api.NetworkUtilization{Bandwidth: 10, AverageUsage: 20},
		},
	})})
	assert.Empty(t, issues)
}

func codes(issues []*errors.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}

func TestValidateInventoryFindings(t *testing.T) {
	servers := []api.ServerAnalysis{
		analyzed(api.ServerRecord{ServerName: "unnamed"}),
		analyzed(api.ServerRecord{
			ServerID: "srv-dup",
			Metrics: api.ServerMetrics{
				CPU: api.CPUMetrics{Cores: 2, Utilization: 10},
			},
		}),
		analyzed(api.ServerRecord{
			ServerID: "srv-dup",
			Metrics: api.ServerMetrics{
				CPU: api.CPUMetrics{Cores: 2, Utilization: 10},
			},
		}),
		analyzed(api.ServerRecord{
			ServerID: "srv-bad",
			Metrics: api.ServerMetrics{
				CPU:     api.CPUMetrics{Cores: -2, Utilization: math.NaN()},
				Memory:  api.SizeMetrics{Total: 100, Used: 200},
				Storage: api.SizeMetrics{Total: 100, Used: 150},
				Network: api.NetworkUtilization{Bandwidth: 1, AverageUsage: 5},
			},
		}),
	}

	found := codes(ValidateInventory(servers))

	assert.Contains(t, found, errors.CodeMissingServerID)
	assert.Contains(t, found, errors.CodeDuplicateServer)
	assert.Contains(t, found, errors.CodeInvalidMetric)
	assert.Contains(t, found, errors.CodeCapacityExceeded)
	// The unnamed record has no metrics at all.
	assert.Contains(t, found, errors.CodeMissingMetrics)
}

func TestIssueErrorString(t *testing.T) {
	issue := errors.NewDuplicateServerIssue("srv-dup")
	assert.Contains(t, issue.Error(), "srv-dup")
	assert.Contains(t, issue.Error(), "warning")
	assert.Contains(t, issue.Error(), errors.CodeDuplicateServer)
}
