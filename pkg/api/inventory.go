// Package api defines the shared contracts between the discovery, cost,
// and roadmap planes. All payloads use the camelCase wire format emitted
// by the discovery tooling.
package api

// CPUMetrics describes observed CPU capacity and load for a server.
type CPUMetrics struct {
	Cores       float64 `json:"cores"`
	Utilization float64 `json:"utilization"` // percent, 0-100
}

// SizeMetrics describes a capacity pair in kilobytes.
type SizeMetrics struct {
	Total float64 `json:"total"`
	Used  float64 `json:"used"`
}

// NetworkUtilization describes observed network throughput.
type NetworkUtilization struct {
	Bandwidth    float64 `json:"bandwidth"`
	AverageUsage float64 `json:"averageUsage"` // percent, 0-100
}

// ServerMetrics is the full metric set collected for one server.
// Invariant: used <= total for memory and storage; utilization values
// are bounded percentages. Upstream data is not always clean, so the
// cost model clamps rather than rejects.
type ServerMetrics struct {
	CPU     CPUMetrics         `json:"cpu"`
	Memory  SizeMetrics        `json:"memory"`
	Storage SizeMetrics        `json:"storage"`
	Network NetworkUtilization `json:"networkUtilization"`
}

// ServerRecord is one discovered server in the inventory.
type ServerRecord struct {
	ServerID     string        `json:"serverId"`
	ServerName   string        `json:"serverName"`
	Applications []string      `json:"applications"`
	Dependencies []string      `json:"dependencies"`
	Metrics      ServerMetrics `json:"metrics"`
}
