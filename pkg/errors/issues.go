// Package errors provides severity-tagged data quality issues. Dirty
// inventory data degrades to deterministic fallbacks instead of failing
// the analysis, so issues are reported beside the result, not returned
// as errors.
package errors

import "fmt"

// Severity indicates issue impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Issue is a structured data quality finding for one server.
type Issue struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	ServerID string   `json:"serverId,omitempty"`
}

func (e *Issue) Error() string {
	if e.ServerID != "" {
		return fmt.Sprintf("[%s] %s: %s (server: %s)", e.Severity, e.Code, e.Message, e.ServerID)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// Issue codes
const (
	CodeMissingServerID  = "MISSING_SERVER_ID"
	CodeDuplicateServer  = "DUPLICATE_SERVER"
	CodeInvalidMetric    = "INVALID_METRIC"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeMissingMetrics   = "MISSING_METRICS"
)

// NewMissingServerIDIssue flags a record without an identifier; its
// breakdown lands on the empty map key.
func NewMissingServerIDIssue(serverName string) *Issue {
	return &Issue{
		Code:     CodeMissingServerID,
		Message:  fmt.Sprintf("Server %q has no serverId; breakdowns may collide", serverName),
		Severity: SeverityError,
	}
}

// NewDuplicateServerIssue flags an ID that appears more than once; the
// later record overwrites the earlier breakdown.
func NewDuplicateServerIssue(serverID string) *Issue {
	return &Issue{
		Code:     CodeDuplicateServer,
		Message:  "Duplicate serverId; the later record wins",
		Severity: SeverityWarning,
		ServerID: serverID,
	}
}

// NewInvalidMetricIssue flags a metric value the cost model will clamp
// to zero.
func NewInvalidMetricIssue(serverID, metric string) *Issue {
	return &Issue{
		Code:     CodeInvalidMetric,
		Message:  fmt.Sprintf("Invalid value for %s; priced as zero", metric),
		Severity: SeverityWarning,
		ServerID: serverID,
	}
}

// NewCapacityExceededIssue flags used capacity above total.
func NewCapacityExceededIssue(serverID, metric string) *Issue {
	return &Issue{
		Code:     CodeCapacityExceeded,
		Message:  fmt.Sprintf("Used %s exceeds total capacity", metric),
		Severity: SeverityWarning,
		ServerID: serverID,
	}
}

// NewMissingMetricsIssue flags a server with no observed metric groups.
func NewMissingMetricsIssue(serverID string) *Issue {
	return &Issue{
		Code:     CodeMissingMetrics,
		Message:  "No metrics observed; all costs price to zero",
		Severity: SeverityInfo,
		ServerID: serverID,
	}
}
