package api

// DateLayout is the wire format for roadmap dates.
const DateLayout = "2006-01-02"

// RoadmapPhase is one entry of the migration timeline, ordered by
// StartDate ascending. CriticalPath is assigned by the planner, never
// derived downstream.
type RoadmapPhase struct {
	Name         string          `json:"name"`
	ServerID     string          `json:"serverId,omitempty"`
	ServerName   string          `json:"serverName,omitempty"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	Duration     string          `json:"duration"`
	CriticalPath bool            `json:"criticalPath"`
	Complexity   ComplexityLevel `json:"complexity"`
	Strategy     string          `json:"strategy"`
	Tasks        []string        `json:"tasks"`
	Deliverables []string        `json:"deliverables"`
	Risks        []string        `json:"risks"`

	// Terminal marks the last phase of the timeline so renderers can
	// suppress the trailing connector.
	Terminal bool `json:"terminal"`
}

// Milestone is a dated checkpoint surfaced in the project summary.
type Milestone struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// RiskProfile counts servers per complexity level.
type RiskProfile struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ProjectSummary describes the bounds and shape of the full phase list.
type ProjectSummary struct {
	StartDate         string               `json:"startDate"`
	EndDate           string               `json:"endDate"`
	Duration          string               `json:"duration"`
	TotalEffort       int                  `json:"totalEffort"` // person-hours
	TotalServers      int                  `json:"totalServers,omitempty"`
	StrategyBreakdown map[StrategyType]int `json:"strategyBreakdown,omitempty"`
	RiskProfile       RiskProfile          `json:"riskProfile"`
	CriticalServers   []string             `json:"criticalPath,omitempty"`
	KeyMilestones     []Milestone          `json:"keyMilestones,omitempty"`
}

// RoadmapResult is the presentable timeline. Available is false when no
// roadmap data was supplied; the rest of the struct is then zero-valued
// and renderers show a placeholder instead of failing.
type RoadmapResult struct {
	Available      bool           `json:"available"`
	ProjectSummary ProjectSummary `json:"projectSummary"`
	Timeline       []RoadmapPhase `json:"timeline"`
}
