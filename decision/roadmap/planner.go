// Package roadmap plans and summarizes the migration timeline. The
// Planner generates a dependency-ordered phase list from analyzed
// servers; the Summarizer normalizes any phase list (planned here or
// supplied externally) into a presentable result.
package roadmap

import (
	"fmt"
	"sort"
	"time"

	"migration-cost/pkg/api"
)

// Scheduling constants. Base windows per strategy, in days.
const (
	rehostBaseDays     = 28
	replatformBaseDays = 56
	refactorBaseDays   = 84
	unknownBaseDays    = 42

	// serverBufferDays separates consecutive server migrations.
	serverBufferDays = 7
)

// Base effort per strategy, person-hours.
const (
	rehostBaseEffort     = 160
	replatformBaseEffort = 480
	refactorBaseEffort   = 960
	unknownBaseEffort    = 320
)

// durationMultipliers scale the schedule and effort by complexity.
var durationMultipliers = map[api.ComplexityLevel]float64{
	api.ComplexityLow:    0.8,
	api.ComplexityMedium: 1.0,
	api.ComplexityHigh:   1.5,
}

// Planner generates a migration timeline from analyzed servers.
type Planner struct{}

// NewPlanner creates a planner.
func NewPlanner() *Planner { return &Planner{} }

// Plan schedules all servers sequentially from start, highest-priority
// first, and returns the summarized timeline. An empty server list
// yields the unavailable sentinel.
func (p *Planner) Plan(servers []api.ServerAnalysis, start time.Time) *api.RoadmapResult {
	if len(servers) == 0 {
		return Unavailable()
	}

	ordered := sortByPriority(servers)

	var phases []api.RoadmapPhase
	var milestones []api.Milestone
	var criticalServers []string
	totalEffort := 0
	current := start

	for _, server := range ordered {
		window := migrationWindow(server)
		critical := isCriticalPath(server, servers)
		if critical {
			criticalServers = append(criticalServers, server.ServerData.ServerName)
			milestones = append(milestones,
				api.Milestone{
					Name:        fmt.Sprintf("%s Migration", server.ServerData.ServerName),
					Date:        current.Format(api.DateLayout),
					Description: fmt.Sprintf("Begin migration of critical server %s", server.ServerData.ServerName),
				},
				api.Milestone{
					Name:        fmt.Sprintf("%s Completion", server.ServerData.ServerName),
					Date:        current.Add(window).Format(api.DateLayout),
					Description: fmt.Sprintf("Complete migration of critical server %s", server.ServerData.ServerName),
				},
			)
		}

		phases = append(phases, serverPhases(server, current, window, critical)...)
		totalEffort += estimateEffort(server)
		current = current.Add(window + serverBufferDays*24*time.Hour)
	}

	summary := buildSummary(servers, phases, criticalServers, milestones, totalEffort, start)
	return Summarize(phases, summary)
}

// serverPhases expands one server's migration window into its strategy
// playbook phases.
func serverPhases(server api.ServerAnalysis, start time.Time, window time.Duration, critical bool) []api.RoadmapPhase {
	tpl := templateFor(server.MigrationStrategy.Strategy)
	phases := make([]api.RoadmapPhase, 0, len(tpl))
	current := start

	for _, t := range tpl {
		span := time.Duration(float64(window) * t.Ratio)
		end := current.Add(span)
		phases = append(phases, api.RoadmapPhase{
			Name:         t.Name,
			ServerID:     server.ServerData.ServerID,
			ServerName:   server.ServerData.ServerName,
			StartDate:    current.Format(api.DateLayout),
			EndDate:      end.Format(api.DateLayout),
			Duration:     fmt.Sprintf("%d days", int(span.Hours()/24)),
			CriticalPath: critical,
			Complexity:   server.Complexity.Level,
			Strategy:     string(server.MigrationStrategy.Strategy),
			Tasks:        t.Tasks,
			Deliverables: criteriaFor(t.Name),
			Risks:        risksFor(t.Name, server),
		})
		current = end
	}
	return phases
}

// migrationWindow computes the full duration for one server: the
// strategy base window scaled by complexity and dependency count.
func migrationWindow(server api.ServerAnalysis) time.Duration {
	var baseDays float64
	switch server.MigrationStrategy.Strategy {
	case api.StrategyRehost:
		baseDays = rehostBaseDays
	case api.StrategyReplatform:
		baseDays = replatformBaseDays
	case api.StrategyRefactor:
		baseDays = refactorBaseDays
	default:
		baseDays = unknownBaseDays
	}

	multiplier, ok := durationMultipliers[server.Complexity.Level]
	if !ok {
		multiplier = 1.0
	}
	dependencyFactor := 1.0 + float64(len(server.ServerData.Dependencies))*0.1

	days := baseDays * multiplier * dependencyFactor
	return time.Duration(days * 24 * float64(time.Hour))
}

// estimateEffort computes person-hours for one server migration.
func estimateEffort(server api.ServerAnalysis) int {
	var base float64
	switch server.MigrationStrategy.Strategy {
	case api.StrategyRehost:
		base = rehostBaseEffort
	case api.StrategyReplatform:
		base = replatformBaseEffort
	case api.StrategyRefactor:
		base = refactorBaseEffort
	default:
		base = unknownBaseEffort
	}

	multiplier, ok := durationMultipliers[server.Complexity.Level]
	if !ok {
		multiplier = 1.0
	}
	dependencyFactor := 1.0 + float64(len(server.ServerData.Dependencies))*0.15

	return int(base*multiplier*dependencyFactor + 0.5)
}

// isCriticalPath flags schedule-blocking servers: several dependents,
// high complexity, or hot CPU.
func isCriticalPath(server api.ServerAnalysis, all []api.ServerAnalysis) bool {
	dependents := 0
	for _, other := range all {
		for _, dep := range other.ServerData.Dependencies {
			if dep == server.ServerData.ServerID {
				dependents++
			}
		}
	}

	return dependents >= 2 ||
		server.Complexity.Level == api.ComplexityHigh ||
		server.ServerData.Metrics.CPU.Utilization > 80
}

// sortByPriority orders servers so dependencies migrate before the
// servers that need them. Priority accumulates scheduling scores across
// the dependency chain, so a dependent always outweighs its own
// dependencies and schedules after them; ties break toward higher
// standalone complexity.
func sortByPriority(servers []api.ServerAnalysis) []api.ServerAnalysis {
	byID := make(map[string]api.ServerAnalysis, len(servers))
	for _, s := range servers {
		byID[s.ServerData.ServerID] = s
	}

	ordered := make([]api.ServerAnalysis, len(servers))
	copy(ordered, servers)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi := priorityScore(ordered[i].ServerData.ServerID, byID, map[string]bool{})
		pj := priorityScore(ordered[j].ServerData.ServerID, byID, map[string]bool{})
		if pi != pj {
			return pi < pj
		}
		return schedulingScore(ordered[i]) > schedulingScore(ordered[j])
	})

	return ordered
}

// priorityScore sums scheduling scores down the dependency chain. The
// visited set breaks dependency cycles.
func priorityScore(id string, byID map[string]api.ServerAnalysis, visited map[string]bool) float64 {
	if visited[id] {
		return 0
	}
	visited[id] = true

	server, ok := byID[id]
	if !ok {
		return 0
	}

	score := schedulingScore(server)
	for _, dep := range server.ServerData.Dependencies {
		score += priorityScore(dep, byID, visited)
	}
	return score
}

// schedulingScore weighs a server's standalone migration weight: its
// complexity score, dependency count, and average resource pressure.
func schedulingScore(server api.ServerAnalysis) float64 {
	m := server.ServerData.Metrics

	utilization := m.CPU.Utilization
	if m.Memory.Total > 0 {
		utilization += m.Memory.Used / m.Memory.Total * 100
	}
	if m.Storage.Total > 0 {
		utilization += m.Storage.Used / m.Storage.Total * 100
	}
	utilization /= 3

	return server.Complexity.Score +
		float64(len(server.ServerData.Dependencies))*2 +
		utilization*0.5
}

// buildSummary assembles the project-level summary for a planned
// timeline.
func buildSummary(servers []api.ServerAnalysis, phases []api.RoadmapPhase, criticalServers []string, milestones []api.Milestone, totalEffort int, start time.Time) api.ProjectSummary {
	summary := api.ProjectSummary{
		TotalEffort:       totalEffort,
		TotalServers:      len(servers),
		StrategyBreakdown: make(map[api.StrategyType]int),
		CriticalServers:   criticalServers,
	}

	for _, s := range servers {
		summary.StrategyBreakdown[s.MigrationStrategy.Strategy]++
		switch s.Complexity.Level {
		case api.ComplexityHigh:
			summary.RiskProfile.High++
		case api.ComplexityMedium:
			summary.RiskProfile.Medium++
		default:
			summary.RiskProfile.Low++
		}
	}

	if len(phases) > 0 {
		summary.StartDate = phases[0].StartDate
		summary.EndDate = phases[len(phases)-1].EndDate
	}

	summary.KeyMilestones = append([]api.Milestone{{
		Name:        "Project Kickoff",
		Date:        start.Format(api.DateLayout),
		Description: "Project initiation and team onboarding",
	}}, milestones...)
	if summary.EndDate != "" {
		summary.KeyMilestones = append(summary.KeyMilestones, api.Milestone{
			Name:        "Project Completion",
			Date:        summary.EndDate,
			Description: "All migration activities completed",
		})
	}

	return summary
}
