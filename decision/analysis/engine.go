// Package analysis provides the Migration Analysis Engine. It combines
// discovery assessment, per-server cost math, portfolio aggregation,
// and roadmap summarization into one result for the rendering layer.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"migration-cost/decision/cost"
	"migration-cost/decision/costmodel"
	"migration-cost/decision/discovery"
	"migration-cost/decision/roadmap"
	"migration-cost/pkg/api"
)

// Engine is the analysis orchestrator. It holds no state across calls;
// concurrent Analyze invocations are safe.
type Engine struct {
	rates      costmodel.Rates
	aggregator *cost.Aggregator
	planner    *roadmap.Planner
}

// NewEngine creates an engine with the given rate card.
func NewEngine(rates costmodel.Rates) *Engine {
	return &Engine{
		rates:      rates,
		aggregator: cost.NewAggregator(rates),
		planner:    roadmap.NewPlanner(),
	}
}

// AnalyzeRequest carries one analysis invocation's inputs.
type AnalyzeRequest struct {
	Input api.AnalysisInput

	// PlanRoadmap generates a timeline from the servers when the input
	// carries none. Externally supplied roadmaps always win.
	PlanRoadmap bool

	// Start anchors a generated roadmap. Zero means now.
	Start time.Time
}

// Analyze derives the combined cost and roadmap result. The only hard
// failure is an empty portfolio (cost.ErrEmptyPortfolio); partial or
// malformed metric data degrades to deterministic zero-cost fallbacks
// inside the cost model.
func (e *Engine) Analyze(req AnalyzeRequest) (*api.AnalysisResult, error) {
	servers := e.completeAssessments(req.Input.Servers)

	portfolio, err := e.aggregator.Aggregate(servers)
	if err != nil {
		return nil, err
	}

	result := &api.AnalysisResult{
		AnalysisID:             uuid.New(),
		AnalyzedAt:             time.Now().UTC(),
		TotalServers:           len(servers),
		AverageComplexityScore: averageComplexity(servers),
		Portfolio:              *portfolio,
	}

	switch {
	case req.Input.Roadmap != nil:
		result.Roadmap = roadmap.Summarize(req.Input.Roadmap.Timeline, req.Input.Roadmap.ProjectSummary)
	case req.PlanRoadmap:
		start := req.Start
		if start.IsZero() {
			start = time.Now().UTC()
		}
		result.Roadmap = e.planner.Plan(servers, start)
	}

	return result, nil
}

// completeAssessments fills in strategy and complexity for servers the
// upstream discovery plane left unassessed.
func (e *Engine) completeAssessments(servers []api.ServerAnalysis) []api.ServerAnalysis {
	out := make([]api.ServerAnalysis, len(servers))
	for i, s := range servers {
		if s.Complexity.Level == "" {
			s.Complexity = discovery.Assess(s.ServerData)
		}
		if s.MigrationStrategy.Strategy == "" {
			s.MigrationStrategy = discovery.Recommend(s.Complexity.Level, s.ServerData)
		}
		out[i] = s
	}
	return out
}

// averageComplexity is the mean complexity percentage across servers.
func averageComplexity(servers []api.ServerAnalysis) float64 {
	if len(servers) == 0 {
		return 0
	}
	var sum float64
	for _, s := range servers {
		sum += s.Complexity.Percentage
	}
	return sum / float64(len(servers))
}
