package roadmap

import (
	"fmt"
	"time"

	"migration-cost/pkg/api"
)

// Unavailable returns the sentinel result used when no roadmap data
// exists. Roadmap input is optional relative to cost data, so absence
// degrades to a placeholder instead of an error.
func Unavailable() *api.RoadmapResult {
	return &api.RoadmapResult{Available: false}
}

// Summarize normalizes a phase list into a presentable timeline. Phases
// keep their input order (assumed chronological by startDate); the last
// entry is marked terminal so renderers can suppress the trailing
// connector. CriticalPath is a pass-through flag; no slack or float
// analysis happens here.
func Summarize(phases []api.RoadmapPhase, summary api.ProjectSummary) *api.RoadmapResult {
	if len(phases) == 0 {
		return Unavailable()
	}

	timeline := make([]api.RoadmapPhase, len(phases))
	copy(timeline, phases)

	for i := range timeline {
		timeline[i].Terminal = i == len(timeline)-1
		if timeline[i].Duration == "" {
			timeline[i].Duration = spanLabel(timeline[i].StartDate, timeline[i].EndDate)
		}
	}

	if summary.StartDate == "" {
		summary.StartDate = timeline[0].StartDate
	}
	if summary.EndDate == "" {
		summary.EndDate = timeline[len(timeline)-1].EndDate
	}
	if summary.Duration == "" {
		summary.Duration = spanLabel(summary.StartDate, summary.EndDate)
	}

	return &api.RoadmapResult{
		Available:      true,
		ProjectSummary: summary,
		Timeline:       timeline,
	}
}

// spanLabel derives the display duration from a date span. Unparseable
// dates yield an empty label rather than an error; the dates themselves
// still render.
func spanLabel(startDate, endDate string) string {
	start, err := time.Parse(api.DateLayout, startDate)
	if err != nil {
		return ""
	}
	end, err := time.Parse(api.DateLayout, endDate)
	if err != nil {
		return ""
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return ""
	}
	return fmt.Sprintf("%d days", days)
}
