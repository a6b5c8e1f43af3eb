package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migration-cost/pkg/api"
)

func TestSummarizeEmptyTimeline(t *testing.T) {
	result := Summarize(nil, api.ProjectSummary{})
	assert.False(t, result.Available)
	assert.Empty(t, result.Timeline)

	result = Summarize([]api.RoadmapPhase{}, api.ProjectSummary{StartDate: "2026-01-01"})
	assert.False(t, result.Available)
}

func TestSummarizeMarksTerminalPhase(t *testing.T) {
	phases := []api.RoadmapPhase{
		{Name: "Planning", StartDate: "2026-01-05", EndDate: "2026-01-19"},
		{Name: "Migration", StartDate: "2026-01-19", EndDate: "2026-02-16"},
		{Name: "Cutover", StartDate: "2026-02-16", EndDate: "2026-02-23"},
	}

	result := Summarize(phases, api.ProjectSummary{})
	require.True(t, result.Available)
	require.Len(t, result.Timeline, 3)

	assert.False(t, result.Timeline[0].Terminal)
	assert.False(t, result.Timeline[1].Terminal)
	assert.True(t, result.Timeline[2].Terminal)

	// Input order is preserved.
	assert.Equal(t, "Planning", result.Timeline[0].Name)
	assert.Equal(t, "Cutover", result.Timeline[2].Name)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	phases := []api.RoadmapPhase{
		{Name: "Only", StartDate: "2026-01-05", EndDate: "2026-01-19"},
	}

	Summarize(phases, api.ProjectSummary{})
	assert.False(t, phases[0].Terminal)
	assert.Empty(t, phases[0].Duration)
}

func TestSummarizeDerivesBlankDurations(t *testing.T) {
	phases := []api.RoadmapPhase{
		{Name: "Planning", StartDate: "2026-01-05", EndDate: "2026-01-19"},
		{Name: "Pre-labeled", StartDate: "2026-01-19", EndDate: "2026-02-16", Duration: "4 weeks"},
	}

	result := Summarize(phases, api.ProjectSummary{})
	assert.Equal(t, "14 days", result.Timeline[0].Duration)
	// Supplied labels are kept verbatim.
	assert.Equal(t, "4 weeks", result.Timeline[1].Duration)
}

func TestSummarizeBackfillsSummaryBounds(t *testing.T) {
	phases := []api.RoadmapPhase{
		{Name: "Planning", StartDate: "2026-01-05", EndDate: "2026-01-19"},
		{Name: "Cutover", StartDate: "2026-01-19", EndDate: "2026-03-02"},
	}

	result := Summarize(phases, api.ProjectSummary{})
	assert.Equal(t, "2026-01-05", result.ProjectSummary.StartDate)
	assert.Equal(t, "2026-03-02", result.ProjectSummary.EndDate)
	assert.Equal(t, "56 days", result.ProjectSummary.Duration)

	// Supplied bounds win over derived ones.
	supplied := api.ProjectSummary{
		StartDate: "2026-01-01",
		EndDate:   "2026-04-01",
		Duration:  "1 quarter",
	}
	result = Summarize(phases, supplied)
	assert.Equal(t, "2026-01-01", result.ProjectSummary.StartDate)
	assert.Equal(t, "2026-04-01", result.ProjectSummary.EndDate)
	assert.Equal(t, "1 quarter", result.ProjectSummary.Duration)
}

func TestSpanLabel(t *testing.T) {
	assert.Equal(t, "14 days", spanLabel("2026-01-05", "2026-01-19"))
	assert.Equal(t, "0 days", spanLabel("2026-01-05", "2026-01-05"))

	// Unparseable or inverted spans yield an empty label, not an error.
	assert.Equal(t, "", spanLabel("not-a-date", "2026-01-19"))
	assert.Equal(t, "", spanLabel("2026-01-05", "soon"))
	assert.Equal(t, "", spanLabel("2026-01-19", "2026-01-05"))
}
