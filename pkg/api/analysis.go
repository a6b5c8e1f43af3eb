package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StrategyType is one of the 3R migration strategies supported by the engine.
type StrategyType string

const (
	StrategyRehost     StrategyType = "Rehost"
	StrategyReplatform StrategyType = "Replatform"
	StrategyRefactor   StrategyType = "Refactor"
)

// ComplexityLevel classifies migration difficulty.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "Low"
	ComplexityMedium ComplexityLevel = "Medium"
	ComplexityHigh   ComplexityLevel = "High"
)

// MigrationStrategy is the recommended approach for one server.
type MigrationStrategy struct {
	Strategy          StrategyType `json:"strategy"`
	Description       string       `json:"description"`
	EstimatedTimeline string       `json:"estimatedTimeline,omitempty"`
	ConfidenceLevel   string       `json:"confidenceLevel,omitempty"`
	RiskLevel         string       `json:"riskLevel,omitempty"`
	AWSServices       []string     `json:"awsServices"`
	KeyConsiderations []string     `json:"keyConsiderations,omitempty"`
}

// ComplexityFactors breaks the complexity score down per dimension.
type ComplexityFactors struct {
	CPU          float64 `json:"cpu"`
	Memory       float64 `json:"memory"`
	Storage      float64 `json:"storage"`
	Dependencies float64 `json:"dependencies"`
	Applications float64 `json:"applications"`
	Network      float64 `json:"network"`
}

// ComplexityAssessment scores how hard a server is to migrate.
// Percentage drives the portfolio-level average; Level drives the
// migration cost multiplier.
type ComplexityAssessment struct {
	Level      ComplexityLevel   `json:"level"`
	Score      float64           `json:"score"`
	Percentage float64           `json:"percentage"` // 0-100
	Factors    ComplexityFactors `json:"factors"`
}

// ServerAnalysis bundles one server with its strategy and complexity.
// It is produced by the discovery plane and only read downstream.
type ServerAnalysis struct {
	ServerData        ServerRecord         `json:"serverData"`
	MigrationStrategy MigrationStrategy    `json:"migrationStrategy"`
	Complexity        ComplexityAssessment `json:"complexity"`
}

// CostBreakdown is the per-server cost result. All amounts are monthly
// except MigrationCost, in one consistent currency unit. Savings may be
// negative when the cloud projection exceeds on-premises cost; that is a
// reportable outcome, not an error.
type CostBreakdown struct {
	ProjectedMonthlyCost decimal.Decimal `json:"projectedMonthlyCost"`
	CurrentMonthlyCost   decimal.Decimal `json:"currentMonthlyCost"`
	MigrationCost        decimal.Decimal `json:"migrationCost"`
	Savings              decimal.Decimal `json:"savings"`
}

// PortfolioCostSummary aggregates cost breakdowns across the inventory.
type PortfolioCostSummary struct {
	TotalMigrationCost decimal.Decimal `json:"totalMigrationCost"`
	MonthlyCloudCost   decimal.Decimal `json:"monthlyCloudCost"`
	CurrentCosts       decimal.Decimal `json:"currentCosts"`
	MonthlySavings     decimal.Decimal `json:"monthlySavings"`

	// ROIMonths is 0 when monthly savings are non-positive: break-even
	// is undefined there and 0 is the documented sentinel.
	ROIMonths int64 `json:"roiMonths"`

	// Derived reporting values consumed by the presentation layer.
	AnnualSavings        decimal.Decimal `json:"annualSavings"`
	ThreeYearSavings     decimal.Decimal `json:"threeYearSavings"`
	CostReductionPercent decimal.Decimal `json:"costReductionPercent"`

	// ServerBreakdowns is keyed by serverId. Duplicate IDs in the input
	// silently overwrite earlier entries.
	ServerBreakdowns map[string]CostBreakdown `json:"serverBreakdowns"`
}

// AnalysisInput is the payload consumed from the ingestion collaborator.
type AnalysisInput struct {
	Servers []ServerAnalysis `json:"servers"`
	Roadmap *RoadmapInput    `json:"roadmap,omitempty"`
}

// RoadmapInput carries an externally planned timeline, when one exists.
type RoadmapInput struct {
	ProjectSummary ProjectSummary `json:"projectSummary"`
	Timeline       []RoadmapPhase `json:"timeline"`
}

// AnalysisResult is the combined output handed to the rendering layer.
// Roadmap is nil when no roadmap data was supplied or generated.
type AnalysisResult struct {
	AnalysisID             uuid.UUID            `json:"analysisId"`
	AnalyzedAt             time.Time            `json:"analyzedAt"`
	TotalServers           int                  `json:"totalServers"`
	AverageComplexityScore float64              `json:"averageComplexityScore"`
	Portfolio              PortfolioCostSummary `json:"portfolio"`
	Roadmap                *RoadmapResult       `json:"roadmap"`
}
