package discovery

import (
	"migration-cost/pkg/api"
	"migration-cost/pkg/confidence"
)

// SuggestStrategy recommends a migration approach for the assessed
// complexity level. The recommendations are templates; they carry the
// service shortlist and considerations the rendering layer displays.
func SuggestStrategy(level api.ComplexityLevel) api.MigrationStrategy {
	switch level {
	case api.ComplexityLow:
		return api.MigrationStrategy{
			Strategy:          api.StrategyRehost,
			Description:       "Lift-and-shift migration recommended due to low complexity and minimal dependencies.",
			EstimatedTimeline: "2-4 weeks",
			ConfidenceLevel:   "High",
			RiskLevel:         "Low",
			AWSServices: []string{
				"AWS Application Migration Service",
				"EC2",
				"EBS",
				"VPC",
			},
			KeyConsiderations: []string{
				"Minimal application changes required",
				"Quick migration timeline",
				"Lower initial costs",
				"Good for meeting tight deadlines",
			},
		}
	case api.ComplexityMedium:
		return api.MigrationStrategy{
			Strategy:          api.StrategyReplatform,
			Description:       "Modify and optimize applications during migration for better cloud-native compatibility.",
			EstimatedTimeline: "1-3 months",
			ConfidenceLevel:   "Medium",
			RiskLevel:         "Medium",
			AWSServices: []string{
				"AWS Application Migration Service",
				"EC2",
				"RDS",
				"ECS",
				"Auto Scaling",
				"Elastic Load Balancing",
			},
			KeyConsiderations: []string{
				"Moderate application modifications needed",
				"Balance between modernization and speed",
				"Improved cloud optimization",
				"Better scalability options",
			},
		}
	default:
		return api.MigrationStrategy{
			Strategy:          api.StrategyRefactor,
			Description:       "Significant re-architecture recommended to fully leverage cloud-native capabilities.",
			EstimatedTimeline: "3-6 months",
			ConfidenceLevel:   "Medium",
			RiskLevel:         "High",
			AWSServices: []string{
				"ECS",
				"EKS",
				"Lambda",
				"RDS",
				"DynamoDB",
				"API Gateway",
				"CloudFront",
			},
			KeyConsiderations: []string{
				"Major application redesign required",
				"Highest long-term benefits",
				"Full cloud-native capabilities",
				"Improved performance and scalability",
			},
		}
	}
}

// Recommend suggests a strategy and adjusts its confidence label for
// metric coverage: each missing metric group decays the template's base
// confidence, so a recommendation built on thin data says so.
func Recommend(level api.ComplexityLevel, server api.ServerRecord) api.MigrationStrategy {
	strategy := SuggestStrategy(level)

	score := confidence.Decay(confidenceBand(strategy.ConfidenceLevel), missingMetrics(server))
	strategy.ConfidenceLevel = confidence.Label(confidence.Clamp(score))

	return strategy
}

// Analyze assesses one server and bundles it with the recommended
// strategy, producing the record downstream planes consume.
func Analyze(server api.ServerRecord) api.ServerAnalysis {
	complexity := Assess(server)
	return api.ServerAnalysis{
		ServerData:        server,
		MigrationStrategy: Recommend(complexity.Level, server),
		Complexity:        complexity,
	}
}

func confidenceBand(label string) float64 {
	switch label {
	case "High":
		return confidence.High
	case "Low":
		return confidence.Low
	default:
		return confidence.Medium
	}
}

// missingMetrics counts the metric groups the inventory never observed.
func missingMetrics(server api.ServerRecord) int {
	missing := 0
	if server.Metrics.CPU.Cores <= 0 {
		missing++
	}
	if server.Metrics.Memory.Total <= 0 {
		missing++
	}
	if server.Metrics.Storage.Total <= 0 {
		missing++
	}
	if server.Metrics.Network.Bandwidth <= 0 {
		missing++
	}
	return missing
}
