package roadmap

import "migration-cost/pkg/api"

// phaseTemplate describes one phase of a strategy playbook. Ratio is
// the share of the server's total migration window the phase occupies.
type phaseTemplate struct {
	Name  string
	Ratio float64
	Tasks []string
}

// phaseTemplates holds the five-phase playbook per strategy. Unknown
// strategies plan like a Rehost.
var phaseTemplates = map[api.StrategyType][]phaseTemplate{
	api.StrategyRehost: {
		{"Planning & Assessment", 0.15, []string{
			"Infrastructure assessment",
			"Dependency mapping",
			"Migration plan creation",
			"Risk assessment",
		}},
		{"Environment Preparation", 0.20, []string{
			"Target environment setup",
			"Network configuration",
			"Security setup",
			"Monitoring setup",
		}},
		{"Data Migration", 0.25, []string{
			"Data transfer planning",
			"Initial data sync",
			"Delta sync testing",
			"Performance optimization",
		}},
		{"Application Migration", 0.25, []string{
			"Application installation",
			"Configuration migration",
			"Integration testing",
			"Performance testing",
		}},
		{"Cutover & Validation", 0.15, []string{
			"Final data sync",
			"DNS cutover",
			"Validation testing",
			"Performance monitoring",
		}},
	},
	api.StrategyReplatform: {
		{"Analysis & Design", 0.20, []string{
			"Current architecture analysis",
			"Target architecture design",
			"Gap analysis",
			"Migration strategy refinement",
		}},
		{"Environment Setup", 0.15, []string{
			"Cloud infrastructure setup",
			"Platform configuration",
			"Security implementation",
			"Monitoring setup",
		}},
		{"Application Modification", 0.30, []string{
			"Code modifications",
			"Database optimization",
			"Integration updates",
			"Performance tuning",
		}},
		{"Testing", 0.20, []string{
			"Unit testing",
			"Integration testing",
			"Performance testing",
			"User acceptance testing",
		}},
		{"Deployment", 0.15, []string{
			"Staged rollout",
			"Data migration",
			"Production deployment",
			"Post-deployment validation",
		}},
	},
	api.StrategyRefactor: {
		{"Architecture Design", 0.20, []string{
			"Current state analysis",
			"Future state architecture",
			"Technology selection",
			"Implementation planning",
		}},
		{"Development Setup", 0.15, []string{
			"Development environment",
			"CI/CD pipeline setup",
			"Code repository setup",
			"Tool configuration",
		}},
		{"Implementation", 0.35, []string{
			"Service implementation",
			"Database migration",
			"API development",
			"Integration implementation",
		}},
		{"Testing & QA", 0.20, []string{
			"Unit testing",
			"Integration testing",
			"Performance testing",
			"Security testing",
		}},
		{"Production Release", 0.10, []string{
			"Production environment setup",
			"Data migration",
			"Phased deployment",
			"Production validation",
		}},
	},
}

// completionCriteria lists the deliverables gating each known phase.
var completionCriteria = map[string][]string{
	"Planning & Assessment": {
		"Architecture documentation completed and approved",
		"All dependencies mapped and validated",
		"Migration plan approved by stakeholders",
		"Risk mitigation strategies defined",
	},
	"Environment Preparation": {
		"Target environment fully configured and tested",
		"Network connectivity validated",
		"Security controls implemented and verified",
		"Monitoring tools configured and operational",
	},
	"Data Migration": {
		"All data successfully migrated and verified",
		"Data integrity checks passed",
		"Performance benchmarks met",
		"Rollback procedures tested",
	},
	"Application Migration": {
		"All applications successfully migrated",
		"Integration tests passed",
		"Performance requirements met",
		"User acceptance criteria fulfilled",
	},
	"Testing & QA": {
		"All test cases executed successfully",
		"Performance criteria met",
		"Security requirements validated",
		"Stakeholder sign-off received",
	},
	"Production Release": {
		"Production environment validated",
		"All critical functionalities operational",
		"Monitoring and alerts configured",
		"Documentation completed",
	},
}

var genericCriteria = []string{
	"Phase objectives achieved",
	"Quality gates passed",
	"Stakeholder approval received",
	"Documentation completed",
}

// baseRisks lists the standing risks per known phase.
var baseRisks = map[string][]string{
	"Planning & Assessment": {
		"Incomplete dependency mapping",
		"Underestimated complexity",
		"Missing critical requirements",
	},
	"Environment Preparation": {
		"Network connectivity issues",
		"Security compliance gaps",
		"Resource availability constraints",
	},
	"Data Migration": {
		"Data corruption during transfer",
		"Extended downtime requirements",
		"Performance degradation",
	},
	"Application Migration": {
		"Application compatibility issues",
		"Integration failures",
		"Performance bottlenecks",
	},
	"Testing & QA": {
		"Insufficient test coverage",
		"Undetected critical issues",
		"User acceptance delays",
	},
	"Production Release": {
		"Production environment issues",
		"Rollback complications",
		"Business continuity risks",
	},
}

var genericRisks = []string{"Standard execution risks"}

func templateFor(strategy api.StrategyType) []phaseTemplate {
	if tpl, ok := phaseTemplates[strategy]; ok {
		return tpl
	}
	return phaseTemplates[api.StrategyRehost]
}

func criteriaFor(phaseName string) []string {
	if c, ok := completionCriteria[phaseName]; ok {
		return c
	}
	return genericCriteria
}

// risksFor assembles the risk list for one phase of one server, adding
// complexity- and dependency-driven entries on top of the phase template.
func risksFor(phaseName string, server api.ServerAnalysis) []string {
	risks := baseRisks[phaseName]
	if risks == nil {
		risks = genericRisks
	}
	out := make([]string, len(risks))
	copy(out, risks)

	if server.Complexity.Level == api.ComplexityHigh {
		out = append(out, "High complexity mitigation required", "Extended timeline risk")
	}
	if len(server.ServerData.Dependencies) > 2 {
		out = append(out, "Multiple dependency coordination required")
	}
	return out
}
