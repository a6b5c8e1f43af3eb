// MigraCost CLI - Cloud Migration Cost & Roadmap Intelligence
//
// Usage:
//   migracost analyze --inventory inventory.json [options]
//   migracost rates update --region ap-south-1
//   migracost serve --port 8080
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	httpapi "migration-cost/api"
	"migration-cost/db/clickhouse"
	"migration-cost/decision/analysis"
	"migration-cost/decision/costmodel"
	"migration-cost/decision/discovery"
	"migration-cost/internal/rates"
	"migration-cost/pkg/api"
	"migration-cost/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "migracost",
		Usage:   "Cloud Migration Cost & Roadmap Intelligence - plan the move before you pay for it",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"MIGRACOST_LOG_LEVEL"},
			},
			&cli.Float64Flag{
				Name:    "cost-per-core",
				Value:   3000,
				Usage:   "Monthly cost per utilized CPU core",
				EnvVars: []string{"MIGRACOST_COST_PER_CORE"},
			},
			&cli.Float64Flag{
				Name:    "cost-per-gb",
				Value:   100,
				Usage:   "Monthly cost per GB of provisioned storage",
				EnvVars: []string{"MIGRACOST_COST_PER_GB"},
			},
			&cli.Float64Flag{
				Name:    "cost-per-gb-bandwidth",
				Value:   50,
				Usage:   "Monthly cost per GB of transferred data",
				EnvVars: []string{"MIGRACOST_COST_PER_GB_BANDWIDTH"},
			},
			&cli.Float64Flag{
				Name:    "on-premise-markup",
				Value:   1.4,
				Usage:   "On-premises cost relative to projected cloud cost",
				EnvVars: []string{"MIGRACOST_ON_PREMISE_MARKUP"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-host",
				Value:   "localhost",
				Usage:   "ClickHouse host for run history",
				EnvVars: []string{"CLICKHOUSE_HOST"},
			},
			&cli.IntFlag{
				Name:    "clickhouse-port",
				Value:   9000,
				Usage:   "ClickHouse native port",
				EnvVars: []string{"CLICKHOUSE_PORT"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-database",
				Value:   "migracost",
				Usage:   "ClickHouse database",
				EnvVars: []string{"CLICKHOUSE_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-user",
				Value:   "default",
				Usage:   "ClickHouse user",
				EnvVars: []string{"CLICKHOUSE_USER"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-password",
				Value:   "",
				Usage:   "ClickHouse password",
				EnvVars: []string{"CLICKHOUSE_PASSWORD"},
			},
		},

		Commands: []*cli.Command{
			analyzeCommand(),
			serveCommand(),
			ratesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ratesFromFlags builds the rate card from global flags (which carry
// the documented defaults and env var overrides).
func ratesFromFlags(c *cli.Context) costmodel.Rates {
	return costmodel.Rates{
		CostPerCore:        decimal.NewFromFloat(c.Float64("cost-per-core")),
		CostPerGB:          decimal.NewFromFloat(c.Float64("cost-per-gb")),
		CostPerGBBandwidth: decimal.NewFromFloat(c.Float64("cost-per-gb-bandwidth")),
		OnPremiseMarkup:    decimal.NewFromFloat(c.Float64("on-premise-markup")),
	}
}

func storeFromFlags(c *cli.Context) (*clickhouse.Store, error) {
	return clickhouse.NewStore(&clickhouse.Config{
		Host:     c.String("clickhouse-host"),
		Port:     c.Int("clickhouse-port"),
		Database: c.String("clickhouse-database"),
		Username: c.String("clickhouse-user"),
		Password: c.String("clickhouse-password"),
	})
}

// =============================================================================
// ANALYZE COMMAND
// =============================================================================

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze a server inventory: costs, ROI, and roadmap",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "inventory",
				Aliases:  []string{"i"},
				Usage:    "Path to inventory JSON (servers + optional roadmap)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json, markdown)",
			},
			&cli.BoolFlag{
				Name:  "roadmap",
				Value: true,
				Usage: "Generate a migration roadmap when the inventory has none",
			},
			&cli.StringFlag{
				Name:  "start-date",
				Usage: "Roadmap start date (YYYY-MM-DD, default today)",
			},
			&cli.BoolFlag{
				Name:  "save",
				Value: false,
				Usage: "Persist the run to ClickHouse history",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	data, err := os.ReadFile(c.String("inventory"))
	if err != nil {
		return fmt.Errorf("failed to read inventory: %w", err)
	}

	var input api.AnalysisInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse inventory JSON: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Parsed %d servers\n", len(input.Servers))

	for _, issue := range discovery.ValidateInventory(input.Servers) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", issue)
	}

	req := analysis.AnalyzeRequest{
		Input:       input,
		PlanRoadmap: c.Bool("roadmap"),
	}
	if raw := c.String("start-date"); raw != "" {
		start, err := time.Parse(api.DateLayout, raw)
		if err != nil {
			return fmt.Errorf("invalid start-date: %w", err)
		}
		req.Start = start
	}

	engine := analysis.NewEngine(ratesFromFlags(c))
	result, err := engine.Analyze(req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if c.Bool("save") {
		store, err := storeFromFlags(c)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		defer store.Close()
		ctx := context.Background()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare run history schema: %w", err)
		}
		if err := store.SaveRun(ctx, result); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", result.AnalysisID)
	}

	switch c.String("format") {
	case "json":
		return outputJSON(result)
	case "markdown":
		return outputMarkdown(result)
	default:
		return outputTable(result)
	}
}

// =============================================================================
// OUTPUT FORMATTERS
// =============================================================================

func outputJSON(result *api.AnalysisResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func outputTable(result *api.AnalysisResult) error {
	p := result.Portfolio

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                 MIGRATION COST ANALYSIS                        ║")
	fmt.Println("╠══════════════════════════════════════════════════════════════╣")
	fmt.Printf("║  Servers Analyzed:       %-37d ║\n", result.TotalServers)
	fmt.Printf("║  Avg Complexity:         %-37s ║\n", fmt.Sprintf("%.1f%%", result.AverageComplexityScore))
	fmt.Printf("║  Monthly Cloud Cost:     $%-36s ║\n", p.MonthlyCloudCost.StringFixed(2))
	fmt.Printf("║  Current Monthly Cost:   $%-36s ║\n", p.CurrentCosts.StringFixed(2))
	fmt.Printf("║  Monthly Savings:        $%-36s ║\n", p.MonthlySavings.StringFixed(2))
	fmt.Printf("║  Migration Cost:         $%-36s ║\n", p.TotalMigrationCost.StringFixed(2))
	fmt.Printf("║  ROI:                    %-37s ║\n", roiLabel(p.ROIMonths))
	fmt.Printf("║  3-Year Savings:         $%-36s ║\n", p.ThreeYearSavings.StringFixed(2))
	fmt.Println("╠══════════════════════════════════════════════════════════════╣")
	fmt.Println("║  TOP MIGRATION COSTS                                          ║")
	fmt.Println("╠══════════════════════════════════════════════════════════════╣")

	for _, entry := range topBreakdowns(p.ServerBreakdowns, 5) {
		fmt.Printf("║  %-35s  $%-20s ║\n", truncate(entry.id, 35), entry.breakdown.MigrationCost.StringFixed(2))
	}

	if result.Roadmap != nil && result.Roadmap.Available {
		summary := result.Roadmap.ProjectSummary
		fmt.Println("╠══════════════════════════════════════════════════════════════╣")
		fmt.Println("║  ROADMAP                                                      ║")
		fmt.Println("╠══════════════════════════════════════════════════════════════╣")
		fmt.Printf("║  Window:                 %-37s ║\n", summary.StartDate+" → "+summary.EndDate)
		fmt.Printf("║  Duration:               %-37s ║\n", summary.Duration)
		fmt.Printf("║  Total Effort:           %-37s ║\n", fmt.Sprintf("%d person-hours", summary.TotalEffort))
		fmt.Printf("║  Critical Servers:       %-37s ║\n", truncate(strings.Join(summary.CriticalServers, ", "), 37))
	}

	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	return nil
}

func outputMarkdown(result *api.AnalysisResult) error {
	p := result.Portfolio

	fmt.Println("## MigraCost Analysis Report")
	fmt.Println()
	fmt.Println("| Metric | Value |")
	fmt.Println("|--------|-------|")
	fmt.Printf("| **Servers** | %d |\n", result.TotalServers)
	fmt.Printf("| **Avg Complexity** | %.1f%% |\n", result.AverageComplexityScore)
	fmt.Printf("| **Monthly Cloud Cost** | $%s |\n", p.MonthlyCloudCost.StringFixed(2))
	fmt.Printf("| **Monthly Savings** | $%s |\n", p.MonthlySavings.StringFixed(2))
	fmt.Printf("| **Migration Cost** | $%s |\n", p.TotalMigrationCost.StringFixed(2))
	fmt.Printf("| **ROI** | %s |\n", roiLabel(p.ROIMonths))

	fmt.Println()
	fmt.Println("### Per-Server Breakdown")
	fmt.Println()
	fmt.Println("| Server | Projected Monthly | Migration Cost | Savings |")
	fmt.Println("|--------|-------------------|----------------|---------|")
	for _, entry := range topBreakdowns(p.ServerBreakdowns, len(p.ServerBreakdowns)) {
		b := entry.breakdown
		fmt.Printf("| %s | $%s | $%s | $%s |\n",
			entry.id,
			b.ProjectedMonthlyCost.StringFixed(2),
			b.MigrationCost.StringFixed(2),
			b.Savings.StringFixed(2),
		)
	}

	if result.Roadmap != nil && result.Roadmap.Available {
		fmt.Println()
		fmt.Println("### Roadmap")
		fmt.Println()
		fmt.Println("| Phase | Server | Start | End | Critical |")
		fmt.Println("|-------|--------|-------|-----|----------|")
		for _, phase := range result.Roadmap.Timeline {
			critical := ""
			if phase.CriticalPath {
				critical = "yes"
			}
			fmt.Printf("| %s | %s | %s | %s | %s |\n",
				phase.Name, phase.ServerName, phase.StartDate, phase.EndDate, critical)
		}
	}

	return nil
}

type breakdownEntry struct {
	id        string
	breakdown api.CostBreakdown
}

// topBreakdowns orders server breakdowns by migration cost descending.
func topBreakdowns(breakdowns map[string]api.CostBreakdown, n int) []breakdownEntry {
	entries := make([]breakdownEntry, 0, len(breakdowns))
	for id, b := range breakdowns {
		entries = append(entries, breakdownEntry{id: id, breakdown: b})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].breakdown.MigrationCost.GreaterThan(entries[j].breakdown.MigrationCost)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func roiLabel(months int64) string {
	if months == 0 {
		return "n/a (no positive savings)"
	}
	return fmt.Sprintf("%d months", months)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// =============================================================================
// RATES COMMAND
// =============================================================================

func ratesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rates",
		Usage: "Inspect and refresh the cost model rate card",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective rate card",
				Action: func(c *cli.Context) error {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(ratesFromFlags(c))
				},
			},
			{
				Name:  "update",
				Usage: "Derive rate overrides from live AWS pricing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "region",
						Value: "ap-south-1",
						Usage: "AWS region to price against",
					},
				},
				Action: runRatesUpdate,
			},
		},
	}
}

func runRatesUpdate(c *cli.Context) error {
	ctx := context.Background()

	fetcher, err := rates.NewFetcher(ctx)
	if err != nil {
		return err
	}

	overrides, err := fetcher.Fetch(ctx, c.String("region"))
	if err != nil {
		return fmt.Errorf("rate refresh failed: %w", err)
	}

	effective := overrides.Apply(ratesFromFlags(c))
	fmt.Fprintf(os.Stderr, "Fetched %s pricing for %s\n", overrides.Source, overrides.Region)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Overrides *rates.Overrides `json:"overrides"`
		Effective costmodel.Rates  `json:"effectiveRates"`
	}{overrides, effective})
}

// =============================================================================
// SERVE COMMAND (API SERVER)
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the MigraCost API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "API server port",
				EnvVars: []string{"MIGRACOST_PORT"},
			},
			&cli.StringFlag{
				Name:    "cors-origins",
				Value:   "*",
				Usage:   "Comma-separated list of allowed CORS origins",
				EnvVars: []string{"MIGRACOST_CORS_ORIGINS"},
			},
			&cli.BoolFlag{
				Name:    "history",
				Value:   false,
				Usage:   "Persist analysis runs to ClickHouse",
				EnvVars: []string{"MIGRACOST_HISTORY"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"))

	var store *clickhouse.Store
	if c.Bool("history") {
		var err error
		store, err = storeFromFlags(c)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("failed to prepare run history schema: %w", err)
		}
	}

	corsOrigins := strings.Split(c.String("cors-origins"), ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}

	engine := analysis.NewEngine(ratesFromFlags(c))

	config := httpapi.DefaultConfig()
	config.Port = c.Int("port")
	config.CORSOrigins = corsOrigins

	server := httpapi.NewServer(engine, store, config, logger)
	return server.StartWithGracefulShutdown()
}
