// Package clickhouse persists analysis runs for history and reporting.
// ClickHouse suits the append-only, read-for-analytics access pattern:
// runs are never updated, only inserted and queried by recency.
package clickhouse

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"migration-cost/pkg/api"
)

// Config holds ClickHouse connection configuration.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Debug    bool
}

// DefaultConfig returns default development configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     9000,
		Database: "migracost",
		Username: "default",
		Password: "",
		Debug:    false,
	}
}

// RunSummary is the list-view projection of a stored analysis run.
type RunSummary struct {
	ID                 uuid.UUID       `json:"id"`
	AnalyzedAt         time.Time       `json:"analyzedAt"`
	TotalServers       uint32          `json:"totalServers"`
	TotalMigrationCost decimal.Decimal `json:"totalMigrationCost"`
	MonthlySavings     decimal.Decimal `json:"monthlySavings"`
	ROIMonths          int64           `json:"roiMonths"`
}

// Store persists analysis runs in ClickHouse.
type Store struct {
	conn clickhouse.Conn
	cfg  *Config
}

// NewStore opens a connection to ClickHouse.
func NewStore(cfg *Config) (*Store, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: cfg.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	return &Store{conn: conn, cfg: cfg}, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates the analysis_runs table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id                   UUID,
			analyzed_at          DateTime64(3, 'UTC'),
			total_servers        UInt32,
			avg_complexity       Float64,
			total_migration_cost Decimal128(4),
			monthly_cloud_cost   Decimal128(4),
			monthly_savings      Decimal128(4),
			roi_months           Int64,
			payload              String,
			created_at           DateTime DEFAULT now()
		)
		ENGINE = MergeTree()
		ORDER BY (analyzed_at, id)
	`
	return s.conn.Exec(ctx, query)
}

// SaveRun inserts one analysis result. The full result is stored as a
// JSON payload beside the queryable summary columns.
func (s *Store) SaveRun(ctx context.Context, result *api.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis payload: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (
			id, analyzed_at, total_servers, avg_complexity,
			total_migration_cost, monthly_cloud_cost, monthly_savings,
			roi_months, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	return s.conn.Exec(ctx, query,
		result.AnalysisID,
		result.AnalyzedAt,
		uint32(result.TotalServers),
		result.AverageComplexityScore,
		result.Portfolio.TotalMigrationCost,
		result.Portfolio.MonthlyCloudCost,
		result.Portfolio.MonthlySavings,
		result.Portfolio.ROIMonths,
		string(payload),
	)
}

// GetRun retrieves a stored analysis by ID. Returns nil when the run
// does not exist.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*api.AnalysisResult, error) {
	query := `SELECT payload FROM analysis_runs WHERE id = ? LIMIT 1`
	row := s.conn.QueryRow(ctx, query, id)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	var result api.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis payload: %w", err)
	}
	return &result, nil
}

// ListRuns lists the most recent analysis runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, analyzed_at, total_servers,
			   total_migration_cost, monthly_savings, roi_months
		FROM analysis_runs
		ORDER BY analyzed_at DESC
		LIMIT ?
	`
	rows, err := s.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(
			&run.ID, &run.AnalyzedAt, &run.TotalServers,
			&run.TotalMigrationCost, &run.MonthlySavings, &run.ROIMonths,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
