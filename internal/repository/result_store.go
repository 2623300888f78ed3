package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
)

// fundResultsDDL is the analysis run table, rendered against the configured
// table name. One row per fund per run; ReplacingMergeTree collapses re-runs
// of the same run_id.
const fundResultsDDL = `CREATE TABLE IF NOT EXISTS %s (
		run_id String,
		analyzed_at DateTime,
		scheme_code String,
		fund_name String,
		sharpe_ratio Nullable(Float64),
		cagr_3y_pct Nullable(Float64),
		volatility_pct Nullable(Float64),
		max_drawdown_pct Nullable(Float64),
		beta Nullable(Float64),
		alpha_pct Nullable(Float64),
		information_ratio Nullable(Float64),
		recommendation String
	) ENGINE = ReplacingMergeTree(analyzed_at)
	ORDER BY (run_id, scheme_code)`

// ClickHouseResultStore implements ResultStore for ClickHouse.
type ClickHouseResultStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseResultStore creates ClickHouse result storage.
func NewClickHouseResultStore(db *sql.DB, table string) drepo.ResultStore {
	if table == "" {
		table = "fund_results"
	}
	return &ClickHouseResultStore{db: db, table: table}
}

func (s *ClickHouseResultStore) Init(ctx context.Context) error {
	for _, stmt := range s.schemaStatements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init %s schema: %w", s.table, err)
		}
	}
	return nil
}

func (s *ClickHouseResultStore) schemaStatements() []string {
	return []string{fmt.Sprintf(fundResultsDDL, s.table)}
}

func (s *ClickHouseResultStore) StoreResults(ctx context.Context, runID string, at time.Time, results []models.FundResult) error {
	if len(results) == 0 {
		return nil
	}

	// Multi-row VALUES insert to keep one round-trip per run.
	values := make([]string, 0, len(results))
	args := make([]interface{}, 0, len(results)*12)
	for _, r := range results {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			runID,
			at,
			r.SchemeCode,
			r.FundName,
			nullable(r.SharpeRatio),
			nullable(r.CAGR3YPct),
			nullable(r.VolatilityPct),
			nullable(r.MaxDrawdownPct),
			nullable(r.Beta),
			nullable(r.AlphaPct),
			nullable(r.InformationRatio),
			r.Recommendation,
		)
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (run_id, analyzed_at, scheme_code, fund_name, sharpe_ratio, cagr_3y_pct, volatility_pct, max_drawdown_pct, beta, alpha_pct, information_ratio, recommendation) VALUES %s",
		s.table, strings.Join(values, ","),
	)
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("store results: %w", err)
	}
	return nil
}

func (s *ClickHouseResultStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseResultStore) Close() error {
	return nil // Managed by pkg
}

func nullable(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
