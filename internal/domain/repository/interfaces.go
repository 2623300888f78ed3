package repository

import (
	"context"
	"time"

	"FundPulse/internal/domain/models"
)

// FundUniverse lists candidate schemes. Selection predicate and size cap
// belong to the implementation, not the callers.
type FundUniverse interface {
	ListFunds(ctx context.Context) ([]models.Fund, error)
}

// NavSource fetches the NAV history for one scheme. An empty series means
// "no data"; callers skip the fund without failing the batch. The returned
// name is the provider's resolved display name.
type NavSource interface {
	FetchNavHistory(ctx context.Context, schemeCode string) (models.NavSeries, string, error)
}

// BenchmarkSource fetches the benchmark index series over a trailing window.
// Callers are agnostic to provenance (live feed or synthetic generator).
type BenchmarkSource interface {
	FetchSeries(ctx context.Context, lookbackDays int) (models.NavSeries, error)
}

// ResultPublisher publishes analysis results to a message backend.
type ResultPublisher interface {
	PublishResults(ctx context.Context, runID string, results []models.FundResult) error
	Close() error
}

// ResultStore persists analysis runs.
type ResultStore interface {
	Init(ctx context.Context) error
	StoreResults(ctx context.Context, runID string, at time.Time, results []models.FundResult) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational telemetry.
type Metrics interface {
	RecordFundAnalyzed(mode string)
	RecordFundSkipped(reason string)
	RecordProviderError(kind string)
	RecordLatency(op string, seconds float64)
	RecordLastNav(schemeCode string, nav float64)
}
