package usecase

import (
	"context"
	"fmt"
	"time"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
)

// Backend names accepted by the result processor.
const (
	BackendNone       = "none"
	BackendKafka      = "kafka"
	BackendClickHouse = "clickhouse"
)

// ResultProcessor routes finished analysis runs to the configured backend.
type ResultProcessor struct {
	pub     drepo.ResultPublisher
	store   drepo.ResultStore
	metrics drepo.Metrics
	backend string
}

// NewResultProcessor creates a new ResultProcessor instance.
func NewResultProcessor(
	pub drepo.ResultPublisher,
	store drepo.ResultStore,
	metrics drepo.Metrics,
	backend string,
) *ResultProcessor {
	if backend == "" {
		backend = BackendNone
	}
	return &ResultProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// Process dispatches one run's results. With the "none" backend it is a
// no-op so the API can run without Kafka or ClickHouse around.
func (p *ResultProcessor) Process(ctx context.Context, runID string, results []models.FundResult) error {
	if len(results) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case BackendNone:
		return nil
	case BackendKafka:
		err = p.pub.PublishResults(ctx, runID, results)
	case BackendClickHouse:
		err = p.store.StoreResults(ctx, runID, time.Now().UTC(), results)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordProviderError("results_" + p.backend)
		return fmt.Errorf("process results: %w", err)
	}

	p.metrics.RecordLatency("process_results", time.Since(start).Seconds())
	return nil
}

// Health pings the active backend. Stateless backends always report healthy.
func (p *ResultProcessor) Health(ctx context.Context) error {
	if p.backend == BackendClickHouse && p.store != nil {
		return p.store.Health(ctx)
	}
	return nil
}

// Close closes underlying resources if available.
func (p *ResultProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
