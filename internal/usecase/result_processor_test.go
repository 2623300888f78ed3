package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FundPulse/internal/domain/models"
)

type fakePublisher struct {
	published int
	closed    bool
	err       error
}

func (f *fakePublisher) PublishResults(_ context.Context, _ string, results []models.FundResult) error {
	if f.err != nil {
		return f.err
	}
	f.published += len(results)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

type fakeStore struct {
	stored int
	closed bool
}

func (f *fakeStore) Init(context.Context) error { return nil }

func (f *fakeStore) StoreResults(_ context.Context, _ string, _ time.Time, results []models.FundResult) error {
	f.stored += len(results)
	return nil
}

func (f *fakeStore) Health(context.Context) error { return nil }

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

func sampleResults(n int) []models.FundResult {
	out := make([]models.FundResult, n)
	for i := range out {
		out[i] = models.FundResult{SchemeCode: "100001", FundName: "Fund"}
	}
	return out
}

func TestProcessNoneBackendIsNoop(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	p := NewResultProcessor(pub, store, noopMetrics{}, BackendNone)

	if err := p.Process(context.Background(), "run-1", sampleResults(3)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if pub.published != 0 || store.stored != 0 {
		t.Fatalf("none backend must not dispatch anywhere")
	}
}

func TestProcessRoutesToKafka(t *testing.T) {
	pub := &fakePublisher{}
	p := NewResultProcessor(pub, nil, noopMetrics{}, BackendKafka)

	if err := p.Process(context.Background(), "run-1", sampleResults(3)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if pub.published != 3 {
		t.Fatalf("expected 3 published, got %d", pub.published)
	}
}

func TestProcessRoutesToClickHouse(t *testing.T) {
	store := &fakeStore{}
	p := NewResultProcessor(nil, store, noopMetrics{}, BackendClickHouse)

	if err := p.Process(context.Background(), "run-1", sampleResults(2)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if store.stored != 2 {
		t.Fatalf("expected 2 stored, got %d", store.stored)
	}
}

func TestProcessUnknownBackend(t *testing.T) {
	p := NewResultProcessor(&fakePublisher{}, &fakeStore{}, noopMetrics{}, "postgres")
	if err := p.Process(context.Background(), "run-1", sampleResults(1)); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestProcessWrapsBackendError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	p := NewResultProcessor(pub, nil, noopMetrics{}, BackendKafka)
	if err := p.Process(context.Background(), "run-1", sampleResults(1)); err == nil {
		t.Fatalf("expected publish error to propagate")
	}
}

func TestProcessEmptyResults(t *testing.T) {
	p := NewResultProcessor(nil, nil, noopMetrics{}, "postgres")
	if err := p.Process(context.Background(), "run-1", nil); err != nil {
		t.Fatalf("empty runs must be a no-op: %v", err)
	}
}

func TestHealthPingsClickHouseOnly(t *testing.T) {
	store := &fakeStore{}
	if err := NewResultProcessor(nil, store, noopMetrics{}, BackendClickHouse).Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if err := NewResultProcessor(&fakePublisher{}, nil, noopMetrics{}, BackendKafka).Health(context.Background()); err != nil {
		t.Fatalf("kafka backend has no ping: %v", err)
	}
	if err := NewResultProcessor(nil, nil, noopMetrics{}, BackendNone).Health(context.Background()); err != nil {
		t.Fatalf("none backend has no ping: %v", err)
	}
}

func TestCloseReleasesResources(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	p := NewResultProcessor(pub, store, noopMetrics{}, BackendKafka)
	p.Close()
	if !pub.closed || !store.closed {
		t.Fatalf("Close must release publisher and store")
	}
}
