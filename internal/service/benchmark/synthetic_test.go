package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	applogger "FundPulse/pkg/logger"
)

func TestSyntheticDeterministic(t *testing.T) {
	a := NewSyntheticIndex(42).Synthesize(300)
	b := NewSyntheticIndex(42).Synthesize(300)
	if len(a) != 300 {
		t.Fatalf("expected 300 values, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must yield identical paths, diverged at %d", i)
		}
	}

	c := NewSyntheticIndex(7).Synthesize(300)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds must yield different paths")
	}
}

func TestSyntheticStartsAtBase(t *testing.T) {
	vals := NewSyntheticIndex(42).Synthesize(10)
	if vals[0] != 18000 {
		t.Fatalf("expected first value 18000, got %v", vals[0])
	}
	for i, v := range vals {
		if v <= 0 {
			t.Fatalf("index values must stay positive, got %v at %d", v, i)
		}
	}
}

func TestSyntheticFetchSeriesSkipsWeekends(t *testing.T) {
	s := NewSyntheticIndex(42)
	s.now = func() time.Time {
		return time.Date(2024, 6, 14, 15, 0, 0, 0, time.UTC) // a Friday
	}

	series, err := s.FetchSeries(context.Background(), 30)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(series) == 0 {
		t.Fatalf("expected observations")
	}
	for _, p := range series {
		if wd := p.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend observation at %v", p.Date)
		}
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Fatalf("series must be ascending")
		}
	}
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestHTTPSourceParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"date": "2024-06-12", "close": 18250.5},
			{"date": "2024-06-11", "close": 18100.0},
			{"date": "2024-06-10", "close": 0},
			{"date": "junk", "close": 18000.0}
		]`)
	}))
	defer srv.Close()

	src := NewHTTPSource(NewSyntheticIndex(42), testLogger(t), HTTPSourceConfig{URL: srv.URL})
	series, err := src.FetchSeries(context.Background(), 30)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 usable rows, got %d", len(series))
	}
	if series[0].Nav != 18100.0 || series[1].Nav != 18250.5 {
		t.Fatalf("unexpected order or values: %+v", series)
	}
}

func TestHTTPSourceFallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(NewSyntheticIndex(42), testLogger(t), HTTPSourceConfig{URL: srv.URL})
	series, err := src.FetchSeries(context.Background(), 30)
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if len(series) == 0 {
		t.Fatalf("expected synthetic fallback series")
	}
}

func TestHTTPSourceWithoutURLUsesSynthetic(t *testing.T) {
	src := NewHTTPSource(NewSyntheticIndex(42), testLogger(t), HTTPSourceConfig{})
	series, err := src.FetchSeries(context.Background(), 30)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(series) == 0 {
		t.Fatalf("expected synthetic series")
	}
}
