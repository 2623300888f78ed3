package mfapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"FundPulse/internal/service/ratelimit"
	"FundPulse/pkg/cache"
	applogger "FundPulse/pkg/logger"
)

const catalogJSON = `[
	{"schemeCode": 100001, "schemeName": "Axis Small Cap Fund - Direct Plan - Growth"},
	{"schemeCode": 100002, "schemeName": "Axis Small Cap Fund - Direct Plan - IDCW Dividend"},
	{"schemeCode": 100003, "schemeName": "HDFC Large Cap Fund - Direct Plan - Growth"},
	{"schemeCode": 100004, "schemeName": "SBI Small Cap Fund - Regular Plan - Growth"},
	{"schemeCode": 100005, "schemeName": "Nippon India SMALL CAP Fund - DIRECT - GROWTH"}
]`

const historyJSON = `{
	"meta": {"scheme_name": "Axis Small Cap Fund - Direct Plan - Growth"},
	"data": [
		{"date": "17-08-2023", "nav": "104.3012"},
		{"date": "16-08-2023", "nav": "103.9921"},
		{"date": "16-08-2023", "nav": "103.5000"},
		{"date": "14-08-2023", "nav": "0.0"},
		{"date": "bogus", "nav": "102.1"},
		{"date": "11-08-2023", "nav": "102.8710"}
	]
}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return New(cache.NewMemoryCache(), ratelimit.New(), logger, Config{
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		RateCapacity: 100,
		RateRefill:   100,
	})
}

func TestListFundsFiltersAndCaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mf" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, catalogJSON)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	funds, err := c.ListFunds(context.Background())
	if err != nil {
		t.Fatalf("ListFunds: %v", err)
	}

	// Only the two direct growth small caps qualify: the dividend variant,
	// the large cap and the regular plan are all rejected.
	if len(funds) != 2 {
		t.Fatalf("expected 2 funds, got %d: %+v", len(funds), funds)
	}
	if funds[0].SchemeCode != "100001" || funds[1].SchemeCode != "100005" {
		t.Fatalf("unexpected selection: %+v", funds)
	}
}

func TestListFundsHonorsMaxFunds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[`)
		for i := 0; i < 50; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"schemeCode": %d, "schemeName": "Fund %d Small Cap Direct Growth"}`, i, i)
		}
		fmt.Fprint(w, `]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.cfg.MaxFunds = 33
	funds, err := c.ListFunds(context.Background())
	if err != nil {
		t.Fatalf("ListFunds: %v", err)
	}
	if len(funds) != 33 {
		t.Fatalf("expected cap at 33, got %d", len(funds))
	}
}

func TestListFundsServesFromCache(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, catalogJSON)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.ListFunds(context.Background()); err != nil {
		t.Fatalf("first list: %v", err)
	}
	funds, err := c.ListFunds(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if atomic.LoadInt64(&hits) != 1 {
		t.Fatalf("second list must be served from cache, got %d upstream hits", hits)
	}
	if len(funds) != 2 {
		t.Fatalf("cached universe incomplete: %+v", funds)
	}
}

func TestFetchNavHistoryParsesAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mf/100001" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, historyJSON)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	series, name, err := c.FetchNavHistory(context.Background(), "100001")
	if err != nil {
		t.Fatalf("FetchNavHistory: %v", err)
	}
	if name != "Axis Small Cap Fund - Direct Plan - Growth" {
		t.Fatalf("unexpected name %q", name)
	}

	// 6 raw rows: one bad date, one zero nav, one duplicate date. 3 remain.
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d: %+v", len(series), series)
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Fatalf("series must be ascending: %+v", series)
		}
	}
	// Duplicate 16-08 resolves to the later row in feed order.
	if series[1].Nav != 103.5 {
		t.Fatalf("duplicate date must keep the last observation, got %v", series[1].Nav)
	}
}

func TestFetchNavHistoryServesFromCache(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, historyJSON)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, _, err := c.FetchNavHistory(context.Background(), "100001"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	series, name, err := c.FetchNavHistory(context.Background(), "100001")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if atomic.LoadInt64(&hits) != 1 {
		t.Fatalf("second fetch must be served from cache, got %d upstream hits", hits)
	}
	if len(series) != 3 || name == "" {
		t.Fatalf("cached payload incomplete: %d points, name %q", len(series), name)
	}
}

func TestFetchNavHistoryUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, _, err := c.FetchNavHistory(context.Background(), "100001"); err == nil {
		t.Fatalf("expected error on 502")
	}
}
