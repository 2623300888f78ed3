package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"FundPulse/internal/domain/models"
	"FundPulse/internal/service/ratelimit"
	"FundPulse/pkg/cache"
	xhttp "FundPulse/pkg/http"
	applogger "FundPulse/pkg/logger"
	"FundPulse/pkg/util"
)

const (
	rateKey     = "mfapi"
	universeKey = "fundpulse:universe"
)

// Config holds provider tunables.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	CacheTTL     time.Duration
	MaxFunds     int
	IncludeTerms []string
	ExcludeTerms []string
	RateCapacity float64
	RateRefill   float64 // tokens per second
}

// Client is a fund universe and NAV history provider backed by the public
// mfapi.in scheme catalog. It implements repository.FundUniverse and
// repository.NavSource.
type Client struct {
	http    *xhttp.Client
	cache   cache.Service
	limiter *ratelimit.Limiter
	logger  *applogger.Logger
	cfg     Config
}

// New creates a provider client.
func New(c cache.Service, limiter *ratelimit.Limiter, logger *applogger.Logger, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mfapi.in"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.MaxFunds <= 0 {
		cfg.MaxFunds = 33
	}
	if len(cfg.IncludeTerms) == 0 {
		cfg.IncludeTerms = []string{"small cap", "direct", "growth"}
	}
	if len(cfg.ExcludeTerms) == 0 {
		cfg.ExcludeTerms = []string{"bonus", "dividend"}
	}
	if cfg.RateCapacity <= 0 {
		cfg.RateCapacity = 5
	}
	if cfg.RateRefill <= 0 {
		cfg.RateRefill = 2
	}
	return &Client{
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		cache:   c,
		limiter: limiter,
		logger:  logger,
		cfg:     cfg,
	}
}

// schemeEntry is one row of the provider's full scheme catalog.
type schemeEntry struct {
	SchemeCode json.Number `json:"schemeCode"`
	SchemeName string      `json:"schemeName"`
}

// navResponse is the provider's per-scheme history payload. Dates and NAVs
// arrive as strings.
type navResponse struct {
	Meta struct {
		SchemeName string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		Nav  string `json:"nav"`
	} `json:"data"`
}

// cachedHistory is the cache representation of a fetched history.
type cachedHistory struct {
	Name   string           `json:"name"`
	Series models.NavSeries `json:"series"`
}

// ListFunds fetches the full scheme catalog and selects the configured
// slice of it: every include term must match, no exclude term may match,
// capped at MaxFunds.
func (c *Client) ListFunds(ctx context.Context) ([]models.Fund, error) {
	var raw string
	if err := c.cache.Get(ctx, universeKey, &raw); err == nil {
		var hit []models.Fund
		if err := json.Unmarshal([]byte(raw), &hit); err == nil && len(hit) > 0 {
			return hit, nil
		}
	}

	if err := c.limiter.Wait(ctx, rateKey, c.cfg.RateCapacity, c.cfg.RateRefill); err != nil {
		return nil, err
	}

	var entries []schemeEntry
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + "/mf",
	}, &entries)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}

	funds := make([]models.Fund, 0, c.cfg.MaxFunds)
	for _, e := range entries {
		if !c.selects(e.SchemeName) {
			continue
		}
		funds = append(funds, models.Fund{
			SchemeCode: e.SchemeCode.String(),
			Name:       e.SchemeName,
		})
		if len(funds) >= c.cfg.MaxFunds {
			break
		}
	}

	if len(funds) > 0 {
		if payload, err := json.Marshal(funds); err == nil {
			if err := c.cache.Set(ctx, universeKey, string(payload), c.cfg.CacheTTL); err != nil {
				c.logger.Warn("universe cache write failed", applogger.Error(err))
			}
		}
	}

	c.logger.Info("fund universe selected",
		applogger.Int("catalog", len(entries)),
		applogger.Int("selected", len(funds)),
	)
	return funds, nil
}

// FetchNavHistory returns the normalized NAV history for one scheme,
// serving from cache when fresh.
func (c *Client) FetchNavHistory(ctx context.Context, schemeCode string) (models.NavSeries, string, error) {
	key := "fundpulse:nav:" + schemeCode

	var raw string
	if err := c.cache.Get(ctx, key, &raw); err == nil {
		var hit cachedHistory
		if err := json.Unmarshal([]byte(raw), &hit); err == nil {
			return hit.Series, hit.Name, nil
		}
	}

	if err := c.limiter.Wait(ctx, rateKey, c.cfg.RateCapacity, c.cfg.RateRefill); err != nil {
		return nil, "", err
	}

	var resp navResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL + "/mf/" + schemeCode,
	}, &resp)
	if err != nil {
		return nil, "", fmt.Errorf("nav history %s: %w", schemeCode, err)
	}

	series := make(models.NavSeries, 0, len(resp.Data))
	for _, row := range resp.Data {
		date, ok := util.ParseNavDate(row.Date)
		if !ok {
			continue
		}
		nav, ok := util.ParseNavValue(row.Nav)
		if !ok {
			continue
		}
		series = append(series, models.NavPoint{Date: date, Nav: nav})
	}
	series = series.Normalize()

	if len(series) > 0 {
		if payload, err := json.Marshal(cachedHistory{Name: resp.Meta.SchemeName, Series: series}); err == nil {
			if err := c.cache.Set(ctx, key, string(payload), c.cfg.CacheTTL); err != nil {
				c.logger.Warn("nav cache write failed",
					applogger.String("scheme_code", schemeCode),
					applogger.Error(err),
				)
			}
		}
	}

	return series, resp.Meta.SchemeName, nil
}

func (c *Client) selects(name string) bool {
	n := strings.ToLower(name)
	for _, term := range c.cfg.IncludeTerms {
		if !strings.Contains(n, term) {
			return false
		}
	}
	for _, term := range c.cfg.ExcludeTerms {
		if strings.Contains(n, term) {
			return false
		}
	}
	return true
}
