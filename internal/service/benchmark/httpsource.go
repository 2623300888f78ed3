package benchmark

import (
	"context"
	"strconv"
	"time"

	"FundPulse/internal/domain/models"
	xhttp "FundPulse/pkg/http"
	applogger "FundPulse/pkg/logger"
	"FundPulse/pkg/util"
)

// HTTPSourceConfig holds the live index feed settings.
type HTTPSourceConfig struct {
	URL     string
	Timeout time.Duration
}

// HTTPSource fetches a benchmark index series over HTTP and falls back to
// the synthetic generator when the feed is unreachable or returns nothing.
type HTTPSource struct {
	http     *xhttp.Client
	fallback *SyntheticIndex
	logger   *applogger.Logger
	cfg      HTTPSourceConfig
}

// NewHTTPSource creates a live index source with a synthetic fallback.
func NewHTTPSource(fallback *SyntheticIndex, logger *applogger.Logger, cfg HTTPSourceConfig) *HTTPSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPSource{
		http:     xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		fallback: fallback,
		logger:   logger,
		cfg:      cfg,
	}
}

// indexRow is one observation of the index feed payload.
type indexRow struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// FetchSeries fetches the trailing window from the feed. Any failure
// degrades to the synthetic series rather than failing the analysis run.
func (s *HTTPSource) FetchSeries(ctx context.Context, lookbackDays int) (models.NavSeries, error) {
	if s.cfg.URL == "" {
		return s.fallback.FetchSeries(ctx, lookbackDays)
	}

	var rows []indexRow
	err := s.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.cfg.URL,
		QueryParams: map[string][]string{
			"days": {strconv.Itoa(lookbackDays)},
		},
	}, &rows)
	if err != nil {
		s.logger.Warn("index feed unavailable, using synthetic benchmark",
			applogger.String("url", s.cfg.URL),
			applogger.Error(err),
		)
		return s.fallback.FetchSeries(ctx, lookbackDays)
	}

	series := make(models.NavSeries, 0, len(rows))
	for _, r := range rows {
		date, ok := parseIndexDate(r.Date)
		if !ok || r.Close <= 0 {
			continue
		}
		series = append(series, models.NavPoint{Date: date, Nav: r.Close})
	}
	series = series.Normalize()

	if len(series) == 0 {
		s.logger.Warn("index feed returned no usable rows, using synthetic benchmark",
			applogger.String("url", s.cfg.URL),
		)
		return s.fallback.FetchSeries(ctx, lookbackDays)
	}
	return series, nil
}

// parseIndexDate accepts ISO dates and the dd-mm-yyyy NAV feed format.
func parseIndexDate(v string) (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
		return t, true
	}
	return util.ParseNavDate(v)
}
