package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"FundPulse/internal/domain/models"
	"FundPulse/internal/usecase"
	xhttp "FundPulse/pkg/http"
	xlogger "FundPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FundsHandler exposes the analysis pipeline over Echo.
type FundsHandler struct {
	logger    *xlogger.Logger
	analyzer  *usecase.FundAnalyzer
	advisor   *usecase.Advisor
	processor *usecase.ResultProcessor
}

func NewFundsHandler(
	logger *xlogger.Logger,
	analyzer *usecase.FundAnalyzer,
	advisor *usecase.Advisor,
	processor *usecase.ResultProcessor,
) *FundsHandler {
	return &FundsHandler{
		logger:    logger,
		analyzer:  analyzer,
		advisor:   advisor,
		processor: processor,
	}
}

func (h *FundsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/funds/rankings", h.Rankings)
	g.GET("/funds/rankings/benchmark", h.RankingsWithBenchmark)
	g.GET("/advisor/recommendations", h.AdvisorRecommendations)
}

func (h *FundsHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"service": "fundpulse",
		"message": "Mutual fund NAV analytics. See /api/funds/rankings.",
	})
}

func (h *FundsHandler) Health(c echo.Context) error {
	if err := h.processor.Health(c.Request().Context()); err != nil {
		h.logger.Error("backend health check failed", xlogger.Error(err))
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// rankingsResponse is the envelope for both ranking endpoints.
type rankingsResponse struct {
	TotalFundsAnalyzed int                 `json:"total_funds_analyzed"`
	TopFunds           []models.FundResult `json:"top_funds"`
}

func (h *FundsHandler) Rankings(c echo.Context) error {
	req := &models.RankingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	results, err := h.analyzer.Rank(c.Request().Context())
	if err != nil {
		h.logger.Error("rankings usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("fund analysis failed").WithError(err))
	}
	h.dispatch(c.Request().Context(), "plain", results)

	return xhttp.SuccessResponse(c, rankingsResponse{
		TotalFundsAnalyzed: len(results),
		TopFunds:           topN(results, req.Limit),
	})
}

func (h *FundsHandler) RankingsWithBenchmark(c echo.Context) error {
	req := &models.RankingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	results, err := h.analyzer.RankWithBenchmark(c.Request().Context())
	if err != nil {
		h.logger.Error("benchmark rankings usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("benchmark analysis failed").WithError(err))
	}
	h.dispatch(c.Request().Context(), "benchmark", results)

	return xhttp.SuccessResponse(c, rankingsResponse{
		TotalFundsAnalyzed: len(results),
		TopFunds:           topN(results, req.Limit),
	})
}

func (h *FundsHandler) AdvisorRecommendations(c echo.Context) error {
	req := &models.AdvisorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.advisor.Recommendations(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("advisor usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("advisor analysis failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// dispatch forwards a finished run to the configured backend. Failures are
// logged, not surfaced: persistence is best-effort relative to the API.
func (h *FundsHandler) dispatch(ctx context.Context, mode string, results []models.FundResult) {
	runID := fmt.Sprintf("%s-%d", mode, time.Now().UnixNano())
	if err := h.processor.Process(ctx, runID, results); err != nil {
		h.logger.Warn("result dispatch failed",
			xlogger.String("run_id", runID),
			xlogger.Error(err),
		)
	}
}

func topN(results []models.FundResult, n int) []models.FundResult {
	if n <= 0 || n > len(results) {
		return results
	}
	return results[:n]
}
