package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/SscSPs/million_tracker/internal/dto"
	"github.com/SscSPs/million_tracker/internal/middleware"
	"github.com/SscSPs/million_tracker/internal/utils/locale"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ratesHandler handles HTTP requests related to exchange rates.
type ratesHandler struct {
	rateService      portssvc.RateSvc
	dashboardService portssvc.DashboardSvc
}

func newRatesHandler(rs portssvc.RateSvc, ds portssvc.DashboardSvc) *ratesHandler {
	return &ratesHandler{rateService: rs, dashboardService: ds}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvc, dashboardService portssvc.DashboardSvc) {
	h := newRatesHandler(rateService, dashboardService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.GET("/history", h.getHistory)
		rates.GET("/convert", h.convert)
	}
}

// getRates godoc
// @Summary Current exchange rates
// @Description The cached USD-based snapshot, refreshed when older than the cache TTL
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesResponse
// @Failure 502 {object} ErrorResponse "Rate provider unavailable"
// @Security BearerAuth
// @Router /rates [get]
func (h *ratesHandler) getRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.rateService.GetRates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRatesResponse(snapshot))
}

// getHistory godoc
// @Summary Archived exchange rates
// @Description Snapshots archived at every refresh, newest first
// @Tags rates
// @Produce json
// @Param limit query int false "Number of snapshots (1-100, default 10)"
// @Success 200 {object} dto.RateHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 501 {object} ErrorResponse "No database configured"
// @Security BearerAuth
// @Router /rates/history [get]
func (h *ratesHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.RateHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}

	archived, err := h.rateService.History(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve rate history")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateHistoryResponse(archived))
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount between supported currencies with the current snapshot
// @Tags rates
// @Produce json
// @Param amount query string true "Amount, locale formats such as 1.000,50 accepted"
// @Param from query string true "Source currency" Enums(AUD, BRL, EUR, USD)
// @Param to query string true "Target currency" Enums(AUD, BRL, EUR, USD)
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Rate provider unavailable"
// @Security BearerAuth
// @Router /rates/convert [get]
func (h *ratesHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}

	amount, err := parseQueryAmount(q.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	from, to := domain.ParseCurrency(q.From), domain.ParseCurrency(q.To)
	logger = logger.With(slog.String("from", from.String()), slog.String("to", to.String()))

	converted, snapshot, err := h.dashboardService.Convert(c.Request.Context(), amount, from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{
		From:      dto.NewMoney(amount, from),
		To:        dto.NewMoney(converted, to),
		RatesAsOf: snapshot.AsOf(),
	})
}

// parseQueryAmount accepts plain decimals first, then ledger-style formats.
func parseQueryAmount(raw string) (decimal.Decimal, error) {
	if d, err := decimal.NewFromString(raw); err == nil {
		return d, nil
	}
	if d, ok := locale.ParseAmount(raw); ok {
		return d, nil
	}
	return decimal.Zero, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, raw)
}
