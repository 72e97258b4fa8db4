package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/million_tracker/internal/adapters/csvfile"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/SscSPs/million_tracker/internal/dto"
	"github.com/SscSPs/million_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds ledger CSV uploads.
const maxUploadBytes = 5 << 20

// dashboardHandler serves the three dashboard views.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
}

func newDashboardHandler(ds portssvc.DashboardSvc) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers routes related to the dashboard views.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := newDashboardHandler(dashboardService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/current", h.getCurrent)
		dashboard.GET("/evolution", h.getEvolution)
		dashboard.GET("/breakdown", h.getBreakdown)
		dashboard.POST("/breakdown/upload", h.uploadBreakdown)
	}
}

// getCurrent godoc
// @Summary Current money breakdown
// @Description Totals of a single ledger period, by currency and by sub-category, with goal progress
// @Tags dashboard
// @Produce json
// @Param period query string false "Period label as listed in availablePeriods; defaults to the latest"
// @Success 200 {object} dto.CurrentResponse
// @Failure 404 {object} ErrorResponse "Unknown period or spreadsheet"
// @Failure 422 {object} ErrorResponse "Ledger lacks required columns"
// @Failure 502 {object} ErrorResponse "Ledger source unavailable"
// @Security BearerAuth
// @Router /dashboard/current [get]
func (h *dashboardHandler) getCurrent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period := c.Query("period")

	view, err := h.dashboardService.Current(c.Request.Context(), period)
	if err != nil {
		respondError(c, logger, err, "Failed to build current breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrentResponse(view))
}

// getEvolution godoc
// @Summary Wealth evolution
// @Description USD totals per day or month, growth since the first period and progress to the goal
// @Tags dashboard
// @Produce json
// @Param granularity query string false "day (default) or month" Enums(day, month)
// @Success 200 {object} dto.EvolutionResponse
// @Failure 400 {object} ErrorResponse "Invalid granularity"
// @Failure 422 {object} ErrorResponse "Ledger lacks required columns"
// @Failure 502 {object} ErrorResponse "Ledger source unavailable"
// @Security BearerAuth
// @Router /dashboard/evolution [get]
func (h *dashboardHandler) getEvolution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	g, err := domain.ParseGranularity(c.Query("granularity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.dashboardService.Evolution(c.Request.Context(), g)
	if err != nil {
		respondError(c, logger, err, "Failed to build evolution")
		return
	}
	c.JSON(http.StatusOK, dto.ToEvolutionResponse(view))
}

// getBreakdown godoc
// @Summary Investment breakdown
// @Description Investments and categories valued in every supported currency
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.BreakdownResponse
// @Failure 422 {object} ErrorResponse "Ledger lacks required columns"
// @Failure 502 {object} ErrorResponse "Ledger source or rate provider unavailable"
// @Security BearerAuth
// @Router /dashboard/breakdown [get]
func (h *dashboardHandler) getBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	view, err := h.dashboardService.Breakdown(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToBreakdownResponse(view))
}

// uploadBreakdown godoc
// @Summary Breakdown of an uploaded ledger
// @Description Same as GET /dashboard/breakdown for a CSV file supplied in the request
// @Tags dashboard
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Ledger CSV"
// @Success 200 {object} dto.BreakdownResponse
// @Failure 400 {object} ErrorResponse "Missing or malformed file"
// @Failure 422 {object} ErrorResponse "Ledger lacks required columns"
// @Failure 502 {object} ErrorResponse "Rate provider unavailable"
// @Security BearerAuth
// @Router /dashboard/breakdown/upload [post]
func (h *dashboardHandler) uploadBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Ledger upload without file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A CSV file is required in the 'file' field"})
		return
	}
	f, err := header.Open()
	if err != nil {
		respondError(c, logger, err, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	table, err := csvfile.ReadTable(f)
	if err != nil {
		respondError(c, logger, err, "Failed to parse uploaded file")
		return
	}
	logger.Info("Ledger uploaded", slog.String("filename", header.Filename), slog.Int("rows", len(table.Rows)))

	view, err := h.dashboardService.BreakdownFromTable(c.Request.Context(), table)
	if err != nil {
		respondError(c, logger, err, "Failed to build breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToBreakdownResponse(view))
}
