package api

import (
	"encoding/json"
	"io"
	"net/http"

	reqdto "rsv-catalog/internal/handler/dto/request"
	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/analytics"

	"github.com/gin-gonic/gin"
)

const defaultTopLimit = 10

type AnalyticsHandler struct {
	analytics analytics.Manager
}

func NewAnalyticsHandler(am analytics.Manager) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: am}
}

// @Summary Track event
// @Description Record a view, use, share, favorite, comment, rating or error event
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body analytics.Event true "Event"
// @Success 201 {object} analytics.Event
// @Failure 400 {object} httperr.Response
// @Router /api/analytics/events [post]
func (h *AnalyticsHandler) Track(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	var e analytics.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		httperr.Abort(c, errs.Mark(err, errs.ErrInvalidEvent), "Invalid event")
		return
	}
	if e.UserID == "" {
		e.UserID = middleware.GetActorID(c)
	}
	saved, err := h.analytics.Track(c.Request.Context(), e)
	if err != nil {
		httperr.Abort(c, err, "Track failed")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// @Summary Top templates
// @Tags analytics
// @Produce json
// @Param limit query int false "Max results (default 10)"
// @Success 200 {array} analytics.TemplateAnalytics
// @Router /api/analytics/top [get]
func (h *AnalyticsHandler) Top(c *gin.Context) {
	limit, ok := queryInt(c, "limit", defaultTopLimit)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.analytics.TopPerforming(c.Request.Context(), limit))
}

// @Summary Quick statistics
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.QuickStats
// @Router /api/analytics/quick [get]
func (h *AnalyticsHandler) Quick(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.QuickStats(c.Request.Context()))
}

// @Summary Performance by category
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string][]analytics.TemplateAnalytics
// @Router /api/analytics/categories [get]
func (h *AnalyticsHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.ByCategory(c.Request.Context()))
}

// @Summary Performance by region
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]analytics.RegionStats
// @Router /api/analytics/regions [get]
func (h *AnalyticsHandler) Regions(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.RegionalPerformance(c.Request.Context()))
}

// @Summary List reports
// @Tags analytics
// @Produce json
// @Success 200 {array} analytics.Report
// @Router /api/analytics/reports [get]
func (h *AnalyticsHandler) Reports(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.Reports(c.Request.Context()))
}

// @Summary Generate report
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body reqdto.ReportRequest true "Report type and period"
// @Success 201 {object} analytics.Report
// @Failure 400 {object} httperr.Response
// @Router /api/analytics/reports [post]
func (h *AnalyticsHandler) GenerateReport(c *gin.Context) {
	var req reqdto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	report, err := h.analytics.GenerateReport(c.Request.Context(), req.ToDomain(middleware.GetActorID(c)))
	if err != nil {
		httperr.Abort(c, err, "Report failed")
		return
	}
	c.JSON(http.StatusCreated, report)
}

// @Summary Recompute aggregates
// @Description Rebuild every per-template aggregate from the event log
// @Tags analytics
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 503 {object} httperr.Response
// @Router /api/analytics/recompute [post]
func (h *AnalyticsHandler) Recompute(c *gin.Context) {
	if err := h.analytics.Recompute(c.Request.Context()); err != nil {
		httperr.Abort(c, err, "Recompute failed")
		return
	}
	c.Status(http.StatusNoContent)
}
