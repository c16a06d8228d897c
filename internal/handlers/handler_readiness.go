package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/retail_ledger_app/internal/core/ports/services"
	"github.com/openbooks/retail_ledger_app/internal/dto"
	"github.com/openbooks/retail_ledger_app/internal/middleware"
)

// readinessHandler handles HTTP requests for the tax readiness report.
type readinessHandler struct {
	readinessService portssvc.ReadinessSvc
}

// newReadinessHandler creates a new readinessHandler.
func newReadinessHandler(readinessService portssvc.ReadinessSvc) *readinessHandler {
	return &readinessHandler{
		readinessService: readinessService,
	}
}

// registerReadinessRoutes registers readiness routes on the business group
func registerReadinessRoutes(group *gin.RouterGroup, readinessService portssvc.ReadinessSvc) {
	h := newReadinessHandler(readinessService)
	group.GET("/tax/readiness", h.getReadiness)
}

func (h *readinessHandler) getReadiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")

	var params dto.ReadinessPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getReadiness", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: from and to are required as YYYY-MM-DD"})
		return
	}
	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: to must not precede from"})
		return
	}

	report, err := h.readinessService.Score(c.Request.Context(), businessID, params.From, params.To)
	if err != nil {
		respondServiceError(c, err, "Failed to score readiness")
		return
	}

	c.JSON(http.StatusOK, dto.ToReadinessReportResponse(report))
}
