package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swechhitarimal/SMS/internal/application/service"
	"github.com/swechhitarimal/SMS/internal/presentation/http/dto/response"
)

// MaxWindowDays bounds the requested reporting window. Ten years is far beyond
// any dashboard preset and keeps a single request from allocating an unbounded
// daily series.
const MaxWindowDays = 3650

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	defaultWindow    int
}

// NewAnalyticsHandler creates a new analytics handler. defaultWindow is the
// reporting window in days used when the request doesn't specify one.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, defaultWindow int) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		defaultWindow:    defaultWindow,
	}
}

// GetSummary handles computing the analytics summary for a reporting window.
// The dashboard offers 7, 30, 90 and 365 days; any positive integer is
// accepted.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	days := h.defaultWindow
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > MaxWindowDays {
			response.BadRequest(c, "days must be between 1 and "+strconv.Itoa(MaxWindowDays))
			return
		}
		days = parsed
	}

	summary, err := h.analyticsService.GetSummary(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Analytics summary retrieved successfully", summary)
}
