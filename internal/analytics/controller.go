package analytics

import (
	"fmt"
	"net/http"
	"time"

	"medq/internal/shared/utils/response"
	"medq/internal/tokens"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Overview returns the admin dashboard summary, optionally scoped to one
// facility via ?facility=
func (c *Controller) Overview(ctx *gin.Context) {
	facility := ctx.Query("facility")

	stats, err := c.service.GetOverview(ctx.Request.Context(), facility)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load overview stats", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Overview stats retrieved successfully", stats, nil)
}

// SlotDashboard returns per-slot fill levels for one facility and day.
// The day defaults to today.
func (c *Controller) SlotDashboard(ctx *gin.Context) {
	facility := ctx.Query("facility")
	if facility == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "facility query parameter is required", nil, nil)
		return
	}

	day := ctx.Query("date")
	if day == "" {
		day = tokens.DayKey(time.Now())
	}

	dashboard, err := c.service.GetSlotDashboard(ctx.Request.Context(), facility, day)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load slot dashboard", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot dashboard retrieved successfully", dashboard, nil)
}

// ExportCSV streams the patient register as a CSV download
func (c *Controller) ExportCSV(ctx *gin.Context) {
	facility := ctx.Query("facility")
	day := ctx.Query("date")

	filename := "patients"
	if day != "" {
		filename = fmt.Sprintf("patients_%s", day)
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, filename))

	if err := c.service.ExportCSV(ctx.Request.Context(), ctx.Writer, facility, day); err != nil {
		// Headers may already be sent; abort the stream instead of
		// writing a JSON error into the CSV body.
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}
}
