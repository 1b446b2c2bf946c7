package patients

import (
	"errors"
	"net/http"

	"medq/internal/facilities"
	"medq/internal/shared/utils/response"
	"medq/internal/tokens"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	allocator tokens.Service
	validator *validator.Validate
}

func NewController(service Service, allocator tokens.Service) *Controller {
	return &Controller{
		service:   service,
		allocator: allocator,
		validator: validator.New(),
	}
}

// Submit handles the public intake form. Authentication is optional: a
// logged-in patient gets the record linked to their account, anonymous
// walk-ins are accepted as-is.
func (c *Controller) Submit(ctx *gin.Context) {
	var req SubmitPatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	var userID *uuid.UUID
	if raw, exists := ctx.Get("user_id"); exists {
		if id, err := uuid.Parse(raw.(string)); err == nil {
			userID = &id
		}
	}

	patient, err := c.service.Submit(ctx.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Facility not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to register patient", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Patient registered successfully", patient.ToSubmissionResponse(), nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid patient id", nil, nil)
		return
	}

	patient, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrPatientNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Patient not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load patient", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Patient retrieved successfully", patient, nil)
}

// List returns paginated patient records for the staff dashboards,
// filterable by facility, day and slot.
func (c *Controller) List(ctx *gin.Context) {
	var query PatientListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	patients, total, err := c.service.List(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load patients", nil, nil)
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	result := PatientListResponse{
		Patients:   patients,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: CalculateTotalPages(total, limit),
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Patients retrieved successfully", result, nil)
}

// Slots exposes the fixed consultation schedule so clients can render
// the day's timetable without hardcoding it.
func (c *Controller) Slots(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Slots retrieved successfully", c.allocator.Slots(), nil)
}
