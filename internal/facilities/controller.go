package facilities

import (
	"net/http"

	"medq/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// List returns the active facilities patients can pick from
func (c *Controller) List(ctx *gin.Context) {
	list, err := c.service.ListActive(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load facilities", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facilities retrieved successfully", list, nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility id", nil, nil)
		return
	}

	facility, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrFacilityNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Facility not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load facility", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facility retrieved successfully", facility, nil)
}

// Create registers a new facility (admin only)
func (c *Controller) Create(ctx *gin.Context) {
	var req CreateFacilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	facility, err := c.service.Create(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrFacilityExists:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Facility with this name already exists", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create facility", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Facility created successfully", facility, nil)
}
