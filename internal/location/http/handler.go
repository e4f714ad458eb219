package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openlots/parking-booking-backend/internal/location"
	"github.com/openlots/parking-booking-backend/internal/pkg/response"
)

type LocationHandler struct {
	service location.Service
}

func NewHandler(service location.Service) *LocationHandler {
	return &LocationHandler{service: service}
}

// List retrieves a paginated list of locations with optional filtering.
func (h *LocationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	keyword := c.Query("q")
	status := c.Query("status")

	filter := location.Filter{
		Keyword:  keyword,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	}

	locations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LocationResponse, len(locations))
	for i, l := range locations {
		items[i] = NewLocationResponse(l)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// Get retrieves a single location with its spaces.
func (h *LocationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLocationResponse(l))
}
