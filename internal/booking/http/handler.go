package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openlots/parking-booking-backend/internal/auth"
	"github.com/openlots/parking-booking-backend/internal/booking"
	"github.com/openlots/parking-booking-backend/internal/pkg/response"
	"github.com/openlots/parking-booking-backend/internal/pkg/storage"
)

type Handler struct {
	service   booking.Service
	artifacts storage.Storage
	images    *storage.ImageProcessor
}

func NewHandler(service booking.Service, artifacts storage.Storage, images *storage.ImageProcessor) *Handler {
	return &Handler{
		service:   service,
		artifacts: artifacts,
		images:    images,
	}
}

func (h *Handler) List(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	// Users only ever see their own bookings.
	userID := auth.GetUserID(c)

	filter := booking.Filter{
		UserID:     userID,
		LocationID: query.LocationID,
		SpaceID:    query.SpaceID,
		Status:     query.Status,
		StartTime:  query.StartTimeFrom,
		EndTime:    query.StartTimeTo,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := booking.CreateRequest{
		UserID:     userID,
		LocationID: body.LocationID,
		SpaceID:    body.SpaceID,
		Vehicle: booking.VehicleInfo{
			PlateNumber: body.Vehicle.PlateNumber,
			VehicleType: body.Vehicle.VehicleType,
		},
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		PaymentMethod: body.PaymentMethod,
		Notes:         body.Notes,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Ticket streams the booking's QR ticket image. An optional size query
// parameter scales the image down for inline display.
func (h *Handler) Ticket(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.artifacts.Get(c.Request.Context(), b.TicketPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	var content io.Reader = file
	if sizeStr := c.Query("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 64 || size > 1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 64 and 1024"})
			return
		}
		content, err = h.images.FitPNG(file, size, size)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, content)
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, h.service.CheckIn)
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.transition(c, h.service.CheckOut)
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.ConfirmPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, quote, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{
		Booking:          NewBookingResponse(b),
		RefundAmount:     quote.Amount,
		RefundPercentage: quote.Percentage,
	})
}

func (h *Handler) Extend(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body ExtendBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Extend(c.Request.Context(), id, auth.GetUserID(c), body.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Availability returns the free hourly slot calendar for a space on a date.
func (h *Handler) Availability(c *gin.Context) {
	locationID := c.Param("id")
	if _, err := uuid.Parse(locationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	spaceID := c.Param("spaceId")

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	a, err := h.service.Availability(c.Request.Context(), locationID, spaceID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(a))
}

// transition handles the shared shape of check-in/check-out endpoints.
func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id, userID string) (*booking.Booking, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := fn(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
