package http

import (
	"time"

	"github.com/openlots/parking-booking-backend/internal/booking"
	"github.com/openlots/parking-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	LocationID    string     `form:"location_id" binding:"omitempty,uuid"`
	SpaceID       string     `form:"space_id"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed active completed cancelled expired"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
	SortOrder     string     `form:"sort_order" binding:"omitempty,oneof=ASC DESC"`
}

type VehicleBody struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	VehicleType string `json:"vehicle_type" binding:"required,oneof=car motorcycle suv van ev"`
}

type CreateBookingBody struct {
	LocationID    string      `json:"location_id" binding:"required,uuid"`
	SpaceID       string      `json:"space_id" binding:"required"`
	Vehicle       VehicleBody `json:"vehicle" binding:"required"`
	StartTime     time.Time   `json:"start_time" binding:"required"`
	EndTime       time.Time   `json:"end_time" binding:"required"`
	PaymentMethod string      `json:"payment_method" binding:"required,oneof=cash esewa khalti card"`
	Notes         string      `json:"notes"`
}

type ExtendBookingBody struct {
	EndTime time.Time `json:"end_time" binding:"required"`
}

type BookingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	LocationID    string    `json:"location_id"`
	SpaceID       string    `json:"space_id"`
	PlateNumber   string    `json:"plate_number"`
	VehicleType   string    `json:"vehicle_type"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	QRCode        string    `json:"qr_code"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		LocationID:    b.LocationID,
		SpaceID:       b.SpaceID,
		PlateNumber:   b.Vehicle.PlateNumber,
		VehicleType:   b.Vehicle.VehicleType,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		QRCode:        b.QRCode,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type CancelBookingResponse struct {
	Booking          BookingResponse `json:"booking"`
	RefundAmount     float64         `json:"refund_amount"`
	RefundPercentage int             `json:"refund_percentage"`
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     float64   `json:"price"`
}

type AvailabilityResponse struct {
	Date             string         `json:"date"`
	LocationID       string         `json:"location_id"`
	SpaceID          string         `json:"space_id"`
	AvailableSlots   []SlotResponse `json:"available_slots"`
	TotalSlots       int            `json:"total_slots"`
	ExistingBookings int            `json:"existing_bookings"`
}

func NewAvailabilityResponse(a *booking.Availability) AvailabilityResponse {
	slots := make([]SlotResponse, len(a.AvailableSlots))
	for i, s := range a.AvailableSlots {
		slots[i] = SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime, Price: s.Price}
	}
	return AvailabilityResponse{
		Date:             a.Date.Format("2006-01-02"),
		LocationID:       a.LocationID,
		SpaceID:          a.SpaceID,
		AvailableSlots:   slots,
		TotalSlots:       a.TotalSlots,
		ExistingBookings: a.ExistingBookings,
	}
}
