package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/openlots/parking-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrLocationNotFound = apperror.New(http.StatusNotFound, "location_not_found", "parking location not found")
	ErrLocationClosed   = apperror.New(http.StatusConflict, "location_closed", "parking location is currently closed")
	ErrSpaceNotFound    = apperror.New(http.StatusNotFound, "space_not_found", "parking space not found")
	ErrSpaceUnavailable = apperror.New(http.StatusConflict, "space_unavailable", "parking space is not available")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "invalid_time_window", "start time must be in the future")
	ErrEndBeforeStart   = apperror.New(http.StatusBadRequest, "invalid_time_window", "end time must be after start time")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "scheduling_conflict", "space already booked for the requested time")
	ErrIllegalState     = apperror.New(http.StatusConflict, "illegal_transition", "booking is not in a state that allows this operation")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission_denied", "permission denied")
)

// PaymentMethodCash is the only payment method interpreted by the engine:
// cash settles at the gate, so a cash booking is confirmed immediately.
// Every other method awaits the external payment-completion signal.
const PaymentMethodCash = "cash"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// VehicleInfo identifies the vehicle a booking is made for.
type VehicleInfo struct {
	PlateNumber string
	VehicleType string
}

// Normalize upper-cases and trims the plate number.
func (v VehicleInfo) Normalize() VehicleInfo {
	v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))
	v.VehicleType = strings.ToLower(strings.TrimSpace(v.VehicleType))
	return v
}

// Booking is a reservation of one parking space for a half-open time
// interval [StartTime, EndTime). Records are never deleted, only
// transitioned between statuses.
type Booking struct {
	ID            string
	UserID        string
	LocationID    string
	SpaceID       string
	Vehicle       VehicleInfo
	StartTime     time.Time
	EndTime       time.Time
	TotalAmount   float64
	PaymentMethod string
	Status        Status
	PaymentStatus PaymentStatus
	QRCode        string // opaque credential payload embedded in the ticket
	TicketPath    string // storage path of the rendered ticket image
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Overlaps applies the half-open-interval intersection test against
// another time window.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	LocationID string
	SpaceID    string
	Status     string
	StartTime  *time.Time // Bookings ending after this time
	EndTime    *time.Time // Bookings starting before this time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
