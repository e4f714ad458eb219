package location

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openlots/parking-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "location_not_found", "location not found")
	ErrInvalidOperatingHour = apperror.New(http.StatusInternalServerError, "invalid_operating_hours", "location has invalid operating hours")
)

// Status is the operational state of a whole parking location.
type Status string

const (
	StatusOpen        Status = "open"
	StatusClosed      Status = "closed"
	StatusFull        Status = "full"
	StatusMaintenance Status = "maintenance"
)

// SpaceStatus is the current state flag of a single parking space.
// The flag is advisory; the interval-overlap check against bookings is the
// authoritative double-booking guard.
type SpaceStatus string

const (
	SpaceAvailable   SpaceStatus = "available"
	SpaceOccupied    SpaceStatus = "occupied"
	SpaceMaintenance SpaceStatus = "maintenance"
	SpaceReserved    SpaceStatus = "reserved"
)

// Space is a single physically identifiable parking stall within a location.
type Space struct {
	SpaceID string
	Status  SpaceStatus
}

// Location represents a parking venue with operating hours and a flat hourly rate.
type Location struct {
	ID                  string
	Name                string
	Address             string
	IsActive            bool
	CurrentStatus       Status
	OperatingHoursStart string // Format: HH:MM (zero-padded, 24-hour)
	OperatingHoursEnd   string // Format: HH:MM
	HourlyRate          float64
	Spaces              []Space
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Space returns the space with the given id, or false if none matches.
func (l *Location) Space(spaceID string) (*Space, bool) {
	for i := range l.Spaces {
		if l.Spaces[i].SpaceID == spaceID {
			return &l.Spaces[i], true
		}
	}
	return nil, false
}

// IsOpenAt reports whether the location is open for business at t.
// Zero-padded HH:MM strings compare lexicographically in calendar order, so
// string comparison is sufficient within a single day.
func (l *Location) IsOpenAt(t time.Time) bool {
	if !l.IsActive || l.CurrentStatus != StatusOpen {
		return false
	}
	hm := t.Format("15:04")
	return hm >= l.OperatingHoursStart && hm <= l.OperatingHoursEnd
}

// OperatingHourBounds parses the operating hours into integer hour boundaries.
// The availability slot model works at hour granularity only; minutes are
// dropped.
func (l *Location) OperatingHourBounds() (startHour, endHour int, err error) {
	startHour, err = parseHour(l.OperatingHoursStart)
	if err != nil {
		return 0, 0, apperror.Wrap(err, ErrInvalidOperatingHour.Status, ErrInvalidOperatingHour.Code, ErrInvalidOperatingHour.Message)
	}
	endHour, err = parseHour(l.OperatingHoursEnd)
	if err != nil {
		return 0, 0, apperror.Wrap(err, ErrInvalidOperatingHour.Status, ErrInvalidOperatingHour.Code, ErrInvalidOperatingHour.Message)
	}
	return startHour, endHour, nil
}

func parseHour(hhmm string) (int, error) {
	hh, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, ErrInvalidOperatingHour
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidOperatingHour
	}
	return h, nil
}

// Filter defines parameters for listing locations.
type Filter struct {
	Keyword  string // Search in Name or Address
	Status   string
	Page     int
	PageSize int
}
