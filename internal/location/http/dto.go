package http

import (
	"time"

	"github.com/openlots/parking-booking-backend/internal/location"
)

type SpaceResponse struct {
	SpaceID string `json:"space_id"`
	Status  string `json:"status"`
}

type LocationResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Address             string          `json:"address"`
	IsActive            bool            `json:"is_active"`
	CurrentStatus       string          `json:"current_status"`
	OperatingHoursStart string          `json:"operating_hours_start"`
	OperatingHoursEnd   string          `json:"operating_hours_end"`
	HourlyRate          float64         `json:"hourly_rate"`
	Spaces              []SpaceResponse `json:"spaces,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

func NewLocationResponse(l *location.Location) LocationResponse {
	spaces := make([]SpaceResponse, len(l.Spaces))
	for i, s := range l.Spaces {
		spaces[i] = SpaceResponse{SpaceID: s.SpaceID, Status: string(s.Status)}
	}
	return LocationResponse{
		ID:                  l.ID,
		Name:                l.Name,
		Address:             l.Address,
		IsActive:            l.IsActive,
		CurrentStatus:       string(l.CurrentStatus),
		OperatingHoursStart: l.OperatingHoursStart,
		OperatingHoursEnd:   l.OperatingHoursEnd,
		HourlyRate:          l.HourlyRate,
		Spaces:              spaces,
		CreatedAt:           l.CreatedAt,
	}
}

// LocationTag is the compact location reference embedded in other responses.
type LocationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
