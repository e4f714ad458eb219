package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openlots/parking-booking-backend/internal/location"
	"github.com/openlots/parking-booking-backend/internal/pkg/apperror"
)

// ValidatedRequest is the result of a successful validation pass: the
// resolved location and space plus the normalized booking window.
type ValidatedRequest struct {
	Location  *location.Location
	Space     *location.Space
	StartTime time.Time
	EndTime   time.Time
}

// normalizeTime converts to UTC and drops sub-minute precision; the booking
// grid never needs seconds.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// Validate checks a requested location/space/time window against location
// state and clock constraints. Guards run in a fixed order: location first,
// then space, then time window. Pure read-and-check; no state is touched.
//
// "Currently open" is evaluated at request time, not at the requested start
// time. A booking for tomorrow is rejected while the location is closed
// right now: the product gates walk-up reservations on site.
func (s *service) Validate(ctx context.Context, locationID, spaceID string, start, end time.Time) (*ValidatedRequest, error) {
	loc, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	if !loc.IsActive {
		return nil, ErrLocationNotFound
	}

	now := s.clock.Now()
	if !loc.IsOpenAt(now) {
		return nil, ErrLocationClosed
	}

	space, ok := loc.Space(spaceID)
	if !ok {
		return nil, ErrSpaceNotFound
	}
	if space.Status != location.SpaceAvailable {
		return nil, apperror.WithMessage(ErrSpaceUnavailable,
			fmt.Sprintf("parking space is %s", space.Status))
	}

	start = normalizeTime(start)
	end = normalizeTime(end)

	if !start.After(now) {
		return nil, ErrStartTimePast
	}
	if !end.After(start) {
		return nil, ErrEndBeforeStart
	}

	return &ValidatedRequest{
		Location:  loc,
		Space:     space,
		StartTime: start,
		EndTime:   end,
	}, nil
}
