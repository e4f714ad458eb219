package booking

import (
	"context"
	"time"
)

// CheckConflicts rejects the requested window when it overlaps an existing
// confirmed or active booking for the same (location, space). Pending
// bookings awaiting payment do not block. excludeBookingID ignores a booking
// when re-validating it, e.g. on extend; pass "" otherwise.
//
// This check is advisory on its own: CreateLocked in the repository re-runs
// it under a per-space lock so that check-then-insert is atomic with respect
// to concurrent requests for the same space.
func (s *service) CheckConflicts(ctx context.Context, locationID, spaceID string, start, end time.Time, excludeBookingID string) error {
	hasOverlap, err := s.repo.HasOverlap(ctx, locationID, spaceID, start, end, excludeBookingID)
	if err != nil {
		return err
	}
	if hasOverlap {
		return ErrTimeConflict
	}
	return nil
}
