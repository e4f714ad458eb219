package booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openlots/parking-booking-backend/internal/location"
	"github.com/openlots/parking-booking-backend/internal/pkg/clock"
	"github.com/openlots/parking-booking-backend/internal/pkg/storage"
	"github.com/openlots/parking-booking-backend/internal/ticket"
)

// CreateRequest carries data to create a booking.
type CreateRequest struct {
	UserID        string
	LocationID    string
	SpaceID       string
	Vehicle       VehicleInfo
	StartTime     time.Time
	EndTime       time.Time
	PaymentMethod string
	Notes         string
}

type Service interface {
	// Validate checks a reservation request against location state and clock
	// constraints without creating anything.
	Validate(ctx context.Context, locationID, spaceID string, start, end time.Time) (*ValidatedRequest, error)

	// CheckConflicts rejects a window that overlaps an existing confirmed or
	// active booking for the same space.
	CheckConflicts(ctx context.Context, locationID, spaceID string, start, end time.Time, excludeBookingID string) error

	// Create runs a reservation request through validation, conflict check,
	// billing and ticketing, then persists the booking atomically.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id, requesterID string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Availability produces the free hourly slot calendar for a space on a date.
	Availability(ctx context.Context, locationID, spaceID string, date time.Time) (*Availability, error)

	// Lifecycle transitions.
	CheckIn(ctx context.Context, id, requesterID string) (*Booking, error)
	CheckOut(ctx context.Context, id, requesterID string) (*Booking, error)
	Cancel(ctx context.Context, id, requesterID string) (*Booking, RefundQuote, error)
	Extend(ctx context.Context, id, requesterID string, newEndTime time.Time) (*Booking, error)

	// ConfirmPayment applies the external payment-completion signal to a
	// pending booking.
	ConfirmPayment(ctx context.Context, id string) (*Booking, error)

	// ExpireOverdue transitions every booking whose start has passed the
	// grace period without a check-in. Returns the number expired. Intended
	// to be driven by an external scheduler.
	ExpireOverdue(ctx context.Context) (int, error)
}

type service struct {
	repo        Repository
	locations   location.Service
	tickets     ticket.Issuer
	artifacts   storage.Storage
	clock       clock.Clock
	expiryGrace time.Duration
}

func NewService(
	repo Repository,
	locations location.Service,
	tickets ticket.Issuer,
	artifacts storage.Storage,
	clk clock.Clock,
	expiryGrace time.Duration,
) Service {
	return &service{
		repo:        repo,
		locations:   locations,
		tickets:     tickets,
		artifacts:   artifacts,
		clock:       clk,
		expiryGrace: expiryGrace,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validation Stage
	validated, err := s.Validate(ctx, req.LocationID, req.SpaceID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// 2. Conflict Stage (fast-path; re-checked under lock on insert)
	if err := s.CheckConflicts(ctx, req.LocationID, req.SpaceID, validated.StartTime, validated.EndTime, ""); err != nil {
		return nil, err
	}

	// 3. Billing Stage
	amount := CalculateAmount(validated.StartTime, validated.EndTime, validated.Location.HourlyRate)

	// 4. Ticketing Stage
	cred, err := s.tickets.Issue(req.LocationID, req.SpaceID, req.UserID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("issue ticket failed: %w", err)
	}

	status, paymentStatus := initialState(req.PaymentMethod)

	ticketPath := fmt.Sprintf("tickets/%s.png", cred.ID)
	if err := s.artifacts.Save(ctx, ticketPath, bytes.NewReader(cred.PNG)); err != nil {
		return nil, fmt.Errorf("save ticket artifact failed: %w", err)
	}

	b := &Booking{
		UserID:        req.UserID,
		LocationID:    req.LocationID,
		SpaceID:       req.SpaceID,
		Vehicle:       req.Vehicle.Normalize(),
		StartTime:     validated.StartTime,
		EndTime:       validated.EndTime,
		TotalAmount:   amount,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		PaymentStatus: paymentStatus,
		QRCode:        cred.Payload,
		TicketPath:    ticketPath,
		Notes:         req.Notes,
	}

	// 5. Persist; the repository re-runs the conflict check and inserts
	// under a per-space lock so concurrent requests cannot both win.
	if err := s.repo.CreateLocked(ctx, b); err != nil {
		// Creation failed: the ticket artifact must not linger.
		_ = s.artifacts.Delete(ctx, ticketPath)
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id, requesterID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Availability(ctx context.Context, locationID, spaceID string, date time.Time) (*Availability, error) {
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

	openHour, closeHour, err := loc.OperatingHourBounds()
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := DayWindow(date)
	bookings, err := s.repo.ListForSpaceDay(ctx, locationID, spaceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots, total := buildSlots(date, openHour, closeHour, loc.HourlyRate, bookings)

	return &Availability{
		Date:             dayStart,
		LocationID:       locationID,
		SpaceID:          spaceID,
		AvailableSlots:   slots,
		TotalSlots:       total,
		ExistingBookings: len(bookings),
	}, nil
}

func (s *service) CheckIn(ctx context.Context, id, requesterID string) (*Booking, error) {
	b, err := s.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if err := b.transitionTo(StatusActive); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	// Advisory flag only; the overlap check stays the authoritative guard.
	if err := s.locations.SetSpaceStatus(ctx, b.LocationID, b.SpaceID, location.SpaceOccupied); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) CheckOut(ctx context.Context, id, requesterID string) (*Booking, error) {
	b, err := s.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if err := b.transitionTo(StatusCompleted); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err := s.locations.SetSpaceStatus(ctx, b.LocationID, b.SpaceID, location.SpaceAvailable); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, id, requesterID string) (*Booking, RefundQuote, error) {
	b, err := s.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, RefundQuote{}, err
	}

	if err := b.transitionTo(StatusCancelled); err != nil {
		return nil, RefundQuote{}, err
	}

	// Refund is computed at the instant of cancellation, not at creation.
	quote := CalculateCancellationRefund(b, s.clock.Now())
	if quote.Amount > 0 {
		b.PaymentStatus = PaymentRefunded
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, RefundQuote{}, err
	}

	return b, quote, nil
}

func (s *service) Extend(ctx context.Context, id, requesterID string, newEndTime time.Time) (*Booking, error) {
	b, err := s.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if b.Status != StatusConfirmed && b.Status != StatusActive {
		return nil, ErrIllegalState
	}

	newEndTime = normalizeTime(newEndTime)
	if !newEndTime.After(b.EndTime) {
		return nil, ErrEndBeforeStart
	}

	// Re-run the conflict check against the extended window, excluding this
	// booking's own interval.
	if err := s.CheckConflicts(ctx, b.LocationID, b.SpaceID, b.StartTime, newEndTime, b.ID); err != nil {
		return nil, err
	}

	loc, err := s.locations.GetByID(ctx, b.LocationID)
	if err != nil {
		return nil, err
	}

	b.EndTime = newEndTime
	b.TotalAmount = CalculateAmount(b.StartTime, b.EndTime, loc.HourlyRate)

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) ConfirmPayment(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.transitionTo(StatusConfirmed); err != nil {
		return nil, err
	}
	b.PaymentStatus = PaymentCompleted

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) ExpireOverdue(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.expiryGrace)

	overdue, err := s.repo.ListOverdue(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, b := range overdue {
		if err := b.transitionTo(StatusExpired); err != nil {
			continue
		}
		if err := s.repo.Update(ctx, b); err != nil {
			return expired, err
		}
		expired++
	}

	return expired, nil
}
