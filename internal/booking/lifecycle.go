package booking

import (
	"fmt"

	"github.com/openlots/parking-booking-backend/internal/pkg/apperror"
)

// Status is the booking lifecycle state. The transition matrix below is the
// single source of truth; no other code may mutate Booking.Status directly.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// blockingStatuses are the statuses that reserve a space's time interval.
// Pending bookings awaiting payment deliberately do not block: they can
// starve out, so they must not lock the slot.
var blockingStatuses = []Status{StatusConfirmed, StatusActive}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusActive, StatusCancelled, StatusExpired},
	StatusActive:    {StatusCompleted, StatusExpired},
	// Terminal states
	StatusCompleted: {},
	StatusCancelled: {},
	StatusExpired:   {},
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// transitionTo moves the booking to next, or rejects the move with an
// illegal-transition error naming both states.
func (b *Booking) transitionTo(next Status) error {
	if !b.Status.CanTransitionTo(next) {
		return apperror.WithMessage(ErrIllegalState,
			fmt.Sprintf("cannot move booking from %s to %s", b.Status, next))
	}
	b.Status = next
	return nil
}

// initialState returns the creation status pair for a payment method.
// Cash settles at the gate, any other method awaits external confirmation.
func initialState(paymentMethod string) (Status, PaymentStatus) {
	if paymentMethod == PaymentMethodCash {
		return StatusConfirmed, PaymentCompleted
	}
	return StatusPending, PaymentPending
}
