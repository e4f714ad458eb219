package booking

import (
	"math"
	"time"
)

// CalculateAmount computes the charge for a parking window at the given
// hourly rate. Billing always rounds up to the next whole hour: a 30-minute
// booking costs one full hour, never a fraction.
func CalculateAmount(start, end time.Time, hourlyRate float64) float64 {
	duration := end.Sub(start)
	if duration <= 0 {
		return 0
	}
	hours := math.Ceil(duration.Hours())
	return hours * hourlyRate
}

// RefundQuote is the outcome of a cancellation refund calculation.
type RefundQuote struct {
	Amount     float64
	Percentage int
}

// CalculateCancellationRefund computes the refund owed when a booking is
// cancelled at instant now.
//
// Tiers: 100% with more than 24 hours to the start, 50% with more than 2
// hours, otherwise nothing. The refund amount is paid out only when the
// booking was actually paid; the percentage the customer would have been
// entitled to is still reported for unpaid bookings. That asymmetry matches
// the billing policy and must stay.
func CalculateCancellationRefund(b *Booking, now time.Time) RefundQuote {
	hoursUntilStart := b.StartTime.Sub(now).Hours()

	percentage := 0
	switch {
	case hoursUntilStart > 24:
		percentage = 100
	case hoursUntilStart > 2:
		percentage = 50
	}

	amount := 0.0
	if b.PaymentStatus == PaymentCompleted {
		amount = float64(percentage) / 100 * b.TotalAmount
	}

	return RefundQuote{Amount: amount, Percentage: percentage}
}
