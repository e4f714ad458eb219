package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAmount(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		rate  float64
		want  float64
	}{
		{
			name:  "Exact two hours",
			start: base,
			end:   base.Add(2 * time.Hour),
			rate:  100,
			want:  200,
		},
		{
			name:  "Thirty minutes rounds up to a full hour",
			start: base,
			end:   base.Add(30 * time.Minute),
			rate:  100,
			want:  100,
		},
		{
			name:  "One minute over the hour bills two hours",
			start: base,
			end:   base.Add(61 * time.Minute),
			rate:  50,
			want:  100,
		},
		{
			name:  "Zero duration costs nothing",
			start: base,
			end:   base,
			rate:  100,
			want:  0,
		},
		{
			name:  "Negative duration costs nothing",
			start: base,
			end:   base.Add(-time.Hour),
			rate:  100,
			want:  0,
		},
		{
			name:  "Zero rate",
			start: base,
			end:   base.Add(3 * time.Hour),
			rate:  0,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAmount(tt.start, tt.end, tt.rate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateCancellationRefund(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	makeBooking := func(hoursUntilStart float64, paid bool) *Booking {
		ps := PaymentPending
		if paid {
			ps = PaymentCompleted
		}
		return &Booking{
			StartTime:     now.Add(time.Duration(hoursUntilStart * float64(time.Hour))),
			TotalAmount:   400,
			PaymentStatus: ps,
		}
	}

	tests := []struct {
		name           string
		booking        *Booking
		wantAmount     float64
		wantPercentage int
	}{
		{
			name:           "More than 24 hours out, paid",
			booking:        makeBooking(25, true),
			wantAmount:     400,
			wantPercentage: 100,
		},
		{
			name:           "Between 2 and 24 hours out, paid",
			booking:        makeBooking(3, true),
			wantAmount:     200,
			wantPercentage: 50,
		},
		{
			name:           "Exactly 24 hours out falls into the 50% tier",
			booking:        makeBooking(24, true),
			wantAmount:     200,
			wantPercentage: 50,
		},
		{
			name:           "One hour out, paid",
			booking:        makeBooking(1, true),
			wantAmount:     0,
			wantPercentage: 0,
		},
		{
			name:           "Start already passed",
			booking:        makeBooking(-1, true),
			wantAmount:     0,
			wantPercentage: 0,
		},
		{
			// The percentage is still reported for unpaid bookings even
			// though nothing is paid out.
			name:           "More than 24 hours out, unpaid",
			booking:        makeBooking(25, false),
			wantAmount:     0,
			wantPercentage: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := CalculateCancellationRefund(tt.booking, now)
			assert.Equal(t, tt.wantAmount, quote.Amount)
			assert.Equal(t, tt.wantPercentage, quote.Percentage)
		})
	}
}
