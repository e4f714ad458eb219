package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSlots(t *testing.T) {
	// Base date for testing: 2026-02-08
	baseDate := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	slotAt := func(hour int, price float64) Slot {
		start := time.Date(2026, 2, 8, hour, 0, 0, 0, time.UTC)
		return Slot{StartTime: start, EndTime: start.Add(time.Hour), Price: price}
	}

	tests := []struct {
		name      string
		openHour  int
		closeHour int
		rate      float64
		bookings  []*Booking
		wantSlots []Slot
		wantTotal int
	}{
		{
			name:      "No bookings, every slot free",
			openHour:  8,
			closeHour: 12,
			rate:      100,
			bookings:  nil,
			wantSlots: []Slot{slotAt(8, 100), slotAt(9, 100), slotAt(10, 100), slotAt(11, 100)},
			wantTotal: 4,
		},
		{
			name:      "One booking blocks exactly one slot",
			openHour:  8,
			closeHour: 12,
			rate:      100,
			bookings: []*Booking{
				{
					StartTime: time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2026, 2, 8, 10, 0, 0, 0, time.UTC),
				},
			},
			wantSlots: []Slot{slotAt(8, 100), slotAt(10, 100), slotAt(11, 100)},
			wantTotal: 4,
		},
		{
			name:      "Booking spanning the whole day leaves nothing",
			openHour:  8,
			closeHour: 12,
			rate:      100,
			bookings: []*Booking{
				{
					StartTime: time.Date(2026, 2, 7, 20, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2026, 2, 9, 4, 0, 0, 0, time.UTC),
				},
			},
			wantSlots: nil,
			wantTotal: 4,
		},
		{
			name:      "Partial-hour booking blocks both touched slots",
			openHour:  8,
			closeHour: 12,
			rate:      50,
			bookings: []*Booking{
				{
					StartTime: time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC),
					EndTime:   time.Date(2026, 2, 8, 10, 30, 0, 0, time.UTC),
				},
			},
			wantSlots: []Slot{slotAt(8, 50), slotAt(11, 50)},
			wantTotal: 4,
		},
		{
			name:      "Booking ending exactly on a slot boundary does not block the next slot",
			openHour:  8,
			closeHour: 10,
			rate:      100,
			bookings: []*Booking{
				{
					StartTime: time.Date(2026, 2, 8, 8, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC),
				},
			},
			wantSlots: []Slot{slotAt(9, 100)},
			wantTotal: 2,
		},
		{
			name:      "Closed location window yields no slots",
			openHour:  8,
			closeHour: 8,
			rate:      100,
			bookings:  nil,
			wantSlots: nil,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := buildSlots(baseDate, tt.openHour, tt.closeHour, tt.rate, tt.bookings)
			assert.Equal(t, tt.wantSlots, got)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestDayWindow(t *testing.T) {
	date := time.Date(2026, 2, 8, 15, 30, 45, 0, time.UTC)

	start, end := DayWindow(date)

	assert.Equal(t, time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 8, 23, 59, 59, 999000000, time.UTC), end)
}
