package booking

import (
	"time"
)

// Slot is a fixed one-hour candidate reservation window.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Price     float64
}

// Availability is the free-slot calendar for one space on one date.
type Availability struct {
	Date             time.Time
	LocationID       string
	SpaceID          string
	AvailableSlots   []Slot
	TotalSlots       int
	ExistingBookings int
}

// DayWindow returns the [00:00:00, 23:59:59.999] bounds of date's calendar day.
func DayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// buildSlots subtracts existing bookings from the operating hours of a single
// day and returns the free hourly slots plus the total slot count.
//
// The slot model works at hour granularity: an operating window of
// 08:30-12:30 yields the same candidate slots as 08:00-12:00. bookings must
// already be filtered to blocking statuses; their order does not matter.
func buildSlots(date time.Time, openHour, closeHour int, hourlyRate float64, bookings []*Booking) ([]Slot, int) {
	var available []Slot
	total := 0

	for h := openHour; h < closeHour; h++ {
		slotStart := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, date.Location())
		slotEnd := slotStart.Add(time.Hour)
		total++

		free := true
		for _, b := range bookings {
			if b.Overlaps(slotStart, slotEnd) {
				free = false
				break
			}
		}
		if free {
			available = append(available, Slot{
				StartTime: slotStart,
				EndTime:   slotEnd,
				Price:     hourlyRate,
			})
		}
	}

	return available, total
}
