package location

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openLocation() *Location {
	return &Location{
		ID:                  "loc-1",
		IsActive:            true,
		CurrentStatus:       StatusOpen,
		OperatingHoursStart: "06:00",
		OperatingHoursEnd:   "22:00",
		Spaces: []Space{
			{SpaceID: "A1", Status: SpaceAvailable},
			{SpaceID: "A2", Status: SpaceOccupied},
		},
	}
}

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2026-03-01 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsOpenAt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Location)
		at     time.Time
		want   bool
	}{
		{name: "Middle of the day", at: at("12:00"), want: true},
		{name: "Exactly at opening", at: at("06:00"), want: true},
		{name: "Exactly at closing", at: at("22:00"), want: true},
		{name: "Before opening", at: at("05:59"), want: false},
		{name: "After closing", at: at("22:01"), want: false},
		{
			name:   "Inactive location is never open",
			mutate: func(l *Location) { l.IsActive = false },
			at:     at("12:00"),
			want:   false,
		},
		{
			name:   "Status full counts as closed",
			mutate: func(l *Location) { l.CurrentStatus = StatusFull },
			at:     at("12:00"),
			want:   false,
		},
		{
			name:   "Status maintenance counts as closed",
			mutate: func(l *Location) { l.CurrentStatus = StatusMaintenance },
			at:     at("12:00"),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := openLocation()
			if tt.mutate != nil {
				tt.mutate(l)
			}
			assert.Equal(t, tt.want, l.IsOpenAt(tt.at))
		})
	}
}

func TestSpaceLookup(t *testing.T) {
	l := openLocation()

	s, ok := l.Space("A2")
	require.True(t, ok)
	assert.Equal(t, SpaceOccupied, s.Status)

	// The returned pointer aliases the location's slice.
	s.Status = SpaceMaintenance
	again, _ := l.Space("A2")
	assert.Equal(t, SpaceMaintenance, again.Status)

	_, ok = l.Space("Z9")
	assert.False(t, ok)
}

func TestOperatingHourBounds(t *testing.T) {
	l := openLocation()

	start, end, err := l.OperatingHourBounds()
	require.NoError(t, err)
	assert.Equal(t, 6, start)
	assert.Equal(t, 22, end)

	// Minutes are dropped; the slot grid is hour-granular.
	l.OperatingHoursStart = "08:30"
	start, _, err = l.OperatingHourBounds()
	require.NoError(t, err)
	assert.Equal(t, 8, start)

	for _, bad := range []string{"", "8am", "25:00", "-1:00", "noon:30"} {
		l := openLocation()
		l.OperatingHoursStart = bad
		_, _, err := l.OperatingHourBounds()
		assert.True(t, errors.Is(err, ErrInvalidOperatingHour), "hours %q must be rejected", bad)
	}
}
