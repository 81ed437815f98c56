package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/circlein/CIN-BookingService/internal/domain"
)

func TestDayChannel(t *testing.T) {
	date := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)

	assert.Equal(t, "bookings:day:2026-03-10", DayChannel(date))
}

func TestNewEvent(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	start := date.Add(14 * time.Hour)

	event := NewEvent(date, []*domain.Booking{
		{
			ID:        1,
			UserID:    10,
			AmenityID: 2,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Status:    domain.StatusConfirmed,
		},
		{
			ID:        2,
			UserID:    20,
			AmenityID: 2,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Status:    domain.StatusWaitlist,
		},
	})

	assert.Equal(t, "2026-03-10", event.Date)
	assert.Len(t, event.Bookings, 2)
	assert.Equal(t, "confirmed", event.Bookings[0].Status)
	assert.Equal(t, "waitlist", event.Bookings[1].Status)
}

func TestNewEvent_EmptyDay(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	event := NewEvent(date, nil)

	assert.Equal(t, "2026-03-10", event.Date)
	assert.NotNil(t, event.Bookings, "empty day must serialize as [], not null")
	assert.Len(t, event.Bookings, 0)
}
