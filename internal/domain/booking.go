package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusWaitlist  BookingStatus = "waitlist"
)

// Booking represents an amenity reservation.
// A cancelled booking is physically deleted, it never exists as a stored status.
// StartTime/EndTime are immutable after creation, only Status changes.
type Booking struct {
	ID        int64
	UserID    int64
	AmenityID int64
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking holds the slot
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsWaitlisted returns true if the booking is queued behind a confirmed one
func (b *Booking) IsWaitlisted() bool {
	return b.Status == StatusWaitlist
}

// HasStarted returns true if the booking has already started or passed
func (b *Booking) HasStarted(now time.Time) bool {
	return !b.StartTime.After(now)
}

// Overlaps проверяет пересечение интервала брони с [start, end]
// Границы включаются: бронь 14:00-15:00 конфликтует с запросом 15:00-16:00
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartTime.After(end) && !b.EndTime.Before(start)
}

// SameSlot проверяет, что бронь занимает точно тот же слот (amenity + интервал)
// Лист ожидания и promotion работают только в пределах одного точного слота
func (b *Booking) SameSlot(amenityID int64, start, end time.Time) bool {
	return b.AmenityID == amenityID && b.StartTime.Equal(start) && b.EndTime.Equal(end)
}

// DayBounds возвращает границы календарного дня [полночь; полночь+24ч)
// для момента t в его локации. Используется для дневной квоты семьи и
// выборки броней на дату.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
