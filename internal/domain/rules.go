package domain

import "time"

// BookingRules represents the community-wide booking limits.
// Stored as a singleton, mutated only by administrators and re-read
// at the start of every admission decision.
type BookingRules struct {
	MaxPerFamily          int // подтверждённых броней на семью в день
	MaxAdvanceBookingDays int // горизонт бронирования в днях
	MinBookingDuration    int // минимальная длительность, минуты
	MaxBookingDuration    int // максимальная длительность, минуты

	// CancellationDeadline хранится и валидируется при записи, но при отмене
	// не применяется: действует только проверка "бронь ещё не началась".
	// Известное расхождение, см. DESIGN.md.
	CancellationDeadline int // часов до начала брони

	UpdatedAt time.Time
}

// MaxAdvanceHorizon возвращает верхнюю границу допустимого времени начала брони
func (r *BookingRules) MaxAdvanceHorizon(now time.Time) time.Time {
	return now.AddDate(0, 0, r.MaxAdvanceBookingDays)
}

// DurationWithinBounds проверяет длительность брони в минутах
func (r *BookingRules) DurationWithinBounds(minutes int) bool {
	return minutes >= r.MinBookingDuration && minutes <= r.MaxBookingDuration
}

// DefaultRules возвращает правила, с которыми инициализируется новое сообщество
func DefaultRules() *BookingRules {
	return &BookingRules{
		MaxPerFamily:          2,
		MaxAdvanceBookingDays: 7,
		MinBookingDuration:    30,
		MaxBookingDuration:    120,
		CancellationDeadline:  2,
	}
}
