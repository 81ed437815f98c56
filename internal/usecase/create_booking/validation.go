package create_booking

import (
	"fmt"
	"time"

	"github.com/circlein/CIN-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AmenityID <= 0 {
		return fmt.Errorf("%w: amenityID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	return nil
}

// validateAgainstRules проверяет запрос по действующим правилам сообщества.
// Проверки идут по порядку и прерываются на первом нарушении:
// корректность интервала, границы длительности, окно бронирования.
func validateAgainstRules(req *Request, rules *domain.BookingRules, now time.Time) error {
	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidTimeRange
	}

	minutes := int(req.EndTime.Sub(req.StartTime) / time.Minute)
	if minutes < rules.MinBookingDuration {
		return fmt.Errorf("%w: minimum booking duration is %d minutes", ErrDurationTooShort, rules.MinBookingDuration)
	}
	if minutes > rules.MaxBookingDuration {
		return fmt.Errorf("%w: maximum booking duration is %d minutes", ErrDurationTooLong, rules.MaxBookingDuration)
	}

	// Начало строго в будущем: бронь "на сейчас" считается прошедшей
	if !req.StartTime.After(now) {
		return ErrPastBooking
	}

	if req.StartTime.After(rules.MaxAdvanceHorizon(now)) {
		return fmt.Errorf("%w: cannot book more than %d days in advance", ErrTooFarInAdvance, rules.MaxAdvanceBookingDays)
	}

	return nil
}
