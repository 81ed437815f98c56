package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrAmenityNotFound возвращается, когда объект не найден в каталоге
	ErrAmenityNotFound = errors.New("create_booking: amenity not found")

	// ErrAmenityInactive возвращается, когда объект отключён администратором
	ErrAmenityInactive = errors.New("create_booking: amenity is not active")

	// ErrRulesNotConfigured возвращается, когда правила бронирования не настроены
	ErrRulesNotConfigured = errors.New("create_booking: booking rules not configured")

	// ErrInvalidTimeRange возвращается, когда конец брони не позже начала
	ErrInvalidTimeRange = errors.New("create_booking: end time must be after start time")

	// ErrDurationTooShort возвращается при нарушении minBookingDuration
	ErrDurationTooShort = errors.New("create_booking: minBookingDuration violated")

	// ErrDurationTooLong возвращается при нарушении maxBookingDuration
	ErrDurationTooLong = errors.New("create_booking: maxBookingDuration violated")

	// ErrPastBooking возвращается, когда начало брони не в будущем
	ErrPastBooking = errors.New("create_booking: cannot book in the past")

	// ErrTooFarInAdvance возвращается при нарушении maxAdvanceBookingDays
	ErrTooFarInAdvance = errors.New("create_booking: maxAdvanceBookingDays violated")

	// ErrQuotaExceeded возвращается при превышении дневной квоты семьи
	ErrQuotaExceeded = errors.New("create_booking: daily family quota exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
