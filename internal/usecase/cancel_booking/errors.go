package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда вызывающий не владелец и не администратор
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrAlreadyStarted возвращается при попытке отменить начавшуюся бронь
	ErrAlreadyStarted = errors.New("cancel_booking: booking has already started")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
