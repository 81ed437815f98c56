package cancel_booking

// Request модель запроса на отмену бронирования.
// Идентичность и роль вызывающего передаются явно.
type Request struct {
	BookingID   int64
	RequesterID int64
	IsAdmin     bool
}

// Response результат отмены: произошло ли продвижение из листа ожидания
type Response struct {
	Promoted          bool
	PromotedBookingID *int64
}
