package cancel_booking

import (
	cancelBooking "github.com/circlein/CIN-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Promoted          bool   `json:"promoted"`
	PromotedBookingID *int64 `json:"promotedBookingId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Promoted:          resp.Promoted,
		PromotedBookingID: resp.PromotedBookingID,
	}
}
