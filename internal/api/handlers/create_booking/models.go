package create_booking

import (
	"errors"
	"time"

	createBooking "github.com/circlein/CIN-BookingService/internal/usecase/create_booking"
)

var errInvalidTimestamp = errors.New("invalid timestamp format")

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	AmenityID int64  `json:"amenityId"`
	StartTime string `json:"startTime"` // RFC 3339, "2026-09-05T14:00:00Z"
	EndTime   string `json:"endTime"`   // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	AmenityID int64  `json:"amenityId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, errInvalidTimestamp
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, errInvalidTimestamp
	}

	return &createBooking.Request{
		UserID:    userID,
		AmenityID: r.AmenityID,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		AmenityID: resp.AmenityID,
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
