package list_amenities

import (
	"context"

	"github.com/circlein/CIN-BookingService/internal/service/amenities/models"
)

type AmenityService interface {
	ListActive(ctx context.Context) (*models.AmenityListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.AmenityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
