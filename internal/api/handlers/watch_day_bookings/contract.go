package watch_day_bookings

import (
	"context"
	"time"

	"github.com/circlein/CIN-BookingService/internal/notifier"
	"github.com/circlein/CIN-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetDayBookings(ctx context.Context, req *models.GetDayBookingsRequest) (*models.BookingListResponse, error)
}

type DayNotifier interface {
	SubscribeDay(ctx context.Context, date time.Time) (<-chan notifier.Event, func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
