package create_booking

import (
	"context"
	"time"

	"github.com/circlein/CIN-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetConfirmedOverlapping(ctx context.Context, amenityID int64, start, end time.Time) ([]*domain.Booking, error)
	CountUserConfirmedForDay(ctx context.Context, userID int64, dayStart, dayEnd time.Time) (int, error)
	GetForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]*domain.Booking, error)
}

// RulesRepository интерфейс репозитория правил бронирования
type RulesRepository interface {
	Get(ctx context.Context) (*domain.BookingRules, error)
}

// AmenityRepository интерфейс read-only репозитория каталога
type AmenityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Amenity, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DayNotifier интерфейс канала уведомлений об изменении расписания
type DayNotifier interface {
	PublishDay(ctx context.Context, date time.Time, bookings []*domain.Booking) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
