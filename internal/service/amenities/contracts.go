package amenities

import (
	"context"

	"github.com/circlein/CIN-BookingService/internal/domain"
)

// AmenityRepository интерфейс репозитория каталога объектов
type AmenityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Amenity, error)
	ListActive(ctx context.Context) ([]*domain.Amenity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
