package rules

import (
	"context"

	"github.com/circlein/CIN-BookingService/internal/domain"
)

// RulesRepository интерфейс репозитория правил бронирования
type RulesRepository interface {
	Get(ctx context.Context) (*domain.BookingRules, error)
	Update(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
