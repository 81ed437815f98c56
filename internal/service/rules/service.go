package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/circlein/CIN-BookingService/internal/domain"
	rulesRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/rules"
	"github.com/circlein/CIN-BookingService/internal/service/rules/models"
)

// Service сервис для работы с правилами бронирования сообщества
type Service struct {
	rulesRepo RulesRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(rulesRepo RulesRepository, logger Logger) *Service {
	return &Service{
		rulesRepo: rulesRepo,
		logger:    logger,
	}
}

// Get возвращает действующие правила бронирования
// Публичный метод - доступен всем жителям
func (s *Service) Get(ctx context.Context) (*models.RulesResponse, error) {
	s.logger.Info("Get: fetching booking rules")

	rules, err := s.rulesRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Warn("Get: booking rules not configured")
			return nil, ErrRulesNotConfigured
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// Update обновляет правила бронирования
// Доступно только администраторам. Не указанные в запросе поля сохраняют
// текущие значения; итоговый набор валидируется целиком.
func (s *Service) Update(ctx context.Context, req *models.UpdateRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("Update: updating booking rules by user=%d", req.UserID)

	// 1. Проверяем права доступа
	if !req.IsAdmin {
		s.logger.Warn("Update: user=%d is not an administrator", req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Берём текущие правила как базу для частичного обновления
	current, err := s.rulesRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			current = domain.DefaultRules()
		} else {
			s.logger.Error("Update: failed to get current rules: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	updated := req.ApplyTo(current)

	// 3. Валидируем итоговый набор правил
	if err := s.validateRules(updated); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.rulesRepo.Update(ctx, updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: booking rules updated by user=%d", req.UserID)
	return models.FromDomainRules(saved), nil
}

// validateRules проверяет допустимость каждого параметра и их согласованность
func (s *Service) validateRules(r *domain.BookingRules) error {
	if r.MaxPerFamily < domain.MinPerFamily || r.MaxPerFamily > domain.MaxPerFamilyLimit {
		return fmt.Errorf("%w: maxPerFamily must be between %d and %d",
			ErrInvalidInput, domain.MinPerFamily, domain.MaxPerFamilyLimit)
	}
	if r.MaxAdvanceBookingDays < domain.MinAdvanceBookingDays || r.MaxAdvanceBookingDays > domain.MaxAdvanceBookingDaysCap {
		return fmt.Errorf("%w: maxAdvanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDaysCap)
	}
	if r.MinBookingDuration < domain.MinDurationFloor || r.MinBookingDuration > domain.MinDurationCeil {
		return fmt.Errorf("%w: minBookingDuration must be between %d and %d",
			ErrInvalidInput, domain.MinDurationFloor, domain.MinDurationCeil)
	}
	if r.MaxBookingDuration < domain.MaxDurationFloor || r.MaxBookingDuration > domain.MaxDurationCeil {
		return fmt.Errorf("%w: maxBookingDuration must be between %d and %d",
			ErrInvalidInput, domain.MaxDurationFloor, domain.MaxDurationCeil)
	}
	if r.CancellationDeadline < domain.MinCancellationDeadline || r.CancellationDeadline > domain.MaxCancellationDeadline {
		return fmt.Errorf("%w: cancellationDeadline must be between %d and %d",
			ErrInvalidInput, domain.MinCancellationDeadline, domain.MaxCancellationDeadline)
	}
	if r.MinBookingDuration >= r.MaxBookingDuration {
		return fmt.Errorf("%w: minBookingDuration must be less than maxBookingDuration", ErrInvalidInput)
	}
	return nil
}
