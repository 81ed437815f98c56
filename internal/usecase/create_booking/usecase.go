package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/circlein/CIN-BookingService/internal/domain"
	amenityRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/amenity"
	rulesRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/rules"
)

// UseCase use case для создания бронирования: решение о допуске
// (подтверждение, лист ожидания или отказ) и его фиксация
type UseCase struct {
	bookingRepo  BookingRepository
	rulesRepo    RulesRepository
	amenityRepo  AmenityRepository
	txManager    TransactionManager
	notifier     DayNotifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rulesRepo RulesRepository,
	amenityRepo AmenityRepository,
	txManager TransactionManager,
	notifier DayNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		rulesRepo:    rulesRepo,
		amenityRepo:  amenityRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Последовательность "нет конфликта → создать подтверждённую бронь" выполняется
// в сериализуемой транзакции: два конкурентных запроса на пересекающийся
// интервал одного объекта не могут оба пройти проверку конфликта.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, amenity=%d, start=%s, end=%s",
		req.UserID, req.AmenityID, req.StartTime.Format(domain.TimeLogFormat), req.EndTime.Format(domain.TimeLogFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем объект в каталоге
	am, err := uc.amenityRepo.GetByID(ctx, req.AmenityID)
	if err != nil {
		if errors.Is(err, amenityRepo.ErrAmenityNotFound) {
			uc.logger.Warn("CreateBooking: amenity id=%d not found", req.AmenityID)
			return nil, ErrAmenityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get amenity id=%d: %v", req.AmenityID, err)
		return nil, fmt.Errorf("%w: failed to get amenity: %v", ErrInternal, err)
	}
	if !am.IsActive {
		uc.logger.Warn("CreateBooking: amenity id=%d is not active", req.AmenityID)
		return nil, ErrAmenityInactive
	}

	var result *domain.Booking

	// 4. Решение о допуске в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Читаем действующие правила: администратор мог изменить их
		// между запросами, кэшировать нельзя
		rules, err := uc.rulesRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, rulesRepo.ErrRulesNotFound) {
				uc.logger.Warn("CreateBooking: booking rules are not configured")
				return ErrRulesNotConfigured
			}
			uc.logger.Error("CreateBooking: failed to get rules: %v", err)
			return fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}

		// 4.2. Проверки правил, прерывание на первом нарушении
		if err := validateAgainstRules(req, rules, now); err != nil {
			uc.logger.Warn("CreateBooking: rules validation failed: %v", err)
			return err
		}

		// 4.3. Ищем конфликтующие подтверждённые брони (с блокировкой строк)
		conflicts, err := uc.bookingRepo.GetConfirmedOverlapping(txCtx, req.AmenityID, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		// 4.4. Конфликт → лист ожидания для точного запрошенного слота.
		// Дневная квота здесь не проверяется: квота защищает гарантированный
		// слот, очередь ожидания не ограничена.
		if len(conflicts) > 0 {
			uc.logger.Info("CreateBooking: slot taken by booking id=%d, adding user=%d to waitlist",
				conflicts[0].ID, req.UserID)

			created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
				UserID:    req.UserID,
				AmenityID: req.AmenityID,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Status:    domain.StatusWaitlist,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create waitlist booking: %v", err)
				return fmt.Errorf("%w: failed to create waitlist booking: %v", ErrInternal, err)
			}

			result = created
			return nil
		}

		// 4.5. Конфликта нет → проверяем дневную квоту семьи.
		// День считается по локальной полуночи даты начала брони.
		dayStart, dayEnd := domain.DayBounds(req.StartTime)
		count, err := uc.bookingRepo.CountUserConfirmedForDay(txCtx, req.UserID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count user bookings: %v", err)
			return fmt.Errorf("%w: failed to count user bookings: %v", ErrInternal, err)
		}

		if count >= rules.MaxPerFamily {
			uc.logger.Warn("CreateBooking: user=%d reached daily quota %d/%d",
				req.UserID, count, rules.MaxPerFamily)
			return fmt.Errorf("%w: maximum %d bookings per family per day", ErrQuotaExceeded, rules.MaxPerFamily)
		}

		// 4.6. Создаем подтверждённую бронь
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:    req.UserID,
			AmenityID: req.AmenityID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    domain.StatusConfirmed,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d with status=%s", result.ID, result.Status)

	// 5. Уведомляем подписчиков даты. Бронь уже зафиксирована, ошибки
	// доставки не откатывают операцию и только логируются.
	uc.notifyDayChanged(ctx, result)

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		AmenityID: result.AmenityID,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

// notifyDayChanged публикует актуальный снапшот расписания даты брони
func (uc *UseCase) notifyDayChanged(ctx context.Context, booking *domain.Booking) {
	dayStart, dayEnd := domain.DayBounds(booking.StartTime)

	bookings, err := uc.bookingRepo.GetForDay(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to load day snapshot for notification: %v", err)
		return
	}

	if err := uc.notifier.PublishDay(ctx, dayStart, bookings); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish day notification: %v", err)
	}
}
