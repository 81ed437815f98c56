package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/circlein/CIN-BookingService/internal/domain"
	bookingRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования с продвижением из листа ожидания.
// Отмена подтверждённой брони и promotion выполняются одной сериализуемой
// транзакцией: слот не может быть продвинут дважды или потерян при
// конкурентных отменах и новых записях в лист ожидания.
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     DayNotifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier DayNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет отмену бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, requester=%d, admin=%t",
		req.BookingID, req.RequesterID, req.IsAdmin)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var cancelled *domain.Booking
	var promoted *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронь с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Отменить бронь может владелец или администратор
		if booking.UserID != req.RequesterID && !req.IsAdmin {
			uc.logger.Warn("CancelBooking: user=%d is not allowed to cancel booking id=%d",
				req.RequesterID, req.BookingID)
			return ErrAccessDenied
		}

		// 3. Начавшуюся или прошедшую бронь отменить нельзя.
		// cancellationDeadline из правил на этом пути сознательно не
		// применяется, действует только проверка начала (см. DESIGN.md).
		if booking.HasStarted(now) {
			uc.logger.Warn("CancelBooking: booking id=%d has already started", req.BookingID)
			return ErrAlreadyStarted
		}

		cancelled = booking

		// 4. Для подтверждённой брони продвигаем самую раннюю запись
		// листа ожидания того же точного слота
		if booking.IsConfirmed() {
			waitlist, err := uc.bookingRepo.GetWaitlist(txCtx, booking.AmenityID, booking.StartTime, booking.EndTime)
			if err != nil {
				uc.logger.Error("CancelBooking: failed to get waitlist for booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to get waitlist: %v", ErrInternal, err)
			}

			if len(waitlist) > 0 {
				head := waitlist[0]
				if err := uc.bookingRepo.UpdateStatus(txCtx, head.ID, domain.StatusConfirmed); err != nil {
					uc.logger.Error("CancelBooking: failed to promote booking id=%d: %v", head.ID, err)
					return fmt.Errorf("%w: failed to promote waitlist booking: %v", ErrInternal, err)
				}
				promoted = head
			}
		}

		// 5. Отменённая бронь удаляется физически
		if err := uc.bookingRepo.Delete(txCtx, booking.ID); err != nil {
			uc.logger.Error("CancelBooking: failed to delete booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if promoted != nil {
		uc.logger.Info("CancelBooking: booking id=%d cancelled, promoted waitlist booking id=%d",
			req.BookingID, promoted.ID)
	} else {
		uc.logger.Info("CancelBooking: booking id=%d cancelled, no promotion", req.BookingID)
	}

	// Уведомляем подписчиков даты, ошибки доставки только логируются
	uc.notifyDayChanged(ctx, cancelled)

	resp := &Response{Promoted: promoted != nil}
	if promoted != nil {
		id := promoted.ID
		resp.PromotedBookingID = &id
	}
	return resp, nil
}

// notifyDayChanged публикует актуальный снапшот расписания даты брони
func (uc *UseCase) notifyDayChanged(ctx context.Context, booking *domain.Booking) {
	dayStart, dayEnd := domain.DayBounds(booking.StartTime)

	bookings, err := uc.bookingRepo.GetForDay(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Warn("CancelBooking: failed to load day snapshot for notification: %v", err)
		return
	}

	if err := uc.notifier.PublishDay(ctx, dayStart, bookings); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish day notification: %v", err)
	}
}
