package create_booking

import (
	"errors"
	"net/http"

	"github.com/circlein/CIN-BookingService/internal/api/handlers"
	"github.com/circlein/CIN-BookingService/internal/api/middleware"
	createBooking "github.com/circlein/CIN-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamp   = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAmenityNotFound    = "объект не найден"
	msgAmenityInactive    = "объект недоступен для бронирования"
	msgRulesNotConfigured = "правила бронирования не настроены"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgDurationTooShort   = "длительность бронирования меньше минимально допустимой"
	msgDurationTooLong    = "длительность бронирования превышает максимально допустимую"
	msgPastBooking        = "время начала должно быть в будущем"
	msgTooFarInAdvance    = "дата бронирования слишком далеко в будущем"
	msgQuotaExceeded      = "превышен дневной лимит бронирований для семьи"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrAmenityNotFound):
			h.logger.Warn("POST /bookings - Amenity not found: amenity_id=%d", req.AmenityID)
			handlers.RespondNotFound(w, msgAmenityNotFound)

		case errors.Is(err, createBooking.ErrAmenityInactive):
			h.logger.Warn("POST /bookings - Amenity inactive: amenity_id=%d", req.AmenityID)
			handlers.RespondError(w, http.StatusConflict, msgAmenityInactive)

		case errors.Is(err, createBooking.ErrRulesNotConfigured):
			h.logger.Error("POST /bookings - Booking rules not configured")
			handlers.RespondError(w, http.StatusConflict, msgRulesNotConfigured)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, amenity_id=%d", userID, req.AmenityID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrDurationTooShort):
			h.logger.Warn("POST /bookings - Duration too short: user_id=%d, amenity_id=%d", userID, req.AmenityID)
			handlers.RespondBadRequest(w, msgDurationTooShort)

		case errors.Is(err, createBooking.ErrDurationTooLong):
			h.logger.Warn("POST /bookings - Duration too long: user_id=%d, amenity_id=%d", userID, req.AmenityID)
			handlers.RespondBadRequest(w, msgDurationTooLong)

		case errors.Is(err, createBooking.ErrPastBooking):
			h.logger.Warn("POST /bookings - Start time in the past: user_id=%d, amenity_id=%d", userID, req.AmenityID)
			handlers.RespondBadRequest(w, msgPastBooking)

		case errors.Is(err, createBooking.ErrTooFarInAdvance):
			h.logger.Warn("POST /bookings - Too far in advance: user_id=%d, amenity_id=%d", userID, req.AmenityID)
			handlers.RespondBadRequest(w, msgTooFarInAdvance)

		case errors.Is(err, createBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Daily quota exceeded: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgQuotaExceeded)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, amenity_id=%d, error=%v",
				userID, req.AmenityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, amenity_id=%d, status=%s",
		result.ID, userID, req.AmenityID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
