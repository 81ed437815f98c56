package get_day_bookings

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/circlein/CIN-BookingService/internal/api/handlers"
	"github.com/circlein/CIN-BookingService/internal/domain"
	"github.com/circlein/CIN-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем дату из URL
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		h.logger.Warn("GET /schedule/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDayBookings(r.Context(), &models.GetDayBookingsRequest{Date: date})
	if err != nil {
		h.logger.Error("GET /schedule/{date} - Failed to get bookings: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/{date} - Bookings retrieved: date=%s, count=%d", dateStr, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
