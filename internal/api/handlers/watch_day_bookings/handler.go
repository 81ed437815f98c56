package watch_day_bookings

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/circlein/CIN-BookingService/internal/api/handlers"
	"github.com/circlein/CIN-BookingService/internal/domain"
	"github.com/circlein/CIN-BookingService/internal/notifier"
	"github.com/circlein/CIN-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSSEUnsupported = "потоковая передача не поддерживается"
)

type Handler struct {
	service  BookingService
	notifier DayNotifier
	logger   Logger
}

func NewHandler(service BookingService, dayNotifier DayNotifier, logger Logger) *Handler {
	return &Handler{
		service:  service,
		notifier: dayNotifier,
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule/{date}/watch
// SSE-поток изменений расписания даты: сначала актуальный снапшот,
// затем снапшот на каждое изменение до отключения клиента.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		h.logger.Warn("GET /schedule/{date}/watch - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /schedule/{date}/watch - ResponseWriter does not support flushing")
		handlers.RespondError(w, http.StatusNotImplemented, msgSSEUnsupported)
		return
	}

	// Подписываемся до отправки снапшота: изменение между снапшотом и
	// подпиской было бы потеряно в обратном порядке
	events, unsubscribe := h.notifier.SubscribeDay(r.Context(), date)
	defer unsubscribe()

	snapshot, err := h.service.GetDayBookings(r.Context(), &models.GetDayBookingsRequest{Date: date})
	if err != nil {
		h.logger.Error("GET /schedule/{date}/watch - Failed to load snapshot: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	initial := notifier.Event{
		Date:     dateStr,
		Bookings: make([]notifier.EventBooking, 0, len(snapshot.Bookings)),
	}
	for _, b := range snapshot.Bookings {
		initial.Bookings = append(initial.Bookings, notifier.EventBooking{
			ID:        b.ID,
			UserID:    b.UserID,
			AmenityID: b.AmenityID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    b.Status,
			CreatedAt: b.CreatedAt,
		})
	}

	if err := h.writeEvent(w, flusher, initial); err != nil {
		h.logger.Warn("GET /schedule/{date}/watch - Failed to write initial snapshot: %v", err)
		return
	}

	h.logger.Info("GET /schedule/{date}/watch - Client subscribed: date=%s", dateStr)

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /schedule/{date}/watch - Client disconnected: date=%s", dateStr)
			return

		case event, ok := <-events:
			if !ok {
				h.logger.Info("GET /schedule/{date}/watch - Event stream closed: date=%s", dateStr)
				return
			}
			if err := h.writeEvent(w, flusher, event); err != nil {
				h.logger.Warn("GET /schedule/{date}/watch - Failed to write event: %v", err)
				return
			}
		}
	}
}

// writeEvent сериализует событие в формат SSE и сбрасывает буфер
func (h *Handler) writeEvent(w http.ResponseWriter, flusher http.Flusher, event notifier.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n\n")); err != nil {
		return err
	}

	flusher.Flush()
	return nil
}
