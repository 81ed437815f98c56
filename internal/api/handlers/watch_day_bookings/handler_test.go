package watch_day_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circlein/CIN-BookingService/internal/api/middleware"
	"github.com/circlein/CIN-BookingService/internal/notifier"
	"github.com/circlein/CIN-BookingService/internal/service/bookings/models"
	"github.com/circlein/CIN-BookingService/pkg/metrics"
)

type fakeBookingService struct {
	resp  *models.BookingListResponse
	err   error
	calls *[]string
}

func (f *fakeBookingService) GetDayBookings(_ context.Context, _ *models.GetDayBookingsRequest) (*models.BookingListResponse, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, "snapshot")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeDayNotifier struct {
	events       chan notifier.Event
	unsubscribed bool
	calls        *[]string
}

func (f *fakeDayNotifier) SubscribeDay(_ context.Context, _ time.Time) (<-chan notifier.Event, func()) {
	if f.calls != nil {
		*f.calls = append(*f.calls, "subscribe")
	}
	return f.events, func() { f.unsubscribed = true }
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/schedule/{date}/watch", h.Handle).Methods(http.MethodGet)
	return router
}

func parseFrames(t *testing.T, body string) []notifier.Event {
	t.Helper()

	var events []notifier.Event
	for _, frame := range strings.Split(body, "\n\n") {
		if frame == "" {
			continue
		}
		require.True(t, strings.HasPrefix(frame, "data: "), "кадр без префикса data: %q", frame)

		var event notifier.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(frame, "data: ")), &event))
		events = append(events, event)
	}
	return events
}

func TestHandle_StreamsSnapshotThenEvents(t *testing.T) {
	calls := []string{}
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	service := &fakeBookingService{
		resp: &models.BookingListResponse{
			Bookings: []models.BookingResponse{
				{ID: 7, UserID: 1, AmenityID: 3, StartTime: start, EndTime: start.Add(time.Hour), Status: "confirmed"},
			},
		},
		calls: &calls,
	}
	dayNotifier := &fakeDayNotifier{events: make(chan notifier.Event), calls: &calls}
	handler := NewHandler(service, dayNotifier, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/2026-03-10/watch", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		newRouter(handler).ServeHTTP(rec, req)
		close(done)
	}()

	// Небуферизованный канал: отправка завершается только после того,
	// как обработчик принял событие
	dayNotifier.events <- notifier.Event{
		Date:     "2026-03-10",
		Bookings: []notifier.EventBooking{{ID: 8, UserID: 2, AmenityID: 3, Status: "waitlist"}},
	}
	cancel()
	<-done

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, dayNotifier.unsubscribed)

	// Подписка оформляется до чтения снапшота, иначе изменение между
	// снапшотом и подпиской терялось бы
	assert.Equal(t, []string{"subscribe", "snapshot"}, calls)

	frames := parseFrames(t, rec.Body.String())
	require.Len(t, frames, 2)

	assert.Equal(t, "2026-03-10", frames[0].Date)
	require.Len(t, frames[0].Bookings, 1)
	assert.Equal(t, int64(7), frames[0].Bookings[0].ID)
	assert.Equal(t, "confirmed", frames[0].Bookings[0].Status)

	require.Len(t, frames[1].Bookings, 1)
	assert.Equal(t, int64(8), frames[1].Bookings[0].ID)
	assert.Equal(t, "waitlist", frames[1].Bookings[0].Status)
}

func TestHandle_StopsWhenStreamCloses(t *testing.T) {
	service := &fakeBookingService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{}}}
	dayNotifier := &fakeDayNotifier{events: make(chan notifier.Event)}
	handler := NewHandler(service, dayNotifier, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/2026-03-10/watch", nil)

	done := make(chan struct{})
	go func() {
		newRouter(handler).ServeHTTP(rec, req)
		close(done)
	}()

	close(dayNotifier.events)
	<-done

	assert.Equal(t, http.StatusOK, rec.Code)
	frames := parseFrames(t, rec.Body.String())
	require.Len(t, frames, 1)
	assert.Empty(t, frames[0].Bookings)
	assert.True(t, dayNotifier.unsubscribed)
}

func TestHandle_InvalidDate(t *testing.T) {
	handler := NewHandler(&fakeBookingService{}, &fakeDayNotifier{}, nopLogger{})

	rec := httptest.NewRecorder()
	newRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedule/not-a-date/watch", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_WorksBehindMetricsMiddleware(t *testing.T) {
	service := &fakeBookingService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{}}}
	dayNotifier := &fakeDayNotifier{events: make(chan notifier.Event)}
	handler := NewHandler(service, dayNotifier, nopLogger{})

	router := newRouter(handler)
	router.Use(middleware.MetricsMiddleware(metrics.New("test"), "test"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/2026-03-10/watch", nil)

	done := make(chan struct{})
	go func() {
		router.ServeHTTP(rec, req)
		close(done)
	}()

	close(dayNotifier.events)
	<-done

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	require.Len(t, parseFrames(t, rec.Body.String()), 1)
}
