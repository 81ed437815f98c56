package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circlein/CIN-BookingService/internal/api/middleware"
	createBooking "github.com/circlein/CIN-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp    *createBooking.Response
	err     error
	lastReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, useCase *fakeUseCase, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(useCase, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func validBody() string {
	return `{"amenityId": 1, "startTime": "2026-09-05T14:00:00Z", "endTime": "2026-09-05T15:00:00Z"}`
}

func TestHandle_CreatesBooking(t *testing.T) {
	start := time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC)
	useCase := &fakeUseCase{resp: &createBooking.Response{
		ID:        7,
		UserID:    42,
		AmenityID: 1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    "confirmed",
		CreatedAt: start,
		UpdatedAt: start,
	}}

	rec := doRequest(t, useCase, validBody(), map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)

	require.NotNil(t, useCase.lastReq)
	assert.Equal(t, int64(42), useCase.lastReq.UserID, "user identity comes from the header, not the body")
	assert.True(t, useCase.lastReq.StartTime.Equal(start))
}

func TestHandle_MissingUserHeader(t *testing.T) {
	useCase := &fakeUseCase{}

	rec := doRequest(t, useCase, validBody(), nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, useCase.lastReq)
}

func TestHandle_InvalidBody(t *testing.T) {
	useCase := &fakeUseCase{}

	rec := doRequest(t, useCase, `{not json`, map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidTimestamp(t *testing.T) {
	useCase := &fakeUseCase{}

	body := `{"amenityId": 1, "startTime": "tomorrow", "endTime": "2026-09-05T15:00:00Z"}`
	rec := doRequest(t, useCase, body, map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"amenity not found", createBooking.ErrAmenityNotFound, http.StatusNotFound},
		{"amenity inactive", createBooking.ErrAmenityInactive, http.StatusConflict},
		{"rules not configured", createBooking.ErrRulesNotConfigured, http.StatusConflict},
		{"invalid time range", createBooking.ErrInvalidTimeRange, http.StatusBadRequest},
		{"duration too short", createBooking.ErrDurationTooShort, http.StatusBadRequest},
		{"duration too long", createBooking.ErrDurationTooLong, http.StatusBadRequest},
		{"past booking", createBooking.ErrPastBooking, http.StatusBadRequest},
		{"too far in advance", createBooking.ErrTooFarInAdvance, http.StatusBadRequest},
		{"quota exceeded", createBooking.ErrQuotaExceeded, http.StatusConflict},
		{"internal error", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tc.err}, validBody(), map[string]string{"X-User-ID": "42"})
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
