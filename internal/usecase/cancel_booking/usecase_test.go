package cancel_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circlein/CIN-BookingService/internal/domain"
	bookingRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/booking"
)

// fakeBookingRepo in-memory репозиторий бронирований
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		copied := *b
		repo.bookings[b.ID] = &copied
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetWaitlist(_ context.Context, amenityID int64, start, end time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var waitlist []*domain.Booking
	for _, b := range r.bookings {
		if b.AmenityID == amenityID && b.IsWaitlisted() && b.StartTime.Equal(start) && b.EndTime.Equal(end) {
			copied := *b
			waitlist = append(waitlist, &copied)
		}
	}

	// FIFO по времени создания
	for i := 0; i < len(waitlist); i++ {
		for j := i + 1; j < len(waitlist); j++ {
			if waitlist[j].CreatedAt.Before(waitlist[i].CreatedAt) {
				waitlist[i], waitlist[j] = waitlist[j], waitlist[i]
			}
		}
	}
	return waitlist, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) GetForDay(_ context.Context, dayStart, dayEnd time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Booking
	for _, b := range r.bookings {
		if !b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) get(id int64) *domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil
	}
	copied := *b
	return &copied
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeNotifier struct {
	published int
}

func (n *fakeNotifier) PublishDay(context.Context, time.Time, []*domain.Booking) error {
	n.published++
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func newTestUseCase(repo *fakeBookingRepo) (*UseCase, *fakeNotifier) {
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, &fakeTxManager{}, notifier, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc, notifier
}

func booking(id, userID int64, status domain.BookingStatus, startOffset time.Duration, createdAt time.Time) *domain.Booking {
	start := testNow.Add(startOffset)
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		AmenityID: 1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newTestUseCase(newFakeBookingRepo())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, RequesterID: 10})

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_AccessDeniedForStranger(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, 10, domain.StatusConfirmed, 2*time.Hour, testNow.Add(-time.Hour)),
	)
	uc, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 20})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.NotNil(t, repo.get(1), "booking must remain untouched")
}

func TestExecute_AdminMayCancelAnyBooking(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, 10, domain.StatusConfirmed, 2*time.Hour, testNow.Add(-time.Hour)),
	)
	uc, _ := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 99, IsAdmin: true})

	require.NoError(t, err)
	assert.False(t, resp.Promoted)
	assert.Nil(t, repo.get(1))
}

func TestExecute_AlreadyStarted(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, 10, domain.StatusConfirmed, -time.Minute, testNow.Add(-time.Hour)),
	)
	uc, _ := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})

	require.ErrorIs(t, err, ErrAlreadyStarted)
	assert.NotNil(t, repo.get(1))
}

func TestExecute_CancelWithoutWaitlist(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, 10, domain.StatusConfirmed, 2*time.Hour, testNow.Add(-time.Hour)),
	)
	uc, notifier := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})

	require.NoError(t, err)
	assert.False(t, resp.Promoted)
	assert.Nil(t, resp.PromotedBookingID)
	assert.Nil(t, repo.get(1))
	assert.Equal(t, 1, notifier.published)
}

func TestExecute_PromotesEarliestWaitlisted(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, 10, domain.StatusConfirmed, 2*time.Hour, testNow.Add(-3*time.Hour)),
		// две записи листа ожидания на тот же слот, id=3 создана раньше
		booking(2, 20, domain.StatusWaitlist, 2*time.Hour, testNow.Add(-time.Hour)),
		booking(3, 30, domain.StatusWaitlist, 2*time.Hour, testNow.Add(-2*time.Hour)),
	)
	uc, _ := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})

	require.NoError(t, err)
	assert.True(t, resp.Promoted)
	require.NotNil(t, resp.PromotedBookingID)
	assert.Equal(t, int64(3), *resp.PromotedBookingID)

	assert.Nil(t, repo.get(1))
	assert.Equal(t, domain.StatusConfirmed, repo.get(3).Status)
	assert.Equal(t, domain.StatusWaitlist, repo.get(2).Status)
}

func TestExecute_PromotionRequiresExactSlot(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, 10, domain.StatusConfirmed, 2*time.Hour, testNow.Add(-2*time.Hour)),
		// пересекающийся, но не идентичный слот продвижению не подлежит
		booking(2, 20, domain.StatusWaitlist, 2*time.Hour+30*time.Minute, testNow.Add(-time.Hour)),
	)
	uc, _ := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})

	require.NoError(t, err)
	assert.False(t, resp.Promoted)
	assert.Equal(t, domain.StatusWaitlist, repo.get(2).Status)
}

func TestExecute_CancelWaitlistedDoesNotPromote(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, 10, domain.StatusConfirmed, 2*time.Hour, testNow.Add(-3*time.Hour)),
		booking(2, 20, domain.StatusWaitlist, 2*time.Hour, testNow.Add(-2*time.Hour)),
		booking(3, 30, domain.StatusWaitlist, 2*time.Hour, testNow.Add(-time.Hour)),
	)
	uc, _ := newTestUseCase(repo)

	// Уход из листа ожидания никого не продвигает
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 2, RequesterID: 20})

	require.NoError(t, err)
	assert.False(t, resp.Promoted)
	assert.Nil(t, repo.get(2))
	assert.Equal(t, domain.StatusConfirmed, repo.get(1).Status)
	assert.Equal(t, domain.StatusWaitlist, repo.get(3).Status)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase(newFakeBookingRepo())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, RequesterID: 10})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}
