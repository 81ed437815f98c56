package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circlein/CIN-BookingService/internal/domain"
	rulesRepo "github.com/circlein/CIN-BookingService/internal/infra/storage/rules"
	"github.com/circlein/CIN-BookingService/internal/service/rules/models"
	"github.com/circlein/CIN-BookingService/pkg/ptr"
)

type fakeRulesRepo struct {
	rules  *domain.BookingRules
	getErr error
}

func (r *fakeRulesRepo) Get(context.Context) (*domain.BookingRules, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	copied := *r.rules
	return &copied, nil
}

func (r *fakeRulesRepo) Update(_ context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	copied := *rules
	copied.UpdatedAt = time.Now()
	r.rules = &copied
	r.getErr = nil

	result := copied
	return &result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRulesRepo) *Service {
	return NewService(repo, nopLogger{})
}

func adminRequest() *models.UpdateRulesRequest {
	return &models.UpdateRulesRequest{UserID: 1, IsAdmin: true}
}

func TestGet_ReturnsRules(t *testing.T) {
	svc := newTestService(&fakeRulesRepo{rules: domain.DefaultRules()})

	resp, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.MaxPerFamily)
	assert.Equal(t, 7, resp.MaxAdvanceBookingDays)
}

func TestGet_NotConfigured(t *testing.T) {
	svc := newTestService(&fakeRulesRepo{getErr: rulesRepo.ErrRulesNotFound})

	_, err := svc.Get(context.Background())

	require.ErrorIs(t, err, ErrRulesNotConfigured)
}

func TestUpdate_DeniedForNonAdmin(t *testing.T) {
	repo := &fakeRulesRepo{rules: domain.DefaultRules()}
	svc := newTestService(repo)

	req := &models.UpdateRulesRequest{UserID: 1, IsAdmin: false, MaxPerFamily: ptr.Ptr(3)}
	_, err := svc.Update(context.Background(), req)

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 2, repo.rules.MaxPerFamily, "rules must remain unchanged")
}

func TestUpdate_PartialUpdateKeepsOtherFields(t *testing.T) {
	svc := newTestService(&fakeRulesRepo{rules: domain.DefaultRules()})

	req := adminRequest()
	req.MaxPerFamily = ptr.Ptr(3)
	resp, err := svc.Update(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxPerFamily)
	assert.Equal(t, 7, resp.MaxAdvanceBookingDays)
	assert.Equal(t, 30, resp.MinBookingDuration)
	assert.Equal(t, 120, resp.MaxBookingDuration)
}

func TestUpdate_StartsFromDefaultsWhenNotConfigured(t *testing.T) {
	svc := newTestService(&fakeRulesRepo{rules: domain.DefaultRules(), getErr: rulesRepo.ErrRulesNotFound})

	req := adminRequest()
	req.MaxAdvanceBookingDays = ptr.Ptr(14)
	resp, err := svc.Update(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 14, resp.MaxAdvanceBookingDays)
	assert.Equal(t, 2, resp.MaxPerFamily)
}

func TestUpdate_ValidationBounds(t *testing.T) {
	cases := []struct {
		name  string
		patch func(req *models.UpdateRulesRequest)
	}{
		{"maxPerFamily below floor", func(r *models.UpdateRulesRequest) { r.MaxPerFamily = ptr.Ptr(0) }},
		{"maxPerFamily above cap", func(r *models.UpdateRulesRequest) { r.MaxPerFamily = ptr.Ptr(11) }},
		{"advance days below floor", func(r *models.UpdateRulesRequest) { r.MaxAdvanceBookingDays = ptr.Ptr(0) }},
		{"advance days above cap", func(r *models.UpdateRulesRequest) { r.MaxAdvanceBookingDays = ptr.Ptr(31) }},
		{"min duration below floor", func(r *models.UpdateRulesRequest) { r.MinBookingDuration = ptr.Ptr(14) }},
		{"min duration above ceil", func(r *models.UpdateRulesRequest) { r.MinBookingDuration = ptr.Ptr(61) }},
		{"max duration below floor", func(r *models.UpdateRulesRequest) { r.MaxBookingDuration = ptr.Ptr(29) }},
		{"max duration above ceil", func(r *models.UpdateRulesRequest) { r.MaxBookingDuration = ptr.Ptr(481) }},
		{"cancellation deadline below floor", func(r *models.UpdateRulesRequest) { r.CancellationDeadline = ptr.Ptr(0) }},
		{"cancellation deadline above cap", func(r *models.UpdateRulesRequest) { r.CancellationDeadline = ptr.Ptr(25) }},
		{"min not less than max", func(r *models.UpdateRulesRequest) {
			r.MinBookingDuration = ptr.Ptr(60)
			r.MaxBookingDuration = ptr.Ptr(60)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&fakeRulesRepo{rules: domain.DefaultRules()})

			req := adminRequest()
			tc.patch(req)
			_, err := svc.Update(context.Background(), req)

			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
