package create_scheduled_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	pricingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/pricingrules"
	"github.com/m04kA/SMC-SessionsService/internal/integrations/catalogservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	err     error
}

func (c *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.service, nil
}

type fakeRulesRepo struct {
	rule *domain.PricingRule
	err  error
}

func (r *fakeRulesRepo) GetRuleWithHierarchy(_ context.Context, _ int64, _ int64) (*domain.PricingRule, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rule, nil
}

type fakeBookingRepo struct {
	created *domain.BookingRequest
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.BookingRequest) (*domain.BookingRequest, error) {
	out := *booking
	out.ID = 202
	out.CreatedAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	r.created = &out
	return &out, nil
}

func activeService() *catalogservice.Service {
	return &catalogservice.Service{
		ID:                  5,
		ProviderID:          42,
		Name:                "Консультация",
		BasePrice:           100.0,
		BaseDurationMinutes: 60,
		IsActive:            true,
	}
}

func newTestUseCase(repo *fakeBookingRepo, catalog *fakeCatalogClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, &fakeRulesRepo{err: pricingRepo.ErrRuleNotFound}, catalog, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func TestExecute_CreatesPendingWithoutExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	requestedTime := now.Add(48 * time.Hour)
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeCatalogClient{service: activeService()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:        10,
		ServiceID:       5,
		RequestedTime:   requestedTime,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(202), resp.ID)
	assert.False(t, resp.IsInstant)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.NotNil(t, resp.RequestedTime)
	assert.Equal(t, requestedTime, *resp.RequestedTime)
	assert.InDelta(t, 100.0, resp.Price, 1e-9)

	// Запланированные заявки не истекают
	assert.Nil(t, repo.created.ExpiresAt)
}

func TestExecute_RequestedTimeMustBeStrictlyFuture(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogClient{service: activeService()}, now)

	// Прошлое
	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        10,
		ServiceID:       5,
		RequestedTime:   now.Add(-time.Minute),
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrTimeInPast)

	// Ровно сейчас тоже не подходит
	_, err = uc.Execute(context.Background(), &Request{
		ClientID:        10,
		ServiceID:       5,
		RequestedTime:   now,
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrTimeInPast)
}

func TestExecute_MissingRequestedTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogClient{service: activeService()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        10,
		ServiceID:       5,
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        10,
		ServiceID:       99,
		RequestedTime:   now.Add(time.Hour),
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
