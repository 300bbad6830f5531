package create_instant_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	pricingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/pricingrules"
	"github.com/m04kA/SMC-SessionsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SessionsService/internal/pricing"
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
	err     error
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.BookingRequest) (*domain.BookingRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := *booking
	out.ID = 101
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

func newTestUseCase(repo *fakeBookingRepo, rules *fakeRulesRepo, catalog *fakeCatalogClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, rules, catalog, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func TestExecute_CreatesPendingWithExpiryWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeRulesRepo{err: pricingRepo.ErrRuleNotFound}, &fakeCatalogClient{service: activeService()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:        10,
		ServiceID:       5,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.True(t, resp.IsInstant)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(42), resp.ProviderID)

	require.NotNil(t, resp.ExpiresAt)
	assert.Equal(t, now.Add(domain.InstantExpiryWindow), *resp.ExpiresAt)
}

func TestExecute_PriceFrozenMatchesCalculator(t *testing.T) {
	now := time.Date(2025, 3, 10, 19, 30, 0, 0, time.UTC)
	rule := &domain.PricingRule{
		ProviderID:     42,
		PeakMultiplier: 1.5,
		PeakStartHour:  18,
		PeakEndHour:    22,
	}
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeRulesRepo{rule: rule}, &fakeCatalogClient{service: activeService()}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:        10,
		ServiceID:       5,
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	// Зафиксированная цена совпадает с расчётом калькулятора на тот же момент
	calc := pricing.NewCalculator(pricing.NewPeakHoursStrategy(*rule))
	expected, err := calc.Quote(100.0, 60, 45, now)
	require.NoError(t, err)

	assert.Equal(t, expected, resp.Price)
	assert.Equal(t, expected, repo.created.Price)
	assert.Equal(t, pricing.RoundDisplay(expected), resp.DisplayPrice)
}

func TestExecute_InactiveService(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	service := activeService()
	service.IsActive = false
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeRulesRepo{}, &fakeCatalogClient{service: service}, now)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 10, ServiceID: 5, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeRulesRepo{}, &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}, now)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 10, ServiceID: 99, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeRulesRepo{}, &fakeCatalogClient{service: activeService()}, now)

	longNotes := string(make([]byte, domain.MaxNotesLength+1))

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero client", &Request{ClientID: 0, ServiceID: 5, DurationMinutes: 30}},
		{"zero service", &Request{ClientID: 10, ServiceID: 0, DurationMinutes: 30}},
		{"duration below minimum", &Request{ClientID: 10, ServiceID: 5, DurationMinutes: domain.MinBookingDurationMinutes - 1}},
		{"duration above maximum", &Request{ClientID: 10, ServiceID: 5, DurationMinutes: domain.MaxBookingDurationMinutes + 1}},
		{"notes too long", &Request{ClientID: 10, ServiceID: 5, DurationMinutes: 30, Notes: &longNotes}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
