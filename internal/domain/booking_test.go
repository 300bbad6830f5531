package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantBooking(createdAt time.Time) *BookingRequest {
	expiresAt := createdAt.Add(InstantExpiryWindow)
	return &BookingRequest{
		ID:        1,
		ClientID:  10,
		IsInstant: true,
		Status:    StatusPending,
		ExpiresAt: &expiresAt,
		CreatedAt: createdAt,
	}
}

func TestIsExpired_PendingInstantWindow(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	b := instantBooking(createdAt)

	// Внутри окна и на границе заявка живая
	assert.False(t, b.IsExpired(createdAt.Add(29*time.Minute)))
	assert.False(t, b.IsExpired(createdAt.Add(30*time.Minute)))

	// Через 31 минуту окно истекло
	assert.True(t, b.IsExpired(createdAt.Add(31*time.Minute)))
	assert.Equal(t, StatusExpired, b.EffectiveStatus(createdAt.Add(31*time.Minute)))
}

func TestIsExpired_ScheduledNeverExpires(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	requestedTime := createdAt.Add(48 * time.Hour)
	b := &BookingRequest{
		ID:            2,
		IsInstant:     false,
		RequestedTime: &requestedTime,
		Status:        StatusPending,
		CreatedAt:     createdAt,
	}

	assert.False(t, b.IsExpired(createdAt.Add(1000*time.Hour)))
	assert.Equal(t, StatusPending, b.EffectiveStatus(createdAt.Add(1000*time.Hour)))
}

func TestAcceptedDeadline_FastAcceptGetsMinimumWindow(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	b := instantBooking(createdAt)

	// Ответ через 2 минуты: окно подключения поднимается до минимума в 5 минут
	respondedAt := createdAt.Add(2 * time.Minute)
	b.Status = StatusAccepted
	b.RespondedAt = &respondedAt

	deadline := b.AcceptedDeadline()
	require.NotNil(t, deadline)
	assert.Equal(t, respondedAt.Add(5*time.Minute), *deadline)

	assert.False(t, b.IsExpired(respondedAt.Add(5*time.Minute)))
	assert.True(t, b.IsExpired(respondedAt.Add(5*time.Minute+time.Second)))
}

func TestAcceptedDeadline_SlowAcceptMirrorsCountdown(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	b := instantBooking(createdAt)

	// Ответ через 10 минут: окно подключения тоже 10 минут
	respondedAt := createdAt.Add(10 * time.Minute)
	b.Status = StatusAccepted
	b.RespondedAt = &respondedAt

	deadline := b.AcceptedDeadline()
	require.NotNil(t, deadline)
	assert.Equal(t, respondedAt.Add(10*time.Minute), *deadline)
}

func TestAcceptedDeadline_NilForScheduledAndUnanswered(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	pending := instantBooking(createdAt)
	assert.Nil(t, pending.AcceptedDeadline())

	respondedAt := createdAt.Add(3 * time.Minute)
	scheduled := &BookingRequest{
		IsInstant:   false,
		Status:      StatusAccepted,
		RespondedAt: &respondedAt,
		CreatedAt:   createdAt,
	}
	assert.Nil(t, scheduled.AcceptedDeadline())
}

func TestEffectiveStatus_TerminalStatusesUnchanged(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	lateNow := createdAt.Add(24 * time.Hour)

	for _, status := range []BookingStatus{StatusDeclined, StatusExpired, StatusCompleted} {
		b := instantBooking(createdAt)
		b.Status = status
		assert.Equal(t, status, b.EffectiveStatus(lateNow))
	}
}

func TestCanRespond(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	b := instantBooking(createdAt)
	assert.True(t, b.CanRespond())

	b.Status = StatusAccepted
	assert.False(t, b.CanRespond())
	assert.True(t, b.IsTerminal())
}
