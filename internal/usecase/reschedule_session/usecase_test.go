package reschedule_session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/session"
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

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeSessionRepo воспроизводит условную запись репозитория:
// перенос проходит только для scheduled сессии до открытия окна подключения
type fakeSessionRepo struct {
	mu      sync.Mutex
	session *domain.Session
	now     time.Time
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil || r.session.ID != id {
		return nil, sessionRepo.ErrSessionNotFound
	}
	s := *r.session
	return &s, nil
}

func (r *fakeSessionRepo) Reschedule(_ context.Context, id int64, newStart, newEnd time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil || r.session.ID != id {
		return sessionRepo.ErrSessionNotFound
	}
	// Повторение SQL-предиката окна
	if r.session.Status != domain.SessionScheduled || !r.session.CanReschedule(r.now) {
		return sessionRepo.ErrRescheduleConflict
	}
	r.session.StartTime = newStart
	r.session.EndTime = newEnd
	return nil
}

func scheduledSession(startTime time.Time) *domain.Session {
	return &domain.Session{
		ID:         1,
		BookingID:  7,
		ClientID:   10,
		ProviderID: 42,
		ServiceID:  5,
		StartTime:  startTime,
		EndTime:    startTime.Add(time.Hour),
		Status:     domain.SessionScheduled,
	}
}

func newTestUseCase(repo *fakeSessionRepo, now time.Time) *UseCase {
	repo.now = now
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func TestExecute_PreservesDuration(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: scheduledSession(now.Add(2 * time.Hour))}
	uc := newTestUseCase(repo, now)

	newStart := now.Add(5 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:    1,
		UserID:       10,
		NewStartTime: newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, resp.StartTime)
	assert.Equal(t, newStart.Add(time.Hour), resp.EndTime)
	assert.Equal(t, string(domain.SessionScheduled), resp.Status)
}

func TestExecute_EitherParticipantMayReschedule(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, userID := range []int64{10, 42} {
		repo := &fakeSessionRepo{session: scheduledSession(now.Add(2 * time.Hour))}
		uc := newTestUseCase(repo, now)

		_, err := uc.Execute(context.Background(), &Request{
			SessionID:    1,
			UserID:       userID,
			NewStartTime: now.Add(5 * time.Hour),
		})
		assert.NoError(t, err)
	}
}

func TestExecute_StrangerDenied(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: scheduledSession(now.Add(2 * time.Hour))}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID:    1,
		UserID:       777,
		NewStartTime: now.Add(5 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_LockedInsideJoinWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// 14 минут до начала: окно подключения уже открыто
	repo := &fakeSessionRepo{session: scheduledSession(now.Add(14 * time.Minute))}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID:    1,
		UserID:       10,
		NewStartTime: now.Add(5 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrRescheduleLocked)
}

func TestExecute_NonScheduledSessionLocked(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	session := scheduledSession(now.Add(2 * time.Hour))
	session.Status = domain.SessionActive
	repo := &fakeSessionRepo{session: session}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID:    1,
		UserID:       10,
		NewStartTime: now.Add(5 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrRescheduleLocked)
}

func TestExecute_NewStartMustBeFuture(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: scheduledSession(now.Add(2 * time.Hour))}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID:    1,
		UserID:       10,
		NewStartTime: now.Add(-time.Minute),
	})
	assert.ErrorIs(t, err, ErrTimeInPast)
}

func TestExecute_SessionNotFound(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{}
	uc := newTestUseCase(repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID:    1,
		UserID:       10,
		NewStartTime: now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
