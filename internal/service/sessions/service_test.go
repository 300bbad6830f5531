package sessions

import (
	"context"
	"errors"
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

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSessionRepo struct {
	session *domain.Session
	list    []*domain.Session
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	if r.session == nil || r.session.ID != id {
		return nil, sessionRepo.ErrSessionNotFound
	}
	s := *r.session
	return &s, nil
}

func (r *fakeSessionRepo) GetByParticipant(_ context.Context, _ int64, _ *domain.SessionStatus) ([]*domain.Session, error) {
	return r.list, nil
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id int64, status domain.SessionStatus, allowedFrom []domain.SessionStatus) error {
	if r.session == nil || r.session.ID != id {
		return sessionRepo.ErrSessionNotFound
	}
	for _, from := range allowedFrom {
		if r.session.Status == from {
			r.session.Status = status
			return nil
		}
	}
	return sessionRepo.ErrStatusConflict
}

type fakeBookingRepo struct {
	completedIDs []int64
	failWith     error
}

func (r *fakeBookingRepo) MarkCompleted(_ context.Context, id int64) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.completedIDs = append(r.completedIDs, id)
	return nil
}

func sessionStartingIn(d time.Duration, now time.Time) *domain.Session {
	start := now.Add(d)
	return &domain.Session{
		ID:         1,
		BookingID:  7,
		ClientID:   10,
		ProviderID: 42,
		ServiceID:  5,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     domain.SessionScheduled,
	}
}

func newTestService(sessions *fakeSessionRepo, bookings *fakeBookingRepo, now time.Time) *Service {
	svc := NewService(sessions, bookings, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: now}
	return svc
}

func TestGetByID_ParticipantAccess(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: sessionStartingIn(time.Hour, now)}
	svc := newTestService(repo, &fakeBookingRepo{}, now)

	_, err := svc.GetByID(context.Background(), 1, 10)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, 42)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, 777)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_WindowPredicatesComputed(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// За 10 минут до начала: подключение открыто, перенос уже закрыт
	repo := &fakeSessionRepo{session: sessionStartingIn(10*time.Minute, now)}
	svc := newTestService(repo, &fakeBookingRepo{}, now)

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, resp.CanJoin)
	assert.False(t, resp.CanReschedule)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeSessionRepo{}, &fakeBookingRepo{}, time.Now())

	_, err := svc.GetByID(context.Background(), 99, 10)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetUserSessions_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeSessionRepo{}, &fakeBookingRepo{}, time.Now())

	badStatus := "finished"
	_, err := svc.GetUserSessions(context.Background(), 10, &badStatus)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinInfo_BeforeWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: sessionStartingIn(20*time.Minute, now)}
	svc := newTestService(repo, &fakeBookingRepo{}, now)

	resp, err := svc.JoinInfo(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.False(t, resp.CanJoin)
	assert.InDelta(t, 20.0, resp.MinutesUntilStart, 0.01)
	assert.Equal(t, string(domain.SessionScheduled), resp.Status)
}

func TestJoinInfo_AfterStartStillOpen(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	session := sessionStartingIn(-30*time.Minute, now)
	session.Status = domain.SessionActive
	svc := newTestService(&fakeSessionRepo{session: session}, &fakeBookingRepo{}, now)

	resp, err := svc.JoinInfo(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.True(t, resp.CanJoin)
	assert.InDelta(t, -30.0, resp.MinutesUntilStart, 0.01)
}

func TestComplete_ProviderOnly(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: sessionStartingIn(-time.Hour, now)}
	svc := newTestService(repo, &fakeBookingRepo{}, now)

	err := svc.Complete(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.SessionScheduled, repo.session.Status)
}

func TestComplete_FromScheduled(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: sessionStartingIn(-time.Hour, now)}
	bookings := &fakeBookingRepo{}
	svc := newTestService(repo, bookings, now)

	err := svc.Complete(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionCompleted, repo.session.Status)
	assert.Equal(t, []int64{7}, bookings.completedIDs)
}

func TestComplete_FromActive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	session := sessionStartingIn(-time.Hour, now)
	session.Status = domain.SessionActive
	repo := &fakeSessionRepo{session: session}
	svc := newTestService(repo, &fakeBookingRepo{}, now)

	err := svc.Complete(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, repo.session.Status)
}

func TestComplete_AlreadyFinished(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	session := sessionStartingIn(-time.Hour, now)
	session.Status = domain.SessionCancelled
	repo := &fakeSessionRepo{session: session}
	bookings := &fakeBookingRepo{}
	svc := newTestService(repo, bookings, now)

	err := svc.Complete(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.Equal(t, domain.SessionCancelled, repo.session.Status)
	assert.Empty(t, bookings.completedIDs)
}

func TestComplete_BookingFailureDoesNotBlockSession(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{session: sessionStartingIn(-time.Hour, now)}
	// Заявка уже истекла - завершение сессии всё равно проходит
	bookings := &fakeBookingRepo{failWith: errors.New("booking already expired")}
	svc := newTestService(repo, bookings, now)

	err := svc.Complete(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, repo.session.Status)
}

func TestComplete_NotFound(t *testing.T) {
	svc := newTestService(&fakeSessionRepo{}, &fakeBookingRepo{}, time.Now())

	err := svc.Complete(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
