package respond_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/booking"
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

// fakeTxManager сериализует транзакции мьютексом, имитируя
// сериализуемый уровень изоляции
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeBookingRepo хранит одну заявку и воспроизводит условную запись
// репозитория: переход статуса проходит только из pending
type fakeBookingRepo struct {
	mu      sync.Mutex
	booking *domain.BookingRequest
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *r.booking
	return &b, nil
}

func (r *fakeBookingRepo) UpdateStatusIfPending(_ context.Context, id int64, status domain.BookingStatus, respondedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.booking == nil || r.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	if r.booking.Status != domain.StatusPending {
		return bookingRepo.ErrStatusConflict
	}
	r.booking.Status = status
	r.booking.RespondedAt = &respondedAt
	return nil
}

func (r *fakeBookingRepo) MarkExpired(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.booking == nil || r.booking.ID != id || r.booking.Status != domain.StatusPending {
		return bookingRepo.ErrNothingToExpire
	}
	r.booking.Status = domain.StatusExpired
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*domain.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *session
	out.ID = int64(len(r.sessions) + 1)
	r.sessions = append(r.sessions, &out)
	return &out, nil
}

func pendingInstantBooking(createdAt time.Time) *domain.BookingRequest {
	expiresAt := createdAt.Add(domain.InstantExpiryWindow)
	return &domain.BookingRequest{
		ID:              1,
		ClientID:        10,
		ProviderID:      42,
		ServiceID:       5,
		IsInstant:       true,
		DurationMinutes: 30,
		Price:           50.0,
		Status:          domain.StatusPending,
		ExpiresAt:       &expiresAt,
		CreatedAt:       createdAt,
	}
}

func pendingScheduledBooking(createdAt, requestedTime time.Time) *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:              1,
		ClientID:        10,
		ProviderID:      42,
		ServiceID:       5,
		IsInstant:       false,
		RequestedTime:   &requestedTime,
		DurationMinutes: 60,
		Price:           100.0,
		Status:          domain.StatusPending,
		CreatedAt:       createdAt,
	}
}

func newTestUseCase(repo *fakeBookingRepo, sessions *fakeSessionRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, sessions, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func TestExecute_AcceptScheduledCreatesScheduledSession(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(time.Hour)
	requestedTime := createdAt.Add(48 * time.Hour)

	repo := &fakeBookingRepo{booking: pendingScheduledBooking(createdAt, requestedTime)}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(repo, sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionAccept})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	require.NotNil(t, resp.Session)
	assert.Equal(t, string(domain.SessionScheduled), resp.Session.Status)
	assert.Equal(t, requestedTime, resp.Session.StartTime)
	assert.Equal(t, requestedTime.Add(60*time.Minute), resp.Session.EndTime)

	// Для запланированной заявки дедлайна подключения нет
	assert.Nil(t, resp.AcceptedDeadline)
}

func TestExecute_AcceptInstantCreatesActiveSessionNow(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(2 * time.Minute)

	repo := &fakeBookingRepo{booking: pendingInstantBooking(createdAt)}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(repo, sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionAccept})
	require.NoError(t, err)

	require.NotNil(t, resp.Session)
	assert.Equal(t, string(domain.SessionActive), resp.Session.Status)
	assert.Equal(t, now, resp.Session.StartTime)
	assert.Equal(t, now.Add(30*time.Minute), resp.Session.EndTime)

	// Быстрое принятие: дедлайн подключения поднят до минимума в 5 минут
	require.NotNil(t, resp.AcceptedDeadline)
	assert.Equal(t, now.Add(domain.MinAcceptedWindow), *resp.AcceptedDeadline)
}

func TestExecute_DeclineDoesNotCreateSession(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(5 * time.Minute)

	repo := &fakeBookingRepo{booking: pendingInstantBooking(createdAt)}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(repo, sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionDecline})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusDeclined), resp.Status)
	assert.Nil(t, resp.Session)
	assert.Empty(t, sessions.sessions)
}

func TestExecute_OnlyOwningProviderMayRespond(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(5 * time.Minute)

	repo := &fakeBookingRepo{booking: pendingInstantBooking(createdAt)}
	uc := newTestUseCase(repo, &fakeSessionRepo{}, now)

	// Чужой провайдер
	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 777, Action: ActionAccept})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Сам клиент тоже не может отвечать
	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 10, Action: ActionAccept})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Статус не тронут
	assert.Equal(t, domain.StatusPending, repo.booking.Status)
}

func TestExecute_StaleAcceptAfterExpiryRejected(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	// Ответ через 31 минуту: окно истекло
	now := createdAt.Add(31 * time.Minute)

	repo := &fakeBookingRepo{booking: pendingInstantBooking(createdAt)}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(repo, sessions, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionAccept})
	assert.ErrorIs(t, err, ErrBookingExpired)

	// Истечение зафиксировано в хранилище, сессия не создана
	assert.Equal(t, domain.StatusExpired, repo.booking.Status)
	assert.Empty(t, sessions.sessions)
}

func TestExecute_RespondToTerminalBooking(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(5 * time.Minute)

	booking := pendingInstantBooking(createdAt)
	booking.Status = domain.StatusDeclined
	repo := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeSessionRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionAccept})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestExecute_BookingNotFound(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSessionRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionAccept})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidAction(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSessionRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: "cancel"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentAcceptAndDecline(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(5 * time.Minute)

	repo := &fakeBookingRepo{booking: pendingInstantBooking(createdAt)}
	sessions := &fakeSessionRepo{}
	uc := newTestUseCase(repo, sessions, now)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionAccept})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.Execute(context.Background(), &Request{BookingID: 1, UserID: 42, Action: ActionDecline})
	}()
	wg.Wait()

	// Ровно один ответ выигрывает, второй получает конфликт статуса
	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrStatusConflict)
		}
	}
	assert.Equal(t, 1, winners)

	// Итоговый статус терминальный и согласован с созданием сессии
	switch repo.booking.Status {
	case domain.StatusAccepted:
		assert.Len(t, sessions.sessions, 1)
	case domain.StatusDeclined:
		assert.Empty(t, sessions.sessions)
	default:
		t.Fatalf("unexpected final status %q", repo.booking.Status)
	}
}
